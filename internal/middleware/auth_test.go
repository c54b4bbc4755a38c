package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mataction/mataction-go/internal/auth"
)

func authTestRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(jwtService), func(c *gin.Context) {
		userID, _ := GetAuthUserID(c)
		username, _ := GetAuthUsername(c)
		isManager, _ := GetAuthIsManager(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id":    userID,
			"username":   username,
			"is_manager": isManager,
		})
	})
	r.GET("/manager", RequireAuth(jwtService), RequireManager(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireAuthMissingHeader(t *testing.T) {
	r := authTestRouter(auth.NewJWTService("test-secret", "test"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthBadFormat(t *testing.T) {
	r := authTestRouter(auth.NewJWTService("test-secret", "test"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "test")
	r := authTestRouter(jwtService)

	token, err := jwtService.GenerateToken(uuid.New(), uuid.New(), "jordan", false)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthContextGetters(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "test")
	r := authTestRouter(jwtService)

	token, err := jwtService.GenerateToken(uuid.New(), uuid.New(), "jordan", true)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"jordan"`)
	assert.Contains(t, w.Body.String(), `"is_manager":true`)
}

func TestAuthGettersOutsideAuthContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetAuthUserID(c)
	assert.False(t, ok)
	_, ok = GetAuthUsername(c)
	assert.False(t, ok)
	_, ok = GetAuthIsManager(c)
	assert.False(t, ok)
}

func TestRequireManagerRejectsRep(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "test")
	r := authTestRouter(jwtService)

	token, err := jwtService.GenerateToken(uuid.New(), uuid.New(), "casey", false)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/manager", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireManagerAllowsManager(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "test")
	r := authTestRouter(jwtService)

	token, err := jwtService.GenerateToken(uuid.New(), uuid.New(), "jordan", true)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/manager", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

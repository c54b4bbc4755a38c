package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestExtractTeamSlug(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"acme-sales.mataction.com", "acme-sales"},
		{"northwest.mataction.com:8080", "northwest"},
		{"ACME-Sales.mataction.com", "acme-sales"},
		{"mataction.com", ""},
		{"www.mataction.com", ""},
		{"api.mataction.com", ""},
		{"staging.mataction.com", ""},
		{"othersite.com", ""},
		{"deep.nested.mataction.com", "deep.nested"},
	}

	for _, tt := range tests {
		got := ExtractTeamSlug(tt.host, "mataction.com")
		assert.Equal(t, tt.want, got, "host %q", tt.host)
	}
}

func TestValidateSlug(t *testing.T) {
	valid := []string{"acme", "acme-sales", "team42", "a1b"}
	for _, slug := range valid {
		assert.True(t, ValidateSlug(slug), "expected %q valid", slug)
	}

	invalid := []string{"", "ab", "-acme", "acme-", "acme--sales", "Acme", "a b c"}
	for _, slug := range invalid {
		assert.False(t, ValidateSlug(slug), "expected %q invalid", slug)
	}
}

func TestTeamContextGetters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetTeamID(c)
	assert.False(t, ok)
	_, ok = GetTeamSlug(c)
	assert.False(t, ok)

	teamID := uuid.New()
	c.Set(string(TeamIDKey), teamID)
	c.Set(string(TeamSlugKey), "acme-sales")

	gotID, ok := GetTeamID(c)
	assert.True(t, ok)
	assert.Equal(t, teamID, gotID)

	gotSlug, ok := GetTeamSlug(c)
	assert.True(t, ok)
	assert.Equal(t, "acme-sales", gotSlug)
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mataction/mataction-go/internal/middleware"
	"github.com/mataction/mataction-go/internal/models"
)

// ListUsers returns all active users in the team
func ListUsers(c *gin.Context) {
	db, ok := middleware.GetTeamDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	team, ok := middleware.GetTeam(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Team context not found"})
		return
	}

	query := `
		SELECT id, username, display_name, avatar_url, is_manager, daily_goal, is_active
		FROM users
		WHERE is_active = true
		ORDER BY is_manager DESC, display_name ASC
	`

	rows, err := db.Query(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
		return
	}
	defer rows.Close()

	users := []models.UserListResponse{}
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID, &user.Username, &user.DisplayName,
			&user.AvatarURL, &user.IsManager, &user.DailyGoal, &user.IsActive,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse user data"})
			return
		}
		users = append(users, user.ToListResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"team_id":   team.ID,
		"team_name": team.Name,
		"users":     users,
		"count":     len(users),
	})
}

// GetCurrentUser returns the authenticated user's own record
func GetCurrentUser(c *gin.Context) {
	db, ok := middleware.GetTeamDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	userID, ok := middleware.GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	query := `
		SELECT id, username, display_name, email, phone_number, avatar_url,
		       is_manager, daily_goal, login_enabled, is_active, last_login,
		       created_at, updated_at
		FROM users
		WHERE id = $1 AND is_active = true
	`

	var user models.User
	err := db.QueryRow(c.Request.Context(), query, userID).Scan(
		&user.ID, &user.Username, &user.DisplayName, &user.Email,
		&user.PhoneNumber, &user.AvatarURL, &user.IsManager, &user.DailyGoal,
		&user.LoginEnabled, &user.IsActive, &user.LastLogin,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UserCreateRequest is the body for creating a sales rep
type UserCreateRequest struct {
	Username    string  `json:"username" binding:"required"`
	DisplayName string  `json:"display_name" binding:"required"`
	Password    string  `json:"password" binding:"required,min=8"`
	Email       *string `json:"email"`
	IsManager   bool    `json:"is_manager"`
	DailyGoal   int     `json:"daily_goal"`
}

// CreateUser creates a new sales rep (manager-only route)
func CreateUser(c *gin.Context) {
	db, ok := middleware.GetTeamDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	var req UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	// Check if username already exists
	var exists bool
	err := db.QueryRow(c.Request.Context(),
		"SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(username) = $1)",
		username,
	).Scan(&exists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check username", "details": err.Error()})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	newID := uuid.New()
	query := `
		INSERT INTO users (id, username, display_name, password_hash, email,
		                   is_manager, daily_goal, login_enabled, is_active,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true, true, NOW(), NOW())
	`
	_, err = db.Exec(c.Request.Context(), query,
		newID, username, req.DisplayName, string(hash), req.Email,
		req.IsManager, req.DailyGoal,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           newID,
		"username":     username,
		"display_name": req.DisplayName,
		"is_manager":   req.IsManager,
	})
}

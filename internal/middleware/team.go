package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mataction/mataction-go/internal/models"
)

// TeamContextKey is the key for storing team context
type contextKey string

const (
	TeamContextKey contextKey = "team"
	TeamIDKey      contextKey = "team_id"
	TeamSlugKey    contextKey = "team_slug"
	TeamDBKey      contextKey = "team_db"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)

// TeamDBProvider interface for getting team database connections
type TeamDBProvider interface {
	GetTeamDBBySlug(ctx context.Context, slug string) (*pgxpool.Pool, *models.Team, error)
}

// ExtractTeamSlug extracts the team slug from subdomain
// Examples:
//   - acme-sales.mataction.com → "acme-sales"
//   - northwest.mataction.com → "northwest"
//   - api.mataction.com → "" (no team, platform-only)
func ExtractTeamSlug(host string, baseDomain string) string {
	// Remove port if present
	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}

	host = strings.ToLower(host)
	baseDomain = strings.ToLower(baseDomain)

	// If host equals base domain or www, no slug
	if host == baseDomain || host == "www."+baseDomain {
		return ""
	}

	// Check if host ends with base domain
	if !strings.HasSuffix(host, "."+baseDomain) {
		return ""
	}

	// Extract subdomain
	slug := strings.TrimSuffix(host, "."+baseDomain)

	// Reserved subdomains that are not team slugs
	reserved := map[string]bool{
		"api":     true,
		"www":     true,
		"app":     true,
		"admin":   true,
		"staging": true,
		"dev":     true,
	}

	if reserved[slug] {
		return ""
	}

	return slug
}

// TeamMiddleware extracts the team slug from the subdomain and loads team
// context + DB connection
func TeamMiddleware(dbProvider TeamDBProvider, baseDomain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		host := c.Request.Host
		slug := ExtractTeamSlug(host, baseDomain)

		// If no slug, continue without team context (platform-only routes)
		if slug == "" {
			c.Next()
			return
		}

		// Validate slug format
		if !ValidateSlug(slug) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid team identifier",
			})
			c.Abort()
			return
		}

		// Look up team and get database connection
		teamDB, team, err := dbProvider.GetTeamDBBySlug(c.Request.Context(), slug)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Team not found",
				"slug":  slug,
			})
			c.Abort()
			return
		}

		// Check if team is active
		if team.Status != "active" {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Team account is inactive",
			})
			c.Abort()
			return
		}

		// Store team info and DB connection in context
		c.Set(string(TeamIDKey), team.ID)
		c.Set(string(TeamSlugKey), team.Slug)
		c.Set(string(TeamContextKey), team)
		c.Set(string(TeamDBKey), teamDB)

		c.Next()
	}
}

// RequireTeam ensures a team context exists
func RequireTeam() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, exists := c.Get(string(TeamIDKey))
		if !exists {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Team context required. Please access via your team subdomain (e.g., yourteam.mataction.com)",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetTeamID retrieves the team ID from context
func GetTeamID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get(string(TeamIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}

// GetTeamSlug retrieves the team slug from context
func GetTeamSlug(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(TeamSlugKey))
	if !exists {
		return "", false
	}
	slug, ok := val.(string)
	return slug, ok
}

// GetTeamDB retrieves the team database connection from context
func GetTeamDB(c *gin.Context) (*pgxpool.Pool, bool) {
	val, exists := c.Get(string(TeamDBKey))
	if !exists {
		return nil, false
	}
	db, ok := val.(*pgxpool.Pool)
	return db, ok
}

// GetTeam retrieves the full team object from context
func GetTeam(c *gin.Context) (*models.Team, bool) {
	val, exists := c.Get(string(TeamContextKey))
	if !exists {
		return nil, false
	}
	team, ok := val.(*models.Team)
	return team, ok
}

// ValidateSlug checks if a slug is valid
// Rules:
//   - 3-50 characters
//   - Lowercase letters, numbers, hyphens only
//   - Must start and end with letter or number
//   - Cannot have consecutive hyphens
func ValidateSlug(slug string) bool {
	if len(slug) < 3 || len(slug) > 50 {
		return false
	}

	if !slugRegex.MatchString(slug) {
		return false
	}

	// No consecutive hyphens
	if strings.Contains(slug, "--") {
		return false
	}

	return true
}

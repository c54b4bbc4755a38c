package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mataction/mataction-go/internal/middleware"
	"github.com/mataction/mataction-go/internal/models"
	"github.com/mataction/mataction-go/internal/repository"
)

// TeamRegisterRequest is the body for registering a new team on the platform
type TeamRegisterRequest struct {
	Slug   string `json:"slug" binding:"required"`
	Name   string `json:"name" binding:"required"`
	DBHost string `json:"db_host" binding:"required"`
	DBPort int    `json:"db_port" binding:"required"`
	DBName string `json:"db_name" binding:"required"`
	Plan   string `json:"plan"`
}

// RegisterTeam creates a new team record in the platform routing database
func RegisterTeam(teams *repository.TeamRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TeamRegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}

		if !middleware.ValidateSlug(req.Slug) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug. Use 3-50 lowercase letters, numbers, and hyphens"})
			return
		}

		plan := req.Plan
		if plan == "" {
			plan = "free"
		}

		team := &models.Team{
			Slug:   req.Slug,
			Name:   req.Name,
			DBHost: req.DBHost,
			DBPort: req.DBPort,
			DBName: req.DBName,
			Plan:   plan,
			Status: "active",
		}

		err := teams.CreateTeam(c.Request.Context(), team)
		if err != nil {
			if err == repository.ErrSlugTaken {
				c.JSON(http.StatusConflict, gin.H{"error": "Slug already taken"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register team", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":   team.ID,
			"slug": team.Slug,
			"name": team.Name,
			"plan": team.Plan,
		})
	}
}

// GetTeamInfo returns the current team's account record from the platform
// database. Connection details are excluded from the JSON encoding.
func GetTeamInfo(teams *repository.TeamRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, ok := middleware.GetTeamID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Team context not found"})
			return
		}

		team, err := teams.GetTeamByID(c.Request.Context(), teamID)
		if err != nil {
			if errors.Is(err, repository.ErrTeamNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query team", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, team)
	}
}

// TeamUpdateRequest is the body for renaming a team (manager-only route)
type TeamUpdateRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateTeamInfo lets a manager rename the team. Plan and status stay under
// platform control and are carried through unchanged.
func UpdateTeamInfo(teams *repository.TeamRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, ok := middleware.GetTeamID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Team context not found"})
			return
		}

		var req TeamUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}

		team, err := teams.GetTeamByID(c.Request.Context(), teamID)
		if err != nil {
			if errors.Is(err, repository.ErrTeamNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query team", "details": err.Error()})
			return
		}

		team.Name = req.Name
		if err := teams.UpdateTeam(c.Request.Context(), team); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update team", "details": err.Error()})
			return
		}

		slug, _ := middleware.GetTeamSlug(c)
		username, _ := middleware.GetAuthUsername(c)
		logrus.WithFields(logrus.Fields{"team": slug, "by": username}).Info("team renamed")

		c.JSON(http.StatusOK, team)
	}
}

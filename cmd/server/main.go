package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/mataction/mataction-go/internal/auth"
	"github.com/mataction/mataction-go/internal/database"
	"github.com/mataction/mataction-go/internal/handlers"
	"github.com/mataction/mataction-go/internal/middleware"
	"github.com/mataction/mataction-go/internal/repository"
)

var Version = "dev"

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	if os.Getenv("ENV") == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	platformURL := os.Getenv("PLATFORM_DATABASE_URL")
	if platformURL == "" {
		logrus.Fatal("PLATFORM_DATABASE_URL is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logrus.Fatal("JWT_SECRET is required")
	}

	baseDomain := os.Getenv("BASE_DOMAIN")
	if baseDomain == "" {
		baseDomain = "mataction.com"
	}

	platformDB, err := database.NewPlatformDB(ctx, platformURL)
	if err != nil {
		logrus.Fatalf("Failed to connect to platform DB: %v", err)
	}
	defer platformDB.Close()

	teamDBs := database.NewTeamDBManager(platformDB,
		os.Getenv("TEAM_DB_USER"),
		os.Getenv("TEAM_DB_PASSWORD"))
	defer teamDBs.Close()

	jwtService := auth.NewJWTService(jwtSecret, "mataction")
	teamRepo := repository.NewTeamRepository(platformDB.Pool())

	// Initialize Gin
	r := gin.Default()
	r.Use(middleware.Metrics())
	r.Use(middleware.TeamMiddleware(teamDBs, baseDomain))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := platformDB.Health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": Version,
			"pools":   teamDBs.PoolStats(),
		})
	})

	// Version endpoint
	r.GET("/api/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version": Version,
			"service": "mataction-go",
		})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Platform routes (no team context)
	r.POST("/api/platform/teams", handlers.RegisterTeam(teamRepo))

	// Team routes (subdomain context required)
	team := r.Group("/api", middleware.RequireTeam())
	team.POST("/auth/login", handlers.Login(jwtService))

	authed := team.Group("", middleware.RequireAuth(jwtService))
	{
		// Day buckets and prospecting
		authed.GET("/days/:date", handlers.GetDay)
		authed.PUT("/days/:date/notes", handlers.UpdateDayNotes)
		authed.GET("/days/:date/score", handlers.GetDayScore)
		authed.POST("/days/:date/contacts", handlers.CreateContact)
		authed.PUT("/contacts/:id/codes", handlers.ToggleContactCode)

		// Hot leads and follow-ups
		authed.GET("/leads", handlers.ListLeads)
		authed.POST("/leads", handlers.CreateLead)
		authed.PUT("/leads/:id", handlers.UpdateLead)
		authed.DELETE("/leads/:id", handlers.DeleteLead)
		authed.GET("/leads/due", handlers.GetDueFollowUps)
		authed.POST("/leads/:id/followups/:day/complete", handlers.CompleteFollowUp)
		authed.POST("/leads/:id/convert", handlers.ConvertLead)

		// Revenue log
		authed.GET("/transactions", handlers.ListTransactions)
		authed.POST("/transactions", handlers.CreateTransaction)
		authed.PUT("/transactions/:id", handlers.UpdateTransaction)
		authed.DELETE("/transactions/:id", handlers.DeleteTransaction)

		// Calendar
		authed.GET("/events", handlers.GetEvents)
		authed.POST("/events", handlers.CreateEvent)
		authed.POST("/events/recur", handlers.CreateRecurringEvents)
		authed.PUT("/events/:id", handlers.UpdateEvent)
		authed.DELETE("/events/:id", handlers.DeleteEvent)

		// Dashboard
		authed.GET("/dashboard", handlers.GetDashboard)

		// Users and team account
		authed.GET("/users", handlers.ListUsers)
		authed.GET("/users/me", handlers.GetCurrentUser)
		authed.GET("/team", handlers.GetTeamInfo(teamRepo))

		// Manager-only
		mgr := authed.Group("", middleware.RequireManager())
		mgr.PUT("/team", handlers.UpdateTeamInfo(teamRepo))
		mgr.POST("/users", handlers.CreateUser)
		mgr.GET("/leaderboard", handlers.GetLeaderboard)
		mgr.GET("/dashboard/team", handlers.GetTeamDashboard)
	}

	// Server configuration
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("🚀 Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("🛑 Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("✅ Server exited")
}

package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/mataction/mataction-go/internal/models"
)

// TeamDBManager manages connections to team-specific databases
type TeamDBManager struct {
	platformDB *PlatformDB
	dbUser     string
	dbPassword string
	pools      sync.Map // map[teamID]string -> *pgxpool.Pool
	mu         sync.Mutex
}

// NewTeamDBManager creates a new team database manager. dbUser/dbPassword
// are the service credentials used for team databases; per-team credentials
// from the routing table take precedence when set.
func NewTeamDBManager(platformDB *PlatformDB, dbUser, dbPassword string) *TeamDBManager {
	return &TeamDBManager{
		platformDB: platformDB,
		dbUser:     dbUser,
		dbPassword: dbPassword,
	}
}

// GetTeamDB retrieves or creates a connection pool for a team database
func (m *TeamDBManager) GetTeamDB(ctx context.Context, team *models.Team) (*pgxpool.Pool, error) {
	// Check if pool already exists
	if pool, ok := m.pools.Load(team.ID.String()); ok {
		return pool.(*pgxpool.Pool), nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring lock
	if pool, ok := m.pools.Load(team.ID.String()); ok {
		return pool.(*pgxpool.Pool), nil
	}

	user := m.dbUser
	if team.DBUser != "" {
		user = team.DBUser
	}

	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		user,
		m.dbPassword,
		team.DBHost,
		team.DBPort,
		team.DBName,
	)

	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse team DB config for %s: %w", team.Slug, err)
	}

	// Connection pool settings for team databases
	config.MaxConns = 25
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create team DB pool for %s: %w", team.Slug, err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping team DB for %s: %w", team.Slug, err)
	}

	// Store in cache
	m.pools.Store(team.ID.String(), pool)
	logrus.WithFields(logrus.Fields{"team": team.Slug, "db": team.DBName}).Info("team DB pool opened")

	return pool, nil
}

// GetTeamDBBySlug is a convenience method that looks up the team and gets its DB
func (m *TeamDBManager) GetTeamDBBySlug(ctx context.Context, slug string) (*pgxpool.Pool, *models.Team, error) {
	team, err := m.platformDB.GetTeamBySlug(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get team by slug: %w", err)
	}

	pool, err := m.GetTeamDB(ctx, team)
	if err != nil {
		return nil, nil, err
	}

	// Update last activity
	go func() {
		ctx := context.Background()
		_ = m.platformDB.UpdateTeamLastActivity(ctx, team.ID.String())
	}()

	return pool, team, nil
}

// Close closes all team database connections
func (m *TeamDBManager) Close() {
	m.pools.Range(func(key, value interface{}) bool {
		if pool, ok := value.(*pgxpool.Pool); ok {
			pool.Close()
		}
		m.pools.Delete(key)
		return true
	})
}

// PoolStats returns statistics about connection pools
func (m *TeamDBManager) PoolStats() map[string]interface{} {
	stats := make(map[string]interface{})
	count := 0

	m.pools.Range(func(key, value interface{}) bool {
		count++
		if pool, ok := value.(*pgxpool.Pool); ok {
			poolStats := pool.Stat()
			stats[key.(string)] = map[string]interface{}{
				"acquired_conns": poolStats.AcquiredConns(),
				"idle_conns":     poolStats.IdleConns(),
				"total_conns":    poolStats.TotalConns(),
				"max_conns":      poolStats.MaxConns(),
			}
		}
		return true
	})

	stats["total_pools"] = count
	return stats
}

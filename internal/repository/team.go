package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mataction/mataction-go/internal/models"
)

var ErrTeamNotFound = errors.New("team not found")
var ErrSlugTaken = errors.New("slug already taken")

type TeamRepository struct {
	db *pgxpool.Pool
}

func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

// GetTeamByID retrieves full team details by ID
func (r *TeamRepository) GetTeamByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	query := `
		SELECT id, slug, name, plan, status, created_at, updated_at, deleted_at
		FROM teams
		WHERE id = $1
	`

	var team models.Team
	err := r.db.QueryRow(ctx, query, id).Scan(
		&team.ID,
		&team.Slug,
		&team.Name,
		&team.Plan,
		&team.Status,
		&team.CreatedAt,
		&team.UpdatedAt,
		&team.DeletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	return &team, nil
}

// CreateTeam registers a new team with the given slug
func (r *TeamRepository) CreateTeam(ctx context.Context, team *models.Team) error {
	// Check if slug is already taken
	exists, err := r.SlugExists(ctx, team.Slug)
	if err != nil {
		return err
	}
	if exists {
		return ErrSlugTaken
	}

	query := `
		INSERT INTO teams (id, slug, name, db_host, db_port, db_name, plan, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}

	err = r.db.QueryRow(ctx, query,
		team.ID,
		team.Slug,
		team.Name,
		team.DBHost,
		team.DBPort,
		team.DBName,
		team.Plan,
		team.Status,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)

	return err
}

// SlugExists checks if a slug is already in use
func (r *TeamRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM teams WHERE slug = $1 AND deleted_at IS NULL)`
	var exists bool
	err := r.db.QueryRow(ctx, query, slug).Scan(&exists)
	return exists, err
}

// UpdateTeam updates team details
func (r *TeamRepository) UpdateTeam(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams
		SET name = $1, plan = $2, status = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, team.Name, team.Plan, team.Status, team.ID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrTeamNotFound
	}

	return nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/somang-church/website-api/internal/db"
	"github.com/somang-church/website-api/internal/models"
)

// SermonRepository defines operations for managing sermons.
type SermonRepository interface {
	// Create inserts a new sermon. The generated id and timestamps are
	// written back into sermon.
	Create(ctx context.Context, sermon *models.Sermon) error

	// GetByID retrieves a single sermon.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sermon, error)

	// List retrieves all sermons ordered by sermon_date descending.
	List(ctx context.Context) ([]*models.Sermon, error)

	// Update rewrites the mutable fields of an existing sermon and refreshes
	// updated_at.
	Update(ctx context.Context, sermon *models.Sermon) error

	// Delete removes a sermon by id.
	Delete(ctx context.Context, id uuid.UUID) error
}

type sermonRepository struct {
	pool *pgxpool.Pool
}

// NewSermonRepository creates a new SermonRepository.
func NewSermonRepository(pool *pgxpool.Pool) SermonRepository {
	return &sermonRepository{pool: pool}
}

const sermonColumns = `id, title, preacher, scripture, youtube_url, sermon_date, description, created_at, updated_at`

func (r *sermonRepository) Create(ctx context.Context, sermon *models.Sermon) error {
	query := `
		INSERT INTO church_sermons (title, preacher, scripture, youtube_url, sermon_date, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		sermon.Title,
		sermon.Preacher,
		sermon.Scripture,
		sermon.YouTubeURL,
		sermon.SermonDate,
		sermon.Description,
	).Scan(&sermon.ID, &sermon.CreatedAt, &sermon.UpdatedAt)

	if err != nil {
		return db.WrapError(err, "create sermon")
	}

	return nil
}

func (r *sermonRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Sermon, error) {
	query := `
		SELECT ` + sermonColumns + `
		FROM church_sermons
		WHERE id = $1
	`

	sermon := &models.Sermon{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&sermon.ID,
		&sermon.Title,
		&sermon.Preacher,
		&sermon.Scripture,
		&sermon.YouTubeURL,
		&sermon.SermonDate,
		&sermon.Description,
		&sermon.CreatedAt,
		&sermon.UpdatedAt,
	)

	if err != nil {
		return nil, db.WrapError(err, "get sermon by id")
	}

	return sermon, nil
}

func (r *sermonRepository) List(ctx context.Context) ([]*models.Sermon, error) {
	query := `
		SELECT ` + sermonColumns + `
		FROM church_sermons
		ORDER BY sermon_date DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, db.WrapError(err, "list sermons")
	}
	defer rows.Close()

	var sermons []*models.Sermon
	for rows.Next() {
		sermon := &models.Sermon{}
		err := rows.Scan(
			&sermon.ID,
			&sermon.Title,
			&sermon.Preacher,
			&sermon.Scripture,
			&sermon.YouTubeURL,
			&sermon.SermonDate,
			&sermon.Description,
			&sermon.CreatedAt,
			&sermon.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sermon: %w", err)
		}
		sermons = append(sermons, sermon)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sermons: %w", err)
	}

	return sermons, nil
}

func (r *sermonRepository) Update(ctx context.Context, sermon *models.Sermon) error {
	query := `
		UPDATE church_sermons
		SET title = $2, preacher = $3, scripture = $4, youtube_url = $5, sermon_date = $6, description = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		sermon.ID,
		sermon.Title,
		sermon.Preacher,
		sermon.Scripture,
		sermon.YouTubeURL,
		sermon.SermonDate,
		sermon.Description,
	).Scan(&sermon.UpdatedAt)

	if err != nil {
		return db.WrapError(err, "update sermon")
	}

	return nil
}

func (r *sermonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM church_sermons WHERE id = $1`, id)
	if err != nil {
		return db.WrapError(err, "delete sermon")
	}
	if tag.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "delete sermon")
	}
	return nil
}

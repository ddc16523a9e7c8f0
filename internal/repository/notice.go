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

// NoticeRepository defines operations for managing church notices.
type NoticeRepository interface {
	// Create inserts a new notice. The generated id and timestamps are
	// written back into notice.
	Create(ctx context.Context, notice *models.Notice) error

	// GetByID retrieves a single notice.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notice, error)

	// List retrieves all notices. With pinnedFirst, pinned notices sort
	// ahead of the rest; within each group newest first.
	List(ctx context.Context, pinnedFirst bool) ([]*models.Notice, error)

	// Update rewrites the mutable fields of an existing notice and refreshes
	// updated_at.
	Update(ctx context.Context, notice *models.Notice) error

	// Delete removes a notice by id.
	Delete(ctx context.Context, id uuid.UUID) error
}

type noticeRepository struct {
	pool *pgxpool.Pool
}

// NewNoticeRepository creates a new NoticeRepository.
func NewNoticeRepository(pool *pgxpool.Pool) NoticeRepository {
	return &noticeRepository{pool: pool}
}

const noticeColumns = `id, title, content, author, is_pinned, created_at, updated_at`

func (r *noticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	query := `
		INSERT INTO church_notices (title, content, author, is_pinned)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		notice.Title,
		notice.Content,
		notice.Author,
		notice.IsPinned,
	).Scan(&notice.ID, &notice.CreatedAt, &notice.UpdatedAt)

	if err != nil {
		return db.WrapError(err, "create notice")
	}

	return nil
}

func (r *noticeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notice, error) {
	query := `
		SELECT ` + noticeColumns + `
		FROM church_notices
		WHERE id = $1
	`

	notice := &models.Notice{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&notice.ID,
		&notice.Title,
		&notice.Content,
		&notice.Author,
		&notice.IsPinned,
		&notice.CreatedAt,
		&notice.UpdatedAt,
	)

	if err != nil {
		return nil, db.WrapError(err, "get notice by id")
	}

	return notice, nil
}

func (r *noticeRepository) List(ctx context.Context, pinnedFirst bool) ([]*models.Notice, error) {
	order := `created_at DESC`
	if pinnedFirst {
		order = `is_pinned DESC, created_at DESC`
	}

	query := `
		SELECT ` + noticeColumns + `
		FROM church_notices
		ORDER BY ` + order

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, db.WrapError(err, "list notices")
	}
	defer rows.Close()

	var notices []*models.Notice
	for rows.Next() {
		notice := &models.Notice{}
		err := rows.Scan(
			&notice.ID,
			&notice.Title,
			&notice.Content,
			&notice.Author,
			&notice.IsPinned,
			&notice.CreatedAt,
			&notice.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan notice: %w", err)
		}
		notices = append(notices, notice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notices: %w", err)
	}

	return notices, nil
}

func (r *noticeRepository) Update(ctx context.Context, notice *models.Notice) error {
	query := `
		UPDATE church_notices
		SET title = $2, content = $3, author = $4, is_pinned = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		notice.ID,
		notice.Title,
		notice.Content,
		notice.Author,
		notice.IsPinned,
	).Scan(&notice.UpdatedAt)

	if err != nil {
		return db.WrapError(err, "update notice")
	}

	return nil
}

func (r *noticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM church_notices WHERE id = $1`, id)
	if err != nil {
		return db.WrapError(err, "delete notice")
	}
	if tag.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "delete notice")
	}
	return nil
}

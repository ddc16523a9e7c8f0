package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/somang-church/website-api/internal/db"
	"github.com/somang-church/website-api/internal/models"
)

// InquiryRepository defines operations for managing newcomer inquiries.
type InquiryRepository interface {
	// Create inserts a new inquiry. The generated id and created_at are
	// written back into inquiry.
	Create(ctx context.Context, inquiry *models.NewcomerInquiry) error

	// List retrieves all inquiries, newest first.
	List(ctx context.Context) ([]*models.NewcomerInquiry, error)

	// UpdateStatus sets the follow-up status of an inquiry and returns the
	// updated row.
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.InquiryStatus) (*models.NewcomerInquiry, error)
}

type inquiryRepository struct {
	pool *pgxpool.Pool
}

// NewInquiryRepository creates a new InquiryRepository.
func NewInquiryRepository(pool *pgxpool.Pool) InquiryRepository {
	return &inquiryRepository{pool: pool}
}

const inquiryColumns = `id, name, phone, email, message, status, created_at`

func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.NewcomerInquiry) error {
	query := `
		INSERT INTO newcomer_inquiries (name, phone, email, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		inquiry.Name,
		inquiry.Phone,
		inquiry.Email,
		inquiry.Message,
		inquiry.Status,
	).Scan(&inquiry.ID, &inquiry.CreatedAt)

	if err != nil {
		return db.WrapError(err, "create inquiry")
	}

	return nil
}

func (r *inquiryRepository) List(ctx context.Context) ([]*models.NewcomerInquiry, error) {
	query := `
		SELECT ` + inquiryColumns + `
		FROM newcomer_inquiries
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, db.WrapError(err, "list inquiries")
	}
	defer rows.Close()

	var inquiries []*models.NewcomerInquiry
	for rows.Next() {
		inquiry := &models.NewcomerInquiry{}
		err := rows.Scan(
			&inquiry.ID,
			&inquiry.Name,
			&inquiry.Phone,
			&inquiry.Email,
			&inquiry.Message,
			&inquiry.Status,
			&inquiry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		inquiries = append(inquiries, inquiry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inquiries: %w", err)
	}

	return inquiries, nil
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.InquiryStatus) (*models.NewcomerInquiry, error) {
	query := `
		UPDATE newcomer_inquiries
		SET status = $2
		WHERE id = $1
		RETURNING ` + inquiryColumns + `
	`

	inquiry := &models.NewcomerInquiry{}
	err := r.pool.QueryRow(ctx, query, id, status).Scan(
		&inquiry.ID,
		&inquiry.Name,
		&inquiry.Phone,
		&inquiry.Email,
		&inquiry.Message,
		&inquiry.Status,
		&inquiry.CreatedAt,
	)

	if err != nil {
		return nil, db.WrapError(err, "update inquiry status")
	}

	return inquiry, nil
}

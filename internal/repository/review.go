// Package repository provides database operations for the church website API.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/somang-church/website-api/internal/db"
	"github.com/somang-church/website-api/internal/models"
)

// ReviewRepository defines operations for managing video review requests.
type ReviewRepository interface {
	// Create inserts a new review request. The generated id and created_at
	// are written back into review.
	Create(ctx context.Context, review *models.VideoReview) error

	// GetByToken retrieves a single review by its review token.
	GetByToken(ctx context.Context, token string) (*models.VideoReview, error)

	// UpdateDecision records a reviewer decision on the review identified by
	// token and returns the updated row.
	UpdateDecision(ctx context.Context, token string, status models.ReviewStatus, comment *string, reviewedAt time.Time) (*models.VideoReview, error)

	// List retrieves all reviews, newest first.
	List(ctx context.Context) ([]*models.VideoReview, error)

	// Delete removes a review by id.
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

const reviewColumns = `id, title, description, youtube_url, review_token, status, reviewer_comment, reviewed_at, created_at`

func (r *reviewRepository) Create(ctx context.Context, review *models.VideoReview) error {
	query := `
		INSERT INTO video_reviews (title, description, youtube_url, review_token, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		review.Title,
		review.Description,
		review.YouTubeURL,
		review.ReviewToken,
		review.Status,
	).Scan(&review.ID, &review.CreatedAt)

	if err != nil {
		return db.WrapError(err, "create review")
	}

	return nil
}

func (r *reviewRepository) GetByToken(ctx context.Context, token string) (*models.VideoReview, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM video_reviews
		WHERE review_token = $1
	`

	review := &models.VideoReview{}
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&review.ID,
		&review.Title,
		&review.Description,
		&review.YouTubeURL,
		&review.ReviewToken,
		&review.Status,
		&review.ReviewerComment,
		&review.ReviewedAt,
		&review.CreatedAt,
	)

	if err != nil {
		return nil, db.WrapError(err, "get review by token")
	}

	return review, nil
}

func (r *reviewRepository) UpdateDecision(ctx context.Context, token string, status models.ReviewStatus, comment *string, reviewedAt time.Time) (*models.VideoReview, error) {
	query := `
		UPDATE video_reviews
		SET status = $2, reviewer_comment = $3, reviewed_at = $4
		WHERE review_token = $1
		RETURNING ` + reviewColumns + `
	`

	review := &models.VideoReview{}
	err := r.pool.QueryRow(ctx, query, token, status, comment, reviewedAt).Scan(
		&review.ID,
		&review.Title,
		&review.Description,
		&review.YouTubeURL,
		&review.ReviewToken,
		&review.Status,
		&review.ReviewerComment,
		&review.ReviewedAt,
		&review.CreatedAt,
	)

	if err != nil {
		return nil, db.WrapError(err, "update review decision")
	}

	return review, nil
}

func (r *reviewRepository) List(ctx context.Context) ([]*models.VideoReview, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM video_reviews
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, db.WrapError(err, "list reviews")
	}
	defer rows.Close()

	return scanReviews(rows)
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM video_reviews WHERE id = $1`, id)
	if err != nil {
		return db.WrapError(err, "delete review")
	}
	if tag.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "delete review")
	}
	return nil
}

// Helper function to scan multiple reviews from query results
func scanReviews(rows pgx.Rows) ([]*models.VideoReview, error) {
	var reviews []*models.VideoReview

	for rows.Next() {
		review := &models.VideoReview{}
		err := rows.Scan(
			&review.ID,
			&review.Title,
			&review.Description,
			&review.YouTubeURL,
			&review.ReviewToken,
			&review.Status,
			&review.ReviewerComment,
			&review.ReviewedAt,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}

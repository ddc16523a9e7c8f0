// Package service provides business logic for the church website API.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/somang-church/website-api/internal/db"
	"github.com/somang-church/website-api/internal/models"
	"github.com/somang-church/website-api/internal/repository"
	"github.com/somang-church/website-api/pkg/logger"
)

// reviewTokenBytes is the entropy of a review token: 8 random bytes,
// rendered as 16 hex characters.
const reviewTokenBytes = 8

// DecisionNotifier receives review decisions for out-of-band notification.
// *DecisionPublisher implements it; a nil notifier disables notification.
type DecisionNotifier interface {
	PublishDecision(ctx context.Context, event *models.ReviewDecidedEvent) error
}

// ReviewService handles the video review workflow: token issuance, anonymous
// lookup, and the one-shot status transition.
type ReviewService struct {
	repo     repository.ReviewRepository
	notifier DecisionNotifier
}

// NewReviewService creates a new ReviewService instance.
// notifier may be nil; decisions are then not published anywhere.
func NewReviewService(repo repository.ReviewRepository, notifier DecisionNotifier) *ReviewService {
	return &ReviewService{
		repo:     repo,
		notifier: notifier,
	}
}

// GenerateReviewToken returns a fresh opaque review token.
func GenerateReviewToken() string {
	buf := make([]byte, reviewTokenBytes)
	// crypto/rand.Read never fails on supported platforms
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// Create registers a new review request and issues its token.
func (s *ReviewService) Create(ctx context.Context, title, youtubeURL, description string) (*models.VideoReview, error) {
	title = strings.TrimSpace(title)
	youtubeURL = strings.TrimSpace(youtubeURL)
	description = strings.TrimSpace(description)

	if title == "" || youtubeURL == "" {
		return nil, &ValidationError{Message: "title and youtube_url are required"}
	}

	review := &models.VideoReview{
		Title:       title,
		Description: optional(description),
		YouTubeURL:  youtubeURL,
		ReviewToken: GenerateReviewToken(),
		Status:      models.ReviewStatusPending,
	}

	err := s.repo.Create(ctx, review)
	if db.IsDuplicateKey(err) {
		// An 8-byte token collision is vanishingly rare; regenerate once and
		// retry rather than surfacing a 500 to the admin.
		logger.Log.Warn("Review token collision, regenerating",
			zap.String("token", review.ReviewToken),
		)
		review.ReviewToken = GenerateReviewToken()
		err = s.repo.Create(ctx, review)
	}
	if err != nil {
		return nil, &UpstreamError{Message: "failed to create review", Cause: err}
	}

	logger.Log.Info("Review request created",
		zap.String("reviewId", review.ID.String()),
		zap.String("title", review.Title),
	)

	return review, nil
}

// GetByToken looks up a review by its token for the anonymous reviewer page.
func (s *ReviewService) GetByToken(ctx context.Context, token string) (*models.VideoReview, error) {
	review, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, &NotFoundError{Resource: "review"}
		}
		return nil, &UpstreamError{Message: "failed to load review", Cause: err}
	}
	return review, nil
}

// SubmitDecision records a reviewer decision on the review identified by
// token. A repeated decision overwrites the previous one (last write wins);
// the reviewer page stops offering the decision form once the status has
// left pending.
func (s *ReviewService) SubmitDecision(ctx context.Context, token string, status models.ReviewStatus, comment string) (*models.VideoReview, error) {
	if !status.IsValidDecision() {
		return nil, &ValidationError{Message: "status must be one of approved, revision, rejected"}
	}

	review, err := s.repo.UpdateDecision(ctx, token, status, optional(strings.TrimSpace(comment)), time.Now())
	if err != nil {
		if db.IsNotFound(err) {
			return nil, &NotFoundError{Resource: "review"}
		}
		return nil, &UpstreamError{Message: "failed to save decision", Cause: err}
	}

	logger.Log.Info("Review decision recorded",
		zap.String("reviewId", review.ID.String()),
		zap.String("status", string(review.Status)),
	)

	if s.notifier != nil && review.ReviewedAt != nil {
		event := &models.ReviewDecidedEvent{
			ReviewID:   review.ID,
			Title:      review.Title,
			Status:     review.Status,
			ReviewedAt: *review.ReviewedAt,
		}
		if err := s.notifier.PublishDecision(ctx, event); err != nil {
			// Notification is best-effort; the decision is already persisted.
			logger.Log.Error("Failed to publish review decision",
				zap.Error(err),
				zap.String("reviewId", review.ID.String()),
			)
		}
	}

	return review, nil
}

// List returns all review requests, newest first.
func (s *ReviewService) List(ctx context.Context) ([]*models.VideoReview, error) {
	reviews, err := s.repo.List(ctx)
	if err != nil {
		return nil, &UpstreamError{Message: "failed to list reviews", Cause: err}
	}
	return reviews, nil
}

// Delete removes a review request permanently.
func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return &NotFoundError{Resource: "review"}
		}
		return &UpstreamError{Message: "failed to delete review", Cause: err}
	}

	logger.Log.Info("Review request deleted", zap.String("reviewId", id.String()))
	return nil
}

// optional converts a trimmed string to a nullable column value.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

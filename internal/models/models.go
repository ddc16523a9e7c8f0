// Package models contains the data models and DTOs for the church website API.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewStatus represents the lifecycle state of a video review request.
type ReviewStatus string

// ReviewStatus constants define the possible states of a review request.
const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRevision ReviewStatus = "revision"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// IsValidDecision reports whether s is a status a reviewer may submit.
// Pending is the initial state only; it cannot be chosen as a decision.
func (s ReviewStatus) IsValidDecision() bool {
	switch s {
	case ReviewStatusApproved, ReviewStatusRevision, ReviewStatusRejected:
		return true
	}
	return false
}

// InquiryStatus represents the follow-up state of a newcomer inquiry.
type InquiryStatus string

// InquiryStatus constants define the possible states of an inquiry.
const (
	InquiryStatusNew       InquiryStatus = "new"
	InquiryStatusContacted InquiryStatus = "contacted"
	InquiryStatusResolved  InquiryStatus = "resolved"
)

// IsValid reports whether s is a known inquiry status.
func (s InquiryStatus) IsValid() bool {
	switch s {
	case InquiryStatusNew, InquiryStatusContacted, InquiryStatusResolved:
		return true
	}
	return false
}

// VideoReview represents a video review request shared with an anonymous
// reviewer through its review token.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type VideoReview struct {
	ID              uuid.UUID    `json:"id"`
	Title           string       `json:"title"`
	Description     *string      `json:"description"`
	YouTubeURL      string       `json:"youtube_url"`
	ReviewToken     string       `json:"review_token"`
	Status          ReviewStatus `json:"status"`
	ReviewerComment *string      `json:"reviewer_comment"`
	ReviewedAt      *time.Time   `json:"reviewed_at"`
	CreatedAt       time.Time    `json:"created_at"`
}

// PublicReview is the reviewer-facing projection of a VideoReview.
// The review token itself is never echoed back.
type PublicReview struct {
	ID              uuid.UUID    `json:"id"`
	Title           string       `json:"title"`
	Description     *string      `json:"description"`
	YouTubeURL      string       `json:"youtube_url"`
	Status          ReviewStatus `json:"status"`
	ReviewerComment *string      `json:"reviewer_comment"`
	ReviewedAt      *time.Time   `json:"reviewed_at"`
	CreatedAt       time.Time    `json:"created_at"`
}

// Public returns the reviewer-facing projection of r.
func (r *VideoReview) Public() *PublicReview {
	return &PublicReview{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		YouTubeURL:      r.YouTubeURL,
		Status:          r.Status,
		ReviewerComment: r.ReviewerComment,
		ReviewedAt:      r.ReviewedAt,
		CreatedAt:       r.CreatedAt,
	}
}

// Notice represents a church notice.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Notice struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	IsPinned  bool      `json:"is_pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sermon represents a recorded sermon with its YouTube link.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Sermon struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Preacher    string    `json:"preacher"`
	Scripture   *string   `json:"scripture"`
	YouTubeURL  string    `json:"youtube_url"`
	SermonDate  time.Time `json:"sermon_date"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Setting is a single key/value site setting.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewcomerInquiry represents a contact request submitted from the public site.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type NewcomerInquiry struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Phone     *string       `json:"phone"`
	Email     *string       `json:"email"`
	Message   *string       `json:"message"`
	Status    InquiryStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// ReviewDecidedEvent is published to the broker when a reviewer submits
// a decision, so the operator can be notified out-of-band.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ReviewDecidedEvent struct {
	ReviewID   uuid.UUID    `json:"review_id"`
	Title      string       `json:"title"`
	Status     ReviewStatus `json:"status"`
	ReviewedAt time.Time    `json:"reviewed_at"`
}

// ErrorResponse represents an error response.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/somang-church/website-api/internal/models"
	"github.com/somang-church/website-api/internal/service"
)

// ReviewHandler handles the video review workflow: admin management of
// review requests and the anonymous reviewer endpoints.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler instance.
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type createReviewRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	YouTubeURL  string `json:"youtube_url"`
}

type deleteReviewRequest struct {
	ID string `json:"id"`
}

type decisionRequest struct {
	Status          models.ReviewStatus `json:"status"`
	Comment string `json:"comment"`
}

// ListReviews handles GET /api/admin/reviews.
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviewService.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// CreateReview handles POST /api/admin/reviews. The response includes the
// review token the admin shares with the reviewer.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "Invalid request payload: "+err.Error())
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), req.Title, req.YouTubeURL, req.Description)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// DeleteReview handles DELETE /api/admin/reviews with the id in the body.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	var req deleteReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "id is required")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "id must be a valid UUID")
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetReview handles GET /api/review/:token for the anonymous reviewer page.
// The token itself is the only credential and is never echoed back.
func (h *ReviewHandler) GetReview(c *gin.Context) {
	review, err := h.reviewService.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, review.Public())
}

// SubmitDecision handles PATCH /api/review/:token.
func (h *ReviewHandler) SubmitDecision(c *gin.Context) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "Invalid request payload: "+err.Error())
		return
	}

	review, err := h.reviewService.SubmitDecision(c.Request.Context(), c.Param("token"), req.Status, req.Comment)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, review.Public())
}

package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/somang-church/website-api/internal/models"
	"github.com/somang-church/website-api/internal/repository"
	"github.com/somang-church/website-api/pkg/logger"
)

// NewcomerHandler handles newcomer inquiries: the public registration form
// and the admin follow-up workflow.
type NewcomerHandler struct {
	inquiryRepo repository.InquiryRepository
}

// NewNewcomerHandler creates a new NewcomerHandler instance.
func NewNewcomerHandler(inquiryRepo repository.InquiryRepository) *NewcomerHandler {
	return &NewcomerHandler{inquiryRepo: inquiryRepo}
}

type createInquiryRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type updateInquiryStatusRequest struct {
	ID     string               `json:"id"`
	Status models.InquiryStatus `json:"status"`
}

// CreateInquiry handles POST /api/newcomer from the public site.
func (h *NewcomerHandler) CreateInquiry(c *gin.Context) {
	var req createInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "Invalid request payload: "+err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "name is required")
		return
	}

	inquiry := &models.NewcomerInquiry{
		Name:    name,
		Phone:   optionalString(req.Phone),
		Email:   optionalString(req.Email),
		Message: optionalString(req.Message),
		Status:  models.InquiryStatusNew,
	}
	if err := h.inquiryRepo.Create(c.Request.Context(), inquiry); err != nil {
		handleError(c, err)
		return
	}

	logger.Log.Info("Newcomer inquiry received", zap.String("inquiryId", inquiry.ID.String()))
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// ListInquiries handles GET /api/admin/newcomer, newest first.
func (h *NewcomerHandler) ListInquiries(c *gin.Context) {
	inquiries, err := h.inquiryRepo.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

// UpdateInquiryStatus handles PUT /api/admin/newcomer.
func (h *NewcomerHandler) UpdateInquiryStatus(c *gin.Context) {
	var req updateInquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "id is required")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "id must be a valid UUID")
		return
	}

	if !req.Status.IsValid() {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "status must be one of new, contacted, resolved")
		return
	}

	inquiry, err := h.inquiryRepo.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, inquiry)
}

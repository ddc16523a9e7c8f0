package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/somang-church/website-api/internal/models"
	"github.com/somang-church/website-api/internal/repository"
)

const defaultNoticeAuthor = "Admin"

// NoticeHandler handles church notice CRUD and the public notice listing.
type NoticeHandler struct {
	noticeRepo repository.NoticeRepository
}

// NewNoticeHandler creates a new NoticeHandler instance.
func NewNoticeHandler(noticeRepo repository.NoticeRepository) *NoticeHandler {
	return &NoticeHandler{noticeRepo: noticeRepo}
}

type createNoticeRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	IsPinned bool   `json:"is_pinned"`
}

// updateNoticeRequest uses pointers so absent fields leave the stored
// values untouched.
type updateNoticeRequest struct {
	ID       string  `json:"id"`
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Author   *string `json:"author"`
	IsPinned *bool   `json:"is_pinned"`
}

type deleteByIDRequest struct {
	ID string `json:"id"`
}

// ListNotices handles GET /api/admin/notices, newest first.
func (h *NoticeHandler) ListNotices(c *gin.Context) {
	notices, err := h.noticeRepo.List(c.Request.Context(), false)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, notices)
}

// ListPublicNotices handles GET /api/notices, pinned notices first.
func (h *NoticeHandler) ListPublicNotices(c *gin.Context) {
	notices, err := h.noticeRepo.List(c.Request.Context(), true)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, notices)
}

// GetNotice handles GET /api/notices/:id.
func (h *NoticeHandler) GetNotice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "id must be a valid UUID")
		return
	}

	notice, err := h.noticeRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, notice)
}

// CreateNotice handles POST /api/admin/notices.
func (h *NoticeHandler) CreateNotice(c *gin.Context) {
	var req createNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "Invalid request payload: "+err.Error())
		return
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "title and content are required")
		return
	}

	author := strings.TrimSpace(req.Author)
	if author == "" {
		author = defaultNoticeAuthor
	}

	notice := &models.Notice{
		Title:    title,
		Content:  content,
		Author:   author,
		IsPinned: req.IsPinned,
	}
	if err := h.noticeRepo.Create(c.Request.Context(), notice); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, notice)
}

// UpdateNotice handles PUT /api/admin/notices. Only fields present in the
// body are changed.
func (h *NoticeHandler) UpdateNotice(c *gin.Context) {
	var req updateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "id is required")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "id must be a valid UUID")
		return
	}

	notice, err := h.noticeRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	if req.Title != nil {
		notice.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		notice.Content = strings.TrimSpace(*req.Content)
	}
	if req.Author != nil {
		notice.Author = strings.TrimSpace(*req.Author)
	}
	if req.IsPinned != nil {
		notice.IsPinned = *req.IsPinned
	}

	if notice.Title == "" || notice.Content == "" {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "title and content cannot be empty")
		return
	}

	if err := h.noticeRepo.Update(c.Request.Context(), notice); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, notice)
}

// DeleteNotice handles DELETE /api/admin/notices with the id in the body.
func (h *NoticeHandler) DeleteNotice(c *gin.Context) {
	var req deleteByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "id is required")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "id must be a valid UUID")
		return
	}

	if err := h.noticeRepo.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

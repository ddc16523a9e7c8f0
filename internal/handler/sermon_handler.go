package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/somang-church/website-api/internal/models"
	"github.com/somang-church/website-api/internal/repository"
	"github.com/somang-church/website-api/internal/youtube"
)

const sermonDateLayout = "2006-01-02"

// SermonHandler handles sermon archive CRUD and the public sermon listing.
type SermonHandler struct {
	sermonRepo repository.SermonRepository
}

// NewSermonHandler creates a new SermonHandler instance.
func NewSermonHandler(sermonRepo repository.SermonRepository) *SermonHandler {
	return &SermonHandler{sermonRepo: sermonRepo}
}

type createSermonRequest struct {
	Title       string `json:"title"`
	Preacher    string `json:"preacher"`
	Scripture   string `json:"scripture"`
	YouTubeURL  string `json:"youtube_url"`
	SermonDate  string `json:"sermon_date"`
	Description string `json:"description"`
}

type updateSermonRequest struct {
	ID          string  `json:"id"`
	Title       *string `json:"title"`
	Preacher    *string `json:"preacher"`
	Scripture   *string `json:"scripture"`
	YouTubeURL  *string `json:"youtube_url"`
	SermonDate  *string `json:"sermon_date"`
	Description *string `json:"description"`
}

// ListSermons handles GET /api/admin/sermons and GET /api/sermons,
// newest sermon date first.
func (h *SermonHandler) ListSermons(c *gin.Context) {
	sermons, err := h.sermonRepo.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sermons)
}

// CreateSermon handles POST /api/admin/sermons.
func (h *SermonHandler) CreateSermon(c *gin.Context) {
	var req createSermonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "Invalid request payload: "+err.Error())
		return
	}

	title := strings.TrimSpace(req.Title)
	preacher := strings.TrimSpace(req.Preacher)
	youtubeURL := strings.TrimSpace(req.YouTubeURL)
	if title == "" || preacher == "" || youtubeURL == "" {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "title, preacher and youtube_url are required")
		return
	}
	if !youtube.IsValidURL(youtubeURL) {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "youtube_url is not a recognizable YouTube video URL")
		return
	}

	sermonDate, err := time.Parse(sermonDateLayout, req.SermonDate)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "sermon_date must be formatted as YYYY-MM-DD")
		return
	}

	sermon := &models.Sermon{
		Title:       title,
		Preacher:    preacher,
		Scripture:   optionalString(req.Scripture),
		YouTubeURL:  youtubeURL,
		SermonDate:  sermonDate,
		Description: optionalString(req.Description),
	}
	if err := h.sermonRepo.Create(c.Request.Context(), sermon); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sermon)
}

// UpdateSermon handles PUT /api/admin/sermons. Only fields present in the
// body are changed.
func (h *SermonHandler) UpdateSermon(c *gin.Context) {
	var req updateSermonRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "id is required")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "id must be a valid UUID")
		return
	}

	sermon, err := h.sermonRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	if req.Title != nil {
		sermon.Title = strings.TrimSpace(*req.Title)
	}
	if req.Preacher != nil {
		sermon.Preacher = strings.TrimSpace(*req.Preacher)
	}
	if req.Scripture != nil {
		sermon.Scripture = optionalString(*req.Scripture)
	}
	if req.YouTubeURL != nil {
		sermon.YouTubeURL = strings.TrimSpace(*req.YouTubeURL)
	}
	if req.Description != nil {
		sermon.Description = optionalString(*req.Description)
	}
	if req.SermonDate != nil {
		sermonDate, err := time.Parse(sermonDateLayout, *req.SermonDate)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "Bad Request", "sermon_date must be formatted as YYYY-MM-DD")
			return
		}
		sermon.SermonDate = sermonDate
	}

	if sermon.Title == "" || sermon.Preacher == "" || sermon.YouTubeURL == "" {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "title, preacher and youtube_url cannot be empty")
		return
	}
	if !youtube.IsValidURL(sermon.YouTubeURL) {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "youtube_url is not a recognizable YouTube video URL")
		return
	}

	if err := h.sermonRepo.Update(c.Request.Context(), sermon); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, sermon)
}

// DeleteSermon handles DELETE /api/admin/sermons with the id in the body.
func (h *SermonHandler) DeleteSermon(c *gin.Context) {
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

	if err := h.sermonRepo.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

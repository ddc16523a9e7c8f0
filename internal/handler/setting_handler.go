package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/somang-church/website-api/internal/repository"
)

// SettingHandler handles the key/value site settings.
type SettingHandler struct {
	settingRepo repository.SettingRepository
}

// NewSettingHandler creates a new SettingHandler instance.
func NewSettingHandler(settingRepo repository.SettingRepository) *SettingHandler {
	return &SettingHandler{settingRepo: settingRepo}
}

type upsertSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ListSettings handles GET /api/admin/settings.
func (h *SettingHandler) ListSettings(c *gin.Context) {
	settings, err := h.settingRepo.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpsertSetting handles PUT /api/admin/settings, creating the key if it
// does not exist yet.
func (h *SettingHandler) UpsertSetting(c *gin.Context) {
	var req upsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "Invalid request payload: "+err.Error())
		return
	}

	key := strings.TrimSpace(req.Key)
	if key == "" {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "key is required")
		return
	}

	setting, err := h.settingRepo.Upsert(c.Request.Context(), key, req.Value)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, setting)
}

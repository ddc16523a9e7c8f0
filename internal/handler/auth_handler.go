package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/somang-church/website-api/internal/auth"
	"github.com/somang-church/website-api/pkg/logger"
)

// AuthHandler handles admin login and logout.
type AuthHandler struct {
	verifier     *auth.Verifier
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(verifier *auth.Verifier, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		verifier:     verifier,
		secureCookie: secureCookie,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/admin/auth. A correct password sets the admin
// session cookie; the response body never carries the token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "password is required")
		return
	}

	ok, err := h.verifier.CheckPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrNotConfigured) {
			logger.Log.Error("Admin login attempted without a configured password")
			errorResponse(c, http.StatusInternalServerError, "Internal Server Error", "admin authentication is not configured")
			return
		}
		handleError(c, err)
		return
	}
	if !ok {
		logger.Log.Warn("Admin login failed", zap.String("clientIp", c.ClientIP()))
		errorResponse(c, http.StatusUnauthorized, "Unauthorized", "invalid password")
		return
	}

	token, err := h.verifier.SessionToken()
	if err != nil {
		handleError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, auth.CookieMaxAge, "/", "", h.secureCookie, true)

	logger.Log.Info("Admin logged in", zap.String("clientIp", c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout handles DELETE /api/admin/auth by expiring the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

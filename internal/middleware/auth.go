// Package middleware provides gin middleware shared by the HTTP routes.
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/somang-church/website-api/internal/auth"
	"github.com/somang-church/website-api/internal/models"
	"github.com/somang-church/website-api/pkg/logger"
)

// AdminAuth rejects requests that do not carry a valid admin session cookie.
// Routes behind it can assume the caller has already proven the admin password.
func AdminAuth(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil || !verifier.VerifyToken(token) {
			logger.Log.Warn("Rejected unauthenticated admin request",
				zap.String("path", c.Request.URL.Path),
				zap.String("clientIp", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Status:    http.StatusUnauthorized,
				Error:     "Unauthorized",
				Message:   "Authentication required",
				Timestamp: time.Now(),
				Path:      c.Request.URL.Path,
			})
			return
		}

		c.Next()
	}
}

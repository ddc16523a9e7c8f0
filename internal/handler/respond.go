// Package handler provides HTTP request handlers for the application.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/somang-church/website-api/internal/db"
	"github.com/somang-church/website-api/internal/models"
	"github.com/somang-church/website-api/internal/service"
	"github.com/somang-church/website-api/pkg/logger"
)

func errorResponse(c *gin.Context, status int, errText, message string) {
	c.JSON(status, models.ErrorResponse{
		Status:    status,
		Error:     errText,
		Message:   message,
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
	})
}

// handleError maps service and database errors onto the API error taxonomy.
func handleError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *service.ValidationError:
		logger.Log.Warn("Validation error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		errorResponse(c, http.StatusBadRequest, "Bad Request", e.Message)
	case *service.NotFoundError:
		errorResponse(c, http.StatusNotFound, "Not Found", e.Error())
	case *service.UpstreamError:
		logger.Log.Error("Upstream error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		errorResponse(c, http.StatusInternalServerError, "Internal Server Error", e.Message)
	default:
		if db.IsNotFound(err) {
			errorResponse(c, http.StatusNotFound, "Not Found", "resource not found")
			return
		}
		logger.Log.Error("Unexpected error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		errorResponse(c, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
	}
}

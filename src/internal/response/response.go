// Package response writes the JSON envelopes shared by every handler.
package response

import (
	"errors"
	"net/http"

	"chatbot-svc/src/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func Success(c *gin.Context, statusCode int, data any, message string) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
		"message": message,
	})
}

func Error(c *gin.Context, statusCode int, title, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   title,
		"message": message,
	})
}

// BadRequest reports a request that failed binding or validation.
func BadRequest(c *gin.Context, err error) {
	logrus.WithError(err).Warn("Invalid request")
	Error(c, http.StatusBadRequest, "Invalid request", err.Error())
}

// FromError maps a service error onto its HTTP status.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		Error(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, models.ErrConflict):
		Error(c, http.StatusConflict, "Conflict", err.Error())
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Unhandled service error")
		Error(c, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred.")
	}
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/alimgiray/demography/internal/models"
	"github.com/alimgiray/demography/internal/query"
	"github.com/alimgiray/demography/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body of every failed HTTP request
type ErrorResponse struct {
	Error            string                  `json:"error"`
	Message          string                  `json:"message"`
	Status           int                     `json:"status"`
	Timestamp        time.Time               `json:"timestamp"`
	Path             string                  `json:"path"`
	ValidationErrors models.ValidationErrors `json:"validationErrors,omitempty"`
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		Status:    status,
		Timestamp: time.Now().UTC(),
		Path:      c.Request.URL.Path,
	})
}

// respondServiceError maps a service failure to its HTTP status. Anything
// unrecognised is logged and reported as 500 without leaking details.
func respondServiceError(c *gin.Context, operation string, err error) {
	var verrs models.ValidationErrors
	var valueErr *query.ValueError

	switch {
	case errors.As(err, &verrs):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:            http.StatusText(http.StatusUnprocessableEntity),
			Message:          "Validation failed",
			Status:           http.StatusUnprocessableEntity,
			Timestamp:        time.Now().UTC(),
			Path:             c.Request.URL.Path,
			ValidationErrors: verrs,
		})
	case errors.As(err, &valueErr):
		respondError(c, http.StatusBadRequest, valueErr.Error())
	case errors.Is(err, models.ErrPersonNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	default:
		logger.WithError(err).WithField("operation", operation).Error("Request failed")
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

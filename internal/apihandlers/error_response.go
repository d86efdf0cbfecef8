package apihandlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"hookhunter/internal/models"
)

// errorResponse is the body of every failed request:
// { "message": "Error fetching tweets", "error": "upstream request failed: ..." }
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// JSONError sends a structured error response.
func JSONError(c *gin.Context, status int, msg string, err error) {
	body := errorResponse{Message: msg}
	if err != nil {
		body.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, body)
}

func BadRequest(c *gin.Context, msg string, err error) {
	JSONError(c, http.StatusBadRequest, msg, err)
}

func Forbidden(c *gin.Context, msg string) {
	JSONError(c, http.StatusForbidden, msg, nil)
}

// RespondError maps a service error onto its HTTP status.
func RespondError(c *gin.Context, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	}

	entry := log.WithError(err).WithFields(log.Fields{
		"path":   c.FullPath(),
		"status": status,
	})
	if status >= http.StatusInternalServerError {
		entry.Error(msg)
	} else {
		entry.Debug(msg)
	}
	JSONError(c, status, msg, err)
}

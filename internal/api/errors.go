package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/familyllc/recipe-manager/backend/internal/apperr"
	"github.com/familyllc/recipe-manager/backend/internal/logger"
	"github.com/familyllc/recipe-manager/backend/internal/service"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields []apperr.FieldError `json:"fields,omitempty"`
}

// respondError writes err with the status its kind maps to. Server-side
// failures are logged and reported without detail.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	_ = c.Error(err)

	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Fields: verr.Fields})
	case apperr.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	default:
		log.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: "Internal Server Error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// pathID parses the :id parameter. A malformed id can name nothing, so it
// is reported as not found.
func pathID(c *gin.Context, log *logger.Logger, resource string) (uuid.UUID, bool) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(c, log, apperr.NotFound(resource, raw))
		return uuid.Nil, false
	}
	return id, true
}

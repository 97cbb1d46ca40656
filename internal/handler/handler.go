// Package handler holds the request helpers shared by the resource handlers.
package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/httputil"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

// Routes is implemented by every resource handler. Handlers register on a
// group that already requires a session; admin gates single routes.
type Routes interface {
	RegisterRoutes(r *gin.RouterGroup, admin gin.HandlerFunc)
}

// ParseID reads the :id path parameter. A malformed ID cannot name a stored
// record, so it is answered as NotFound for resource.
func ParseID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewNotFound(resource, err))
		return uuid.Nil, false
	}
	return id, true
}

// BindJSON decodes and validates the request body into obj. Unknown fields
// and invalid enum values are rejected with a 400.
func BindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	msg := validator.Message(err)
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		msg = "Request body is required"
	case errors.As(err, &tooLarge):
		msg = "Request body is too large"
	}
	httputil.RespondWithError(c, apperrors.NewValidation(msg, err))
	return false
}

// internal/handlers/common.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshpick/catalog-backend/internal/services"
	"github.com/freshpick/catalog-backend/internal/utils"
)

// respondServiceError maps the service error taxonomy onto status codes and
// the endpoint family's envelope. Category endpoints use the bare
// {error, details} shape, everything else wraps in {success: false, ...}.
func respondServiceError(c *gin.Context, err error, resource, fallback string, enveloped bool) {
	write := utils.ErrorJSON
	if !enveloped {
		write = utils.BareErrorJSON
	}

	var validationErr *services.ValidationError
	var idErr *services.InvalidIDError
	var notFoundErr *services.NotFoundError
	var conflictErr *services.ConflictError
	var upstreamErr *services.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		write(c, http.StatusBadRequest, validationErr.Message, nil)
	case errors.As(err, &idErr):
		write(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s ID format", resource), nil)
	case errors.As(err, &notFoundErr):
		write(c, http.StatusNotFound, notFoundErr.Resource+" not found", nil)
	case errors.As(err, &conflictErr):
		write(c, http.StatusConflict, conflictErr.Message, nil)
	case errors.As(err, &upstreamErr):
		write(c, http.StatusBadGateway, fallback, upstreamErr.Err.Error())
	default:
		write(c, http.StatusInternalServerError, fallback, err.Error())
	}
}

// Package server provides the HTTP REST API for the resume parser.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/rendering"
	"github.com/jonathan/resume-parser/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a stored resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrStoreUnavailable indicates an endpoint needs storage but none is configured
type ErrStoreUnavailable struct{}

func (e *ErrStoreUnavailable) Error() string {
	return "storage is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Wrapped errors are matched, so pipeline and renderer errors keep their status.
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		notFoundErr    *ErrNotFound
		storeErr       *ErrStoreUnavailable
		unsupportedErr *ingestion.UnsupportedFileTypeError
		extractionErr  *ingestion.ExtractionError
		templateErr    *rendering.TemplateError
		renderErr      *rendering.RenderError
		schemaErr      *schemas.ValidationError
		tooLargeErr    *http.MaxBytesError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &schemaErr), errors.As(err, &templateErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupportedErr):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extractionErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &storeErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &renderErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

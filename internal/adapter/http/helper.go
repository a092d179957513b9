package http

import (
	"errors"
	"net/http"
	"strings"

	domainAnnotation "proofreview-service/internal/domain/annotation"
	domainProof "proofreview-service/internal/domain/proof"
	"proofreview-service/internal/usecase/signoff"

	"github.com/labstack/echo/v4"
)

// writeDomainError maps the error taxonomy onto HTTP statuses. Failures
// are surfaced whole; nothing is silently swallowed.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domainProof.ErrNotFound), errors.Is(err, domainAnnotation.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domainProof.ErrGone):
		return c.JSON(http.StatusGone, ErrorResponse{Error: "proof withdrawn or expired"})
	case errors.Is(err, domainProof.ErrAlreadyApproved):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "proof already approved"})
	case errors.Is(err, domainProof.ErrForbidden), errors.Is(err, domainAnnotation.ErrResolved):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainAnnotation.ErrValidation), errors.Is(err, signoff.ErrInvalidInput):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

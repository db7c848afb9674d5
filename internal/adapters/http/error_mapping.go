package httpadapter

import (
	"net/http"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput), domain.IsKind(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrEmptyExtractedText), domain.IsKind(err, domain.ErrNoValidText):
		return http.StatusUnprocessableEntity
	case domain.IsKind(err, domain.ErrJobNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrConfiguration     = errors.New("configuration error")
	ErrInvocation        = errors.New("completion service error")
	ErrMalformedResponse = errors.New("malformed completion response")
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
)

// Wrap tags err with marker and a readable operation context. Both marker and
// err stay reachable through errors.Is.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrInvocation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// HTTPStatus maps a tagged error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvocation), errors.Is(err, ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "failure"
	}
	return strings.Join(parts, ": ")
}

package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/getmentor/mentorship-portal/pkg/errors"
)

// APIError is a non-2xx answer from the mentorship backend
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// Unwrap maps the status onto the application sentinels
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return apperrors.ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return apperrors.ErrAccessDenied
	case e.Status == http.StatusNotFound:
		return apperrors.ErrNotFound
	case e.Status == http.StatusConflict:
		return apperrors.ErrConflict
	case e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity:
		return apperrors.ErrInvalidInput
	case e.Status >= 500:
		return apperrors.ErrUnavailable
	default:
		return apperrors.ErrInternal
	}
}

// maxErrorBody bounds how much of an error body is read
const maxErrorBody = 64 * 1024

// decodeAPIError extracts the structured message from an error response.
// Backends answer with {"message": ...} or {"error": ...}; anything else yields no message.
func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if json.Unmarshal(body, &payload) != nil {
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(payload.Message)
	if apiErr.Message == "" {
		if msg, ok := payload.Error.(string); ok {
			apiErr.Message = strings.TrimSpace(msg)
		}
	}
	return apiErr
}

// Message returns the server-provided message carried by err, if any
func Message(err error) string {
	var apiErr *APIError
	if apperrors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/getmentor/mentorship-portal/internal/backend"
	apperrors "github.com/getmentor/mentorship-portal/pkg/errors"
	"github.com/gin-gonic/gin"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// statusFor maps an application error onto the HTTP status reported to JSON clients
func statusFor(err error) int {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case apperrors.Is(err, apperrors.ErrAccessDenied):
		return http.StatusForbidden
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case apperrors.Is(err, apperrors.ErrUnavailable),
		apperrors.Is(err, apperrors.ErrInternal),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// messageFor prefers the backend's message and falls back to a generic one per status
func messageFor(err error, status int) string {
	if msg := backend.Message(err); msg != "" {
		return msg
	}
	switch status {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusBadGateway:
		return "Mentorship service is unavailable"
	default:
		return http.StatusText(status)
	}
}

// respondFailure reports err to the client in its negotiated format
func respondFailure(c *gin.Context, err error) {
	status := statusFor(err)
	message := messageFor(err, status)

	if wantsJSON(c) {
		respondError(c, status, message, err)
		return
	}

	attachError(c, err)
	c.HTML(status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
}

package views

import (
	"context"
	"errors"

	"github.com/getmentor/mentorship-portal/internal/backend"
	"github.com/getmentor/mentorship-portal/pkg/logger"
	"github.com/getmentor/mentorship-portal/pkg/metrics"
	"go.uber.org/zap"
)

// NoticeLevel of a blocking notification
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a one-shot blocking notification shown on the next render
type Notice struct {
	Level NoticeLevel `json:"level"`
	Text  string      `json:"text"`
}

const timeoutMessage = "The request timed out. Please try again."

// errorMessage maps any failure to display text: the server message when the
// backend sent one, otherwise fallback
func errorMessage(err error, fallback string) string {
	if msg := backend.Message(err); msg != "" {
		return msg
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutMessage
	}
	return fallback
}

// recordFetch logs and counts the outcome of a view fetch
func recordFetch(view string, err error) {
	if err != nil {
		metrics.ViewFetches.WithLabelValues(view, "error").Inc()
		logger.Warn("View fetch failed", zap.String("view", view), zap.Error(err))
		return
	}
	metrics.ViewFetches.WithLabelValues(view, "ok").Inc()
}

func recordSuperseded(view string) {
	metrics.ViewFetches.WithLabelValues(view, "superseded").Inc()
	logger.Debug("Dropped superseded view fetch", zap.String("view", view))
}

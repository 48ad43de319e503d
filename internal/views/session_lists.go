package views

import (
	"context"
	"unicode"
	"unicode/utf8"

	"github.com/getmentor/mentorship-portal/internal/models"
	apperrors "github.com/getmentor/mentorship-portal/pkg/errors"
)

const (
	EmptyPendingText = "No pending sessions"
	EmptyHistoryText = "No sessions in history"
)

// ActionHandler receives the actions a sub-view emits. The parent performs the
// backend call and owns every refetch.
type ActionHandler func(ctx context.Context, sessionID string, action SessionAction) error

// PendingSessionsView renders an injected list of pending sessions with
// accept and reject buttons. It never talks to the backend itself.
type PendingSessionsView struct {
	sessions []models.Session
	onAction ActionHandler
}

func NewPendingSessionsView(sessions []models.Session, onAction ActionHandler) *PendingSessionsView {
	return &PendingSessionsView{sessions: sessions, onAction: onAction}
}

func (p *PendingSessionsView) Accept(ctx context.Context, sessionID string) error {
	return p.emit(ctx, sessionID, ActionAccept)
}

func (p *PendingSessionsView) Reject(ctx context.Context, sessionID string) error {
	return p.emit(ctx, sessionID, ActionReject)
}

func (p *PendingSessionsView) emit(ctx context.Context, sessionID string, action SessionAction) error {
	found := false
	for _, s := range p.sessions {
		if s.ID == sessionID {
			found = true
			break
		}
	}
	if !found {
		return apperrors.NotFoundError("pending session " + sessionID)
	}
	if p.onAction == nil {
		return nil
	}
	return p.onAction(ctx, sessionID, action)
}

type PendingSnapshot struct {
	Empty     bool             `json:"empty"`
	EmptyText string           `json:"emptyText,omitempty"`
	Sessions  []models.Session `json:"sessions"`
}

func (p *PendingSessionsView) Snapshot() PendingSnapshot {
	if len(p.sessions) == 0 {
		return PendingSnapshot{Empty: true, EmptyText: EmptyPendingText, Sessions: []models.Session{}}
	}
	return PendingSnapshot{Sessions: p.sessions}
}

// HistoryItem is a past session with its presentation label. Final marks
// sessions no action can change anymore.
type HistoryItem struct {
	models.Session
	StatusLabel string `json:"statusLabel"`
	StatusColor string `json:"statusColor"`
	Final       bool   `json:"final"`
}

type HistorySnapshot struct {
	Empty     bool          `json:"empty"`
	EmptyText string        `json:"emptyText,omitempty"`
	Items     []HistoryItem `json:"items"`
}

// SessionHistoryView renders past sessions read-only
type SessionHistoryView struct {
	sessions []models.Session
}

func NewSessionHistoryView(sessions []models.Session) *SessionHistoryView {
	return &SessionHistoryView{sessions: sessions}
}

func (h *SessionHistoryView) Snapshot() HistorySnapshot {
	if len(h.sessions) == 0 {
		return HistorySnapshot{Empty: true, EmptyText: EmptyHistoryText, Items: []HistoryItem{}}
	}

	items := make([]HistoryItem, 0, len(h.sessions))
	for _, s := range h.sessions {
		items = append(items, HistoryItem{
			Session:     s,
			StatusLabel: StatusLabel(s.Status),
			StatusColor: StatusColor(s.Status),
			Final:       s.Status.IsTerminal(),
		})
	}
	return HistorySnapshot{Items: items}
}

// StatusLabel capitalizes a status for display
func StatusLabel(status models.SessionStatus) string {
	if status == "" {
		return "Unknown"
	}
	first, size := utf8.DecodeRuneInString(string(status))
	return string(unicode.ToUpper(first)) + string(status)[size:]
}

// StatusColor returns the badge colour class of a status
func StatusColor(status models.SessionStatus) string {
	switch status {
	case models.SessionCompleted:
		return "green"
	case models.SessionRejected:
		return "red"
	case models.SessionAccepted:
		return "blue"
	case models.SessionPending:
		return "yellow"
	default:
		return "gray"
	}
}

package models

import "time"

// SessionStatus is owned by the backend; the portal only requests transitions
type SessionStatus string

const (
	SessionPending   SessionStatus = "pending"
	SessionAccepted  SessionStatus = "accepted"
	SessionRejected  SessionStatus = "rejected"
	SessionCompleted SessionStatus = "completed"
)

// IsTerminal returns true if no further transitions are possible
func (s SessionStatus) IsTerminal() bool {
	return s == SessionRejected || s == SessionCompleted
}

// CanTransitionTo reports whether next is a forward step of the booking lifecycle:
// pending → accepted | rejected, accepted → completed
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	switch s {
	case SessionPending:
		return next == SessionAccepted || next == SessionRejected
	case SessionAccepted:
		return next == SessionCompleted
	default:
		return false
	}
}

// Participant is the mentor or mentee on the other side of a session
type Participant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Session is a booked mentorship session
type Session struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	ScheduledAt     time.Time     `json:"scheduledAt"`
	DurationMinutes int           `json:"duration"`
	Status          SessionStatus `json:"status"`
	RoomID          string        `json:"roomId,omitempty"`
	Counterpart     Participant   `json:"counterpart"`
}

// UpdateSessionStatusRequest is the payload sent to the backend status endpoint
type UpdateSessionStatusRequest struct {
	Status SessionStatus `json:"status"`
}

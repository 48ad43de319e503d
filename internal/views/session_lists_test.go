package views

import (
	"context"
	"testing"

	"github.com/getmentor/mentorship-portal/internal/models"
	apperrors "github.com/getmentor/mentorship-portal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingSessionsView_EmptyState(t *testing.T) {
	for name, sessions := range map[string][]models.Session{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			snap := NewPendingSessionsView(sessions, nil).Snapshot()
			assert.True(t, snap.Empty)
			assert.Equal(t, "No pending sessions", snap.EmptyText)
			assert.Empty(t, snap.Sessions)
		})
	}
}

func TestSessionHistoryView_EmptyState(t *testing.T) {
	for name, sessions := range map[string][]models.Session{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			snap := NewSessionHistoryView(sessions).Snapshot()
			assert.True(t, snap.Empty)
			assert.Equal(t, "No sessions in history", snap.EmptyText)
			assert.Empty(t, snap.Items)
		})
	}
}

func TestPendingSessionsView_EmitsToParent(t *testing.T) {
	type event struct {
		id     string
		action SessionAction
	}
	var got []event
	view := NewPendingSessionsView([]models.Session{pendingSession("s1")}, func(ctx context.Context, id string, action SessionAction) error {
		got = append(got, event{id, action})
		return nil
	})

	require.NoError(t, view.Accept(context.Background(), "s1"))
	require.NoError(t, view.Reject(context.Background(), "s1"))
	assert.Equal(t, []event{{"s1", ActionAccept}, {"s1", ActionReject}}, got)

	err := view.Accept(context.Background(), "other")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Len(t, got, 2)
}

func TestSessionHistoryView_StatusLabels(t *testing.T) {
	sessions := []models.Session{
		{ID: "1", Status: models.SessionCompleted},
		{ID: "2", Status: models.SessionRejected},
		{ID: "3", Status: models.SessionAccepted},
		{ID: "4", Status: models.SessionPending},
		{ID: "5", Status: models.SessionStatus("cancelled")},
	}

	snap := NewSessionHistoryView(sessions).Snapshot()
	require.False(t, snap.Empty)
	require.Len(t, snap.Items, 5)

	labels := make([]string, 0, len(snap.Items))
	colors := make([]string, 0, len(snap.Items))
	final := make([]bool, 0, len(snap.Items))
	for _, item := range snap.Items {
		labels = append(labels, item.StatusLabel)
		colors = append(colors, item.StatusColor)
		final = append(final, item.Final)
	}
	assert.Equal(t, []string{"Completed", "Rejected", "Accepted", "Pending", "Cancelled"}, labels)
	assert.Equal(t, []string{"green", "red", "blue", "yellow", "gray"}, colors)
	assert.Equal(t, []bool{true, true, false, false, false}, final)
}

func TestStatusLabel_MultiByteFirstLetter(t *testing.T) {
	assert.Equal(t, "Émis", StatusLabel(models.SessionStatus("émis")))
	assert.Equal(t, "Ükd", StatusLabel(models.SessionStatus("ükd")))
	assert.Equal(t, "Unknown", StatusLabel(""))
	assert.Equal(t, "Accepted", StatusLabel(models.SessionAccepted))
}

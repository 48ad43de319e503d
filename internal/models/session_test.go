package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from SessionStatus
		to   SessionStatus
		want bool
	}{
		{SessionPending, SessionAccepted, true},
		{SessionPending, SessionRejected, true},
		{SessionPending, SessionCompleted, false},
		{SessionAccepted, SessionCompleted, true},
		{SessionAccepted, SessionPending, false},
		{SessionAccepted, SessionRejected, false},
		{SessionRejected, SessionAccepted, false},
		{SessionCompleted, SessionAccepted, false},
		{SessionStatus("unknown"), SessionAccepted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSessionStatus_IsTerminal(t *testing.T) {
	assert.True(t, SessionRejected.IsTerminal())
	assert.True(t, SessionCompleted.IsTerminal())
	assert.False(t, SessionPending.IsTerminal())
	assert.False(t, SessionAccepted.IsTerminal())
}

func TestProfile_NormalizeKeepsEveryKey(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ada"}`), &p))

	out, err := json.Marshal(p.Normalize())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, []any{}, decoded["expertise"])
	assert.Equal(t, []any{}, decoded["interests"])
	assert.Equal(t, map[string]any{
		"linkedin": "",
		"github":   "",
		"twitter":  "",
		"website":  "",
	}, decoded["socialLinks"])
}

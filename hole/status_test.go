package hole

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusRunning, StatusPaused, true},
		{StatusRunning, StatusWon, true},
		{StatusRunning, StatusLost, true},
		{StatusPaused, StatusRunning, true},
		{StatusPaused, StatusWon, false},
		{StatusPaused, StatusLost, false},
		{StatusWon, StatusRunning, true},
		{StatusWon, StatusPaused, false},
		{StatusWon, StatusLost, false},
		{StatusLost, StatusRunning, true},
		{StatusLost, StatusWon, false},
		{StatusRunning, StatusRunning, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))

			session := Session{Status: tt.from}
			err := session.transition(tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, session.Status)
			} else {
				assert.ErrorIs(t, err, ErrIllegalTransition)
				assert.Equal(t, tt.from, session.Status)
			}
		})
	}
}

func TestTogglePause(t *testing.T) {
	session := Session{Status: StatusRunning}

	require.NoError(t, session.TogglePause())
	assert.Equal(t, StatusPaused, session.Status)

	require.NoError(t, session.TogglePause())
	assert.Equal(t, StatusRunning, session.Status)

	session.Status = StatusLost
	assert.ErrorIs(t, session.TogglePause(), ErrIllegalTransition)
	assert.Equal(t, StatusLost, session.Status)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Running", StatusRunning.String())
	assert.Equal(t, "Lost", StatusLost.String())
	assert.Equal(t, "Status(9)", Status(9).String())
	assert.True(t, StatusWon.Terminal())
	assert.False(t, StatusPaused.Terminal())
}

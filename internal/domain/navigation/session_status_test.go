package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStatus_ValidTransitions(t *testing.T) {
	cases := []struct {
		from    SessionStatus
		to      SessionStatus
		allowed bool
	}{
		{StatusWaitingForLocation, StatusActive, true},
		{StatusWaitingForLocation, StatusStopped, true},
		{StatusWaitingForLocation, StatusArrived, false},
		{StatusActive, StatusArrived, true},
		{StatusActive, StatusStopped, true},
		{StatusActive, StatusWaitingForLocation, false},
		{StatusArrived, StatusStopped, true},
		{StatusArrived, StatusActive, false},
		{StatusStopped, StatusActive, false},
		{StatusStopped, StatusWaitingForLocation, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestSessionStatus_IsValid(t *testing.T) {
	assert.True(t, StatusWaitingForLocation.IsValid())
	assert.True(t, StatusActive.IsValid())
	assert.True(t, StatusArrived.IsValid())
	assert.True(t, StatusStopped.IsValid())
	assert.False(t, SessionStatus("paused").IsValid())
	assert.False(t, SessionStatus(StatusNoSession).IsValid())
}

func TestSessionStatus_IsFinished(t *testing.T) {
	assert.False(t, StatusWaitingForLocation.IsFinished())
	assert.False(t, StatusActive.IsFinished())
	assert.True(t, StatusArrived.IsFinished())
	assert.True(t, StatusStopped.IsFinished())
}

func TestParseSessionStatus(t *testing.T) {
	status, err := ParseSessionStatus("Active")
	assert.NoError(t, err)
	assert.Equal(t, StatusActive, status)

	_, err = ParseSessionStatus("cruising")
	assert.Error(t, err)
}

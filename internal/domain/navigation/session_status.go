package navigation

import "fmt"

// SessionStatus represents the current state of a navigation session in its
// lifecycle.
type SessionStatus string

const (
	StatusWaitingForLocation SessionStatus = "WaitingForLocation"
	StatusActive             SessionStatus = "Active"
	StatusArrived            SessionStatus = "Arrived"
	StatusStopped            SessionStatus = "Stopped"
)

// StatusNoSession is the snapshot status reported when no session exists.
// It is not a session state and never appears in validTransitions.
const StatusNoSession = "no_session"

// validTransitions defines the state machine for session status transitions.
// Transitions are forward-only; no path returns to an earlier state.
var validTransitions = map[SessionStatus][]SessionStatus{
	StatusWaitingForLocation: {StatusActive, StatusStopped},
	StatusActive:             {StatusArrived, StatusStopped},
	StatusArrived:            {StatusStopped},
	StatusStopped:            {},
}

// IsValid returns true if the status is a recognized session status.
func (s SessionStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target
// is allowed.
func (s SessionStatus) CanTransitionTo(target SessionStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsFinished returns true once navigation is over, whether by arrival or by
// an explicit stop.
func (s SessionStatus) IsFinished() bool {
	return s == StatusArrived || s == StatusStopped
}

// String returns the string representation of the status.
func (s SessionStatus) String() string {
	return string(s)
}

// ParseSessionStatus converts a string to a SessionStatus, returning an error
// if invalid.
func ParseSessionStatus(s string) (SessionStatus, error) {
	status := SessionStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid session status: %s", s)
	}
	return status, nil
}

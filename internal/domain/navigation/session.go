package navigation

import (
	"time"

	"github.com/google/uuid"
)

// Session is the aggregate root for one turn-by-turn navigation journey. At
// most one live session exists per process; the application layer owns that
// invariant and all mutation goes through it.
type Session struct {
	id               uuid.UUID
	destination      string
	status           SessionStatus
	route            *Route
	currentStepIndex int
	origin           *Coordinate
	createdAt        time.Time
	lastUpdateAt     time.Time
}

// NewSession creates a session in WaitingForLocation for the given free-text
// destination.
func NewSession(destination string) (*Session, error) {
	if destination == "" {
		return nil, NewValidationError("destination is required")
	}
	now := time.Now().UTC()
	return &Session{
		id:           uuid.New(),
		destination:  destination,
		status:       StatusWaitingForLocation,
		createdAt:    now,
		lastUpdateAt: now,
	}, nil
}

// --- Getters ---

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Destination returns the free-text destination. Immutable after creation.
func (s *Session) Destination() string { return s.destination }

// Status returns the current session status.
func (s *Session) Status() SessionStatus { return s.status }

// Route returns the computed route, or nil before the first fix.
func (s *Session) Route() *Route { return s.route }

// CurrentStepIndex returns the index of the next step to trigger.
func (s *Session) CurrentStepIndex() int { return s.currentStepIndex }

// Origin returns the first location fix and true, or false before it arrives.
func (s *Session) Origin() (Coordinate, bool) {
	if s.origin == nil {
		return Coordinate{}, false
	}
	return *s.origin, true
}

// CreatedAt returns the creation timestamp.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// LastUpdateAt returns the time of the most recent location fix.
func (s *Session) LastUpdateAt() time.Time { return s.lastUpdateAt }

// --- Behavior ---

// Touch refreshes lastUpdateAt. Called on every incoming fix.
func (s *Session) Touch() {
	s.lastUpdateAt = time.Now().UTC()
}

// BeginRoute stores the computed route and origin and activates the session.
// The route is set exactly once; a second call is an invalid transition.
func (s *Session) BeginRoute(route *Route, origin Coordinate) error {
	if !s.status.CanTransitionTo(StatusActive) {
		return NewInvalidStateError(string(s.status), string(StatusActive))
	}
	if route == nil {
		return NewValidationError("route is required")
	}
	o := origin
	s.route = route
	s.origin = &o
	s.currentStepIndex = 0
	s.status = StatusActive
	return nil
}

// AdvanceStep moves to the next step after a proximity trigger. The index
// never exceeds the step count.
func (s *Session) AdvanceStep() error {
	if s.status != StatusActive {
		return NewInvalidStateError(string(s.status), string(StatusActive))
	}
	if s.currentStepIndex >= s.route.StepCount() {
		return NewValidationError("no steps left to advance")
	}
	s.currentStepIndex++
	return nil
}

// StepsExhausted reports whether every step has been triggered.
func (s *Session) StepsExhausted() bool {
	return s.route != nil && s.currentStepIndex >= s.route.StepCount()
}

// Arrive transitions the session from Active to Arrived.
func (s *Session) Arrive() error {
	if !s.status.CanTransitionTo(StatusArrived) {
		return NewInvalidStateError(string(s.status), string(StatusArrived))
	}
	s.status = StatusArrived
	return nil
}

// Stop transitions the session to Stopped from any earlier state. Stopping an
// already stopped session is a no-op.
func (s *Session) Stop() {
	if s.status == StatusStopped {
		return
	}
	s.status = StatusStopped
}

// Expired reports whether the session has gone without a fix for longer than
// maxIdle.
func (s *Session) Expired(maxIdle time.Duration, now time.Time) bool {
	return now.Sub(s.lastUpdateAt) > maxIdle
}

package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sage-glasses/service-navigation/internal/domain/navigation"
	"github.com/sage-glasses/service-navigation/internal/geo"
)

// Event types published on the navigation events topic.
const (
	EventNavigationStarted     = "navigation.started"
	EventNavigationInstruction = "navigation.instruction"
	EventNavigationArrived     = "navigation.arrived"
	EventNavigationStopped     = "navigation.stopped"
	EventNavigationFailed      = "navigation.failed"
)

// RouteProvider resolves a destination and origin into a walking route.
type RouteProvider interface {
	Route(ctx context.Context, origin navigation.Coordinate, destination string) (*navigation.Route, error)
}

// EventPublisher publishes navigation lifecycle events for downstream
// consumers (TTS, display). Implementations must not block on failure;
// publish errors are logged, never propagated.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, data interface{})
}

// NopEventPublisher discards all events. Used when the event bus is disabled.
type NopEventPublisher struct{}

// Publish discards the event.
func (NopEventPublisher) Publish(context.Context, string, string, interface{}) {}

// SessionHandle is returned from StartNavigation for caller correlation.
type SessionHandle struct {
	SessionID   uuid.UUID `json:"session_id"`
	Destination string    `json:"destination"`
	Replaced    bool      `json:"replaced"`
	CreatedAt   time.Time `json:"created_at"`
}

// InstructionEvent is the payload handed to the transport layer after a
// location fix: either something to speak, a silent distance update, or a
// speakable error.
type InstructionEvent struct {
	Instruction           string  `json:"instruction,omitempty"`
	ShouldSpeak           bool    `json:"shouldSpeak"`
	DistanceToNext        float64 `json:"distanceToNext"`
	Status                string  `json:"status"`
	DistanceToDestination float64 `json:"distanceToDestination,omitempty"`
	ETA                   string  `json:"eta,omitempty"`
	Error                 string  `json:"error,omitempty"`
}

// SessionStatusDTO is the read-only diagnostic snapshot of the session.
type SessionStatusDTO struct {
	Status              string  `json:"status"`
	SessionID           string  `json:"sessionId,omitempty"`
	Destination         string  `json:"destination,omitempty"`
	CurrentStep         int     `json:"currentStep"`
	TotalSteps          int     `json:"totalSteps"`
	ElapsedSeconds      float64 `json:"elapsedSeconds"`
	SecondsSinceLastFix float64 `json:"secondsSinceLastFix"`
}

// arrivedPayload is published when the session reaches its destination.
type arrivedPayload struct {
	SessionID   uuid.UUID `json:"session_id"`
	Destination string    `json:"destination"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// stoppedPayload is published when a session ends without arriving.
type stoppedPayload struct {
	SessionID   uuid.UUID `json:"session_id"`
	Destination string    `json:"destination"`
	Reason      string    `json:"reason"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// failedPayload is published when route computation fails.
type failedPayload struct {
	SessionID   uuid.UUID `json:"session_id"`
	Destination string    `json:"destination"`
	ErrorCode   string    `json:"error_code"`
	Message     string    `json:"message"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NavigationService owns the single live navigation session and orchestrates
// its lifecycle: start, first-fix route computation, per-fix step advancement,
// stop and expiry. StartNavigation, UpdateLocation and StopNavigation are
// serialized on an internal mutex; the provider and the proximity math are
// stateless and shared freely.
type NavigationService struct {
	mu      sync.Mutex
	session *navigation.Session

	provider        RouteProvider
	publisher       EventPublisher
	logger          *zap.Logger
	proximityMeters float64
}

// NewNavigationService creates a NavigationService. proximityMeters is the
// distance at which an upcoming step triggers; pass 0 for the 50 m default.
func NewNavigationService(
	provider RouteProvider,
	publisher EventPublisher,
	logger *zap.Logger,
	proximityMeters float64,
) *NavigationService {
	if proximityMeters <= 0 {
		proximityMeters = 50
	}
	if publisher == nil {
		publisher = NopEventPublisher{}
	}
	return &NavigationService{
		provider:        provider,
		publisher:       publisher,
		logger:          logger,
		proximityMeters: proximityMeters,
	}
}

// StartNavigation creates a new session in WaitingForLocation for the given
// destination. Any existing session is stopped and discarded first; the
// returned handle reports whether that happened.
func (s *NavigationService) StartNavigation(ctx context.Context, destination string) (*SessionHandle, error) {
	sess, err := navigation.NewSession(destination)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	replaced := s.stopLocked()
	s.session = sess
	s.mu.Unlock()

	if replaced != nil {
		s.logger.Info("navigation session superseded",
			zap.String("old_session_id", replaced.ID().String()),
			zap.String("old_destination", replaced.Destination()),
		)
		s.publishStopped(ctx, replaced, "superseded")
	}

	handle := &SessionHandle{
		SessionID:   sess.ID(),
		Destination: sess.Destination(),
		Replaced:    replaced != nil,
		CreatedAt:   sess.CreatedAt(),
	}

	s.logger.Info("navigation session started",
		zap.String("session_id", sess.ID().String()),
		zap.String("destination", destination),
		zap.Bool("replaced", handle.Replaced),
	)
	s.publisher.Publish(ctx, EventNavigationStarted, sess.ID().String(), handle)

	return handle, nil
}

// UpdateLocation is the single entry point for device GPS fixes. It returns
// nil when there is nothing to say or show: no session, or a session that
// already finished. Route-computation failures come back as an event with a
// speakable Error and stop the session; the method never returns a raw fault.
func (s *NavigationService) UpdateLocation(ctx context.Context, lat, lon float64) *InstructionEvent {
	fix := navigation.Coordinate{Latitude: lat, Longitude: lon}

	s.mu.Lock()
	sess := s.session
	if sess == nil {
		s.mu.Unlock()
		return nil
	}
	sess.Touch()

	switch sess.Status() {
	case navigation.StatusWaitingForLocation:
		return s.computeRouteLocked(ctx, sess, fix)
	case navigation.StatusActive:
		return s.advanceLocked(ctx, sess, fix)
	default:
		s.mu.Unlock()
		return nil
	}
}

// computeRouteLocked handles the session's first fix. Called with the lock
// held; the blocking provider call happens with the lock released, and the
// result is swapped in only if the same session is still waiting.
func (s *NavigationService) computeRouteLocked(ctx context.Context, sess *navigation.Session, fix navigation.Coordinate) *InstructionEvent {
	if !fix.Valid() {
		s.stopLocked()
		s.mu.Unlock()
		err := navigation.NewInvalidCoordinatesError(fix.Latitude, fix.Longitude)
		s.publishFailed(ctx, sess, err)
		return &InstructionEvent{
			Status: navigation.StatusStopped.String(),
			Error:  err.Message,
		}
	}

	id := sess.ID()
	destination := sess.Destination()
	s.mu.Unlock()

	route, err := s.provider.Route(ctx, fix, destination)

	s.mu.Lock()
	if s.session == nil || s.session.ID() != id || s.session.Status() != navigation.StatusWaitingForLocation {
		// Superseded or stopped while the route was being computed.
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		s.stopLocked()
		s.mu.Unlock()
		s.logger.Warn("route computation failed, stopping session",
			zap.String("session_id", id.String()),
			zap.String("destination", destination),
			zap.Error(err),
		)
		s.publishFailed(ctx, sess, err)
		return &InstructionEvent{
			Status: navigation.StatusStopped.String(),
			Error:  speakableMessage(err),
		}
	}

	if err := s.session.BeginRoute(route, fix); err != nil {
		s.stopLocked()
		s.mu.Unlock()
		s.publishFailed(ctx, sess, err)
		return &InstructionEvent{
			Status: navigation.StatusStopped.String(),
			Error:  speakableMessage(err),
		}
	}
	s.mu.Unlock()

	first, _ := route.StepAt(0)
	evt := &InstructionEvent{
		Instruction:           first.Instruction(),
		ShouldSpeak:           true,
		DistanceToNext:        first.DistanceMeters(),
		Status:                navigation.StatusActive.String(),
		DistanceToDestination: route.TotalDistanceMeters(),
		ETA:                   route.ETA(),
	}

	s.logger.Info("navigation active",
		zap.String("session_id", id.String()),
		zap.String("destination", destination),
		zap.Int("steps", route.StepCount()),
		zap.String("eta", route.ETA()),
	)
	s.publisher.Publish(ctx, EventNavigationInstruction, id.String(), evt)
	return evt
}

// advanceLocked handles a fix for an active session. Called with the lock
// held; it releases the lock before returning.
func (s *NavigationService) advanceLocked(ctx context.Context, sess *navigation.Session, fix navigation.Coordinate) *InstructionEvent {
	if sess.StepsExhausted() {
		_ = sess.Arrive()
		s.session = nil
		s.mu.Unlock()

		evt := &InstructionEvent{
			Instruction:    "You have arrived at " + sess.Destination(),
			ShouldSpeak:    true,
			DistanceToNext: 0,
			Status:         navigation.StatusArrived.String(),
		}
		s.logger.Info("navigation arrived",
			zap.String("session_id", sess.ID().String()),
			zap.String("destination", sess.Destination()),
		)
		s.publisher.Publish(ctx, EventNavigationArrived, sess.ID().String(), arrivedPayload{
			SessionID:   sess.ID(),
			Destination: sess.Destination(),
			OccurredAt:  time.Now().UTC(),
		})
		return evt
	}

	step, _ := sess.Route().StepAt(sess.CurrentStepIndex())

	if !fix.Valid() {
		s.mu.Unlock()
		err := navigation.NewInvalidCoordinatesError(fix.Latitude, fix.Longitude)
		return &InstructionEvent{
			Status: navigation.StatusActive.String(),
			Error:  err.Message,
		}
	}

	trigger, ok := step.Trigger()
	if !ok {
		// Pass-through step: readable but never proximity-advanced.
		s.mu.Unlock()
		return &InstructionEvent{
			Instruction:    step.Instruction(),
			ShouldSpeak:    false,
			DistanceToNext: step.DistanceMeters(),
			Status:         navigation.StatusActive.String(),
		}
	}

	d := geo.Distance(fix, trigger)
	if d >= s.proximityMeters {
		s.mu.Unlock()
		return &InstructionEvent{
			Instruction:    step.Instruction(),
			ShouldSpeak:    false,
			DistanceToNext: d,
			Status:         navigation.StatusActive.String(),
		}
	}

	_ = sess.AdvanceStep()
	id := sess.ID()
	stepIndex := sess.CurrentStepIndex()
	s.mu.Unlock()

	evt := &InstructionEvent{
		Instruction:    step.Instruction(),
		ShouldSpeak:    true,
		DistanceToNext: d,
		Status:         navigation.StatusActive.String(),
	}
	s.logger.Info("step triggered",
		zap.String("session_id", id.String()),
		zap.Int("step_index", stepIndex-1),
		zap.Float64("distance_meters", d),
	)
	s.publisher.Publish(ctx, EventNavigationInstruction, id.String(), evt)
	return evt
}

// StopNavigation stops and discards the current session. Calling it with no
// active session is a no-op; it reports whether a session was stopped.
func (s *NavigationService) StopNavigation(ctx context.Context) bool {
	s.mu.Lock()
	stopped := s.stopLocked()
	s.mu.Unlock()

	if stopped == nil {
		return false
	}
	s.logger.Info("navigation session stopped",
		zap.String("session_id", stopped.ID().String()),
		zap.String("destination", stopped.Destination()),
	)
	s.publishStopped(ctx, stopped, "requested")
	return true
}

// CleanupExpiredSessions stops the session if it has gone without a fix for
// longer than maxIdle. Pull-based: the caller invokes it periodically. It
// reports whether a session was expired.
func (s *NavigationService) CleanupExpiredSessions(ctx context.Context, maxIdle time.Duration) bool {
	s.mu.Lock()
	sess := s.session
	if sess == nil || !sess.Expired(maxIdle, time.Now().UTC()) {
		s.mu.Unlock()
		return false
	}
	s.stopLocked()
	s.mu.Unlock()

	s.logger.Info("navigation session expired",
		zap.String("session_id", sess.ID().String()),
		zap.String("destination", sess.Destination()),
		zap.Duration("max_idle", maxIdle),
	)
	s.publishStopped(ctx, sess, "expired")
	return true
}

// GetSessionStatus returns a diagnostic snapshot of the current session, or a
// no_session marker when none exists.
func (s *NavigationService) GetSessionStatus() SessionStatusDTO {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return SessionStatusDTO{Status: navigation.StatusNoSession}
	}

	now := time.Now().UTC()
	totalSteps := 0
	if s.session.Route() != nil {
		totalSteps = s.session.Route().StepCount()
	}
	return SessionStatusDTO{
		Status:              s.session.Status().String(),
		SessionID:           s.session.ID().String(),
		Destination:         s.session.Destination(),
		CurrentStep:         s.session.CurrentStepIndex(),
		TotalSteps:          totalSteps,
		ElapsedSeconds:      now.Sub(s.session.CreatedAt()).Seconds(),
		SecondsSinceLastFix: now.Sub(s.session.LastUpdateAt()).Seconds(),
	}
}

// stopLocked stops and detaches the current session. Caller holds the lock.
func (s *NavigationService) stopLocked() *navigation.Session {
	sess := s.session
	if sess == nil {
		return nil
	}
	sess.Stop()
	s.session = nil
	return sess
}

func (s *NavigationService) publishStopped(ctx context.Context, sess *navigation.Session, reason string) {
	s.publisher.Publish(ctx, EventNavigationStopped, sess.ID().String(), stoppedPayload{
		SessionID:   sess.ID(),
		Destination: sess.Destination(),
		Reason:      reason,
		OccurredAt:  time.Now().UTC(),
	})
}

func (s *NavigationService) publishFailed(ctx context.Context, sess *navigation.Session, err error) {
	s.publisher.Publish(ctx, EventNavigationFailed, sess.ID().String(), failedPayload{
		SessionID:   sess.ID(),
		Destination: sess.Destination(),
		ErrorCode:   errorCode(err),
		Message:     speakableMessage(err),
		OccurredAt:  time.Now().UTC(),
	})
}

// speakableMessage extracts the voice-ready message from a domain error, or
// falls back to a generic apology for anything unexpected.
func speakableMessage(err error) string {
	var domainErr *navigation.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "Something went wrong while planning your route. Please try again."
}

func errorCode(err error) string {
	var domainErr *navigation.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "UNKNOWN"
}

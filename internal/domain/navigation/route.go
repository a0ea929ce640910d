package navigation

// Step is a single voice-ready maneuver on a route. A step either carries a
// trigger coordinate (the maneuver point that proximity-advances the session)
// or is a pass-through step that can only be read back, never advanced past
// automatically. The two variants are distinguished with the comma-ok
// Trigger accessor.
type Step struct {
	instruction    string
	distanceMeters float64
	distanceText   string
	trigger        *Coordinate
}

// NewTriggerStep creates a step whose instruction is spoken when the device
// comes within the proximity threshold of the trigger coordinate.
func NewTriggerStep(instruction string, distanceMeters float64, distanceText string, trigger Coordinate) Step {
	t := trigger
	return Step{
		instruction:    instruction,
		distanceMeters: distanceMeters,
		distanceText:   distanceText,
		trigger:        &t,
	}
}

// NewPassThroughStep creates a step without a trigger coordinate. Such a step
// cannot proximity-advance the session.
func NewPassThroughStep(instruction string, distanceMeters float64, distanceText string) Step {
	return Step{
		instruction:    instruction,
		distanceMeters: distanceMeters,
		distanceText:   distanceText,
	}
}

// Instruction returns the voice-ready sentence for this step.
func (s Step) Instruction() string { return s.instruction }

// DistanceMeters returns the step length in meters.
func (s Step) DistanceMeters() float64 { return s.distanceMeters }

// DistanceText returns the spoken form of the step length.
func (s Step) DistanceText() string { return s.distanceText }

// Trigger returns the maneuver coordinate and true for trigger steps, or a
// zero coordinate and false for pass-through steps.
func (s Step) Trigger() (Coordinate, bool) {
	if s.trigger == nil {
		return Coordinate{}, false
	}
	return *s.trigger, true
}

// Route is the immutable walking route for one journey, computed once on the
// session's first location fix.
type Route struct {
	destinationQuery    string
	totalDistanceMeters float64
	totalDistanceText   string
	totalTimeMinutes    float64
	totalTimeText       string
	eta                 string
	steps               []Step
}

// NewRoute creates a Route. At least one step is required; a route without
// steps is not navigable.
func NewRoute(
	destinationQuery string,
	totalDistanceMeters float64,
	totalDistanceText string,
	totalTimeMinutes float64,
	totalTimeText string,
	eta string,
	steps []Step,
) (*Route, error) {
	if destinationQuery == "" {
		return nil, NewValidationError("destination query is required")
	}
	if len(steps) == 0 {
		return nil, NewValidationError("route must have at least one step")
	}
	copied := make([]Step, len(steps))
	copy(copied, steps)
	return &Route{
		destinationQuery:    destinationQuery,
		totalDistanceMeters: totalDistanceMeters,
		totalDistanceText:   totalDistanceText,
		totalTimeMinutes:    totalTimeMinutes,
		totalTimeText:       totalTimeText,
		eta:                 eta,
		steps:               copied,
	}, nil
}

// DestinationQuery returns the free-text destination this route was computed
// for.
func (r *Route) DestinationQuery() string { return r.destinationQuery }

// TotalDistanceMeters returns the route length in meters.
func (r *Route) TotalDistanceMeters() float64 { return r.totalDistanceMeters }

// TotalDistanceText returns the spoken form of the route length.
func (r *Route) TotalDistanceText() string { return r.totalDistanceText }

// TotalTimeMinutes returns the estimated walking time in minutes.
func (r *Route) TotalTimeMinutes() float64 { return r.totalTimeMinutes }

// TotalTimeText returns the spoken form of the walking time.
func (r *Route) TotalTimeText() string { return r.totalTimeText }

// ETA returns the wall-clock arrival time text.
func (r *Route) ETA() string { return r.eta }

// StepCount returns the number of steps on the route.
func (r *Route) StepCount() int { return len(r.steps) }

// StepAt returns the step at the given index, or false if out of range.
func (r *Route) StepAt(i int) (Step, bool) {
	if i < 0 || i >= len(r.steps) {
		return Step{}, false
	}
	return r.steps[i], true
}

// Steps returns a copy of the route's steps.
func (r *Route) Steps() []Step {
	copied := make([]Step, len(r.steps))
	copy(copied, r.steps)
	return copied
}

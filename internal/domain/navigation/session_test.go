package navigation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoute(t *testing.T, stepCount int) *Route {
	t.Helper()
	steps := make([]Step, stepCount)
	for i := range steps {
		steps[i] = NewTriggerStep("Continue on the path for 100 meters.", 100, "100 meters",
			Coordinate{Latitude: 10.0 + float64(i)*0.001, Longitude: 76.3})
	}
	route, err := NewRoute("Lulu Mall", 500, "500 meters", 6, "6 minutes", "3:15 PM", steps)
	require.NoError(t, err)
	return route
}

func TestNewSession(t *testing.T) {
	sess, err := NewSession("Lulu Mall")
	require.NoError(t, err)
	assert.Equal(t, "Lulu Mall", sess.Destination())
	assert.Equal(t, StatusWaitingForLocation, sess.Status())
	assert.Nil(t, sess.Route())
	assert.Zero(t, sess.CurrentStepIndex())
	_, hasOrigin := sess.Origin()
	assert.False(t, hasOrigin)
}

func TestNewSession_RequiresDestination(t *testing.T) {
	_, err := NewSession("")
	require.Error(t, err)
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, ErrCodeValidation, domainErr.Code)
}

func TestSession_BeginRoute(t *testing.T) {
	sess, err := NewSession("Lulu Mall")
	require.NoError(t, err)

	origin := Coordinate{Latitude: 10.0261, Longitude: 76.3125}
	route := testRoute(t, 3)
	require.NoError(t, sess.BeginRoute(route, origin))

	assert.Equal(t, StatusActive, sess.Status())
	assert.Same(t, route, sess.Route())
	got, ok := sess.Origin()
	require.True(t, ok)
	assert.Equal(t, origin, got)

	// Route is populated exactly once.
	err = sess.BeginRoute(testRoute(t, 1), origin)
	require.Error(t, err)
	assert.Same(t, route, sess.Route())
}

func TestSession_AdvanceStep_Bounds(t *testing.T) {
	sess, err := NewSession("Lulu Mall")
	require.NoError(t, err)
	require.NoError(t, sess.BeginRoute(testRoute(t, 2), Coordinate{Latitude: 10, Longitude: 76}))

	require.NoError(t, sess.AdvanceStep())
	require.NoError(t, sess.AdvanceStep())
	assert.True(t, sess.StepsExhausted())

	// Index never exceeds the step count.
	require.Error(t, sess.AdvanceStep())
	assert.Equal(t, 2, sess.CurrentStepIndex())
}

func TestSession_AdvanceStep_RequiresActive(t *testing.T) {
	sess, err := NewSession("Lulu Mall")
	require.NoError(t, err)
	require.Error(t, sess.AdvanceStep())
}

func TestSession_Arrive(t *testing.T) {
	sess, err := NewSession("Lulu Mall")
	require.NoError(t, err)

	// Cannot arrive before the route exists.
	require.Error(t, sess.Arrive())

	require.NoError(t, sess.BeginRoute(testRoute(t, 1), Coordinate{Latitude: 10, Longitude: 76}))
	require.NoError(t, sess.Arrive())
	assert.Equal(t, StatusArrived, sess.Status())
}

func TestSession_Stop_Idempotent(t *testing.T) {
	sess, err := NewSession("Lulu Mall")
	require.NoError(t, err)

	sess.Stop()
	assert.Equal(t, StatusStopped, sess.Status())
	sess.Stop()
	assert.Equal(t, StatusStopped, sess.Status())
}

func TestSession_Expired(t *testing.T) {
	sess, err := NewSession("Lulu Mall")
	require.NoError(t, err)

	now := time.Now().UTC()
	assert.False(t, sess.Expired(30*time.Minute, now))
	assert.True(t, sess.Expired(30*time.Minute, now.Add(31*time.Minute)))

	sess.Touch()
	assert.False(t, sess.Expired(30*time.Minute, time.Now().UTC()))
}

func TestStep_TriggerVariants(t *testing.T) {
	trigger := Coordinate{Latitude: 10.0261, Longitude: 76.3125}
	withTrigger := NewTriggerStep("Turn right.", 120, "120 meters", trigger)
	got, ok := withTrigger.Trigger()
	require.True(t, ok)
	assert.Equal(t, trigger, got)

	passThrough := NewPassThroughStep("Continue on the path for 80 meters.", 80, "80 meters")
	_, ok = passThrough.Trigger()
	assert.False(t, ok)
}

func TestNewRoute_Validation(t *testing.T) {
	_, err := NewRoute("", 100, "100 meters", 2, "2 minutes", "3:00 PM",
		[]Step{NewPassThroughStep("x", 1, "1 meter")})
	require.Error(t, err)

	_, err = NewRoute("Lulu Mall", 100, "100 meters", 2, "2 minutes", "3:00 PM", nil)
	require.Error(t, err)
}

func TestRoute_StepAt(t *testing.T) {
	route := testRoute(t, 2)
	_, ok := route.StepAt(-1)
	assert.False(t, ok)
	_, ok = route.StepAt(2)
	assert.False(t, ok)
	step, ok := route.StepAt(1)
	require.True(t, ok)
	assert.NotEmpty(t, step.Instruction())
}

package signal_test

import (
	"testing"

	"github.com/chaosrig/engine/event"
	"github.com/chaosrig/engine/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByNameKnownInputs(t *testing.T) {
	in, ok := signal.GetByName("L2")
	require.True(t, ok)
	assert.Equal(t, signal.Hybrid, in.Class)
	assert.EqualValues(t, 6, in.ButtonID)
	assert.EqualValues(t, 2, in.HybridAxisID)

	_, ok = signal.GetByName("NOT_A_SIGNAL")
	assert.False(t, ok)
}

func TestHybridResolvesFromEitherSlot(t *testing.T) {
	l2, ok := signal.GetByName("L2")
	require.True(t, ok)

	buttonEvt := event.DeviceEvent{Type: uint8(signal.TypeButton), ID: 6}
	axisEvt := event.DeviceEvent{Type: uint8(signal.TypeAxis), ID: 2}

	assert.True(t, signal.Matches(l2, buttonEvt))
	assert.True(t, signal.Matches(l2, axisEvt))

	fromButton, ok := signal.GetByEvent(buttonEvt)
	require.True(t, ok)
	assert.Equal(t, l2, fromButton)

	fromAxis, ok := signal.GetByEvent(axisEvt)
	require.True(t, ok)
	assert.Equal(t, l2, fromAxis)
}

func TestJoystickLimitSaturates(t *testing.T) {
	assert.EqualValues(t, signal.JoystickMax, signal.JoystickLimit(40000))
	assert.EqualValues(t, signal.JoystickMin, signal.JoystickLimit(-40000))
	assert.EqualValues(t, 123, signal.JoystickLimit(123))
}

func TestClassMinMax(t *testing.T) {
	assert.EqualValues(t, 0, signal.Button.Min(false))
	assert.EqualValues(t, 1, signal.Button.Max(false))
	assert.EqualValues(t, -1, signal.ThreeState.Min(false))
	assert.EqualValues(t, 1, signal.ThreeState.Max(false))
	assert.EqualValues(t, signal.JoystickMin, signal.Axis.Min(false))
	assert.EqualValues(t, signal.JoystickMax, signal.Axis.Max(false))

	// Hybrid: button face is 0/1, axis face is the full joystick range.
	assert.EqualValues(t, 0, signal.Hybrid.Min(false))
	assert.EqualValues(t, 1, signal.Hybrid.Max(false))
	assert.EqualValues(t, signal.JoystickMin, signal.Hybrid.Min(true))
	assert.EqualValues(t, signal.JoystickMax, signal.Hybrid.Max(true))
}

func TestAllReturnsEveryInput(t *testing.T) {
	all := signal.All()
	assert.Len(t, all, 34)
}

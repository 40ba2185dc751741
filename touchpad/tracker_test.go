package touchpad_test

import (
	"testing"

	"github.com/chaosrig/engine/signal"
	"github.com/chaosrig/engine/touchpad"
	"github.com/stretchr/testify/assert"
)

func TestFirstSampleSeedsAndReturnsZero(t *testing.T) {
	tr := touchpad.NewTracker()
	v := tr.ToAxis(signal.TOUCHPADX, 100, 1000)
	assert.EqualValues(t, 0, v)
}

func TestSubsequentSampleProducesVelocity(t *testing.T) {
	tr := touchpad.NewTracker()
	tr.Configure(signal.TOUCHPADX, 1000, 0, 0)

	tr.ToAxis(signal.TOUCHPADX, 100, 1000)
	v := tr.ToAxis(signal.TOUCHPADX, 150, 1050)

	assert.NotEqual(t, int16(0), v)
}

func TestFirstTouchResetsSeeding(t *testing.T) {
	tr := touchpad.NewTracker()
	tr.ToAxis(signal.TOUCHPADX, 100, 1000)
	tr.FirstTouch()

	v := tr.ToAxis(signal.TOUCHPADX, 200, 2000)
	assert.EqualValues(t, 0, v)
}

func TestSaturatesToJoystickLimits(t *testing.T) {
	tr := touchpad.NewTracker()
	tr.Configure(signal.TOUCHPADX, 1_000_000, 0, 0)

	tr.ToAxis(signal.TOUCHPADX, 0, 1000)
	v := tr.ToAxis(signal.TOUCHPADX, 5000, 1001)

	assert.LessOrEqual(t, v, int16(signal.JoystickMax))
	assert.GreaterOrEqual(t, v, int16(signal.JoystickMin))
}

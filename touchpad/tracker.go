// Package touchpad implements the Touchpad Tracker: turning
// absolute touchpad coordinates into axis-velocity samples a Remap
// record can feed to the console as joystick motion.
package touchpad

import "github.com/chaosrig/engine/signal"

const ringLen = 5

// axisState is the per-tracked-axis ring buffer of recent samples.
type axisState struct {
	priorActive bool
	values      [ringLen]int16
	timestamps  [ringLen]uint32

	scale   float64
	scaleIf float64 // applied instead of scale when Alt(sig) holds
	skew    int16
}

// Tracker holds the four touchpad axes' state (TOUCHPAD_X/Y and their
// _2 counterparts for a second finger).
type Tracker struct {
	axes    map[signal.Name]*axisState
	Alt     func(sig signal.Name) bool // optional: when true, scaleIf applies
}

// NewTracker builds a tracker with all four touchpad axes idle.
func NewTracker() *Tracker {
	t := &Tracker{axes: make(map[signal.Name]*axisState)}
	for _, sig := range []signal.Name{signal.TOUCHPADX, signal.TOUCHPADY, signal.TOUCHPADX2, signal.TOUCHPADY2} {
		t.axes[sig] = &axisState{scale: 1}
	}
	return t
}

// Configure sets the scale/skew applied when converting sig's raw delta
// into an axis value; scaleIf is used instead of scale when Alt(sig)
// reports true.
func (t *Tracker) Configure(sig signal.Name, scale, scaleIf float64, skew int16) {
	st, ok := t.axes[sig]
	if !ok {
		return
	}
	st.scale = scale
	st.scaleIf = scaleIf
	st.skew = skew
}

// ToAxis converts one absolute touchpad sample into an axis-velocity
// value. The first sample after a FirstTouch() reset only seeds the
// ring buffer and returns 0.
func (t *Tracker) ToAxis(sig signal.Name, value int16, now uint32) int16 {
	st, ok := t.axes[sig]
	if !ok {
		return 0
	}

	if !st.priorActive {
		for i := range st.values {
			st.values[i] = value
			st.timestamps[i] = now
		}
		st.priorActive = true
		return 0
	}

	dt := now - st.timestamps[0]
	var delta float64
	if dt != 0 {
		delta = float64(value-st.values[0]) / float64(dt)
	}

	for i := 0; i < ringLen-1; i++ {
		st.values[i] = st.values[i+1]
		st.timestamps[i] = st.timestamps[i+1]
	}
	st.values[ringLen-1] = value
	st.timestamps[ringLen-1] = now

	scale := st.scale
	if t.Alt != nil && t.Alt(sig) {
		scale = st.scaleIf
	}

	skew := st.skew
	if delta < 0 {
		skew = -skew
	} else if delta == 0 {
		skew = 0
	}

	return signal.JoystickLimit(int32(delta*scale) + int32(skew))
}

// FirstTouch resets every tracked axis so the next sample reseeds
// rather than computing a velocity; called on a TOUCHPAD_ACTIVE
// inactive→active transition.
func (t *Tracker) FirstTouch() {
	for _, st := range t.axes {
		st.priorActive = false
	}
}

package modifier

import (
	"time"

	"github.com/chaosrig/engine/command"
	"github.com/chaosrig/engine/event"
)

// Repeat presses and releases its applied commands on a fixed duty
// cycle for a bounded number of cycles, then pauses before starting
// over.
type Repeat struct {
	Base
	owner *Instance

	TimeOn     time.Duration
	TimeOff    time.Duration
	NumCycles  int
	CycleDelay time.Duration
	ForceOn    int16
	ForceOff   int16
	BlockWhile []command.Command

	elapsed     time.Duration
	isOn        bool
	repeatCount int
	inCycleGap  bool
}

// NewRepeat builds the repeat kind; NumCycles defaults to 1 when <= 0.
func NewRepeat(owner *Instance, timeOn, timeOff, cycleDelay time.Duration, numCycles int, forceOn, forceOff int16) *Repeat {
	if numCycles <= 0 {
		numCycles = 1
	}
	return &Repeat{
		owner: owner, TimeOn: timeOn, TimeOff: timeOff, NumCycles: numCycles,
		CycleDelay: cycleDelay, ForceOn: forceOn, ForceOff: forceOff,
	}
}

func (r *Repeat) Begin() {
	r.elapsed = 0
	r.isOn = false
	r.repeatCount = 0
	r.inCycleGap = false
}

func (r *Repeat) Update(_ bool, dt time.Duration) {
	r.elapsed += dt

	if r.inCycleGap {
		if r.elapsed >= r.CycleDelay {
			r.elapsed = 0
			r.inCycleGap = false
			r.repeatCount = 0
		}
		return
	}

	period := r.TimeOff
	if r.isOn {
		period = r.TimeOn
	}
	if r.elapsed < period {
		return
	}
	r.elapsed = 0

	if !r.isOn {
		r.press()
		r.isOn = true
		return
	}

	r.release()
	r.isOn = false
	r.repeatCount++
	if r.repeatCount >= r.NumCycles {
		r.inCycleGap = true
	}
}

func (r *Repeat) press() {
	r.setAll(r.ForceOn)
}

func (r *Repeat) release() {
	r.setAll(r.ForceOff)
}

func (r *Repeat) setAll(value int16) {
	if r.owner.Sink == nil {
		return
	}
	for _, cmd := range r.owner.AppliesTo {
		wireType := cmd.Input.Class.WireType()
		r.owner.Sink.ApplyEvent(event.DeviceEvent{
			Value: value, Type: uint8(wireType), ID: cmd.Input.ID(wireType),
		})
	}
}

func (r *Repeat) Tweak(e event.DeviceEvent) (event.DeviceEvent, bool) {
	if r.isOn {
		for _, b := range r.BlockWhile {
			if b.Matches(e) {
				return e, false
			}
		}
	}
	return e, true
}

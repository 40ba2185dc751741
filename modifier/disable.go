package modifier

import (
	"github.com/chaosrig/engine/event"
	"github.com/chaosrig/engine/signal"
)

// DisableFilter picks which values of a matched command the Disable
// kind actually forces to the input's minimum.
type DisableFilter int

const (
	// DisableAll forces every matching event to the minimum regardless of value.
	DisableAll DisableFilter = iota
	// DisableAbove forces the minimum only when the event's value exceeds Threshold.
	DisableAbove
	// DisableBelow forces the minimum only when the event's value is under Threshold.
	DisableBelow
)

// Disable rewrites matching events to their input's minimum value,
// suppressing the player's control over it, subject to an optional
// above/below threshold filter.
type Disable struct {
	Base
	owner *Instance

	Filter    DisableFilter
	Threshold int16
}

// NewDisable builds the disable kind, bound back to its owning
// Instance so it can see which commands it applies to.
func NewDisable(owner *Instance) *Disable { return &Disable{owner: owner} }

func (d *Disable) Tweak(e event.DeviceEvent) (event.DeviceEvent, bool) {
	if !d.owner.InCondition() || d.owner.InUnless() {
		return e, true
	}
	if !d.owner.AppliesToEvent(e) {
		return e, true
	}
	in, ok := signal.GetByEvent(e)
	if !ok {
		return e, true
	}

	blocked := false
	switch d.Filter {
	case DisableAbove:
		blocked = e.Value > d.Threshold
	case DisableBelow:
		blocked = e.Value < d.Threshold
	default:
		blocked = true
	}
	if !blocked {
		return e, true
	}

	axisFace := e.Type == uint8(signal.TypeAxis)
	e.Value = int16(in.Class.Min(axisFace))
	return e, true
}

package modifier

import "github.com/chaosrig/engine/event"

// Invert two's-complement-inverts matching events' values.
type Invert struct {
	Base
	owner *Instance
}

func NewInvert(owner *Instance) *Invert { return &Invert{owner: owner} }

func (iv *Invert) Tweak(e event.DeviceEvent) (event.DeviceEvent, bool) {
	if !iv.owner.AppliesToEvent(e) {
		return e, true
	}
	e.Value = -(e.Value + 1)
	return e, true
}

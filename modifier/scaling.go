package modifier

import (
	"github.com/chaosrig/engine/event"
	"github.com/chaosrig/engine/signal"
	"github.com/chaosrig/engine/utils"
)

// Scaling applies an affine transform to matching events' values.
type Scaling struct {
	Base
	owner     *Instance
	Amplitude float64
	Offset    float64
}

func NewScaling(owner *Instance, amplitude, offset float64) *Scaling {
	if amplitude == 0 {
		amplitude = 1.0
	}
	return &Scaling{owner: owner, Amplitude: amplitude, Offset: offset}
}

func (s *Scaling) Tweak(e event.DeviceEvent) (event.DeviceEvent, bool) {
	if !s.owner.AppliesToEvent(e) {
		return e, true
	}
	signTweak := 0.0
	if s.Amplitude < 0 {
		signTweak = 1.0
	}
	v := utils.Clip(s.Amplitude*(float64(e.Value)+signTweak)+s.Offset, float64(signal.JoystickMin), float64(signal.JoystickMax))
	e.Value = int16(v)
	return e, true
}

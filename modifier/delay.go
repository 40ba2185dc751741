package modifier

import (
	"time"

	"github.com/chaosrig/engine/event"
)

type delayedEvent struct {
	enqueuedAt time.Time
	event      event.DeviceEvent
}

// Delay holds matching events for a fixed duration, then re-injects
// them in arrival order.
type Delay struct {
	Base
	owner *Instance
	delay time.Duration
	queue []delayedEvent
	now   func() time.Time
}

// NewDelay builds the delay kind; delaySeconds must be > 0.
func NewDelay(owner *Instance, delaySeconds float64) *Delay {
	return &Delay{owner: owner, delay: time.Duration(delaySeconds * float64(time.Second)), now: time.Now}
}

func (d *Delay) Tweak(e event.DeviceEvent) (event.DeviceEvent, bool) {
	if !d.owner.AppliesToEvent(e) {
		return e, true
	}
	d.queue = append(d.queue, delayedEvent{enqueuedAt: d.now(), event: e})
	return e, false
}

func (d *Delay) Update(_ bool, _ time.Duration) {
	now := d.now()
	for len(d.queue) > 0 && now.Sub(d.queue[0].enqueuedAt) >= d.delay {
		head := d.queue[0]
		d.queue = d.queue[1:]
		if d.owner.Injector != nil {
			d.owner.Injector.FakePipelinedEvent(head.event, d.owner)
		}
	}
}

// Package fakepad is an in-memory controller source and sink, used to
// drive the engine pipeline in tests and local development without
// real HID hardware.
package fakepad

import "github.com/chaosrig/engine/event"

// Pad is a fake controller: Inject pushes a raw event as if it came
// from the physical pad, ApplyEvent records whatever the engine's
// pipeline decided to forward to the console.
type Pad struct {
	events  chan event.DeviceEvent
	Applied []event.DeviceEvent
}

// New builds an idle fake pad with a reasonably sized event buffer.
func New() *Pad {
	return &Pad{events: make(chan event.DeviceEvent, 256)}
}

// Inject enqueues a raw event as if the player had pressed something.
func (p *Pad) Inject(e event.DeviceEvent) {
	p.events <- e
}

// Events implements engine.Source.
func (p *Pad) Events() <-chan event.DeviceEvent {
	return p.events
}

// ApplyEvent implements engine.Sink / sequence.Sink, recording
// everything the pipeline forwards toward the console.
func (p *Pad) ApplyEvent(e event.DeviceEvent) {
	p.Applied = append(p.Applied, e)
}

// Last returns the most recently applied event, or the zero value if
// none have been applied yet.
func (p *Pad) Last() (event.DeviceEvent, bool) {
	if len(p.Applied) == 0 {
		return event.DeviceEvent{}, false
	}
	return p.Applied[len(p.Applied)-1], true
}

package engine

import "github.com/chaosrig/engine/event"

// Sink is the controller output the engine applies post-pipeline
// events to.
type Sink interface {
	ApplyEvent(e event.DeviceEvent)
}

// Source is a live feed of raw controller events, read by whatever
// wires a concrete source (a real HID reader, or fakepad in tests)
// into the engine actor via RawEvent messages.
type Source interface {
	Events() <-chan event.DeviceEvent
}

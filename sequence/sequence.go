// Package sequence implements the Sequence Engine: scripted
// bursts of controller events, played either as a blocking macro or
// advanced a tick at a time alongside the engine loop.
package sequence

import (
	"time"

	"github.com/chaosrig/engine/event"
	"github.com/chaosrig/engine/signal"
)

// DefaultPressTime and DefaultReleaseTime are the macro timings
// add_press uses when the caller doesn't need finer control.
const (
	DefaultPressTime   uint32 = 50_000
	DefaultReleaseTime uint32 = 16_000
)

// Sink is the controller output a sequence plays events against.
type Sink interface {
	ApplyEvent(e event.DeviceEvent)
}

// Sequence is an ordered list of DeviceEvents, including delay
// sentinels, plus the time-sliced playback cursor.
type Sequence struct {
	Events []event.DeviceEvent

	currentStep int
	waitUntil   uint32
}

// AddHold emits one event holding input at value for holdUs. A Hybrid
// input also emits its axis face, held for the same duration.
func (s *Sequence) AddHold(in *signal.Input, value int16, holdUs uint32) {
	s.Events = append(s.Events, event.DeviceEvent{
		Time: holdUs, Value: value,
		Type: uint8(signal.TypeButton), ID: in.ID(signal.TypeButton),
	})
	if in.Class == signal.Hybrid {
		axisVal := value
		if axisVal == 0 {
			axisVal = int16(signal.JoystickMax)
		}
		s.Events = append(s.Events, event.DeviceEvent{
			Time: holdUs, Value: axisVal,
			Type: uint8(signal.TypeAxis), ID: in.ID(signal.TypeAxis),
		})
	}
}

// AddRelease emits the zero-value event that releases input, held for
// releaseUs. A Hybrid input also releases its axis face to
// JoystickMin.
func (s *Sequence) AddRelease(in *signal.Input, releaseUs uint32) {
	s.Events = append(s.Events, event.DeviceEvent{
		Time: releaseUs, Value: 0,
		Type: uint8(signal.TypeButton), ID: in.ID(signal.TypeButton),
	})
	if in.Class == signal.Hybrid {
		s.Events = append(s.Events, event.DeviceEvent{
			Time: releaseUs, Value: int16(signal.JoystickMin),
			Type: uint8(signal.TypeAxis), ID: in.ID(signal.TypeAxis),
		})
	}
}

// AddPress is a press-then-release macro using the default timings.
func (s *Sequence) AddPress(in *signal.Input, value int16) {
	s.AddHold(in, value, DefaultPressTime)
	s.AddRelease(in, DefaultReleaseTime)
}

// AddDelay appends a pure time-advance sentinel.
func (s *Sequence) AddDelay(us uint32) {
	s.Events = append(s.Events, event.Delay(us))
}

// AddSequence appends other's events to s.
func (s *Sequence) AddSequence(other *Sequence) {
	s.Events = append(s.Events, other.Events...)
}

// Send plays the whole sequence synchronously, blocking the caller's
// goroutine for the sequence's total duration. Delay sentinels are not
// forwarded to sink.
func (s *Sequence) Send(sink Sink) {
	for _, e := range s.Events {
		if !e.IsDelay() {
			sink.ApplyEvent(e)
		}
		time.Sleep(time.Duration(e.Time) * time.Microsecond)
	}
}

// SendParallel advances playback by one tick given elapsedUs
// microseconds since the sequence started, applying any event whose
// wait has elapsed. It returns true once the whole sequence has played
// and resets the cursor for the next run.
func (s *Sequence) SendParallel(sink Sink, elapsedUs uint32) bool {
	for s.currentStep < len(s.Events) {
		e := s.Events[s.currentStep]
		if e.IsDelay() {
			s.waitUntil += e.Time
			s.currentStep++
			continue
		}
		if elapsedUs < s.waitUntil {
			return false
		}
		sink.ApplyEvent(e)
		s.waitUntil += e.Time
		s.currentStep++
	}

	if elapsedUs < s.waitUntil {
		return false
	}
	s.currentStep = 0
	s.waitUntil = 0
	return true
}

package engine

import (
	"time"

	"github.com/chaosrig/engine/actor"
	"github.com/chaosrig/engine/event"
	"github.com/chaosrig/engine/modifier"
)

// Tick drives one pass of the scheduler loop.
type Tick struct{}

// RawEvent carries one controller event into the pipeline.
type RawEvent struct {
	Event event.DeviceEvent
}

// Winner is the "a vote won" control message.
type Winner struct {
	Name string
	Time time.Duration // zero means "use the configured default"
}

// Remove asks the engine to stop a named modifier.
type Remove struct {
	Name string
}

// Reset clears every queued and active modifier.
type Reset struct{}

// NewGame asks the engine to pause and load a different game
// description.
type NewGame struct {
	Name string
}

// NumMods changes how many modifiers may be active simultaneously.
type NumMods struct {
	N int
}

// Exit asks the engine actor to stop.
type Exit struct{}

// StatusQuery (sent via actor.Engine.Ask) asks for the current game
// status snapshot.
type StatusQuery struct{}

// Status is the reply to StatusQuery and to NewGame.
type Status struct {
	Game        string
	Errors      int
	NumMods     int
	CanUnpause  bool
	ModTime     float64
	Mods        []ModStatus
}

// ModStatus is one entry in a Status's mod list.
type ModStatus struct {
	Name     string
	Desc     string
	Groups   []string
	Lifespan float64
}

// PauseTelemetry is emitted whenever the pause state flips.
type PauseTelemetry struct {
	Paused bool
}

// Subscribe registers PID to receive PauseTelemetry broadcasts; each
// control channel's ControlActor subscribes for its own connection.
type Subscribe struct {
	PID *actor.PID
}

// Unsubscribe drops a prior Subscribe.
type Unsubscribe struct {
	PID *actor.PID
}

// fakeInject is how modifier.Injector reaches back into the pipeline.
// It is unexported because callers never construct it directly: a
// modifier callback calls Injector.FakePipelinedEvent, which wraps the
// event in a fakeInject and sends it back through the actor's own
// mailbox, so it is processed after whatever tick is currently running
// finishes.
type fakeInject struct {
	Event  event.DeviceEvent
	Source *modifier.Instance
}

package actor

// Actor is the behavior of one running process: Receive is invoked once
// per message, never concurrently with itself.
type Actor interface {
	Receive(ctx Context)
}

// Producer constructs one Actor instance. The Engine calls it exactly
// once per Spawn, inside the new actor's own goroutine.
type Producer func() Actor

// Props bundles everything needed to spawn an actor.
type Props struct {
	Produce Producer
}

// NewProps wraps a Producer in a Props value.
func NewProps(produce Producer) *Props {
	return &Props{Produce: produce}
}

// System lifecycle messages. Every actor receives Started right after
// Spawn, Stopping when asked to shut down (while it may still send
// messages), and Stopped as the very last message it will ever see.
type (
	Started  struct{}
	Stopping struct{}
	Stopped  struct{}
)

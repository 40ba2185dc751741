package actor

// Context is handed to Actor.Receive for one message. It exposes the
// addresses involved and, for messages sent via Engine.Ask, a way to
// reply to the asker.
type Context interface {
	Self() *PID
	Sender() *PID
	Message() interface{}

	// RequestID is non-empty when this message was sent through
	// Engine.Ask and expects a single Reply.
	RequestID() string
	// Reply delivers a response to the pending Ask call. A no-op if
	// RequestID is empty or Reply was already called for this message.
	Reply(response interface{})
}

type messageEnvelope struct {
	Sender    *PID
	Message   interface{}
	RequestID string
	replyCh   chan interface{}
}

type context struct {
	engine    *Engine
	self      *PID
	sender    *PID
	message   interface{}
	requestID string
	replyCh   chan interface{}
	replied   bool
}

func (c *context) Self() *PID             { return c.self }
func (c *context) Sender() *PID           { return c.sender }
func (c *context) Message() interface{}   { return c.message }
func (c *context) RequestID() string      { return c.requestID }

func (c *context) Reply(response interface{}) {
	if c.replyCh == nil || c.replied {
		return
	}
	c.replied = true
	select {
	case c.replyCh <- response:
	default:
	}
}

package actor

import (
	"fmt"
	"runtime/debug"
	"sync"
)

const defaultMailboxSize = 1024

// process is the running instance of one spawned actor: its state, its
// mailbox, and the goroutine driving Receive calls one at a time.
type process struct {
	engine   *Engine
	pid      *PID
	actor    Actor
	mailbox  chan *messageEnvelope
	props    *Props
	stopCh   chan struct{}
	stopOnce sync.Once
	stopped  bool
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan *messageEnvelope, defaultMailboxSize),
		stopCh:  make(chan struct{}),
	}
}

// sendMessage enqueues an envelope, never blocking: a full mailbox drops
// the message and logs it rather than stalling the sender.
func (p *process) sendMessage(envelope *messageEnvelope) {
	select {
	case p.mailbox <- envelope:
	default:
		fmt.Printf("actor %s mailbox full, dropping message type %T\n", p.pid.ID, envelope.Message)
	}
}

// closeStop unblocks the run loop; safe to call more than once and
// from any goroutine.
func (p *process) closeStop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

func (p *process) run() {
	defer func() {
		// A stop via closeStop can win the race against the Stopping
		// envelope in the mailbox; make sure the actor still gets its
		// Stopping callback exactly once before Stopped.
		if !p.stopped {
			p.stopped = true
			p.invokeReceive(Stopping{}, nil, "", nil)
		}
		p.invokeReceive(Stopped{}, nil, "", nil)
		p.engine.remove(p.pid)
	}()

	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("actor %s panicked: %v\nstack:\n%s\n", p.pid.ID, r, string(debug.Stack()))
			p.stopped = true
		}
	}()

	p.actor = p.props.Produce()
	if p.actor == nil {
		panic(fmt.Sprintf("actor %s producer returned a nil Actor", p.pid.ID))
	}

	for {
		select {
		case <-p.stopCh:
			return

		case envelope := <-p.mailbox:
			if p.stopped {
				continue
			}

			switch msg := envelope.Message.(type) {
			case Stopping:
				p.stopped = true
				p.invokeReceive(msg, envelope.Sender, envelope.RequestID, envelope.replyCh)
				p.closeStop()
				return
			default:
				p.invokeReceive(envelope.Message, envelope.Sender, envelope.RequestID, envelope.replyCh)
			}
		}
	}
}

func (p *process) invokeReceive(msg interface{}, sender *PID, requestID string, replyCh chan interface{}) {
	ctx := &context{
		engine:    p.engine,
		self:      p.pid,
		sender:    sender,
		message:   msg,
		requestID: requestID,
		replyCh:   replyCh,
	}
	p.actor.Receive(ctx)
}

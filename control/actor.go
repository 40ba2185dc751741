package control

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/chaosrig/engine/actor"
	"github.com/chaosrig/engine/engine"
)

// errReadLoopExited marks the internal notification the read goroutine
// sends itself when the connection closes.
var errReadLoopExited = errors.New("control: read loop exited")

type frameRead struct {
	Frame CommandFrame
}

// ControlActor owns one control-channel connection: it decodes frames
// off a Transport, dispatches them to the Engine actor, and relays
// PauseTelemetry back out as PauseFrame.
type ControlActor struct {
	conn   Transport
	sys    *actor.Engine
	engine *actor.PID
	self   *actor.PID

	askTimeout   time.Duration
	stopReadLoop chan struct{}
	readLoopDone chan struct{}
	done         chan struct{}
}

// Args bundles ControlActor construction parameters. Done, if set, is
// closed once this connection has fully wound down, letting an HTTP
// handler goroutine block on the connection's lifetime without itself
// racing reads against the actor's own readLoop.
type Args struct {
	Conn       Transport
	Sys        *actor.Engine
	Engine     *actor.PID
	AskTimeout time.Duration
	Done       chan struct{}
}

// NewProducer builds the producer the actor system spawns from.
func NewProducer(args Args) actor.Producer {
	return func() actor.Actor {
		timeout := args.AskTimeout
		if timeout == 0 {
			timeout = 2 * time.Second
		}
		return &ControlActor{
			conn:         args.Conn,
			sys:          args.Sys,
			engine:       args.Engine,
			askTimeout:   timeout,
			stopReadLoop: make(chan struct{}),
			readLoopDone: make(chan struct{}),
			done:         args.Done,
		}
	}
}

// Receive implements actor.Actor.
func (a *ControlActor) Receive(ctx actor.Context) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("[chaosrig:control] panic recovered: %v\n%s\n", r, string(debug.Stack()))
			a.cleanup()
		}
	}()

	switch msg := ctx.Message().(type) {
	case actor.Started:
		a.self = ctx.Self()
		a.sys.Send(a.engine, engine.Subscribe{PID: a.self}, nil)
		go a.readLoop()

	case frameRead:
		for _, out := range Dispatch(a.sys, a.engine, a.askTimeout, msg.Frame) {
			if err := a.conn.WriteFrame(out); err != nil {
				a.cleanup()
				return
			}
		}

	case engine.PauseTelemetry:
		pause := 0
		if msg.Paused {
			pause = 1
		}
		if err := a.conn.WriteFrame(PauseFrame{Pause: pause}); err != nil {
			a.cleanup()
		}

	case error:
		a.cleanup()

	case actor.Stopping:
		a.sys.Send(a.engine, engine.Unsubscribe{PID: a.self}, nil)
		close(a.stopReadLoop)
		_ = a.conn.Close()
		<-a.readLoopDone
		if a.done != nil {
			close(a.done)
		}
	}
}

func (a *ControlActor) cleanup() {
	if a.self != nil && a.sys != nil {
		a.sys.Stop(a.self)
	}
}

// readLoop decodes frames off the Transport and forwards them to self.
func (a *ControlActor) readLoop() {
	defer close(a.readLoopDone)
	for {
		select {
		case <-a.stopReadLoop:
			return
		default:
		}

		frame, err := a.conn.ReadFrame()
		if err != nil {
			select {
			case <-a.stopReadLoop:
			default:
				a.sys.Send(a.self, errReadLoopExited, nil)
			}
			return
		}
		a.sys.Send(a.self, frameRead{Frame: frame}, nil)
	}
}

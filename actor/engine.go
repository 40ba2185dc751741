package actor

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ErrTimeout is returned by Ask when no Reply arrives within the
// requested timeout.
var ErrTimeout = errors.New("actor: ask timed out waiting for reply")

// ErrNoSuchActor is returned by Ask/Send when the target PID is unknown.
var ErrNoSuchActor = errors.New("actor: no such actor")

// Engine owns a set of running actors and dispatches messages between
// them. One Engine hosts the Chaos Rig's EngineActor and ControlActor
// (see engine/ and control/), each in its own goroutine.
type Engine struct {
	pidCounter uint64
	actors     map[string]*process
	mu         sync.RWMutex
	stopping   atomic.Bool
}

// NewEngine creates a new, empty actor engine.
func NewEngine() *Engine {
	return &Engine{
		actors: make(map[string]*process),
	}
}

func (e *Engine) nextPID() *PID {
	id := atomic.AddUint64(&e.pidCounter, 1)
	return &PID{ID: fmt.Sprintf("actor-%d", id)}
}

// Spawn creates and starts a new actor from props, returning its PID.
// Returns nil if the engine is shutting down.
func (e *Engine) Spawn(props *Props) *PID {
	if e.stopping.Load() {
		fmt.Println("actor: engine is stopping, refusing to spawn")
		return nil
	}

	pid := e.nextPID()
	proc := newProcess(e, pid, props)

	e.mu.Lock()
	e.actors[pid.ID] = proc
	e.mu.Unlock()

	go proc.run()

	e.Send(pid, Started{}, nil)
	return pid
}

func (e *Engine) lookup(pid *PID) (*process, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	proc, ok := e.actors[pid.ID]
	return proc, ok
}

// Send delivers a fire-and-forget message to pid. Messages sent to an
// already-removed actor are silently dropped.
func (e *Engine) Send(pid *PID, message interface{}, sender *PID) {
	if pid == nil {
		return
	}
	_, isStopping := message.(Stopping)
	_, isStopped := message.(Stopped)
	_, isStarted := message.(Started)
	isSystemMsg := isStopping || isStopped || isStarted

	if e.stopping.Load() && !isSystemMsg {
		return
	}

	proc, ok := e.lookup(pid)
	if !ok {
		return
	}
	proc.sendMessage(&messageEnvelope{Sender: sender, Message: message})
}

// Ask sends message to pid and blocks until the receiver calls
// ctx.Reply, or timeout elapses (ErrTimeout), or pid does not exist
// (ErrNoSuchActor). This is the request/reply primitive the Control
// Channel uses against the EngineActor.
func (e *Engine) Ask(pid *PID, message interface{}, timeout time.Duration) (interface{}, error) {
	if pid == nil {
		return nil, ErrNoSuchActor
	}
	proc, ok := e.lookup(pid)
	if !ok {
		return nil, ErrNoSuchActor
	}

	replyCh := make(chan interface{}, 1)
	requestID := fmt.Sprintf("ask-%p-%d", replyCh, time.Now().UnixNano())
	proc.sendMessage(&messageEnvelope{
		Message:   message,
		RequestID: requestID,
		replyCh:   replyCh,
	})

	select {
	case resp := <-replyCh:
		return resp, nil
	case <-time.After(timeout):
		return nil, ErrTimeout
	}
}

// Stop asks the actor at pid to shut down and unblocks its run loop
// even if its mailbox is full.
func (e *Engine) Stop(pid *PID) {
	if pid == nil {
		return
	}
	proc, ok := e.lookup(pid)
	if !ok {
		return
	}

	e.Send(pid, Stopping{}, nil)
	proc.closeStop()
}

func (e *Engine) remove(pid *PID) {
	e.mu.Lock()
	delete(e.actors, pid.ID)
	e.mu.Unlock()
}

// Shutdown stops every actor and waits up to timeout for them to drain.
func (e *Engine) Shutdown(timeout time.Duration) {
	if !e.stopping.CompareAndSwap(false, true) {
		return
	}

	e.mu.RLock()
	pids := make([]*PID, 0, len(e.actors))
	for _, proc := range e.actors {
		pids = append(pids, proc.pid)
	}
	e.mu.RUnlock()

	for _, pid := range pids {
		e.Stop(pid)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		e.mu.RLock()
		remaining := len(e.actors)
		e.mu.RUnlock()
		if remaining == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	e.mu.Lock()
	remaining := len(e.actors)
	if remaining > 0 {
		fmt.Printf("actor: shutdown timed out with %d actors still running\n", remaining)
		e.actors = make(map[string]*process)
	}
	e.mu.Unlock()
}

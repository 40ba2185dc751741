package control_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/chaosrig/engine/actor"
	"github.com/chaosrig/engine/control"
	"github.com/chaosrig/engine/engine"
	"github.com/chaosrig/engine/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTransport struct {
	mu      sync.Mutex
	incoming []control.CommandFrame
	written  []interface{}
	closed   bool
}

func (m *memTransport) push(f control.CommandFrame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.incoming = append(m.incoming, f)
}

func (m *memTransport) ReadFrame() (control.CommandFrame, error) {
	for {
		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			return control.CommandFrame{}, errors.New("closed")
		}
		if len(m.incoming) > 0 {
			f := m.incoming[0]
			m.incoming = m.incoming[1:]
			m.mu.Unlock()
			return f, nil
		}
		m.mu.Unlock()
		time.Sleep(time.Millisecond)
	}
}

func (m *memTransport) WriteFrame(v interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.written = append(m.written, v)
	return nil
}

func (m *memTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *memTransport) writtenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.written)
}

type recordingSink struct{ applied []event.DeviceEvent }

func (r *recordingSink) ApplyEvent(e event.DeviceEvent) { r.applied = append(r.applied, e) }

func TestControlActorDispatchesGameStatusRequest(t *testing.T) {
	sys := actor.NewEngine()
	defer sys.Shutdown(time.Second)

	sink := &recordingSink{}
	enginePID := sys.Spawn(actor.NewProps(engine.NewEngineActorProducer(sys, engine.DefaultConfig(), sink, nil)))
	require.NotNil(t, enginePID)

	conn := &memTransport{}
	conn.push(control.CommandFrame{Game: true})

	pid := sys.Spawn(actor.NewProps(control.NewProducer(control.Args{Conn: conn, Sys: sys, Engine: enginePID})))
	require.NotNil(t, pid)

	assert.Eventually(t, func() bool { return conn.writtenCount() == 1 }, time.Second, 5*time.Millisecond)
	status, ok := conn.written[0].(control.StatusFrame)
	require.True(t, ok)
	assert.Equal(t, 0, status.Errors)
}

func TestControlActorRelaysPauseTelemetry(t *testing.T) {
	sys := actor.NewEngine()
	defer sys.Shutdown(time.Second)

	sink := &recordingSink{}
	cfg := engine.DefaultConfig()
	enginePID := sys.Spawn(actor.NewProps(engine.NewEngineActorProducer(sys, cfg, sink, nil)))
	require.NotNil(t, enginePID)

	conn := &memTransport{}
	pid := sys.Spawn(actor.NewProps(control.NewProducer(control.Args{Conn: conn, Sys: sys, Engine: enginePID})))
	require.NotNil(t, pid)

	time.Sleep(20 * time.Millisecond) // let the Subscribe land before the button press

	sys.Send(enginePID, engine.RawEvent{Event: event.DeviceEvent{Type: 0, ID: 10, Value: 1}}, nil) // PS button

	assert.Eventually(t, func() bool { return conn.writtenCount() == 1 }, time.Second, 5*time.Millisecond)
	pause, ok := conn.written[0].(control.PauseFrame)
	require.True(t, ok)
	assert.Equal(t, 1, pause.Pause)
}

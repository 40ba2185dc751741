// Package wschannel is the WebSocket JSON control-channel transport.
package wschannel

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/chaosrig/engine/control"
	"golang.org/x/net/websocket"
)

const (
	// readPollTimeout bounds each blocking read so a silent connection
	// is re-polled instead of treated as dead; closing the connection
	// is what actually ends the loop.
	readPollTimeout = 500 * time.Millisecond
	writeRetries    = 5
)

// Conn adapts a golang.org/x/net/websocket connection to
// control.Transport.
type Conn struct {
	ws *websocket.Conn
}

// NewConn wraps ws.
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

// ReadFrame blocks for the next JSON control frame. Poll timeouts are
// benign and retried; any other error ends the connection.
func (c *Conn) ReadFrame() (control.CommandFrame, error) {
	for {
		var raw json.RawMessage
		_ = c.ws.SetReadDeadline(time.Now().Add(readPollTimeout))
		err := websocket.JSON.Receive(c.ws, &raw)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			return control.CommandFrame{}, err
		}
		var frame control.CommandFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			return control.CommandFrame{}, fmt.Errorf("wschannel: decode frame: %w", err)
		}
		return frame, nil
	}
}

// WriteFrame sends one outgoing telemetry frame as JSON, retrying
// timeouts a bounded number of times before giving up on the message.
func (c *Conn) WriteFrame(v interface{}) error {
	var err error
	for attempt := 0; attempt < writeRetries; attempt++ {
		if err = websocket.JSON.Send(c.ws, v); err == nil {
			return nil
		}
		if ne, ok := err.(net.Error); !ok || !ne.Timeout() {
			return err
		}
	}
	return err
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.ws.Close()
}

// Hub tracks active control-channel connections.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]bool
}

// NewHub builds an empty connection hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

// Open records ws as active.
func (h *Hub) Open(ws *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[ws] = true
	fmt.Printf("[chaosrig] control connection opened: %s (%d total)\n", ws.RemoteAddr(), len(h.conns))
}

// Close drops ws and closes the connection.
func (h *Hub) Close(ws *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[ws]; !ok {
		return
	}
	_ = ws.Close()
	delete(h.conns, ws)
	fmt.Printf("[chaosrig] control connection closed: %s (%d total)\n", ws.RemoteAddr(), len(h.conns))
}

// Count reports how many connections are currently open.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

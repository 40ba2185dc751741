package wschannel

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/chaosrig/engine/actor"
	"github.com/chaosrig/engine/control"
	"golang.org/x/net/websocket"
)

// Server binds a Hub and an Engine actor PID into a
// websocket.Handler-compatible func.
type Server struct {
	hub        *Hub
	sys        *actor.Engine
	enginePID  *actor.PID
	askTimeout time.Duration
}

// NewServer builds a Server serving the control channel against
// enginePID over sys.
func NewServer(sys *actor.Engine, enginePID *actor.PID) *Server {
	return &Server{hub: NewHub(), sys: sys, enginePID: enginePID, askTimeout: 2 * time.Second}
}

// Handler returns the websocket.Handler for the control channel
// endpoint.
func (s *Server) Handler() websocket.Handler {
	return func(ws *websocket.Conn) {
		defer func() {
			if r := recover(); r != nil {
				fmt.Printf("[chaosrig] panic recovered in control handler: %v\n%s\n", r, string(debug.Stack()))
			}
		}()

		s.hub.Open(ws)
		defer s.hub.Close(ws)

		done := make(chan struct{})
		conn := NewConn(ws)
		pid := s.sys.Spawn(actor.NewProps(control.NewProducer(control.Args{
			Conn:       conn,
			Sys:        s.sys,
			Engine:     s.enginePID,
			AskTimeout: s.askTimeout,
			Done:       done,
		})))
		if pid == nil {
			fmt.Printf("[chaosrig] failed to spawn control actor for %s\n", ws.RemoteAddr())
			return
		}

		// Block the handler goroutine until the ControlActor signals
		// the connection has fully wound down.
		<-done
	}
}

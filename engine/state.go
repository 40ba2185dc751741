package engine

import (
	"sync"

	"github.com/chaosrig/engine/signal"
)

// stateStore tracks the last value observed for each input, so
// transient conditions and the Game Loader Facade's get_state can read
// "current live state" without re-deriving it from the event stream
// each call.
type stateStore struct {
	mu     sync.RWMutex
	values map[signal.Name]int16
}

func newStateStore() *stateStore {
	return &stateStore{values: make(map[signal.Name]int16)}
}

func (s *stateStore) record(in *signal.Input, value int16) {
	s.mu.Lock()
	s.values[in.Signal] = value
	s.mu.Unlock()
}

// GetState implements command.StateSource.
func (s *stateStore) GetState(in *signal.Input) int16 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[in.Signal]
}

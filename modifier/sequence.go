package modifier

import (
	"time"

	"github.com/chaosrig/engine/command"
	"github.com/chaosrig/engine/event"
	"github.com/chaosrig/engine/sequence"
)

type seqState int

const (
	untriggered seqState = iota
	starting
	inSequence
	ending
)

// SequenceKind plays a repeating scripted event burst, gated by an optional
// trigger command and the modifier's own conditions.
type SequenceKind struct {
	Base
	owner *Instance

	RepeatSequence *sequence.Sequence
	Trigger        []command.Command
	StartDelay     time.Duration
	CycleDelay     time.Duration
	BlockWhile     []command.Command
	LockAll        bool

	state   seqState
	elapsed time.Duration
}

func NewSequenceKind(owner *Instance, repeatSequence *sequence.Sequence, startDelay, cycleDelay time.Duration) *SequenceKind {
	return &SequenceKind{owner: owner, RepeatSequence: repeatSequence, StartDelay: startDelay, CycleDelay: cycleDelay}
}

func (s *SequenceKind) Update(_ bool, dt time.Duration) {
	s.elapsed += dt

	switch s.state {
	case untriggered:
		if len(s.Trigger) == 0 && s.owner.InCondition() {
			s.state = starting
			s.elapsed = 0
		}
	case starting:
		if s.elapsed >= s.StartDelay {
			s.state = inSequence
			s.elapsed = 0
		}
	case inSequence:
		if s.RepeatSequence.SendParallel(s.owner.Sink, uint32(s.elapsed.Microseconds())) {
			s.state = ending
			s.elapsed = 0
		}
	case ending:
		if s.elapsed >= s.CycleDelay {
			s.state = untriggered
			s.elapsed = 0
		}
	}
}

func (s *SequenceKind) Tweak(e event.DeviceEvent) (event.DeviceEvent, bool) {
	if s.state == untriggered {
		for _, t := range s.Trigger {
			if t.Matches(e) && s.owner.InCondition() {
				s.state = starting
				s.elapsed = 0
				break
			}
		}
		return e, true
	}

	if s.state == inSequence {
		if s.LockAll {
			return e, false
		}
		for _, b := range s.BlockWhile {
			if b.Matches(e) {
				return e, false
			}
		}
	}
	return e, true
}

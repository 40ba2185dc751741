package modifier

import (
	"time"

	"github.com/chaosrig/engine/command"
	"github.com/chaosrig/engine/remap"
	"github.com/chaosrig/engine/sequence"
	"github.com/chaosrig/engine/signal"
)

// Declaration carries every field any kind's constructor might need.
// The loader (C10) fills the shared fields for every kind and the
// remap fields only for remap kinds; each constructor reads only the
// fields relevant to it.
type Declaration struct {
	Amplitude float64
	Offset    float64

	DisableFilter    DisableFilter
	DisableThreshold int16

	DelaySeconds float64

	RemapTable   *remap.Table
	Mapping      []remap.Record
	RandomRemap  bool
	Sources      []*signal.Input
	Destinations []*signal.Input

	TimeOn     time.Duration
	TimeOff    time.Duration
	NumCycles  int
	CycleDelay time.Duration
	ForceOn    int16
	ForceOff   int16
	BlockWhile []command.Command

	RepeatSequence *sequence.Sequence
	Trigger        []command.Command
	StartDelay     time.Duration
	LockAll        bool

	Registry      Registry
	FixedChildren []*Instance
	Random        bool
	RandomCount   int
}

// Factory builds a Kind from a declaration, bound to its owning
// Instance.
type Factory func(owner *Instance, decl Declaration) Kind

// registry maps kind strings to constructors, populated once at
// startup.
var registry = map[string]Factory{
	"disable": func(owner *Instance, d Declaration) Kind {
		dis := NewDisable(owner)
		dis.Filter = d.DisableFilter
		dis.Threshold = d.DisableThreshold
		return dis
	},
	"invert":  func(owner *Instance, _ Declaration) Kind { return NewInvert(owner) },
	"scaling": func(owner *Instance, d Declaration) Kind { return NewScaling(owner, d.Amplitude, d.Offset) },
	"delay":   func(owner *Instance, d Declaration) Kind { return NewDelay(owner, d.DelaySeconds) },
	"remap": func(owner *Instance, d Declaration) Kind {
		r := NewRemap(owner, d.RemapTable)
		r.Mapping = d.Mapping
		r.RandomRemap = d.RandomRemap
		r.Sources = d.Sources
		r.Destinations = d.Destinations
		return r
	},
	"repeat": func(owner *Instance, d Declaration) Kind {
		r := NewRepeat(owner, d.TimeOn, d.TimeOff, d.CycleDelay, d.NumCycles, d.ForceOn, d.ForceOff)
		r.BlockWhile = d.BlockWhile
		return r
	},
	"sequence": func(owner *Instance, d Declaration) Kind {
		s := NewSequenceKind(owner, d.RepeatSequence, d.StartDelay, d.CycleDelay)
		s.Trigger = d.Trigger
		s.BlockWhile = d.BlockWhile
		s.LockAll = d.LockAll
		return s
	},
	"parent": func(owner *Instance, d Declaration) Kind {
		return NewParent(owner, d.Registry, d.Random, d.RandomCount, d.FixedChildren)
	},
}

// New builds the named kind, or reports ok=false for an unknown kind
// string (a config-load error).
func New(kind string, owner *Instance, decl Declaration) (Kind, bool) {
	f, ok := registry[kind]
	if !ok {
		return nil, false
	}
	return f(owner, decl), true
}

// Kinds lists every registered modifier kind name. Map order isn't
// guaranteed; callers that need a stable order should sort it.
func Kinds() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	return out
}

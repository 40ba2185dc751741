// Package modifier implements the eight Modifier kinds
// behind one small interface, and the Engine-facing wrapper
// (_begin/_update/_finish/_tweak) common to all of them.
package modifier

import (
	"time"

	"github.com/chaosrig/engine/command"
	"github.com/chaosrig/engine/event"
	"github.com/chaosrig/engine/sequence"
)

// Kind is the behavior specific to one of the eight modifier flavors.
// Default (no-op) behavior is provided by Base so a concrete kind only
// implements the hooks it cares about.
type Kind interface {
	Begin()
	Update(wasPaused bool, dt time.Duration)
	Finish()
	Remap(e event.DeviceEvent) (event.DeviceEvent, bool)
	Tweak(e event.DeviceEvent) (event.DeviceEvent, bool)
}

// Base gives every concrete Kind pass-through defaults; embed it and
// override only what differs.
type Base struct{}

func (Base) Begin()                     {}
func (Base) Update(bool, time.Duration) {}
func (Base) Finish()                    {}
func (Base) Remap(e event.DeviceEvent) (event.DeviceEvent, bool) { return e, true }
func (Base) Tweak(e event.DeviceEvent) (event.DeviceEvent, bool) { return e, true }

// Injector lets a Kind push a synthetic event back into the pipeline
// without holding the engine lock.
type Injector interface {
	FakePipelinedEvent(e event.DeviceEvent, source *Instance)
}

// Instance is one active (or queued) modifier: its declaration-derived
// configuration plus the Engine-owned lifecycle bookkeeping.
type Instance struct {
	Name         string
	Description  string
	Groups       map[string]struct{}
	Unlisted     bool
	LockWhileBusy bool
	AllowAsChild bool

	BeginSequence  *sequence.Sequence
	FinishSequence *sequence.Sequence

	Conditions       command.ConditionSet
	UnlessConditions command.ConditionSet

	AppliesToAll bool
	AppliesTo    []command.Command

	Kind     Kind
	Sink     sequence.Sink
	Injector Injector

	Lifespan time.Duration

	timerStart       time.Time
	pauseAccumulator time.Duration
	inSequence       bool
	parent           *Instance
}

// NewInstance wires a declaration's static fields to its behavior.
func NewInstance(name string, kind Kind, sink sequence.Sink, injector Injector) *Instance {
	return &Instance{
		Name:         name,
		Groups:       map[string]struct{}{},
		AllowAsChild: true,
		Kind:         kind,
		Sink:         sink,
		Injector:     injector,
	}
}

// Applies reports whether cmd is in this modifier's applies_to set.
func (m *Instance) Applies(cmd command.Command) bool {
	if m.AppliesToAll {
		return true
	}
	for _, c := range m.AppliesTo {
		if c.Input == cmd.Input {
			return true
		}
	}
	return false
}

// AppliesToEvent reports whether e matches any command this modifier
// applies to.
func (m *Instance) AppliesToEvent(e event.DeviceEvent) bool {
	if m.AppliesToAll {
		return true
	}
	for _, c := range m.AppliesTo {
		if c.Matches(e) {
			return true
		}
	}
	return false
}

// InCondition reports whether the declared conditions currently pass,
// combined by Conditions.Check (vacuously true with no conditions).
func (m *Instance) InCondition() bool {
	return m.Conditions.Evaluate()
}

// InUnless reports whether the declared unless-conditions currently
// pass, combined by UnlessConditions.Check; a modifier with no
// unless-conditions is never blocked by them.
func (m *Instance) InUnless() bool {
	if len(m.UnlessConditions.Conditions) == 0 {
		return false
	}
	return m.UnlessConditions.Evaluate()
}

// Owner returns the modifier outsiders see for m: the outermost
// parent when m is running as somebody's child, otherwise m itself.
func (m *Instance) Owner() *Instance {
	cur := m
	for cur.parent != nil && cur.parent != cur {
		cur = cur.parent
	}
	return cur
}

// Lifetime returns how long this modifier has been active, excluding
// time spent while the engine was paused.
func (m *Instance) Lifetime() time.Duration {
	return time.Since(m.timerStart) - m.pauseAccumulator
}

// EngineBegin is the Engine's _begin wrapper.
func (m *Instance) EngineBegin() {
	m.timerStart = time.Now()
	m.pauseAccumulator = 0
	m.Kind.Begin()
	if m.BeginSequence != nil && len(m.BeginSequence.Events) > 0 {
		if m.LockWhileBusy {
			m.inSequence = true
		}
		m.BeginSequence.Send(m.Sink)
		m.inSequence = false
	}
}

// EngineUpdate is the Engine's _update wrapper.
func (m *Instance) EngineUpdate(wasPaused bool, dt time.Duration) {
	if wasPaused {
		m.pauseAccumulator += dt
	}
	m.Kind.Update(wasPaused, dt)
}

// EngineFinish is the Engine's _finish wrapper.
func (m *Instance) EngineFinish() {
	if m.FinishSequence != nil && len(m.FinishSequence.Events) > 0 {
		m.FinishSequence.Send(m.Sink)
	}
	m.Kind.Finish()
}

// EngineRemap is the Engine's remap-pass call into this modifier.
func (m *Instance) EngineRemap(e event.DeviceEvent) (event.DeviceEvent, bool) {
	return m.Kind.Remap(e)
}

// EngineTweak is the Engine's _tweak wrapper: update every condition's
// latched state, then run the kind-specific tweak.
func (m *Instance) EngineTweak(e event.DeviceEvent) (event.DeviceEvent, bool) {
	for _, c := range m.Conditions.Conditions {
		c.UpdateState(e)
	}
	for _, c := range m.UnlessConditions.Conditions {
		c.UpdateState(e)
	}
	return m.Kind.Tweak(e)
}

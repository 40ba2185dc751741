package engine

import (
	"fmt"

	"github.com/chaosrig/engine/command"
	"github.com/chaosrig/engine/event"
	"github.com/chaosrig/engine/modifier"
	"github.com/chaosrig/engine/remap"
	"github.com/chaosrig/engine/sequence"
	"github.com/chaosrig/engine/signal"
)

// Facade is the minimal surface the Engine exposes to configuration
// loading code. A GameLoader is handed a Facade rather than the
// EngineActor itself.
type Facade interface {
	GetInput(name string) (*signal.Input, bool)
	AddGameCommand(name string, inputName string) (command.Command, error)
	AddGameCondition(cond *command.Condition) *command.Condition
	CreateSequence() *sequence.Sequence
	GetModifier(name string) (*modifier.Instance, bool)
	GetModifierMap() map[string]*modifier.Instance
	RegisterModifier(inst *modifier.Instance)
	RemapTable() *remap.Table
	SetCascadingRemap(batch []remap.Record)
	ClearRemaps()
	EventMatches(e event.DeviceEvent, cmd command.Command) bool
	GetState(in *signal.Input) int16
	ApplyEvent(e event.DeviceEvent)
	FakePipelinedEvent(e event.DeviceEvent, source *modifier.Instance)
	Registry() modifier.Registry
	SetOn(cmd command.Command)
	SetOff(cmd command.Command)
	RegisterMenuItem(name string, initial int) *MenuItem
	GetMenuItem(name string) (*MenuItem, bool)
	SetMenuState(item *MenuItem, newVal int)
	RestoreMenuState(item *MenuItem)
}

// GameLoader parses one game description and populates the engine
// through the Facade. configfile.Loader is the concrete
// TOML-backed implementation.
type GameLoader interface {
	LoadGame(name string, facade Facade) error
}

// --- Facade implementation ---

func (a *EngineActor) GetInput(name string) (*signal.Input, bool) {
	return signal.GetByName(name)
}

func (a *EngineActor) AddGameCommand(name string, inputName string) (command.Command, error) {
	in, ok := signal.GetByName(inputName)
	if !ok {
		return command.Command{}, fmt.Errorf("unknown input %q for command %q", inputName, name)
	}
	return command.Command{Name: name, Input: in}, nil
}

func (a *EngineActor) AddGameCondition(cond *command.Condition) *command.Condition {
	clone := cond.Clone()
	clone.Source = a.state
	return clone
}

func (a *EngineActor) CreateSequence() *sequence.Sequence {
	return &sequence.Sequence{}
}

func (a *EngineActor) GetModifier(name string) (*modifier.Instance, bool) {
	m, ok := a.known[name]
	return m, ok
}

func (a *EngineActor) GetModifierMap() map[string]*modifier.Instance {
	return a.known
}

func (a *EngineActor) RegisterModifier(inst *modifier.Instance) {
	a.known[inst.Name] = inst
}

func (a *EngineActor) RemapTable() *remap.Table {
	return a.table
}

func (a *EngineActor) SetCascadingRemap(batch []remap.Record) {
	a.table.InstallCascading(batch)
}

func (a *EngineActor) ClearRemaps() {
	a.table.ClearAll()
	for _, m := range a.active {
		if r, ok := m.Kind.(*modifier.Remap); ok {
			r.Reinstall()
		}
	}
}

func (a *EngineActor) EventMatches(e event.DeviceEvent, cmd command.Command) bool {
	return cmd.Matches(e)
}

func (a *EngineActor) GetState(in *signal.Input) int16 {
	return a.state.GetState(in)
}

func (a *EngineActor) ApplyEvent(e event.DeviceEvent) {
	a.sink.ApplyEvent(e)
}

// SetOn forces cmd's input to its pressed/maximum value, delivered
// straight to the sink rather than through the remap/tweak pipeline.
func (a *EngineActor) SetOn(cmd command.Command) {
	in := cmd.Input
	if in.Class == signal.Hybrid {
		a.sink.ApplyEvent(event.DeviceEvent{Value: 1, Type: uint8(signal.TypeButton), ID: in.ButtonID})
		a.sink.ApplyEvent(event.DeviceEvent{Value: int16(signal.JoystickMax), Type: uint8(signal.TypeAxis), ID: in.HybridAxisID})
		return
	}
	if in.Class.WireType() == signal.TypeButton {
		a.sink.ApplyEvent(event.DeviceEvent{Value: 1, Type: uint8(signal.TypeButton), ID: in.ButtonID})
		return
	}
	a.sink.ApplyEvent(event.DeviceEvent{Value: int16(signal.JoystickMax), Type: uint8(signal.TypeAxis), ID: in.ButtonID})
}

// SetOff forces cmd's input to its released/zero value.
func (a *EngineActor) SetOff(cmd command.Command) {
	in := cmd.Input
	wt := in.Class.WireType()
	a.sink.ApplyEvent(event.DeviceEvent{Value: 0, Type: uint8(wt), ID: in.ID(wt)})
	if in.Class == signal.Hybrid {
		a.sink.ApplyEvent(event.DeviceEvent{Value: int16(signal.JoystickMin), Type: uint8(signal.TypeAxis), ID: in.HybridAxisID})
	}
}

// facadeRegistry implements modifier.Registry for Parent modifiers: any
// known modifier that allows random selection and is not currently
// active is a candidate.
type facadeRegistry struct{ a *EngineActor }

func (r facadeRegistry) Candidates() []*modifier.Instance {
	var out []*modifier.Instance
	for _, m := range r.a.known {
		if !m.AllowAsChild {
			continue
		}
		if r.a.contains(r.a.active, m) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Registry returns the modifier.Registry a Parent kind draws random
// children from.
func (a *EngineActor) Registry() modifier.Registry {
	return facadeRegistry{a: a}
}

// SetGameLoader binds backing as the GameLoader the newgame command
// delegates to.
func (a *EngineActor) SetGameLoader(backing GameLoader) {
	a.gameLoader = backing
}

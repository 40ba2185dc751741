package command_test

import (
	"testing"

	"github.com/chaosrig/engine/command"
	"github.com/chaosrig/engine/event"
	"github.com/chaosrig/engine/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeState map[string]int16

func (f fakeState) GetState(in *signal.Input) int16 { return f[in.Name] }

func mustInput(t *testing.T, name string) *signal.Input {
	t.Helper()
	in, ok := signal.GetByName(name)
	require.True(t, ok)
	return in
}

func TestTransientConditionReadsLiveState(t *testing.T) {
	x := mustInput(t, "X")
	cond := command.NewCondition("x-pressed", []command.Command{{Name: "x", Input: x}}, 1, command.Greater, nil, 0, 0)

	assert.False(t, cond.InCondition(fakeState{"X": 0}))
	assert.True(t, cond.InCondition(fakeState{"X": 1}))
}

func TestPersistentConditionLatchesOnEvents(t *testing.T) {
	x := mustInput(t, "X")
	circle := mustInput(t, "CIRCLE")

	cond := command.NewCondition(
		"latch",
		[]command.Command{{Name: "x", Input: x}}, 1, command.Greater,
		[]command.Command{{Name: "circle", Input: circle}}, 1, command.Greater,
	)

	assert.False(t, cond.InCondition(nil))

	cond.UpdateState(event.DeviceEvent{Type: uint8(signal.TypeButton), ID: x.ButtonID, Value: 1})
	assert.True(t, cond.InCondition(nil))

	cond.UpdateState(event.DeviceEvent{Type: uint8(signal.TypeButton), ID: circle.ButtonID, Value: 1})
	assert.False(t, cond.InCondition(nil))
}

func TestCloneIsIndependent(t *testing.T) {
	x := mustInput(t, "X")
	circle := mustInput(t, "CIRCLE")
	cond := command.NewCondition(
		"latch",
		[]command.Command{{Name: "x", Input: x}}, 1, command.Greater,
		[]command.Command{{Name: "circle", Input: circle}}, 1, command.Greater,
	)
	cond.UpdateState(event.DeviceEvent{Type: uint8(signal.TypeButton), ID: x.ButtonID, Value: 1})
	assert.True(t, cond.InCondition(nil))

	clone := cond.Clone()
	assert.True(t, cond.InCondition(nil))
	assert.False(t, clone.InCondition(nil))
}

func TestDistanceComparesEuclideanLengthOfTwoInputs(t *testing.T) {
	lx := mustInput(t, "LX")
	ly := mustInput(t, "LY")
	cond := command.NewCondition(
		"stick-far",
		[]command.Command{{Name: "lx", Input: lx}, {Name: "ly", Input: ly}}, 10000, command.Distance,
		nil, 0, 0,
	)

	assert.True(t, cond.InCondition(fakeState{"LX": 9000, "LY": 9000}))
	assert.False(t, cond.InCondition(fakeState{"LX": 10, "LY": 10}))
}

func TestConditionSetCombinators(t *testing.T) {
	x := mustInput(t, "X")
	circle := mustInput(t, "CIRCLE")

	xHeld := command.NewCondition("x-held", []command.Command{{Name: "x", Input: x}}, 1, command.Greater,
		[]command.Command{{Name: "circle", Input: circle}}, 1, command.Greater)
	circleHeld := command.NewCondition("circle-held", []command.Command{{Name: "circle", Input: circle}}, 1, command.Greater,
		[]command.Command{{Name: "x", Input: x}}, 1, command.Greater)

	// Only xHeld is latched true; circleHeld stays false.
	xHeld.UpdateState(event.DeviceEvent{Type: uint8(signal.TypeButton), ID: x.ButtonID, Value: 1})

	set := command.ConditionSet{Conditions: []*command.Condition{xHeld, circleHeld}}

	set.Check = command.CheckAll
	assert.False(t, set.Evaluate(), "ALL requires every condition true")

	set.Check = command.CheckAny
	assert.True(t, set.Evaluate(), "ANY is satisfied by xHeld alone")

	set.Check = command.CheckNone
	assert.False(t, set.Evaluate(), "NONE fails because xHeld is true")

	empty := command.ConditionSet{Check: command.CheckAll}
	assert.True(t, empty.Evaluate(), "an empty set is vacuously true")
}

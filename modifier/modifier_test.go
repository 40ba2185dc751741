package modifier_test

import (
	"testing"
	"time"

	"github.com/chaosrig/engine/command"
	"github.com/chaosrig/engine/event"
	"github.com/chaosrig/engine/modifier"
	"github.com/chaosrig/engine/remap"
	"github.com/chaosrig/engine/sequence"
	"github.com/chaosrig/engine/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopSink struct{ applied []event.DeviceEvent }

func (s *nopSink) ApplyEvent(e event.DeviceEvent) { s.applied = append(s.applied, e) }

type nopInjector struct{ injected []event.DeviceEvent }

func (n *nopInjector) FakePipelinedEvent(e event.DeviceEvent, source *modifier.Instance) {
	n.injected = append(n.injected, e)
}

func mustInput(t *testing.T, name string) *signal.Input {
	t.Helper()
	in, ok := signal.GetByName(name)
	require.True(t, ok)
	return in
}

func TestDisableClampsToMinimum(t *testing.T) {
	lx := mustInput(t, "LX")
	sink := &nopSink{}
	inst := modifier.NewInstance("disable-lx", nil, sink, nil)
	inst.AppliesToAll = true
	kind, ok := modifier.New("disable", inst, modifier.Declaration{})
	require.True(t, ok)
	inst.Kind = kind

	e := event.DeviceEvent{Type: uint8(signal.TypeAxis), ID: lx.ButtonID, Value: 12000}
	out, keep := inst.EngineTweak(e)
	assert.True(t, keep)
	assert.EqualValues(t, signal.JoystickMin, out.Value)
}

func TestDisableAboveThresholdOnlyBlocksHighValues(t *testing.T) {
	lx := mustInput(t, "LX")
	sink := &nopSink{}
	inst := modifier.NewInstance("disable-lx-above", nil, sink, nil)
	inst.AppliesToAll = true
	kind, ok := modifier.New("disable", inst, modifier.Declaration{DisableFilter: modifier.DisableAbove, DisableThreshold: 100})
	require.True(t, ok)
	inst.Kind = kind

	low, keep := inst.EngineTweak(event.DeviceEvent{Type: uint8(signal.TypeAxis), ID: lx.ButtonID, Value: 50})
	assert.True(t, keep)
	assert.EqualValues(t, 50, low.Value)

	high, keep := inst.EngineTweak(event.DeviceEvent{Type: uint8(signal.TypeAxis), ID: lx.ButtonID, Value: 200})
	assert.True(t, keep)
	assert.EqualValues(t, signal.JoystickMin, high.Value)
}

func TestDisableBelowThresholdOnlyBlocksLowValues(t *testing.T) {
	lx := mustInput(t, "LX")
	sink := &nopSink{}
	inst := modifier.NewInstance("disable-lx-below", nil, sink, nil)
	inst.AppliesToAll = true
	kind, ok := modifier.New("disable", inst, modifier.Declaration{DisableFilter: modifier.DisableBelow, DisableThreshold: -100})
	require.True(t, ok)
	inst.Kind = kind

	high, keep := inst.EngineTweak(event.DeviceEvent{Type: uint8(signal.TypeAxis), ID: lx.ButtonID, Value: 50})
	assert.True(t, keep)
	assert.EqualValues(t, 50, high.Value)

	low, keep := inst.EngineTweak(event.DeviceEvent{Type: uint8(signal.TypeAxis), ID: lx.ButtonID, Value: -200})
	assert.True(t, keep)
	assert.EqualValues(t, signal.JoystickMin, low.Value)
}

func TestInvertFlipsValue(t *testing.T) {
	inst := modifier.NewInstance("invert", nil, &nopSink{}, nil)
	inst.AppliesToAll = true
	kind, ok := modifier.New("invert", inst, modifier.Declaration{})
	require.True(t, ok)
	inst.Kind = kind

	out, keep := inst.EngineTweak(event.DeviceEvent{Value: 0})
	assert.True(t, keep)
	assert.EqualValues(t, -1, out.Value)
}

func TestScalingClipsToRange(t *testing.T) {
	inst := modifier.NewInstance("scale", nil, &nopSink{}, nil)
	inst.AppliesToAll = true
	kind, ok := modifier.New("scaling", inst, modifier.Declaration{Amplitude: 10, Offset: 0})
	require.True(t, ok)
	inst.Kind = kind

	out, keep := inst.EngineTweak(event.DeviceEvent{Value: 10000})
	assert.True(t, keep)
	assert.EqualValues(t, signal.JoystickMax, out.Value)
}

func TestDelayDropsThenReinjects(t *testing.T) {
	injector := &nopInjector{}
	inst := modifier.NewInstance("delay", nil, &nopSink{}, injector)
	inst.AppliesToAll = true
	kind, ok := modifier.New("delay", inst, modifier.Declaration{DelaySeconds: 0.01})
	require.True(t, ok)
	inst.Kind = kind

	_, keep := inst.EngineTweak(event.DeviceEvent{Value: 1})
	assert.False(t, keep)
	assert.Empty(t, injector.injected)

	time.Sleep(15 * time.Millisecond)
	inst.EngineUpdate(false, 15*time.Millisecond)
	assert.Len(t, injector.injected, 1)
}

func TestRepeatTogglesForceValues(t *testing.T) {
	x := mustInput(t, "X")
	sink := &nopSink{}
	inst := modifier.NewInstance("repeat", nil, sink, nil)
	inst.AppliesTo = []command.Command{{Name: "x", Input: x}}
	kind, ok := modifier.New("repeat", inst, modifier.Declaration{
		TimeOn: 10 * time.Millisecond, TimeOff: 10 * time.Millisecond, NumCycles: 1, ForceOn: 1, ForceOff: 0,
	})
	require.True(t, ok)
	inst.Kind = kind
	inst.Kind.Begin()

	inst.EngineUpdate(false, 10*time.Millisecond)
	require.Len(t, sink.applied, 1)
	assert.EqualValues(t, 1, sink.applied[0].Value)

	inst.EngineUpdate(false, 10*time.Millisecond)
	require.Len(t, sink.applied, 2)
	assert.EqualValues(t, 0, sink.applied[1].Value)
}

func TestInvertTwiceIsIdentityOnAxisValues(t *testing.T) {
	inst := modifier.NewInstance("invert", nil, &nopSink{}, nil)
	inst.AppliesToAll = true
	kind, ok := modifier.New("invert", inst, modifier.Declaration{})
	require.True(t, ok)
	inst.Kind = kind

	for _, v := range []int16{-32766, -10000, -1, 0, 1, 10000, 32766} {
		once, _ := inst.EngineTweak(event.DeviceEvent{Value: v})
		twice, _ := inst.EngineTweak(once)
		assert.EqualValues(t, v, twice.Value)
	}
}

func TestScalingHalvesAndNegates(t *testing.T) {
	half := modifier.NewInstance("half", nil, &nopSink{}, nil)
	half.AppliesToAll = true
	kind, ok := modifier.New("scaling", half, modifier.Declaration{Amplitude: 0.5})
	require.True(t, ok)
	half.Kind = kind

	out, _ := half.EngineTweak(event.DeviceEvent{Value: 20000})
	assert.EqualValues(t, 10000, out.Value)

	neg := modifier.NewInstance("neg", nil, &nopSink{}, nil)
	neg.AppliesToAll = true
	kind, ok = modifier.New("scaling", neg, modifier.Declaration{Amplitude: -1})
	require.True(t, ok)
	neg.Kind = kind

	out, _ = neg.EngineTweak(event.DeviceEvent{Value: 20000})
	assert.EqualValues(t, -20001, out.Value)
}

func TestRepeatHonorsOnAndOffDurations(t *testing.T) {
	x := mustInput(t, "X")
	sink := &nopSink{}
	inst := modifier.NewInstance("repeat", nil, sink, nil)
	inst.AppliesTo = []command.Command{{Name: "x", Input: x}}
	kind, ok := modifier.New("repeat", inst, modifier.Declaration{
		TimeOn: 20 * time.Millisecond, TimeOff: 80 * time.Millisecond, NumCycles: 2, ForceOn: 1, ForceOff: 0,
	})
	require.True(t, ok)
	inst.Kind = kind
	inst.Kind.Begin()

	inst.EngineUpdate(false, 79*time.Millisecond)
	assert.Empty(t, sink.applied, "still in the off phase")

	inst.EngineUpdate(false, time.Millisecond)
	require.Len(t, sink.applied, 1)
	assert.EqualValues(t, 1, sink.applied[0].Value)

	inst.EngineUpdate(false, 19*time.Millisecond)
	assert.Len(t, sink.applied, 1, "on phase lasts the full time_on")

	inst.EngineUpdate(false, time.Millisecond)
	require.Len(t, sink.applied, 2)
	assert.EqualValues(t, 0, sink.applied[1].Value)
}

func TestRepeatBlocksMatchingEventsWhileOn(t *testing.T) {
	x := mustInput(t, "X")
	circle := mustInput(t, "CIRCLE")
	sink := &nopSink{}
	inst := modifier.NewInstance("repeat", nil, sink, nil)
	inst.AppliesTo = []command.Command{{Name: "x", Input: x}}
	kind, ok := modifier.New("repeat", inst, modifier.Declaration{
		TimeOn: 10 * time.Millisecond, TimeOff: 10 * time.Millisecond, NumCycles: 1, ForceOn: 1,
		BlockWhile: []command.Command{{Name: "circle", Input: circle}},
	})
	require.True(t, ok)
	inst.Kind = kind
	inst.Kind.Begin()

	blocked := event.DeviceEvent{Type: uint8(signal.TypeButton), ID: circle.ButtonID, Value: 1}

	_, keep := inst.EngineTweak(blocked)
	assert.True(t, keep, "off phase passes block_while events through")

	inst.EngineUpdate(false, 10*time.Millisecond) // press
	_, keep = inst.EngineTweak(blocked)
	assert.False(t, keep, "on phase drops block_while events")
}

func TestSequenceKindPlaysAfterTriggerAndStartDelay(t *testing.T) {
	x := mustInput(t, "X")
	sink := &nopSink{}
	inst := modifier.NewInstance("burst", nil, sink, nil)

	seq := &sequence.Sequence{}
	seq.AddHold(x, 1, 1000)

	kind, ok := modifier.New("sequence", inst, modifier.Declaration{
		RepeatSequence: seq,
		Trigger:        []command.Command{{Name: "x", Input: x}},
		StartDelay:     10 * time.Millisecond,
		CycleDelay:     10 * time.Millisecond,
	})
	require.True(t, ok)
	inst.Kind = kind

	inst.EngineUpdate(false, 5*time.Millisecond)
	assert.Empty(t, sink.applied, "untriggered sequence stays silent")

	_, keep := inst.EngineTweak(event.DeviceEvent{Type: uint8(signal.TypeButton), ID: x.ButtonID, Value: 1})
	assert.True(t, keep)

	inst.EngineUpdate(false, 5*time.Millisecond)
	assert.Empty(t, sink.applied, "start_delay not elapsed yet")

	inst.EngineUpdate(false, 5*time.Millisecond)
	inst.EngineUpdate(false, 5*time.Millisecond)
	require.NotEmpty(t, sink.applied)
	assert.EqualValues(t, 1, sink.applied[0].Value)
}

func TestSequenceKindLockAllDropsEverythingWhilePlaying(t *testing.T) {
	x := mustInput(t, "X")
	sink := &nopSink{}
	inst := modifier.NewInstance("burst", nil, sink, nil)

	seq := &sequence.Sequence{}
	seq.AddHold(x, 1, 50_000)

	kind, ok := modifier.New("sequence", inst, modifier.Declaration{RepeatSequence: seq, LockAll: true})
	require.True(t, ok)
	inst.Kind = kind

	inst.EngineUpdate(false, time.Millisecond) // no trigger list: arms immediately
	inst.EngineUpdate(false, time.Millisecond) // into the sequence

	_, keep := inst.EngineTweak(event.DeviceEvent{Type: uint8(signal.TypeButton), ID: x.ButtonID, Value: 1})
	assert.False(t, keep)
}

type countingKind struct {
	modifier.Base
	tweaks *int
}

func (c countingKind) Tweak(e event.DeviceEvent) (event.DeviceEvent, bool) {
	*c.tweaks++
	return e, true
}

type stubRegistry struct{ candidates []*modifier.Instance }

func (s stubRegistry) Candidates() []*modifier.Instance { return s.candidates }

func TestParentDelegatesToFixedChildren(t *testing.T) {
	sink := &nopSink{}

	child := modifier.NewInstance("child-invert", nil, sink, nil)
	child.AppliesToAll = true
	ck, ok := modifier.New("invert", child, modifier.Declaration{})
	require.True(t, ok)
	child.Kind = ck

	parent := modifier.NewInstance("combo", nil, sink, nil)
	pk, ok := modifier.New("parent", parent, modifier.Declaration{FixedChildren: []*modifier.Instance{child}})
	require.True(t, ok)
	parent.Kind = pk
	parent.EngineBegin()

	out, keep := parent.EngineTweak(event.DeviceEvent{Value: 10})
	assert.True(t, keep)
	assert.EqualValues(t, -11, out.Value)
}

func TestParentRandomSelectionDrawsWithoutReplacement(t *testing.T) {
	sink := &nopSink{}

	var tweaks int
	var pool []*modifier.Instance
	for _, name := range []string{"a", "b", "c"} {
		inst := modifier.NewInstance(name, nil, sink, nil)
		inst.Kind = countingKind{tweaks: &tweaks}
		pool = append(pool, inst)
	}

	parent := modifier.NewInstance("chaos-squared", nil, sink, nil)
	pk, ok := modifier.New("parent", parent, modifier.Declaration{
		Random: true, RandomCount: 2, Registry: stubRegistry{candidates: pool},
	})
	require.True(t, ok)
	parent.Kind = pk
	parent.EngineBegin()

	parent.EngineTweak(event.DeviceEvent{Value: 1})
	assert.Equal(t, 2, tweaks, "exactly random_count children selected")

	parent.Kind.Finish()
	tweaks = 0
	parent.EngineTweak(event.DeviceEvent{Value: 1})
	assert.Equal(t, 0, tweaks, "finish clears the random children")
}

type stubTouchpad struct{}

func (stubTouchpad) ToAxis(sig signal.Name, value int16, now uint32) int16 { return 0 }
func (stubTouchpad) FirstTouch()                                          {}

func TestRemapFinishRestoresIdentity(t *testing.T) {
	tbl := remap.NewTable(stubTouchpad{})
	lx := mustInput(t, "LX")
	rx := mustInput(t, "RX")

	inst := modifier.NewInstance("swap", nil, &nopSink{}, nil)
	kind, ok := modifier.New("remap", inst, modifier.Declaration{
		RemapTable: tbl,
		Mapping:    []remap.Record{{From: lx, To: rx}},
	})
	require.True(t, ok)
	inst.Kind = kind

	kind.Begin()
	assert.Equal(t, rx, tbl.Get(lx).To)

	kind.Finish()
	assert.Equal(t, lx, tbl.Get(lx).To)
}

func TestRandomRemapInstallsAPermutation(t *testing.T) {
	tbl := remap.NewTable(stubTouchpad{})
	axes := []*signal.Input{
		mustInput(t, "LX"), mustInput(t, "LY"),
		mustInput(t, "RX"), mustInput(t, "RY"),
	}

	inst := modifier.NewInstance("scrambled", nil, &nopSink{}, nil)
	kind, ok := modifier.New("remap", inst, modifier.Declaration{
		RemapTable:   tbl,
		RandomRemap:  true,
		Sources:      axes,
		Destinations: axes,
	})
	require.True(t, ok)
	inst.Kind = kind
	kind.Begin()

	targets := make(map[*signal.Input]bool, len(axes))
	for _, src := range axes {
		targets[tbl.Get(src).To] = true
	}
	assert.Len(t, targets, len(axes), "each source maps to a distinct target")
	for _, dst := range axes {
		assert.True(t, targets[dst], "every axis appears as a target")
	}
}

func TestParentPropagatesPauseCreditToChildren(t *testing.T) {
	sink := &nopSink{}

	child := modifier.NewInstance("child", nil, sink, nil)
	ck, ok := modifier.New("invert", child, modifier.Declaration{})
	require.True(t, ok)
	child.Kind = ck

	parent := modifier.NewInstance("combo", nil, sink, nil)
	pk, ok := modifier.New("parent", parent, modifier.Declaration{FixedChildren: []*modifier.Instance{child}})
	require.True(t, ok)
	parent.Kind = pk
	parent.EngineBegin()

	parent.EngineUpdate(true, time.Hour)
	assert.Less(t, child.Lifetime(), time.Duration(0),
		"a paused tick credits the child's pause accumulator too")
}

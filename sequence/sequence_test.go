package sequence_test

import (
	"testing"

	"github.com/chaosrig/engine/event"
	"github.com/chaosrig/engine/sequence"
	"github.com/chaosrig/engine/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct{ applied []event.DeviceEvent }

func (r *recordingSink) ApplyEvent(e event.DeviceEvent) { r.applied = append(r.applied, e) }

func mustInput(t *testing.T, name string) *signal.Input {
	t.Helper()
	in, ok := signal.GetByName(name)
	require.True(t, ok)
	return in
}

func TestAddPressEmitsHoldThenRelease(t *testing.T) {
	x := mustInput(t, "X")
	seq := &sequence.Sequence{}
	seq.AddPress(x, 1)

	require.Len(t, seq.Events, 2)
	assert.EqualValues(t, 1, seq.Events[0].Value)
	assert.EqualValues(t, 0, seq.Events[1].Value)
}

func TestAddDelayEmitsSentinel(t *testing.T) {
	seq := &sequence.Sequence{}
	seq.AddDelay(1000)
	require.Len(t, seq.Events, 1)
	assert.True(t, seq.Events[0].IsDelay())
}

func TestSendParallelAdvancesAcrossDelay(t *testing.T) {
	x := mustInput(t, "X")
	seq := &sequence.Sequence{}
	seq.AddHold(x, 1, 100)
	seq.AddDelay(200)
	seq.AddRelease(x, 50)

	sink := &recordingSink{}

	assert.False(t, seq.SendParallel(sink, 0))
	assert.False(t, seq.SendParallel(sink, 150))
	assert.False(t, seq.SendParallel(sink, 300))
	assert.True(t, seq.SendParallel(sink, 400))

	require.Len(t, sink.applied, 2)
	assert.EqualValues(t, 1, sink.applied[0].Value)
	assert.EqualValues(t, 0, sink.applied[1].Value)
}

func TestSendParallelResetsForReplay(t *testing.T) {
	x := mustInput(t, "X")
	seq := &sequence.Sequence{}
	seq.AddPress(x, 1)
	sink := &recordingSink{}

	for !seq.SendParallel(sink, sequence.DefaultPressTime+sequence.DefaultReleaseTime) {
	}
	assert.Len(t, sink.applied, 2)

	sink.applied = nil
	for !seq.SendParallel(sink, sequence.DefaultPressTime+sequence.DefaultReleaseTime) {
	}
	assert.Len(t, sink.applied, 2)
}

func TestHybridHoldEmitsBothFaces(t *testing.T) {
	l2 := mustInput(t, "L2")
	seq := &sequence.Sequence{}
	seq.AddHold(l2, 0, 100)

	require.Len(t, seq.Events, 2)
	assert.EqualValues(t, signal.TypeButton, seq.Events[0].Type)
	assert.EqualValues(t, signal.TypeAxis, seq.Events[1].Type)
	assert.EqualValues(t, signal.JoystickMax, seq.Events[1].Value)
}

package engine

import (
	"github.com/chaosrig/engine/event"
	"github.com/chaosrig/engine/modifier"
	"github.com/chaosrig/engine/signal"
)

// FakePipelinedEvent implements modifier.Injector. It hands the event
// back to the engine actor's own mailbox rather than recursing
// directly, so a modifier callback can call it freely regardless of
// where in the tick it is running.
func (a *EngineActor) FakePipelinedEvent(e event.DeviceEvent, source *modifier.Instance) {
	if a.sys == nil || a.self == nil {
		a.fakePipelinedEvent(e, source)
		return
	}
	a.sys.Send(a.self, fakeInject{Event: e, Source: source}, nil)
}

// handleRawEvent feeds one raw controller event through the pipeline.
func (a *EngineActor) handleRawEvent(e event.DeviceEvent) {
	in, ok := signal.GetByEvent(e)
	if ok {
		a.state.record(in, e.Value)
	}

	a.applyPauseGate(&e)
	if a.pause {
		return
	}

	out, keep := a.sniffify(e)
	if !keep {
		debugf("event %d.%d dropped in pipeline", e.Type, e.ID)
		return
	}
	a.sink.ApplyEvent(out)
}

// applyPauseGate implements the pause toggles, always checked on the
// raw signal, never on a remap. The outgoing SHARE value is always
// zeroed so the console never sees the resume gesture.
func (a *EngineActor) applyPauseGate(e *event.DeviceEvent) {
	in, ok := signal.GetByEvent(*e)
	if !ok {
		return
	}

	switch in.Signal {
	case signal.OPTIONS, signal.PS:
		if e.Value != 0 && !a.pause {
			a.pause = true
			a.pausePrimer = false
			a.broadcastPause(true)
		}

	case signal.SHARE:
		if e.Value != 0 && a.pause {
			if a.gameReady {
				a.pausePrimer = true
			} else {
				a.pausePrimer = false
			}
		} else if e.Value == 0 && a.pausePrimer {
			a.pause = false
			a.pausePrimer = false
			a.broadcastPause(false)
		}
		e.Value = 0
	}
}

func (a *EngineActor) broadcastPause(paused bool) {
	if a.sys == nil {
		return
	}
	for _, sub := range a.subscribers {
		a.sys.Send(sub, PauseTelemetry{Paused: paused}, nil)
	}
}

// sniffify runs the remap pass then the tweak pass across the active
// list, in activation order, short-circuiting on the first drop.
func (a *EngineActor) sniffify(e event.DeviceEvent) (event.DeviceEvent, bool) {
	res := a.table.Translate(e, 0)
	if !res.Ok {
		return e, false
	}
	for _, synth := range res.Synthetic {
		a.sink.ApplyEvent(synth)
	}
	cur := res.Primary

	for _, m := range a.active {
		var keep bool
		cur, keep = m.EngineRemap(cur)
		if !keep {
			return cur, false
		}
	}

	for _, m := range a.active {
		var keep bool
		cur, keep = m.EngineTweak(cur)
		if !keep {
			return cur, false
		}
	}

	return cur, true
}

// fakePipelinedEvent is the actual injection logic: tweak-only,
// starting after source's position in the active list (so source
// never sees its own injected event), or across the whole list if
// source is not currently active. A source running as a Parent's
// child resolves to that Parent, since only top-level modifiers
// appear in the active list.
func (a *EngineActor) fakePipelinedEvent(e event.DeviceEvent, source *modifier.Instance) {
	startIdx := 0
	if source != nil {
		top := source.Owner()
		for i, m := range a.active {
			if m == top {
				startIdx = i + 1
				break
			}
		}
	}

	cur := e
	for _, m := range a.active[startIdx:] {
		var keep bool
		cur, keep = m.EngineTweak(cur)
		if !keep {
			debugf("injected event %d.%d dropped", e.Type, e.ID)
			return
		}
	}
	a.sink.ApplyEvent(cur)
}

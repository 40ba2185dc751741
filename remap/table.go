package remap

import (
	"sync"
	"time"

	"github.com/chaosrig/engine/event"
	"github.com/chaosrig/engine/signal"
)

// Table holds the live per-input remap records, the cascading install
// logic, and per-input TOUCHPAD_ACTIVE edge state. One Table is owned
// by the Engine.
type Table struct {
	mu       sync.Mutex
	records  map[signal.Name]Record
	active   map[signal.Name]bool // touchpad-active prior-state, by TOUCHPAD_ACTIVE* signal
	touchpad TouchpadSource
	now      func() uint32 // microseconds since the table was built
}

// NewTable builds an identity table: every registered input maps to
// itself. touchpad services the Touchpad→Axis translation rule.
func NewTable(touchpad TouchpadSource) *Table {
	start := time.Now()
	t := &Table{
		records:  make(map[signal.Name]Record),
		active:   make(map[signal.Name]bool),
		touchpad: touchpad,
		now:      func() uint32 { return uint32(time.Since(start).Microseconds()) },
	}
	for _, in := range signal.All() {
		t.records[in.Signal] = Identity(in)
	}
	return t
}

// InstallCascading installs a batch of remaps. Each incoming
// destination is resolved through any chain already installed at it,
// and any existing record whose destination is the incoming source is
// repointed at the incoming destination, so the composed chain always
// collapses to one effective target.
func (t *Table) InstallCascading(batch []Record) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Cascading is evaluated against the table as it stood before this
	// batch, so a batch that swaps two inputs installs both halves
	// as written instead of collapsing one onto the other.
	prior := make(map[signal.Name]Record, len(t.records))
	for sig, rec := range t.records {
		prior[sig] = rec
	}

	for _, incoming := range batch {
		// Follow any chain already installed at the incoming destination
		// so the stored record always names the final target.
		for hops := 0; incoming.To != nil && hops < len(prior); hops++ {
			next, found := prior[incoming.To.Signal]
			if !found || next.To == nil || next.To == next.From {
				break
			}
			incoming.To = next.To
		}

		// Any record already pointing at the incoming source is
		// repointed at the incoming target, so its resolved
		// destination stays one lookup away.
		for sig, existing := range t.records {
			was, found := prior[sig]
			if !found || was.To != incoming.From || was.To == was.From {
				continue
			}
			existing.To = incoming.To
			t.records[sig] = existing
		}

		t.records[incoming.From.Signal] = incoming
	}
}

// ClearAll resets every record to identity. The caller (the Engine) is
// responsible for asking still-active Remap modifiers to reinstall
// afterward.
func (t *Table) ClearAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for sig, rec := range t.records {
		t.records[sig] = Identity(rec.From)
	}
	t.active = make(map[signal.Name]bool)
}

// Reset restores in's record to identity, as a Remap modifier does for
// each of its sources when it finishes.
func (t *Table) Reset(in *signal.Input) {
	t.mu.Lock()
	t.records[in.Signal] = Identity(in)
	t.mu.Unlock()
}

// Get returns the current remap record installed for in.
func (t *Table) Get(in *signal.Input) Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.records[in.Signal]
}

func emitAt(to *signal.Input, wireType signal.WireType, value int16) event.DeviceEvent {
	return event.DeviceEvent{Value: value, Type: uint8(wireType), ID: to.ID(wireType)}
}

// Translate produces the post-remap form of e, or a dropped Result if
// the translation rules call for dropping it. now is the timestamp
// handed to the touchpad tracker for velocity computation; pass 0 to
// use the table's own clock.
func (t *Table) Translate(e event.DeviceEvent, now uint32) Result {
	if now == 0 {
		now = t.now()
	}
	from, ok1 := signal.GetByEvent(e)
	if !ok1 {
		return dropped()
	}

	t.mu.Lock()
	rec := t.records[from.Signal]
	t.mu.Unlock()

	to := rec.To
	if to == nil || to.Signal == signal.NOTHING {
		return dropped()
	}

	if from.Signal == signal.TOUCHPADActive || from.Signal == signal.TOUCHPADActive2 {
		return t.translateTouchpadActive(from, rec, e)
	}

	if to.Signal == from.Signal && rec.IsIdentity() {
		return ok(e)
	}

	if from.Class == to.Class {
		return t.translateSameClass(from, to, rec, e, now)
	}
	return t.translateCrossClass(from, to, rec, e, now)
}

func (t *Table) translateSameClass(from, to *signal.Input, rec Record, e event.DeviceEvent, now uint32) Result {
	wt := to.Class.WireType()
	value := e.Value

	if from.Class == signal.Touchpad {
		value = t.touchpad.ToAxis(from.Signal, e.Value, now)
	}
	if rec.Invert && to.Class.WireType() == signal.TypeAxis {
		value = signal.JoystickLimit(-int32(value))
	}
	return ok(emitAt(to, wt, value))
}

func (t *Table) translateCrossClass(from, to *signal.Input, rec Record, e event.DeviceEvent, now uint32) Result {
	value := e.Value

	switch {
	case from.Class == signal.Button && to.Class == signal.Axis:
		var v int16
		if value != 0 {
			if rec.ToMin {
				v = int16(signal.JoystickMin)
			} else {
				v = int16(signal.JoystickMax)
			}
		}
		return finishAxis(to, v, rec)

	case from.Class == signal.Button && to.Class == signal.ThreeState:
		var v int16
		if value != 0 {
			if rec.ToMin {
				v = -1
			} else {
				v = 1
			}
		}
		return ok(emitAt(to, signal.TypeAxis, v))

	case from.Class == signal.Button && to.Class == signal.Hybrid:
		buttonEvt := emitAt(to, signal.TypeButton, value)
		var axisVal int16
		if value != 0 {
			axisVal = int16(signal.JoystickMax)
		} else {
			axisVal = int16(signal.JoystickMin)
		}
		return ok(buttonEvt, emitAt(to, signal.TypeAxis, axisVal))

	case from.Class == signal.Hybrid && to.Class == signal.Button:
		if e.Type == uint8(signal.TypeAxis) {
			return dropped()
		}
		return ok(emitAt(to, signal.TypeButton, value))

	case from.Class == signal.Hybrid && to.Class == signal.ThreeState:
		if e.Type == uint8(signal.TypeAxis) {
			return dropped()
		}
		var v int16
		if rec.ToMin {
			v = -1
		} else {
			v = 1
		}
		return ok(emitAt(to, signal.TypeAxis, v))

	case from.Class == signal.ThreeState && to.Class == signal.Axis:
		v := signal.JoystickLimit(int32(value) * signal.JoystickMax)
		return finishAxis(to, v, rec)

	case from.Class == signal.ThreeState && (to.Class == signal.Button || to.Class == signal.Hybrid):
		var v int16
		if value != 0 {
			v = 1
		}
		wt := to.Class.WireType()
		return ok(emitAt(to, wt, v))

	case from.Class == signal.Axis && (to.Class == signal.Button || to.Class == signal.Hybrid):
		return t.translateAxisToButton(to, rec, value)

	case from.Class == signal.Axis && to.Class == signal.ThreeState:
		var v int16
		switch {
		case int32(value) >= rec.Threshold:
			v = 1
		case int32(value) <= -rec.Threshold:
			v = -1
		}
		return ok(emitAt(to, signal.TypeAxis, v))

	case from.Class == signal.Accelerometer && to.Class == signal.Axis:
		if rec.Scale == 0 {
			return dropped()
		}
		v := signal.JoystickLimit(int32(-float64(value) / rec.Scale))
		return finishAxis(to, v, rec)

	case from.Class == signal.Touchpad && to.Class == signal.Axis:
		v := t.touchpad.ToAxis(from.Signal, value, now)
		return finishAxis(to, v, rec)
	}

	return dropped()
}

func finishAxis(to *signal.Input, v int16, rec Record) Result {
	if rec.Invert {
		v = signal.JoystickLimit(-int32(v))
	}
	return ok(emitAt(to, signal.TypeAxis, v))
}

func (t *Table) translateAxisToButton(to *signal.Input, rec Record, value int16) Result {
	wt := to.Class.WireType()
	switch {
	case int32(value) >= rec.Threshold:
		if rec.ToNegative != nil {
			return ok(emitAt(to, wt, 1), emitAt(rec.ToNegative, rec.ToNegative.Class.WireType(), 0))
		}
		return ok(emitAt(to, wt, 1))
	case rec.ToNegative != nil && int32(value) <= -rec.Threshold:
		return ok(emitAt(rec.ToNegative, rec.ToNegative.Class.WireType(), 1), emitAt(to, wt, 0))
	default:
		if rec.ToNegative != nil {
			return ok(emitAt(to, wt, 0), emitAt(rec.ToNegative, rec.ToNegative.Class.WireType(), 0))
		}
		return ok(emitAt(to, wt, 0))
	}
}

// translateTouchpadActive implements the TOUCHPAD_ACTIVE falling/rising
// edge special case.
func (t *Table) translateTouchpadActive(from *signal.Input, rec Record, e event.DeviceEvent) Result {
	t.mu.Lock()
	wasActive := t.active[from.Signal]
	if e.Value == 0 && !wasActive {
		t.active[from.Signal] = true
	}
	nowActive := t.active[from.Signal]
	var synth []event.DeviceEvent
	if e.Value != 0 && nowActive {
		for _, disable := range rec.DisableSignals {
			synth = append(synth, emitAt(disable, disable.Class.WireType(), 0))
		}
		if t.touchpad != nil {
			t.touchpad.FirstTouch()
		}
		t.active[from.Signal] = false
	}
	t.mu.Unlock()

	to := rec.To
	if to == nil {
		return dropped()
	}
	return ok(emitAt(to, to.Class.WireType(), e.Value), synth...)
}

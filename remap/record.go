// Package remap implements the cascading Remap Table: the
// per-input rewrite records a Remap modifier installs, and the
// translation of one raw DeviceEvent into its post-remap form.
package remap

import (
	"github.com/chaosrig/engine/event"
	"github.com/chaosrig/engine/signal"
)

// Record is one installed per-input remap.
// The zero value is not meaningful on its own; use Identity to build
// one.
type Record struct {
	From *signal.Input
	To   *signal.Input

	// ToNegative is the secondary target for an axis→two-button split
	// (Axis → Button/Hybrid translation rule).
	ToNegative *signal.Input

	ToMin     bool
	Invert    bool
	Threshold int32
	Scale     float64

	// DisableSignals lists the axes to zero out on a TOUCHPAD_ACTIVE
	// rising edge, preventing a stuck axis.
	DisableSignals []*signal.Input
}

// Identity returns the no-op remap record for in: it maps to itself.
func Identity(in *signal.Input) Record {
	return Record{From: in, To: in}
}

// IsIdentity reports whether r maps its input to itself unchanged.
func (r Record) IsIdentity() bool {
	return r.To == r.From && r.ToNegative == nil && !r.Invert && r.Scale == 0
}

// TouchpadSource converts an absolute touchpad sample into an
// axis-velocity value; implemented by the touchpad package. The
// indirection avoids remap depending on touchpad's ring-buffer state
// directly.
type TouchpadSource interface {
	ToAxis(sig signal.Name, value int16, now uint32) int16
	FirstTouch()
}

// Result is the outcome of translating one DeviceEvent: the primary
// transformed event (meaningful only if Ok), plus any synthetic events
// the translation produced that must be delivered to the controller
// sink directly (they are already in post-remap coordinates).
type Result struct {
	Primary   event.DeviceEvent
	Ok        bool
	Synthetic []event.DeviceEvent
}

func dropped() Result { return Result{} }

func ok(e event.DeviceEvent, synthetic ...event.DeviceEvent) Result {
	return Result{Primary: e, Ok: true, Synthetic: synthetic}
}

package modifier

import (
	"math/rand"

	"github.com/chaosrig/engine/event"
	"github.com/chaosrig/engine/remap"
	"github.com/chaosrig/engine/signal"
	"github.com/chaosrig/engine/utils"
)

// Remap installs a batch of per-input rewrites into the shared remap
// table on begin, either from a fixed mapping or, in random mode, a
// uniform permutation of destinations over the declared sources.
// Mutually exclusive with itself: callers configure one of
// Mapping or (RandomRemap + Sources + Destinations), never both.
type Remap struct {
	Base
	owner *Instance
	table *remap.Table

	Mapping []remap.Record

	RandomRemap  bool
	Sources      []*signal.Input
	Destinations []*signal.Input
	rng          func(n int) int

	installed []remap.Record
}

// NewRemap builds the remap kind bound to the engine's shared table.
func NewRemap(owner *Instance, table *remap.Table) *Remap {
	return &Remap{owner: owner, table: table, rng: rand.Intn}
}

func (r *Remap) Begin() {
	if r.RandomRemap {
		dest := append([]*signal.Input{}, r.Destinations...)
		utils.Shuffle(len(dest), r.rng, func(i, j int) { dest[i], dest[j] = dest[j], dest[i] })

		batch := make([]remap.Record, 0, len(r.Sources))
		for i, src := range r.Sources {
			if i >= len(dest) {
				break
			}
			batch = append(batch, remap.Record{From: src, To: dest[i]})
		}
		r.installed = batch
	} else {
		r.installed = r.Mapping
	}
	r.table.InstallCascading(r.installed)
}

// Reinstall puts this modifier's current batch back into the table
// after a table-wide clear, without redrawing a random permutation.
func (r *Remap) Reinstall() {
	if len(r.installed) > 0 {
		r.table.InstallCascading(r.installed)
	}
}

// Finish retracts this modifier's records, restoring each source to
// identity.
func (r *Remap) Finish() {
	for _, rec := range r.installed {
		r.table.Reset(rec.From)
	}
	r.installed = nil
}

// Remap is a no-op: the engine's sniffify pass already runs every
// event through the shared table exactly once, and Begin is what puts
// this modifier's records into that table. Consulting the table again
// here would apply it a second time to an event it already rewrote.
func (r *Remap) Remap(e event.DeviceEvent) (event.DeviceEvent, bool) {
	return e, true
}

package modifier

import (
	"math/rand"
	"time"

	"github.com/chaosrig/engine/event"
	"github.com/chaosrig/engine/utils"
)

// Registry exposes the engine's modifier map to a Parent modifier so it
// can draw random children.
type Registry interface {
	// Candidates returns every modifier eligible for random selection:
	// AllowAsChild true and not currently active.
	Candidates() []*Instance
}

// Parent owns a fixed child list and, in random mode, a list generated
// at begin by drawing uniformly without replacement from the engine's
// modifier map. It delegates its whole lifecycle to its children, in
// fixed-then-random order.
type Parent struct {
	Base
	owner *Instance

	FixedChildren []*Instance
	Random        bool
	RandomCount   int
	registry      Registry
	rng           func(n int) int

	randomChildren []*Instance
}

func NewParent(owner *Instance, registry Registry, random bool, randomCount int, fixed []*Instance) *Parent {
	return &Parent{owner: owner, registry: registry, Random: random, RandomCount: randomCount, FixedChildren: fixed, rng: rand.Intn}
}

func (p *Parent) children() []*Instance {
	out := make([]*Instance, 0, len(p.FixedChildren)+len(p.randomChildren))
	out = append(out, p.FixedChildren...)
	out = append(out, p.randomChildren...)
	return out
}

func (p *Parent) Begin() {
	if p.Random && p.registry != nil {
		candidates := p.registry.Candidates()
		utils.Shuffle(len(candidates), p.rng, func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
		n := p.RandomCount
		if n > len(candidates) {
			n = len(candidates)
		}
		p.randomChildren = append([]*Instance{}, candidates[:n]...)
	}

	for _, child := range p.children() {
		child.parent = p.owner
		child.AllowAsChild = false
		child.EngineBegin()
	}
}

func (p *Parent) Update(wasPaused bool, dt time.Duration) {
	for _, child := range p.children() {
		child.EngineUpdate(wasPaused, dt)
	}
}

func (p *Parent) Tweak(e event.DeviceEvent) (event.DeviceEvent, bool) {
	cur := e
	for _, child := range p.children() {
		var ok bool
		cur, ok = child.EngineTweak(cur)
		if !ok {
			return cur, false
		}
	}
	return cur, true
}

func (p *Parent) Finish() {
	for _, child := range p.children() {
		child.EngineFinish()
		child.parent = nil
	}
	p.randomChildren = nil
}

// Package engine implements the tick-driven modifier scheduler, the
// event pipeline, and the game-loader facade the Chaos Rig is built
// from. A single EngineActor owns all of it; every piece of mutable
// state is only ever touched from the actor's serialized mailbox
// goroutine, so no explicit mutex is needed.
package engine

import (
	"time"

	"github.com/chaosrig/engine/actor"
	"github.com/chaosrig/engine/modifier"
	"github.com/chaosrig/engine/remap"
	"github.com/chaosrig/engine/touchpad"
)

// EngineActor is the Chaos Rig's mod-lifecycle scheduler and event
// pipeline, run as one actor.
type EngineActor struct {
	cfg Config

	sys        *actor.Engine
	self       *actor.PID
	sink       Sink
	gameLoader GameLoader

	table    *remap.Table
	touchpad *touchpad.Tracker
	state    *stateStore

	known  map[string]*modifier.Instance // every declared modifier, by name
	menu   map[string]*MenuItem          // named game-menu navigation state
	active []*modifier.Instance          // insertion-ordered active list
	toStart []*modifier.Instance
	toStop  []*modifier.Instance

	pause       bool
	pausePrimer bool
	gameReady   bool
	pausedPrior bool
	keepGoing   bool

	currentGame string
	loadErrors  int

	ticker     *time.Ticker
	stopTickCh chan struct{}
	lastTick   time.Time

	subscribers []*actor.PID
}

// NewEngineActorProducer builds the producer the actor system spawns
// from. loader may be nil if newgame loading isn't needed (e.g. in
// tests).
func NewEngineActorProducer(sys *actor.Engine, cfg Config, sink Sink, loader GameLoader) actor.Producer {
	return func() actor.Actor {
		tp := touchpad.NewTracker()
		return &EngineActor{
			cfg:        cfg,
			sys:        sys,
			sink:       sink,
			gameLoader: loader,
			table:      remap.NewTable(tp),
			touchpad:   tp,
			state:      newStateStore(),
			known:      make(map[string]*modifier.Instance),
			menu:       make(map[string]*MenuItem),
			keepGoing:  true,
		}
	}
}

// Receive implements actor.Actor.
func (a *EngineActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case actor.Started:
		a.handleStarted(ctx)
	case actor.Stopping:
		a.handleStopping()
	case Tick:
		a.tick()
	case RawEvent:
		a.handleRawEvent(msg.Event)
	case fakeInject:
		a.fakePipelinedEvent(msg.Event, msg.Source)
	case Winner:
		a.winner(msg.Name, msg.Time)
	case Remove:
		a.remove(msg.Name)
	case Reset:
		a.reset()
	case NewGame:
		status := a.newGame(msg.Name)
		if ctx.RequestID() != "" {
			ctx.Reply(status)
		}
	case NumMods:
		a.numMods(msg.N)
	case Subscribe:
		a.subscribe(msg.PID)
	case Unsubscribe:
		a.unsubscribe(msg.PID)
	case StatusQuery:
		if ctx.RequestID() != "" {
			ctx.Reply(a.status())
		}
	case Exit:
		a.keepGoing = false
		a.sys.Stop(a.self)
	}
}

func (a *EngineActor) handleStarted(ctx actor.Context) {
	a.self = ctx.Self()
	a.lastTick = time.Now()
	a.ticker = time.NewTicker(a.cfg.TickPeriod)
	a.stopTickCh = make(chan struct{})

	tickerCh := a.ticker.C
	stopCh := a.stopTickCh
	sys := a.sys
	self := a.self
	go func() {
		for {
			select {
			case <-stopCh:
				return
			case _, ok := <-tickerCh:
				if !ok {
					return
				}
				sys.Send(self, Tick{}, nil)
			}
		}
	}()
	logf("engine actor started")
}

func (a *EngineActor) handleStopping() {
	if a.ticker != nil {
		a.ticker.Stop()
	}
	if a.stopTickCh != nil {
		close(a.stopTickCh)
	}
}

// tick runs one scheduler step: drain the stop and start queues, run
// lifecycle callbacks, then enforce the active cap and lifespans.
func (a *EngineActor) tick() {
	now := time.Now()
	dt := now.Sub(a.lastTick)
	a.lastTick = now

	if a.pause {
		a.pausedPrior = true
		return
	}

	var toFinish, toBegin []*modifier.Instance

	for _, m := range a.toStop {
		a.removeFromSlice(&a.toStart, m)
		if a.removeFromSlice(&a.active, m) {
			toFinish = append(toFinish, m)
		}
	}
	a.toStop = nil

	for _, m := range a.toStart {
		if a.contains(a.active, m) {
			continue
		}
		a.active = append(a.active, m)
		toBegin = append(toBegin, m)
	}
	a.toStart = nil

	toUpdate := append([]*modifier.Instance{}, a.active...)
	wasPaused := a.pausedPrior

	for _, m := range toFinish {
		m.EngineFinish()
	}
	for _, m := range toBegin {
		m.EngineBegin()
	}
	for _, m := range toUpdate {
		m.EngineUpdate(wasPaused, dt)
	}

	a.pausedPrior = false

	a.evict()
}

func (a *EngineActor) evict() {
	if len(a.active) > a.cfg.NumActive {
		oldest := a.active[0]
		oldestLifetime := oldest.Lifetime()
		for _, m := range a.active[1:] {
			if m.Lifetime() > oldestLifetime {
				oldest = m
				oldestLifetime = m.Lifetime()
			}
		}
		a.removeFromSlice(&a.active, oldest)
		oldest.EngineFinish()
		return
	}

	for _, m := range a.active {
		if m.Lifetime() > m.Lifespan {
			a.removeFromSlice(&a.active, m)
			m.EngineFinish()
			return
		}
	}
}

func (a *EngineActor) contains(list []*modifier.Instance, target *modifier.Instance) bool {
	for _, m := range list {
		if m == target {
			return true
		}
	}
	return false
}

func (a *EngineActor) removeFromSlice(list *[]*modifier.Instance, target *modifier.Instance) bool {
	for i, m := range *list {
		if m == target {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}

// winner handles one incoming vote-winner message.
func (a *EngineActor) winner(name string, lifetime time.Duration) {
	m, ok := a.known[name]
	if !ok {
		logf("winner: unknown modifier %q", name)
		return
	}
	if lifetime == 0 {
		lifetime = a.cfg.TimePerModifier
	}

	if a.contains(a.active, m) {
		m.Lifespan += lifetime
		a.removeFromSlice(&a.toStop, m)
		return
	}
	if a.contains(a.toStart, m) {
		m.Lifespan += lifetime
		return
	}

	m.Lifespan = lifetime
	a.toStart = append(a.toStart, m)
	a.removeFromSlice(&a.toStop, m)
}

func (a *EngineActor) remove(name string) {
	m, ok := a.known[name]
	if !ok {
		return
	}
	if a.removeFromSlice(&a.toStart, m) {
		return
	}
	if a.contains(a.active, m) && !a.contains(a.toStop, m) {
		a.toStop = append(a.toStop, m)
	}
}

func (a *EngineActor) reset() {
	a.toStart = nil
	for _, m := range a.active {
		if !a.contains(a.toStop, m) {
			a.toStop = append(a.toStop, m)
		}
	}
}

func (a *EngineActor) numMods(n int) {
	if n >= 1 {
		a.cfg.NumActive = n
	}
}

func (a *EngineActor) subscribe(pid *actor.PID) {
	for _, s := range a.subscribers {
		if s == pid {
			return
		}
	}
	a.subscribers = append(a.subscribers, pid)
}

func (a *EngineActor) unsubscribe(pid *actor.PID) {
	for i, s := range a.subscribers {
		if s == pid {
			a.subscribers = append(a.subscribers[:i], a.subscribers[i+1:]...)
			return
		}
	}
}

func (a *EngineActor) newGame(name string) Status {
	a.pause = true
	a.pausePrimer = false

	ok := true
	if a.gameLoader != nil {
		err := a.gameLoader.LoadGame(name, a)
		ok = err == nil
		if err != nil {
			a.loadErrors++
			logf("newgame %q failed: %v", name, err)
		}
	}
	a.gameReady = ok
	a.currentGame = name
	return a.status()
}

func (a *EngineActor) status() Status {
	st := Status{
		Game:       a.currentGame,
		Errors:     a.loadErrors,
		NumMods:    a.cfg.NumActive,
		CanUnpause: a.gameReady && a.loadErrors == 0,
		ModTime:    a.cfg.TimePerModifier.Seconds(),
	}
	for _, m := range a.known {
		if m.Unlisted {
			continue
		}
		lifespan := m.Lifespan.Seconds()
		groups := make([]string, 0, len(m.Groups))
		for g := range m.Groups {
			groups = append(groups, g)
		}
		st.Mods = append(st.Mods, ModStatus{Name: m.Name, Desc: m.Description, Groups: groups, Lifespan: lifespan})
	}
	return st
}

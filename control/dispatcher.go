package control

import (
	"time"

	"github.com/chaosrig/engine/actor"
	"github.com/chaosrig/engine/engine"
)

// Dispatch decodes one CommandFrame into Engine messages, each field
// processed independently in a fixed order, and
// returns zero or more outgoing frames ready to be written back to the
// connection: a game/newgame request yields one StatusFrame, or none
// if the engine does not answer within askTimeout.
func Dispatch(sys *actor.Engine, target *actor.PID, askTimeout time.Duration, frame CommandFrame) []interface{} {
	var out []interface{}

	if frame.Winner != nil {
		sys.Send(target, engine.Winner{Name: *frame.Winner, Time: asDuration(frame.Time)}, nil)
	}
	if frame.Remove != nil {
		sys.Send(target, engine.Remove{Name: *frame.Remove}, nil)
	}
	if frame.Reset {
		sys.Send(target, engine.Reset{}, nil)
	}
	if frame.NumMods != nil {
		sys.Send(target, engine.NumMods{N: *frame.NumMods}, nil)
	}
	switch {
	case frame.NewGame != nil:
		if resp, err := sys.Ask(target, engine.NewGame{Name: *frame.NewGame}, askTimeout); err == nil {
			out = append(out, statusFrame(resp.(engine.Status)))
		}
	case frame.Game:
		if resp, err := sys.Ask(target, engine.StatusQuery{}, askTimeout); err == nil {
			out = append(out, statusFrame(resp.(engine.Status)))
		}
	}
	if frame.Exit {
		sys.Send(target, engine.Exit{}, nil)
	}

	return out
}

func statusFrame(st engine.Status) StatusFrame {
	mods := make([]ModStatusFrame, 0, len(st.Mods))
	for _, m := range st.Mods {
		mods = append(mods, ModStatusFrame{Name: m.Name, Desc: m.Desc, Groups: m.Groups, Lifespan: m.Lifespan})
	}
	return StatusFrame{
		Game:       st.Game,
		Errors:     st.Errors,
		NumMods:    st.NumMods,
		CanUnpause: st.CanUnpause,
		ModTime:    st.ModTime,
		Mods:       mods,
	}
}

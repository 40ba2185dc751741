// Package control implements the control channel: it decodes
// incoming JSON command frames, dispatches them to the Engine actor,
// and turns engine telemetry back into outgoing JSON frames. It is
// transport-agnostic; transport/wschannel/ supplies the concrete
// WebSocket adapter.
package control

import "time"

// CommandFrame is one incoming control-channel JSON object. Every
// field is optional. The string and number fields are pointer-typed so
// the dispatcher can tell "absent" from "zero value"; the boolean
// flags (reset, game, exit) act only when true.
type CommandFrame struct {
	Winner  *string  `json:"winner,omitempty"`
	Time    *float64 `json:"time,omitempty"`
	Remove  *string  `json:"remove,omitempty"`
	Reset   bool     `json:"reset,omitempty"`
	Game    bool     `json:"game,omitempty"`
	NewGame *string  `json:"newgame,omitempty"`
	NumMods *int     `json:"nummods,omitempty"`
	Exit    bool     `json:"exit,omitempty"`
}

// PauseFrame is the outgoing pause-toggle telemetry frame.
type PauseFrame struct {
	Pause int `json:"pause"`
}

// ModStatusFrame is one entry in a StatusFrame's mod list.
type ModStatusFrame struct {
	Name     string   `json:"name"`
	Desc     string   `json:"desc"`
	Groups   []string `json:"groups"`
	Lifespan float64  `json:"lifespan"`
}

// StatusFrame is the outgoing game-status reply frame.
type StatusFrame struct {
	Game       string           `json:"game"`
	Errors     int              `json:"errors"`
	NumMods    int              `json:"nmods"`
	CanUnpause bool             `json:"can_unpause"`
	ModTime    float64          `json:"modtime"`
	Mods       []ModStatusFrame `json:"mods"`
}

func asDuration(seconds *float64) time.Duration {
	if seconds == nil {
		return 0
	}
	return time.Duration(*seconds * float64(time.Second))
}

// Package command implements named controller commands, and predicates
// over their current values that modifiers gate their behavior on.
package command

import (
	"github.com/chaosrig/engine/event"
	"github.com/chaosrig/engine/signal"
	"github.com/chaosrig/engine/utils"
)

// Command is a named reference to one controller input. Immutable after load.
type Command struct {
	Name  string
	Input *signal.Input
}

// Matches reports whether e landed on cmd's input.
func (cmd Command) Matches(e event.DeviceEvent) bool {
	return signal.Matches(cmd.Input, e)
}

// ThresholdType is the comparison a Condition applies to its inputs'
// values.
type ThresholdType int

const (
	Above ThresholdType = iota
	Below
	Greater
	Less
	Distance
	DistanceBelow
)

// StateSource supplies the live value of a command's input, used by
// transient conditions.
type StateSource interface {
	GetState(in *signal.Input) int16
}

// Condition is a named predicate over commands' values. A condition
// with an empty ClearOnList is transient: it reads live state every
// poll. Otherwise it is persistent: its
// state latches on events and GetState is never consulted.
type Condition struct {
	Name string

	WhileList     []Command
	Threshold     int32
	ThresholdType ThresholdType

	ClearOnList         []Command
	ClearThreshold      int32
	ClearThresholdType  ThresholdType

	persistentState bool
	liveValues      map[string]int16

	// Source supplies live controller state for transient evaluation
	// when the caller doesn't pass one explicitly; the engine sets it
	// when handing a modifier its private condition copy.
	Source StateSource
}

// NewCondition builds a transient or persistent condition depending on
// whether clearOn is empty.
func NewCondition(name string, while []Command, threshold int32, tt ThresholdType, clearOn []Command, clearThreshold int32, clearTT ThresholdType) *Condition {
	return &Condition{
		Name:               name,
		WhileList:          while,
		Threshold:          threshold,
		ThresholdType:      tt,
		ClearOnList:        clearOn,
		ClearThreshold:     clearThreshold,
		ClearThresholdType: clearTT,
		liveValues:         make(map[string]int16),
	}
}

// IsPersistent reports whether c latches state across events rather
// than reading live controller state.
func (c *Condition) IsPersistent() bool {
	return len(c.ClearOnList) > 0
}

// Clone returns an independent copy of c with private persistent
// state; every modifier instance owns its own condition copies.
func (c *Condition) Clone() *Condition {
	clone := *c
	clone.liveValues = make(map[string]int16, len(c.liveValues))
	for k, v := range c.liveValues {
		clone.liveValues[k] = v
	}
	clone.persistentState = false
	return &clone
}

// ConditionCheck is the combinator a ConditionSet folds its members'
// InCondition results through.
type ConditionCheck int

const (
	CheckAll ConditionCheck = iota
	CheckAny
	CheckNone
)

// ConditionSet pairs a list of conditions with how their individual
// pass/fail results combine into one verdict.
type ConditionSet struct {
	Conditions []*Condition
	Check      ConditionCheck
}

// Evaluate folds every condition's InCondition result through the
// set's Check combinator. An empty set is vacuously true, matching the
// plain-AND behavior of a modifier with no conditions at all.
func (cs ConditionSet) Evaluate() bool {
	switch cs.Check {
	case CheckAny:
		for _, c := range cs.Conditions {
			if c.InCondition(nil) {
				return true
			}
		}
		return len(cs.Conditions) == 0
	case CheckNone:
		for _, c := range cs.Conditions {
			if c.InCondition(nil) {
				return false
			}
		}
		return true
	default: // CheckAll
		for _, c := range cs.Conditions {
			if !c.InCondition(nil) {
				return false
			}
		}
		return true
	}
}

// InCondition reports whether c currently passes, consulting live
// controller state for transient conditions or latched state for
// persistent ones.
func (c *Condition) InCondition(state StateSource) bool {
	if state == nil {
		state = c.Source
	}
	if !c.IsPersistent() {
		return evalLive(c.WhileList, c.Threshold, c.ThresholdType, state)
	}
	return c.persistentState
}

// UpdateState is called for each event a modifier's condition
// observes; it is a no-op for transient conditions.
func (c *Condition) UpdateState(e event.DeviceEvent) {
	if !c.IsPersistent() {
		return
	}

	matched := false
	for _, cmd := range c.WhileList {
		if cmd.Matches(e) {
			c.liveValues[cmd.Input.Name] = e.Value
			matched = true
		}
	}
	for _, cmd := range c.ClearOnList {
		if cmd.Matches(e) {
			c.liveValues[cmd.Input.Name] = e.Value
			matched = true
		}
	}
	if !matched {
		return
	}

	if evalLatched(c.WhileList, c.Threshold, c.ThresholdType, c.liveValues) {
		c.persistentState = true
	}
	if evalLatched(c.ClearOnList, c.ClearThreshold, c.ClearThresholdType, c.liveValues) {
		c.persistentState = false
	}
}

func evalLive(cmds []Command, threshold int32, tt ThresholdType, state StateSource) bool {
	if tt == Distance || tt == DistanceBelow {
		if len(cmds) != 2 || state == nil {
			return false
		}
		x := state.GetState(cmds[0].Input)
		y := state.GetState(cmds[1].Input)
		return evalDistance(tt, threshold, x, y)
	}
	if state == nil {
		return false
	}
	for _, cmd := range cmds {
		if !evalSingle(tt, threshold, state.GetState(cmd.Input)) {
			return false
		}
	}
	return true
}

func evalLatched(cmds []Command, threshold int32, tt ThresholdType, values map[string]int16) bool {
	if len(cmds) == 0 {
		return false
	}
	if tt == Distance || tt == DistanceBelow {
		if len(cmds) != 2 {
			return false
		}
		return evalDistance(tt, threshold, values[cmds[0].Input.Name], values[cmds[1].Input.Name])
	}
	for _, cmd := range cmds {
		if !evalSingle(tt, threshold, values[cmd.Input.Name]) {
			return false
		}
	}
	return true
}

func evalDistance(tt ThresholdType, threshold int32, x, y int16) bool {
	d := utils.Distance(float64(x), float64(y))
	if tt == Distance {
		return d >= float64(threshold)
	}
	return d < float64(threshold)
}

func evalSingle(tt ThresholdType, threshold int32, v int16) bool {
	switch tt {
	case Above:
		return abs32(int32(v)) >= threshold
	case Below:
		return abs32(int32(v)) < threshold
	case Greater:
		return int32(v) >= threshold
	case Less:
		return int32(v) < threshold
	default:
		return false
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

package configfile

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/chaosrig/engine/command"
	"github.com/chaosrig/engine/engine"
	"github.com/chaosrig/engine/remap"
	"github.com/chaosrig/engine/sequence"
	"github.com/chaosrig/engine/signal"
)

// LoadReport accumulates config errors: missing keys, unknown modifier
// kinds, duplicate names, bad ranges, unknown references. Loading never
// panics or aborts early; it keeps going and reports everything it
// found wrong.
type LoadReport struct {
	Errors []string
}

func (r *LoadReport) add(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// HasErrors reports whether anything went wrong during loading.
func (r *LoadReport) HasErrors() bool { return len(r.Errors) > 0 }

// Loader loads game descriptions from a directory of "<name>.toml"
// files.
type Loader struct {
	Dir    string
	Report LoadReport
}

// NewLoader builds a Loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// LoadGame implements engine.GameLoader.
func (l *Loader) LoadGame(name string, facade engine.Facade) error {
	l.Report = LoadReport{}

	path := filepath.Join(l.Dir, name+".toml")
	var doc gameFile
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		l.Report.add("failed to parse %s: %v", path, err)
		return fmt.Errorf("configfile: %s", l.Report.Errors[len(l.Report.Errors)-1])
	}

	commands := l.loadCommands(doc.Commands, facade)
	conditions := l.loadConditions(doc.Conditions, commands)
	l.loadRemaps(doc.Remaps, facade)
	l.loadModifiers(doc.Modifiers, facade, commands, conditions)
	l.loadMenu(doc.Menu, facade)

	if l.Report.HasErrors() {
		return fmt.Errorf("configfile: %d error(s) loading %s", len(l.Report.Errors), name)
	}
	return nil
}

func (l *Loader) loadMenu(decls []menuItemDecl, facade engine.Facade) {
	for _, d := range decls {
		if d.Name == "" {
			l.Report.add("menu item missing name")
			continue
		}
		facade.RegisterMenuItem(d.Name, d.InitialState)
	}
}

func (l *Loader) loadCommands(decls []commandDecl, facade engine.Facade) map[string]command.Command {
	out := make(map[string]command.Command, len(decls))
	for _, d := range decls {
		if _, dup := out[d.Name]; dup {
			l.Report.add("duplicate command name %q", d.Name)
			continue
		}
		cmd, err := facade.AddGameCommand(d.Name, d.Input)
		if err != nil {
			l.Report.add("command %q: %v", d.Name, err)
			continue
		}
		out[d.Name] = cmd
	}
	return out
}

func (l *Loader) loadConditions(decls []conditionDecl, commands map[string]command.Command) map[string]*command.Condition {
	out := make(map[string]*command.Condition, len(decls))
	for _, d := range decls {
		while := l.resolveCommands(d.While, commands, d.Name)
		if len(while) == 0 {
			l.Report.add("condition %q: while_list must be nonempty", d.Name)
			continue
		}
		clearOn := l.resolveCommands(d.ClearOn, commands, d.Name)

		tt, ok := parseThresholdType(d.ThresholdType)
		if !ok {
			l.Report.add("condition %q: unknown threshold_type %q", d.Name, d.ThresholdType)
			continue
		}
		clearTT, _ := parseThresholdType(d.ClearThresholdType)

		if (tt == command.Distance || tt == command.DistanceBelow) && len(while) != 2 {
			l.Report.add("condition %q: distance thresholds need exactly 2 inputs, got %d", d.Name, len(while))
			continue
		}
		thr, ok := l.scaleThreshold(d.Name, d.Threshold, while)
		if !ok {
			continue
		}
		clearThr, ok := l.scaleThreshold(d.Name, d.ClearThreshold, clearOn)
		if !ok {
			continue
		}

		out[d.Name] = command.NewCondition(d.Name, while, thr, tt, clearOn, clearThr, clearTT)
	}
	return out
}

// scaleThreshold translates a TOML proportion in [-1, 1] into the
// signed value actually compared against the wire, scaled by the first
// referenced input's maximum (1 for buttons, the joystick limit for
// axes).
func (l *Loader) scaleThreshold(name string, proportion float64, cmds []command.Command) (int32, bool) {
	if proportion < -1 || proportion > 1 {
		l.Report.add("condition %q: threshold %v out of range [-1, 1]", name, proportion)
		return 0, false
	}
	if len(cmds) == 0 {
		return 0, true
	}
	return int32(proportion * float64(cmds[0].Input.Class.Max(true))), true
}

func (l *Loader) resolveCommands(names []string, commands map[string]command.Command, owner string) []command.Command {
	var out []command.Command
	for _, n := range names {
		cmd, ok := commands[n]
		if !ok {
			l.Report.add("%s: references unknown command %q", owner, n)
			continue
		}
		out = append(out, cmd)
	}
	return out
}

func parseThresholdType(s string) (command.ThresholdType, bool) {
	switch s {
	case "", "above":
		return command.Above, true
	case "below":
		return command.Below, true
	case "greater":
		return command.Greater, true
	case "less":
		return command.Less, true
	case "distance":
		return command.Distance, true
	case "distance_below":
		return command.DistanceBelow, true
	default:
		return command.Above, false
	}
}

func (l *Loader) loadRemaps(decls []remapDecl, facade engine.Facade) {
	var batch []remap.Record
	for _, d := range decls {
		from, ok := facade.GetInput(d.From)
		if !ok {
			l.Report.add("remap: unknown source input %q", d.From)
			continue
		}
		to, ok := facade.GetInput(d.To)
		if !ok {
			l.Report.add("remap: unknown destination input %q", d.To)
			continue
		}
		if d.Threshold < 0 || d.Threshold > 1 {
			l.Report.add("remap %s: threshold proportion %v must be between 0 and 1", d.From, d.Threshold)
			continue
		}
		if from.Class == signal.Accelerometer && to.Class == signal.Axis && d.Scale == 0 {
			l.Report.add("remap %s: accelerometer to axis remap needs a nonzero scale", d.From)
			continue
		}
		rec := remap.Record{From: from, To: to, ToMin: d.ToMin, Invert: d.Invert, Threshold: int32(d.Threshold * float64(signal.JoystickMax)), Scale: d.Scale}
		if d.ToNeg != "" {
			neg, ok := facade.GetInput(d.ToNeg)
			if !ok {
				l.Report.add("remap: unknown to_negative input %q", d.ToNeg)
			} else {
				rec.ToNegative = neg
			}
		}
		batch = append(batch, rec)
	}
	if len(batch) > 0 {
		facade.SetCascadingRemap(batch)
	}
}

func (l *Loader) buildSequence(steps []sequenceStepDecl, facade engine.Facade) *sequence.Sequence {
	seq := facade.CreateSequence()
	for _, s := range steps {
		if s.DelayUs > 0 {
			seq.AddDelay(uint32(s.DelayUs))
			continue
		}
		in, ok := facade.GetInput(s.Input)
		if !ok {
			l.Report.add("sequence step: unknown input %q", s.Input)
			continue
		}
		if s.HoldUs > 0 {
			seq.AddHold(in, int16(s.Value), uint32(s.HoldUs))
		} else {
			seq.AddPress(in, int16(s.Value))
		}
	}
	return seq
}

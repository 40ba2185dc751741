package configfile

import (
	"time"

	"github.com/chaosrig/engine/command"
	"github.com/chaosrig/engine/engine"
	"github.com/chaosrig/engine/modifier"
	"github.com/chaosrig/engine/remap"
	"github.com/chaosrig/engine/signal"
)

func (l *Loader) loadModifiers(decls []modifierDecl, facade engine.Facade, commands map[string]command.Command, conditions map[string]*command.Condition) {
	instances := make(map[string]*modifier.Instance, len(decls))

	for _, d := range decls {
		if _, dup := instances[d.Name]; dup {
			l.Report.add("duplicate modifier name %q", d.Name)
			continue
		}
		inst := modifier.NewInstance(d.Name, nil, facade, facade)
		inst.Description = d.Description
		inst.Unlisted = d.Unlisted
		inst.LockWhileBusy = d.LockWhileBusy
		if d.AllowAsChild != nil {
			inst.AllowAsChild = *d.AllowAsChild
		}
		for _, g := range d.Groups {
			inst.Groups[g] = struct{}{}
		}
		inst.Groups[d.Kind] = struct{}{}

		inst.AppliesToAll = d.AppliesToAll
		inst.AppliesTo = l.resolveCommands(d.AppliesTo, commands, d.Name)

		for _, c := range d.Conditions {
			cond, ok := conditions[c]
			if !ok {
				l.Report.add("modifier %q: unknown condition %q", d.Name, c)
				continue
			}
			inst.Conditions.Conditions = append(inst.Conditions.Conditions, facade.AddGameCondition(cond))
		}
		inst.Conditions.Check = l.parseConditionTest(d.Name, d.ConditionTest)

		for _, c := range d.Unless {
			cond, ok := conditions[c]
			if !ok {
				l.Report.add("modifier %q: unknown unless condition %q", d.Name, c)
				continue
			}
			inst.UnlessConditions.Conditions = append(inst.UnlessConditions.Conditions, facade.AddGameCondition(cond))
		}
		inst.UnlessConditions.Check = l.parseConditionTest(d.Name, d.UnlessTest)

		if len(d.BeginSequence) > 0 {
			inst.BeginSequence = l.buildSequence(d.BeginSequence, facade)
		}
		if len(d.FinishSequence) > 0 {
			inst.FinishSequence = l.buildSequence(d.FinishSequence, facade)
		}

		instances[d.Name] = inst
	}

	for _, d := range decls {
		inst, ok := instances[d.Name]
		if !ok {
			continue // already reported as a duplicate
		}
		decl := l.buildDeclaration(d, facade, commands, instances)
		kind, ok := modifier.New(d.Kind, inst, decl)
		if !ok {
			l.Report.add("modifier %q: unknown kind %q", d.Name, d.Kind)
			continue
		}
		if d.Kind == "parent" && d.Random && d.AllowAsChild == nil {
			inst.AllowAsChild = false
		}
		inst.Kind = kind
		facade.RegisterModifier(inst)
	}
}

func (l *Loader) buildDeclaration(d modifierDecl, facade engine.Facade, commands map[string]command.Command, instances map[string]*modifier.Instance) modifier.Declaration {
	decl := modifier.Declaration{
		Amplitude:    orDefault(d.Amplitude, 1.0),
		Offset:       d.Offset,
		DelaySeconds: d.DelaySeconds,
		RemapTable:   facade.RemapTable(),
		TimeOn:       time.Duration(d.TimeOnMs) * time.Millisecond,
		TimeOff:      time.Duration(d.TimeOffMs) * time.Millisecond,
		NumCycles:    d.NumCycles,
		CycleDelay:   time.Duration(d.CycleDelayMs) * time.Millisecond,
		ForceOn:      int16(d.ForceOn),
		ForceOff:     int16(d.ForceOff),
		BlockWhile:   l.resolveCommands(d.BlockWhile, commands, d.Name),
		StartDelay:   time.Duration(d.StartDelayMs) * time.Millisecond,
		LockAll:      d.LockAll,
		Trigger:      l.resolveCommands(d.Trigger, commands, d.Name),
		RandomRemap:  d.RandomRemap,
		Random:       d.Random,
		RandomCount:  d.RandomCount,
	}

	if d.Kind == "remap" {
		if d.RandomRemap && len(d.Remap) > 0 {
			l.Report.add("modifier %q: remap table and random_remap are mutually exclusive", d.Name)
		}
		l.fillRemapDeclaration(d, facade, &decl)
	}
	if d.Kind == "delay" && d.DelaySeconds <= 0 {
		l.Report.add("modifier %q: delay_seconds must be positive", d.Name)
	}
	if d.Kind == "disable" {
		decl.DisableFilter, decl.DisableThreshold = l.parseDisableFilter(d)
	}
	if len(d.RepeatSequence) > 0 {
		decl.RepeatSequence = l.buildSequence(d.RepeatSequence, facade)
	}
	if len(d.FixedChildren) > 0 {
		for _, childName := range d.FixedChildren {
			if child, ok := instances[childName]; ok {
				decl.FixedChildren = append(decl.FixedChildren, child)
			} else {
				l.Report.add("modifier %q: unknown fixed_children entry %q", d.Name, childName)
			}
		}
	}
	if d.Kind == "parent" {
		decl.Registry = facade.Registry()
	}
	return decl
}

// parseConditionTest translates a conditionTest/unlessTest TOML string
// into a command.ConditionCheck, defaulting to ALL and reporting
// unrecognized values rather than silently defaulting.
func (l *Loader) parseConditionTest(modName, raw string) command.ConditionCheck {
	switch raw {
	case "", "all":
		return command.CheckAll
	case "any":
		return command.CheckAny
	case "none":
		return command.CheckNone
	default:
		l.Report.add("modifier %q: unrecognized condition test %q, using all", modName, raw)
		return command.CheckAll
	}
}

// parseDisableFilter translates the TOML filter/filter_threshold pair
// into a modifier.DisableFilter, defaulting to ALL and reporting
// unrecognized filter names rather than silently dropping them.
func (l *Loader) parseDisableFilter(d modifierDecl) (modifier.DisableFilter, int16) {
	switch d.Filter {
	case "", "all":
		return modifier.DisableAll, int16(d.FilterThreshold)
	case "above":
		return modifier.DisableAbove, int16(d.FilterThreshold)
	case "below":
		return modifier.DisableBelow, int16(d.FilterThreshold)
	default:
		l.Report.add("modifier %q: unrecognized filter %q, using all", d.Name, d.Filter)
		return modifier.DisableAll, int16(d.FilterThreshold)
	}
}

func rec(from, to *signal.Input) remap.Record {
	return remap.Record{From: from, To: to}
}

func (l *Loader) fillRemapDeclaration(d modifierDecl, facade engine.Facade, decl *modifier.Declaration) {
	rejectedCrossClass := map[signal.Class]bool{signal.Accelerometer: true, signal.Gyroscope: true, signal.Touchpad: true}

	if d.RandomRemap {
		for _, name := range d.Sources {
			in, ok := facade.GetInput(name)
			if !ok {
				l.Report.add("modifier %q: unknown remap source %q", d.Name, name)
				continue
			}
			decl.Sources = append(decl.Sources, in)
		}
		for _, name := range d.Destinations {
			in, ok := facade.GetInput(name)
			if !ok {
				l.Report.add("modifier %q: unknown remap destination %q", d.Name, name)
				continue
			}
			if rejectedCrossClass[in.Class] {
				l.Report.add("modifier %q: destination %q is not a valid random_remap target", d.Name, name)
				continue
			}
			decl.Destinations = append(decl.Destinations, in)
		}
		return
	}

	for from, to := range d.Remap {
		fromIn, ok := facade.GetInput(from)
		if !ok {
			l.Report.add("modifier %q: unknown remap source %q", d.Name, from)
			continue
		}
		toIn, ok := facade.GetInput(to)
		if !ok {
			l.Report.add("modifier %q: unknown remap destination %q", d.Name, to)
			continue
		}
		if fromIn.Class != toIn.Class && rejectedCrossClass[toIn.Class] {
			l.Report.add("modifier %q: cross-class remap to %q is not allowed", d.Name, to)
			continue
		}
		decl.Mapping = append(decl.Mapping, rec(fromIn, toIn))
	}
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

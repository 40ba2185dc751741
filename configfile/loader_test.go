package configfile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chaosrig/engine/actor"
	"github.com/chaosrig/engine/configfile"
	"github.com/chaosrig/engine/engine"
	"github.com/chaosrig/engine/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gameTOML = `
[[commands]]
name = "press_x"
input = "X"

[[conditions]]
name = "x_held"
while = ["press_x"]
threshold = 1
threshold_type = "above"

[[modifiers]]
name = "disable-x"
kind = "disable"
applies_to = ["press_x"]
conditions = ["x_held"]
`

type recordingSink struct{ applied []event.DeviceEvent }

func (r *recordingSink) ApplyEvent(e event.DeviceEvent) { r.applied = append(r.applied, e) }

func TestLoadGamePopulatesEngineFromTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arena.toml"), []byte(gameTOML), 0o644))

	loader := configfile.NewLoader(dir)

	sys := actor.NewEngine()
	defer sys.Shutdown(time.Second)

	sink := &recordingSink{}
	cfg := engine.DefaultConfig()
	cfg.TickPeriod = time.Millisecond
	pid := sys.Spawn(actor.NewProps(engine.NewEngineActorProducer(sys, cfg, sink, loader)))
	require.NotNil(t, pid)

	resp, err := sys.Ask(pid, engine.NewGame{Name: "arena"}, time.Second)
	require.NoError(t, err)
	status := resp.(engine.Status)

	require.False(t, loader.Report.HasErrors(), loader.Report.Errors)
	require.Len(t, status.Mods, 1)
	assert.Equal(t, "disable-x", status.Mods[0].Name)
	assert.Equal(t, "arena", status.Game)
}

func TestLoadGameReportsUnknownReferences(t *testing.T) {
	dir := t.TempDir()
	const bad = `
[[modifiers]]
name = "broken"
kind = "disable"
applies_to = ["nope"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.toml"), []byte(bad), 0o644))

	loader := configfile.NewLoader(dir)

	sys := actor.NewEngine()
	defer sys.Shutdown(time.Second)

	sink := &recordingSink{}
	cfg := engine.DefaultConfig()
	pid := sys.Spawn(actor.NewProps(engine.NewEngineActorProducer(sys, cfg, sink, loader)))
	require.NotNil(t, pid)

	resp, err := sys.Ask(pid, engine.NewGame{Name: "broken"}, time.Second)
	require.NoError(t, err)
	status := resp.(engine.Status)
	assert.Greater(t, status.Errors, 0)
	assert.NotEmpty(t, loader.Report.Errors)
}

func TestLoadGameRejectsBadDeclarations(t *testing.T) {
	dir := t.TempDir()
	const bad = `
[[commands]]
name = "steer"
input = "LX"

[[conditions]]
name = "hard-steer"
while = ["steer"]
threshold = 1.5

[[modifiers]]
name = "laggy"
kind = "delay"
applies_to = ["steer"]
delay_seconds = 0.0

[[modifiers]]
name = "confused"
kind = "remap"
random_remap = true
sources = ["LX"]
destinations = ["RX"]
[modifiers.remap]
LX = "RX"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.toml"), []byte(bad), 0o644))

	loader := configfile.NewLoader(dir)

	sys := actor.NewEngine()
	defer sys.Shutdown(time.Second)

	sink := &recordingSink{}
	pid := sys.Spawn(actor.NewProps(engine.NewEngineActorProducer(sys, engine.DefaultConfig(), sink, loader)))
	require.NotNil(t, pid)

	resp, err := sys.Ask(pid, engine.NewGame{Name: "bad"}, time.Second)
	require.NoError(t, err)
	status := resp.(engine.Status)

	assert.False(t, status.CanUnpause)
	require.True(t, loader.Report.HasErrors())
	joined := strings.Join(loader.Report.Errors, "\n")
	assert.Contains(t, joined, "out of range")
	assert.Contains(t, joined, "delay_seconds must be positive")
	assert.Contains(t, joined, "mutually exclusive")
}

func TestLoadGameAcceptsProportionalConditionThreshold(t *testing.T) {
	dir := t.TempDir()
	const game = `
[[commands]]
name = "steer"
input = "LX"

[[conditions]]
name = "hard-steer"
while = ["steer"]
threshold = 0.5

[[modifiers]]
name = "no-steer"
kind = "disable"
applies_to = ["steer"]
conditions = ["hard-steer"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "steer.toml"), []byte(game), 0o644))

	loader := configfile.NewLoader(dir)

	sys := actor.NewEngine()
	defer sys.Shutdown(time.Second)

	sink := &recordingSink{}
	cfg := engine.DefaultConfig()
	cfg.TickPeriod = time.Hour
	pid := sys.Spawn(actor.NewProps(engine.NewEngineActorProducer(sys, cfg, sink, loader)))
	require.NotNil(t, pid)

	_, err := sys.Ask(pid, engine.NewGame{Name: "steer"}, time.Second)
	require.NoError(t, err)
	require.False(t, loader.Report.HasErrors(), loader.Report.Errors)
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spaghettifunk/arpuzzle/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[engine]
name = "Puzzle Test"
log_level = "debug"
target_fps = 30

[game]
tolerance = 0.08
difficulty = "Normal"
start_level = 2

[assets]
dir = "testdata"

[tracking]
recording = "recordings/demo.yaml"
loop = true
`

func TestDefaults(t *testing.T) {
	cfg, err := Load(strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, DefaultTolerance, cfg.Game.Tolerance)
	assert.Equal(t, "easy", cfg.Game.Difficulty)
	assert.Equal(t, 1, cfg.Game.StartLevel)
	assert.Equal(t, DefaultTargetFPS, cfg.Engine.TargetFPS)
	assert.Equal(t, core.InfoLevel, cfg.LogLevel())
}

func TestLoadFromTOML(t *testing.T) {
	cfg, err := Load(strings.NewReader(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "Puzzle Test", cfg.Engine.Name)
	assert.Equal(t, core.DebugLevel, cfg.LogLevel())
	assert.Equal(t, 30, cfg.Engine.TargetFPS)
	assert.Equal(t, float32(0.08), cfg.Game.Tolerance)
	assert.Equal(t, "normal", cfg.Game.Difficulty)
	assert.Equal(t, 2, cfg.Game.StartLevel)
	assert.Equal(t, "testdata", cfg.Assets.Dir)
	assert.Equal(t, "recordings/demo.yaml", cfg.Tracking.Recording)
	assert.True(t, cfg.Tracking.Loop)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("ARPUZZLE_TOLERANCE", "0.02")
	t.Setenv("ARPUZZLE_DIFFICULTY", "easy")
	t.Setenv("ARPUZZLE_START_LEVEL", "1")
	t.Setenv("ARPUZZLE_TARGET_FPS", "1000")
	t.Setenv("ARPUZZLE_LOOP_RECORDING", "false")

	cfg, err := Load(strings.NewReader(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, float32(0.02), cfg.Game.Tolerance)
	assert.Equal(t, "easy", cfg.Game.Difficulty)
	assert.Equal(t, 1, cfg.Game.StartLevel)
	assert.Equal(t, MaxTargetFPS, cfg.Engine.TargetFPS)
	assert.False(t, cfg.Tracking.Loop)
	// untouched by the environment
	assert.Equal(t, "testdata", cfg.Assets.Dir)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Game.Tolerance = 0
	assert.True(t, errors.Is(cfg.Validate(), core.ErrInvalidTolerance))

	cfg = Default()
	cfg.Game.StartLevel = 3
	assert.True(t, errors.Is(cfg.Validate(), core.ErrUnknownLevel))

	cfg = Default()
	cfg.Game.Difficulty = "hard"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Engine.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Engine.TargetFPS = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, MinTargetFPS, cfg.Engine.TargetFPS)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(strings.NewReader("[game]\nspeed = 3\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arpuzzle.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Game.StartLevel)

	cfg, err = LoadFile(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Game, cfg.Game)
}

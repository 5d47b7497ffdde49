package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/arpuzzle/engine/core"
	"github.com/spaghettifunk/arpuzzle/engine/math"
)

const (
	DefaultTolerance float32 = 0.05
	DefaultLevel             = 1
	DefaultTargetFPS         = 60

	MinTargetFPS = 1
	MaxTargetFPS = 240
)

type Config struct {
	Engine   EngineConfig   `toml:"engine"`
	Game     GameConfig     `toml:"game"`
	Assets   AssetsConfig   `toml:"assets"`
	Tracking TrackingConfig `toml:"tracking"`
}

type EngineConfig struct {
	Name      string `toml:"name"`
	LogLevel  string `toml:"log_level" env:"ARPUZZLE_LOG_LEVEL"`
	TargetFPS int    `toml:"target_fps" env:"ARPUZZLE_TARGET_FPS"`
}

type GameConfig struct {
	Tolerance  float32 `toml:"tolerance" env:"ARPUZZLE_TOLERANCE"`
	Difficulty string  `toml:"difficulty" env:"ARPUZZLE_DIFFICULTY"`
	StartLevel int     `toml:"start_level" env:"ARPUZZLE_START_LEVEL"`
}

type AssetsConfig struct {
	Dir string `toml:"dir" env:"ARPUZZLE_ASSETS_DIR"`
}

type TrackingConfig struct {
	// Recording is a path relative to the assets directory.
	Recording string `toml:"recording" env:"ARPUZZLE_RECORDING"`
	Loop      bool   `toml:"loop" env:"ARPUZZLE_LOOP_RECORDING"`
}

func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Name:      "AR Puzzle",
			LogLevel:  "info",
			TargetFPS: DefaultTargetFPS,
		},
		Game: GameConfig{
			Tolerance:  DefaultTolerance,
			Difficulty: "easy",
			StartLevel: DefaultLevel,
		},
		Assets: AssetsConfig{
			Dir: "assets",
		},
		Tracking: TrackingConfig{
			Recording: "recordings/level1_solve.yaml",
		},
	}
}

// Load reads a TOML document on top of the defaults, applies environment
// overrides and validates the result.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads the configuration at path. A missing file is not an error:
// the defaults and the environment are used instead.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		core.LogWarn("config file %s not found, using defaults", path)
		data = nil
	} else if err != nil {
		return nil, err
	}
	cfg, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate normalises the configuration and rejects values the game cannot
// start with. The target fps is clamped rather than rejected.
func (c *Config) Validate() error {
	if c.Game.Tolerance <= 0 {
		return fmt.Errorf("%w: %v", core.ErrInvalidTolerance, c.Game.Tolerance)
	}
	if c.Game.StartLevel != 1 && c.Game.StartLevel != 2 {
		return fmt.Errorf("%w: %d", core.ErrUnknownLevel, c.Game.StartLevel)
	}
	c.Game.Difficulty = strings.ToLower(strings.TrimSpace(c.Game.Difficulty))
	if c.Game.Difficulty != "easy" && c.Game.Difficulty != "normal" {
		return fmt.Errorf("unknown difficulty %q", c.Game.Difficulty)
	}
	if _, err := core.ParseLogLevel(c.Engine.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Assets.Dir == "" {
		return fmt.Errorf("assets dir must be set")
	}
	c.Engine.TargetFPS = math.Clamp(c.Engine.TargetFPS, MinTargetFPS, MaxTargetFPS)
	return nil
}

func (c *Config) LogLevel() core.LogLevel {
	level, err := core.ParseLogLevel(c.Engine.LogLevel)
	if err != nil {
		return core.InfoLevel
	}
	return level
}

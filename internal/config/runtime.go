// Package config provides centralized configuration for blockstage runtime values.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/manav03panchal/blockstage/internal/store"
)

// RuntimeConfig holds the tunable engine, stage and sprite values.
type RuntimeConfig struct {
	Engine  EngineConfig  `yaml:"engine"`
	Stage   StageConfig   `yaml:"stage"`
	Sprites SpritesConfig `yaml:"sprites"`
}

// EngineConfig holds interpreter and detector timing.
type EngineConfig struct {
	// Pacing is the pause after each motion block.
	// Default: 100ms
	Pacing time.Duration `yaml:"pacing"`

	// CollisionTick is how often the detector samples positions.
	// Default: 100ms
	CollisionTick time.Duration `yaml:"collision_tick"`

	// HistorySize is how many prior snapshots the store retains.
	// Default: 64
	HistorySize int `yaml:"history_size"`
}

// StageConfig holds stage geometry and the reset pose.
type StageConfig struct {
	// Width and Height are the stage size in stage units.
	// Default: 480x360
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// DefaultDirection is the heading every actor is reset to before a run.
	// Default: 90
	DefaultDirection float64 `yaml:"default_direction"`
}

// SpritesConfig holds the costume catalog new sprites are drawn from.
type SpritesConfig struct {
	Costumes []store.Costume `yaml:"costumes"`
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	costumes := make([]store.Costume, len(store.Costumes))
	copy(costumes, store.Costumes)

	return &RuntimeConfig{
		Engine: EngineConfig{
			Pacing:        100 * time.Millisecond,
			CollisionTick: 100 * time.Millisecond,
			HistorySize:   store.DefaultHistorySize,
		},
		Stage: StageConfig{
			Width:            480,
			Height:           360,
			DefaultDirection: store.DefaultDirection,
		},
		Sprites: SpritesConfig{
			Costumes: costumes,
		},
	}
}

// Pose returns the reset pose derived from the stage settings.
func (c *RuntimeConfig) Pose() store.Pose {
	return store.Pose{Direction: store.NormalizeDirection(c.Stage.DefaultDirection)}
}

// Global holds the global runtime configuration instance.
// It is initialized with defaults and can be overridden via environment variables.
var Global = initGlobal()

func initGlobal() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

// loadFromEnv loads configuration overrides from environment variables.
// Unparseable values are ignored.
func (c *RuntimeConfig) loadFromEnv() {
	if v := os.Getenv("BLOCKSTAGE_PACING"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			c.Engine.Pacing = d
		}
	}
	if v := os.Getenv("BLOCKSTAGE_COLLISION_TICK"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Engine.CollisionTick = d
		}
	}
	if v := os.Getenv("BLOCKSTAGE_HISTORY_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Engine.HistorySize = n
		}
	}

	if v := os.Getenv("BLOCKSTAGE_STAGE_WIDTH"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.Stage.Width = f
		}
	}
	if v := os.Getenv("BLOCKSTAGE_STAGE_HEIGHT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.Stage.Height = f
		}
	}
	if v := os.Getenv("BLOCKSTAGE_DEFAULT_DIRECTION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Stage.DefaultDirection = f
		}
	}
}

// ReloadFromEnv reloads configuration from environment variables.
func (c *RuntimeConfig) ReloadFromEnv() {
	c.loadFromEnv()
}

// Reset resets the configuration to defaults.
// This is primarily useful for testing.
func (c *RuntimeConfig) Reset() {
	defaults := DefaultRuntimeConfig()
	*c = *defaults
}

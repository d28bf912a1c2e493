package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/manav03panchal/blockstage/internal/errors"
	"github.com/manav03panchal/blockstage/internal/store"
)

func TestDefaultRuntimeConfig(t *testing.T) {
	cfg := DefaultRuntimeConfig()

	assert.Equal(t, 100*time.Millisecond, cfg.Engine.Pacing)
	assert.Equal(t, 100*time.Millisecond, cfg.Engine.CollisionTick)
	assert.Equal(t, store.DefaultHistorySize, cfg.Engine.HistorySize)
	assert.Equal(t, 480.0, cfg.Stage.Width)
	assert.Equal(t, 360.0, cfg.Stage.Height)
	assert.Equal(t, 90.0, cfg.Stage.DefaultDirection)
	assert.Len(t, cfg.Sprites.Costumes, len(store.Costumes))
	assert.NoError(t, cfg.Validate())
}

func TestDefaultCostumesAreCopied(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.Sprites.Costumes[0].Name = "Changed"
	assert.NotEqual(t, "Changed", store.Costumes[0].Name)
}

func TestGlobalConfigExists(t *testing.T) {
	require.NotNil(t, Global)
}

func TestPose(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	assert.Equal(t, store.Pose{Direction: 90}, cfg.Pose())

	cfg.Stage.DefaultDirection = -90
	assert.Equal(t, 270.0, cfg.Pose().Direction)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BLOCKSTAGE_PACING", "5ms")
	t.Setenv("BLOCKSTAGE_COLLISION_TICK", "20ms")
	t.Setenv("BLOCKSTAGE_HISTORY_SIZE", "8")
	t.Setenv("BLOCKSTAGE_STAGE_WIDTH", "640")
	t.Setenv("BLOCKSTAGE_STAGE_HEIGHT", "480")
	t.Setenv("BLOCKSTAGE_DEFAULT_DIRECTION", "0")

	cfg := DefaultRuntimeConfig()
	cfg.ReloadFromEnv()

	assert.Equal(t, 5*time.Millisecond, cfg.Engine.Pacing)
	assert.Equal(t, 20*time.Millisecond, cfg.Engine.CollisionTick)
	assert.Equal(t, 8, cfg.Engine.HistorySize)
	assert.Equal(t, 640.0, cfg.Stage.Width)
	assert.Equal(t, 480.0, cfg.Stage.Height)
	assert.Equal(t, 0.0, cfg.Stage.DefaultDirection)
}

func TestLoadFromEnvIgnoresInvalid(t *testing.T) {
	t.Setenv("BLOCKSTAGE_PACING", "soon")
	t.Setenv("BLOCKSTAGE_COLLISION_TICK", "0s")
	t.Setenv("BLOCKSTAGE_HISTORY_SIZE", "-1")
	t.Setenv("BLOCKSTAGE_STAGE_WIDTH", "wide")

	cfg := DefaultRuntimeConfig()
	cfg.ReloadFromEnv()

	assert.Equal(t, DefaultRuntimeConfig().Engine, cfg.Engine)
	assert.Equal(t, 480.0, cfg.Stage.Width)
}

func TestReset(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.Engine.Pacing = time.Hour
	cfg.Reset()
	assert.Equal(t, 100*time.Millisecond, cfg.Engine.Pacing)
}

// =============================================================================
// File Tests
// =============================================================================

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
engine:
  pacing: 250ms
  collision_tick: 50ms
stage:
  default_direction: 0
sprites:
  costumes:
    - name: Owl
      emoji: "🦉"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Engine.Pacing)
	assert.Equal(t, 50*time.Millisecond, cfg.Engine.CollisionTick)
	assert.Equal(t, store.DefaultHistorySize, cfg.Engine.HistorySize, "unset keys keep defaults")
	assert.Equal(t, 480.0, cfg.Stage.Width)
	assert.Equal(t, 0.0, cfg.Stage.DefaultDirection)
	assert.Equal(t, []store.Costume{{Name: "Owl", Emoji: "🦉"}}, cfg.Sprites.Costumes)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  pacing: 250ms\n"), 0644))
	t.Setenv("BLOCKSTAGE_PACING", "1ms")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, time.Millisecond, cfg.Engine.Pacing)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.IsSystemError(err))
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, cfg.Engine.Pacing)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "engine: [\n"},
		{"zero_tick", "engine:\n  collision_tick: 0s\n"},
		{"negative_width", "stage:\n  width: -1\n"},
		{"no_costumes", "sprites:\n  costumes: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))

			_, err := Load(path)
			assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultRuntimeConfig()
	cfg.Engine.Pacing = 30 * time.Millisecond

	require.NoError(t, Write(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Engine, loaded.Engine)
	assert.Equal(t, cfg.Sprites, loaded.Sprites)
}

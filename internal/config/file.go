package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	apperrors "github.com/manav03panchal/blockstage/internal/errors"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "blockstage"

// DefaultPath returns the config file location following the XDG spec.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load builds a config from defaults, the YAML file at path, then the
// environment. An empty path reads DefaultPath and tolerates its absence; an
// explicit path must exist.
func Load(path string) (*RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "%s: %v", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, apperrors.NewSystemErrorWithOp("load_config", "cannot read config file", err)
	}

	cfg.loadFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot work with.
func (c *RuntimeConfig) Validate() error {
	switch {
	case c.Engine.Pacing < 0:
		return fmt.Errorf("%w: pacing must not be negative", apperrors.ErrInvalidConfig)
	case c.Engine.CollisionTick <= 0:
		return fmt.Errorf("%w: collision_tick must be positive", apperrors.ErrInvalidConfig)
	case c.Engine.HistorySize < 0:
		return fmt.Errorf("%w: history_size must not be negative", apperrors.ErrInvalidConfig)
	case c.Stage.Width <= 0 || c.Stage.Height <= 0:
		return fmt.Errorf("%w: stage size must be positive", apperrors.ErrInvalidConfig)
	case len(c.Sprites.Costumes) == 0:
		return fmt.Errorf("%w: at least one costume is required", apperrors.ErrInvalidConfig)
	}
	return nil
}

// Write saves cfg as YAML, creating parent directories.
func Write(path string, cfg *RuntimeConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

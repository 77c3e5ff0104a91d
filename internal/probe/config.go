package probe

import (
	"fmt"
	"os"
	"strconv"

	"github.com/samdwyer/isogrid/internal/iso"
)

// SceneGenerate is the ISOGRID_SCENE value that requests a generated scene.
const SceneGenerate = "generate"

// Config holds probe configuration options.
type Config struct {
	Width  int // Grid width in cells
	Height int // Grid height in cells

	// Transform is "iso" or "ortho".
	Transform  string
	TileWidth  float64
	TileHeight float64

	// Scene is a scene file path, SceneGenerate, or empty for the embedded
	// default scene.
	Scene string

	// Seed for scene generation. A seed of 0 means a random seed will be
	// generated.
	Seed int64
}

// DefaultConfig returns the configuration used when no env vars are set.
func DefaultConfig() Config {
	return Config{
		Width:      256,
		Height:     256,
		Transform:  "iso",
		TileWidth:  2,
		TileHeight: 1,
	}
}

// ConfigFromEnv reads ISOGRID_* environment variables over the defaults.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	var err error
	if cfg.Width, err = envInt("ISOGRID_WIDTH", cfg.Width); err != nil {
		return cfg, err
	}
	if cfg.Height, err = envInt("ISOGRID_HEIGHT", cfg.Height); err != nil {
		return cfg, err
	}
	if v := os.Getenv("ISOGRID_TRANSFORM"); v != "" {
		cfg.Transform = v
	}
	if cfg.TileWidth, err = envFloat("ISOGRID_TILE_WIDTH", cfg.TileWidth); err != nil {
		return cfg, err
	}
	if cfg.TileHeight, err = envFloat("ISOGRID_TILE_HEIGHT", cfg.TileHeight); err != nil {
		return cfg, err
	}
	cfg.Scene = os.Getenv("ISOGRID_SCENE")
	if v := os.Getenv("ISOGRID_SEED"); v != "" {
		if cfg.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return cfg, fmt.Errorf("invalid ISOGRID_SEED %q: %w", v, err)
		}
	}

	if _, err := cfg.NewTransform(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// NewTransform builds the configured grid transform.
func (c Config) NewTransform() (iso.Transform, error) {
	switch c.Transform {
	case "iso", "":
		if c.TileWidth <= 0 || c.TileHeight <= 0 {
			return nil, fmt.Errorf("invalid tile size %gx%g", c.TileWidth, c.TileHeight)
		}
		return iso.NewIsometric(c.TileWidth, c.TileHeight), nil
	case "ortho":
		return iso.Orthogonal{CellSize: c.TileWidth}, nil
	default:
		return nil, fmt.Errorf("unknown transform %q (want iso or ortho)", c.Transform)
	}
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

// Package config loads the renderer's tunable defaults from a YAML file
// at startup: a yaml-tagged struct, validated field by field into the
// plain struct the rest of the program uses.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wavepath/tracer/pkg/integrate"
	"github.com/wavepath/tracer/pkg/rendererr"
)

// RendererConfig holds the renderer's tunable constants (tile size,
// Russian Roulette schedule) as a declarative file read once at startup.
type RendererConfig struct {
	MaxDepth                  int  `yaml:"maxDepth"`
	RussianRouletteMinBounces int  `yaml:"russianRouletteMinBounces"`
	TileSize                  int  `yaml:"tileSize"`
	QueueCapacityMultiplier   int  `yaml:"queueCapacityMultiplier"`
	Verbose                   bool `yaml:"verbose"`
}

// Default mirrors integrate.DefaultConfig's numbers plus the renderer's
// own tiling defaults, used when no YAML file is given.
func Default() RendererConfig {
	ic := integrate.DefaultConfig()
	return RendererConfig{
		MaxDepth:                  ic.MaxDepth,
		RussianRouletteMinBounces: ic.RussianRouletteMinBounces,
		TileSize:                  64,
		QueueCapacityMultiplier:   1,
		Verbose:                   false,
	}
}

// Load reads and validates a RendererConfig from a YAML file at path.
func Load(path string) (RendererConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RendererConfig{}, rendererr.NewResourceError("config.Load", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RendererConfig{}, rendererr.NewConfigError("config.Load", fmt.Errorf("yaml: %w", err))
	}
	if cfg.MaxDepth <= 0 {
		return RendererConfig{}, rendererr.NewConfigError("config.Load", fmt.Errorf("maxDepth must be positive, got %d", cfg.MaxDepth))
	}
	if cfg.TileSize <= 0 {
		return RendererConfig{}, rendererr.NewConfigError("config.Load", fmt.Errorf("tileSize must be positive, got %d", cfg.TileSize))
	}
	return cfg, nil
}

// Integrate converts the loaded config into the shading kernel's own
// Config type.
func (c RendererConfig) Integrate() integrate.Config {
	return integrate.Config{
		MaxDepth:                  c.MaxDepth,
		RussianRouletteMinBounces: c.RussianRouletteMinBounces,
		Verbose:                   c.Verbose,
	}
}

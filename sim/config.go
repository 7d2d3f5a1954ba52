package sim

import (
	"fmt"

	"github.com/milk9111/tilecore/common"
	"github.com/milk9111/tilecore/prefabs"
)

// Config holds the knobs of a Simulation. Zero values fall back to the
// defaults in DefaultConfig.
type Config struct {
	Level              string
	FixedRate          int
	QuadTreeMaxObjects int
	QuadTreeMaxLevels  int
	SeparationImpulse  float64
	// Workers bounds the parallel stages. 0 uses GOMAXPROCS.
	Workers int
	// Seed drives the separation impulses. 0 seeds from the clock.
	Seed      uint64
	CameraFOV float64
	Spawn     []prefabs.SpawnSpec
}

func DefaultConfig() Config {
	return Config{
		Level:              "graveyard",
		FixedRate:          common.FixedUpdateRate,
		QuadTreeMaxObjects: common.QuadTreeMaxObjects,
		QuadTreeMaxLevels:  common.QuadTreeMaxLevels,
		SeparationImpulse:  common.SeparationImpulse,
		CameraFOV:          common.BaseWidth * 1.5,
	}
}

// LoadConfig reads a simulation spec such as simulation.yaml.
func LoadConfig(name string) (Config, error) {
	spec, err := prefabs.LoadSimulationSpec(name)
	if err != nil {
		return Config{}, fmt.Errorf("sim: load config: %w", err)
	}
	cfg := Config{
		Level:              spec.Level,
		FixedRate:          spec.FixedRate,
		QuadTreeMaxObjects: spec.QuadTree.MaxObjects,
		QuadTreeMaxLevels:  spec.QuadTree.MaxLevels,
		SeparationImpulse:  spec.SeparationImpulse,
		Workers:            spec.Workers,
		Seed:               spec.Seed,
		CameraFOV:          spec.CameraFOV,
		Spawn:              spec.Spawn,
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Level == "" {
		c.Level = d.Level
	}
	if c.FixedRate <= 0 {
		c.FixedRate = d.FixedRate
	}
	if c.QuadTreeMaxObjects <= 0 {
		c.QuadTreeMaxObjects = d.QuadTreeMaxObjects
	}
	if c.QuadTreeMaxLevels <= 0 {
		c.QuadTreeMaxLevels = d.QuadTreeMaxLevels
	}
	if c.SeparationImpulse == 0 {
		c.SeparationImpulse = d.SeparationImpulse
	}
	if c.CameraFOV <= 0 {
		c.CameraFOV = d.CameraFOV
	}
	return c
}

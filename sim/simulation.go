// Package sim runs the per-tick pipeline over an ECS world: the fixed-rate
// stage when due, then the variable-rate systems in a fixed order.
package sim

import (
	"fmt"
	"log"
	"time"

	"github.com/milk9111/tilecore/common"
	"github.com/milk9111/tilecore/ecs"
	"github.com/milk9111/tilecore/ecs/component"
	"github.com/milk9111/tilecore/ecs/entity"
	"github.com/milk9111/tilecore/ecs/system"
	"github.com/milk9111/tilecore/levels"
	"github.com/milk9111/tilecore/prefabs"
)

type Simulation struct {
	World  *ecs.World
	Config Config

	clock    *FixedClock
	fixed    *ecs.Scheduler
	variable *ecs.Scheduler
	scripts  *system.ScriptedInputSystem

	ticks      uint64
	fixedTicks uint64
}

// New builds a simulation over terrain without spawning anything.
func New(cfg Config, terrain *levels.Terrain) *Simulation {
	cfg = cfg.withDefaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	w := ecs.NewWorld()
	ecs.SetResource(w, component.DeltaTimeResource.Kind(), &component.DeltaTime{})
	ecs.SetResource(w, component.PlayerInputResource.Kind(), &component.PlayerInput{})
	ecs.SetResource(w, component.LevelTerrainResource.Kind(), &component.LevelTerrain{Terrain: terrain})
	ecs.SetResource(w, component.CameraResource.Kind(), &component.Camera{FOV: cfg.CameraFOV})

	scripts := system.NewScriptedInputSystem()
	s := &Simulation{
		World:   w,
		Config:  cfg,
		clock:   NewFixedClock(cfg.FixedRate),
		scripts: scripts,
		fixed: ecs.NewScheduler(
			system.NewPlayerFixedUpdateSystem(),
			system.NewAnimationAdvanceSystem(),
		),
		variable: ecs.NewScheduler(
			scripts,
			system.NewStartStateMachineSystem(),
			system.NewDirectionSystem(),
			system.NewPlayerHandleEventsSystem(),
			system.NewTerrainMovementSystem(cfg.Workers),
			system.NewPlayerUpdateSystem(),
			system.NewPositionSyncSystem(cfg.Workers),
			system.NewResetInputSystem(),
			system.NewEntityCollisionSystem(cfg.QuadTreeMaxObjects, cfg.QuadTreeMaxLevels, cfg.SeparationImpulse, cfg.Workers, seed),
			system.NewCameraSnapSystem(),
			system.NewChaseCameraSystem(),
		),
	}
	return s
}

// Load loads the configured level and spawns the configured prefabs.
func Load(cfg Config) (*Simulation, error) {
	cfg = cfg.withDefaults()
	terrain, err := levels.LoadTerrain(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	s := New(cfg, terrain)
	for _, sp := range cfg.Spawn {
		var at *common.Vector
		if sp.At != nil {
			at = &common.Vector{X: sp.At.X, Y: sp.At.Y}
		}
		if _, err := s.Spawn(sp.Prefab, at); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Tick advances the world by dt. It reports whether the fixed stage ran.
func (s *Simulation) Tick(dt time.Duration) bool {
	if d, ok := ecs.Resource(s.World, component.DeltaTimeResource.Kind()); ok {
		d.Seconds = dt.Seconds()
	}

	fixed := s.clock.Advance(dt)
	if fixed {
		s.fixed.Update(s.World)
		s.fixedTicks++
	}
	s.variable.Update(s.World)
	s.ticks++
	return fixed
}

func (s *Simulation) Ticks() uint64      { return s.ticks }
func (s *Simulation) FixedTicks() uint64 { return s.fixedTicks }

// Input is the shared controller state. Collectors write it before Tick.
func (s *Simulation) Input() *component.PlayerInput {
	in, _ := ecs.Resource(s.World, component.PlayerInputResource.Kind())
	return in
}

func (s *Simulation) Camera() *component.Camera {
	cam, _ := ecs.Resource(s.World, component.CameraResource.Kind())
	return cam
}

func (s *Simulation) Terrain() *levels.Terrain {
	lt, ok := ecs.Resource(s.World, component.LevelTerrainResource.Kind())
	if !ok {
		return nil
	}
	return lt.Terrain
}

// Spawn builds a prefab, optionally moving it to at.
func (s *Simulation) Spawn(prefab string, at *common.Vector) (ecs.Entity, error) {
	e, err := entity.BuildEntity(s.World, prefab)
	if err != nil {
		return 0, fmt.Errorf("sim: spawn %q: %w", prefab, err)
	}
	if at != nil {
		if err := entity.SetEntityPosition(s.World, e, at.X, at.Y); err != nil {
			ecs.DestroyEntity(s.World, e)
			return 0, fmt.Errorf("sim: spawn %q: %w", prefab, err)
		}
	}
	log.Printf("sim: spawned %q as entity %d", prefab, e)
	return e, nil
}

func (s *Simulation) SpawnPlayerAt(x, y float64) (ecs.Entity, error) {
	return entity.NewPlayerAt(s.World, x, y)
}

// Reload reacts to an edited prefab or script file. Player tuning is pushed
// to every player that is not script driven; scripts restart.
func (s *Simulation) Reload(path string) error {
	switch name := baseName(path); {
	case hasExt(name, ".tengo"):
		s.scripts.Invalidate(name)
		log.Printf("sim: reloaded script %q", name)
	case name == "player.yaml":
		spec, err := prefabs.LoadEntityBuildSpec(name)
		if err != nil {
			return fmt.Errorf("sim: reload %q: %w", name, err)
		}
		ps, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](spec.Components["player"])
		if err != nil {
			return fmt.Errorf("sim: reload %q: %w", name, err)
		}
		p, err := entity.PlayerFromSpec(ps)
		if err != nil {
			return fmt.Errorf("sim: reload %q: %w", name, err)
		}
		n := 0
		ecs.ForEach(s.World, component.PlayerComponent.Kind(), func(e ecs.Entity, cur *component.Player) {
			if ecs.Has(s.World, e, component.ScriptedInputComponent.Kind()) {
				return
			}
			*cur = p
			n++
		})
		log.Printf("sim: reloaded player tuning for %d entities", n)
	}
	return nil
}

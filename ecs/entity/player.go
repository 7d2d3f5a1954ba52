package entity

import (
	"fmt"

	"github.com/milk9111/tilecore/ecs"
	"github.com/milk9111/tilecore/ecs/component"
	"github.com/milk9111/tilecore/ecs/system"
	"github.com/milk9111/tilecore/prefabs"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "player.yaml")
}

// NewPlayerAt spawns another controlled player. Every player reads the shared
// input.
func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, "player.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityPosition(w, e, x, y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("player: override position: %w", err)
	}
	return e, nil
}

// PlayerFromSpec layers a tuning spec over the built-in player values.
func PlayerFromSpec(spec prefabs.PlayerComponentSpec) (component.Player, error) {
	p := component.DefaultPlayer()
	setIfNonZero(&p.Gravity, spec.Gravity)
	setIfNonZero(&p.MaxFallingSpeed, spec.MaxFallingSpeed)
	setIfNonZero(&p.JumpSpeed, spec.JumpSpeed)
	setIfNonZero(&p.WalkSpeed, spec.WalkSpeed)
	setIfNonZero(&p.WalkAcceleration, spec.WalkAcceleration)
	setIfNonZero(&p.SlowDownThreshold, spec.SlowDownThreshold)
	setIfNonZero(&p.SlowDownAcceleration, spec.SlowDownAcceleration)
	setIfNonZero(&p.JumpFramesThreshold, spec.JumpFramesThreshold)

	for name, as := range spec.Animations {
		a, err := as.Animation.Build()
		if err != nil {
			return component.Player{}, fmt.Errorf("player animation %q: %w", name, err)
		}
		pa := p.Animation(name)
		pa.Animation = a
		if as.RenderID != "" {
			pa.RenderID = as.RenderID
		}
		if as.Length > 0 {
			pa.Length = as.Length
		}
		p.Animations[name] = pa
	}
	return p, nil
}

func setIfNonZero[T float64 | int](dst *T, v T) {
	if v != 0 {
		*dst = v
	}
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	p, err := PlayerFromSpec(spec)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &p)
}

// addPlayerStateMachine gives the entity an Idle machine that the first tick
// starts.
func addPlayerStateMachine(w *ecs.World, e ecs.Entity, _ any) error {
	if err := ecs.Add(w, e, component.PlayerStateMachineComponent.Kind(), component.NewPlayerStateMachine(system.PlayerStateIdle())); err != nil {
		return err
	}
	return ecs.Add(w, e, component.StartStateMachineComponent.Kind(), &component.StartStateMachine{})
}

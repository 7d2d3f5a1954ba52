package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/tilecore/common"
	"github.com/milk9111/tilecore/ecs"
	"github.com/milk9111/tilecore/ecs/component"
	"github.com/milk9111/tilecore/physics"
	"github.com/milk9111/tilecore/prefabs"
)

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any) error

var componentRegistry = map[string]componentBuildFn{
	"position":             addPosition,
	"scalable":             addScalable,
	"moving_object":        addMovingObject,
	"collider":             addCollider,
	"renderable":           addRenderable,
	"animation":            addAnimation,
	"directional":          addDirectional,
	"controlled":           addControlled,
	"collision_detection":  addCollisionDetection,
	"snap_camera":          addSnapCamera,
	"chase_camera":         addChaseCamera,
	"scripted_input":       addScriptedInput,
	"player":               addPlayer,
	"player_state_machine": addPlayerStateMachine,
}

// moving_object reads position, so position goes first.
var componentBuildOrder = []string{
	"position",
	"scalable",
	"moving_object",
	"collider",
	"renderable",
	"animation",
	"directional",
	"controlled",
	"collision_detection",
	"snap_camera",
	"chase_camera",
	"scripted_input",
	"player",
	"player_state_machine",
}

// BuildEntity creates an entity from a prefab. On failure the half-built
// entity is destroyed.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)

	names := make([]string, 0, len(spec.Components))
	for _, name := range componentBuildOrder {
		if _, ok := spec.Components[name]; ok {
			names = append(names, name)
		}
	}
	var unknown []string
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, unknown[0])
	}

	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name]); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}
	return e, nil
}

// SetEntityPosition moves an entity and resets its motion history so the
// terrain sweep does not see the jump as movement.
func SetEntityPosition(w *ecs.World, e ecs.Entity, x, y float64) error {
	p, ok := ecs.Get(w, e, component.PositionComponent.Kind())
	if !ok {
		p = &component.Position{}
	}
	p.X, p.Y = x, y
	if err := ecs.Add(w, e, component.PositionComponent.Kind(), p); err != nil {
		return err
	}
	if mv, ok := ecs.Get(w, e, component.MovingObjectComponent.Kind()); ok {
		at := common.Vector{X: x, Y: y}
		mv.Position, mv.OldPosition = at, at
	}
	return nil
}

func addPosition(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.VectorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode position spec: %w", err)
	}
	return ecs.Add(w, e, component.PositionComponent.Kind(), &component.Position{X: spec.X, Y: spec.Y})
}

func addScalable(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.VectorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode scalable spec: %w", err)
	}
	if spec.X == 0 {
		spec.X = 1
	}
	if spec.Y == 0 {
		spec.Y = 1
	}
	return ecs.Add(w, e, component.ScalableComponent.Kind(), &component.Scalable{X: spec.X, Y: spec.Y})
}

func addMovingObject(w *ecs.World, e ecs.Entity, _ any) error {
	var at common.Vector
	if p, ok := ecs.Get(w, e, component.PositionComponent.Kind()); ok {
		at = common.Vector{X: p.X, Y: p.Y}
	}
	mv := physics.NewMovingObject(at)
	return ecs.Add(w, e, component.MovingObjectComponent.Kind(), &mv)
}

func addCollider(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ColliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("collider size must be positive, got %vx%v", spec.Width, spec.Height)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	c := physics.NewCollider(physics.NewAABBFull(
		common.Vector{X: spec.Width, Y: spec.Height},
		common.Vector{X: spec.ScaleX, Y: spec.ScaleY},
	))
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &c)
}

func addRenderable(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderableSpec](raw)
	if err != nil {
		return fmt.Errorf("decode renderable spec: %w", err)
	}
	var r *component.Renderable
	switch spec.Kind {
	case "", "animation":
		r = component.NewAnimationRenderable(spec.Layer, spec.ID, spec.Length)
	case "image":
		r = component.NewImageRenderable(spec.Layer, spec.ID)
	case "batch":
		r = &component.Renderable{Layer: spec.Layer, Kind: component.RenderBatch, ID: spec.ID}
	default:
		return fmt.Errorf("unknown renderable kind %q", spec.Kind)
	}
	return ecs.Add(w, e, component.RenderableComponent.Kind(), r)
}

func addAnimation(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AnimationNodeSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	a, err := spec.Build()
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.AnimationSequenceComponent.Kind(), component.NewAnimationSequence(a))
}

func addDirectional(w *ecs.World, e ecs.Entity, raw any) error {
	dir := component.FacingRight
	switch raw {
	case nil, "right":
	case "left":
		dir = component.FacingLeft
	default:
		return fmt.Errorf("directional must be left or right, got %v", raw)
	}
	return ecs.Add(w, e, component.DirectionalComponent.Kind(), &dir)
}

func addControlled(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.ControlledComponent.Kind(), &component.Controlled{})
}

func addCollisionDetection(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CollisionDetectionSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision_detection spec: %w", err)
	}
	return ecs.Add(w, e, component.CollisionDetectionComponent.Kind(), &component.CollisionDetection{Group: spec.Group})
}

func addSnapCamera(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.SnapCameraComponent.Kind(), &component.SnapCamera{})
}

func addChaseCamera(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.ChaseCameraComponent.Kind(), &component.ChaseCamera{})
}

func addScriptedInput(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScriptedInputSpec](raw)
	if err != nil {
		return fmt.Errorf("decode scripted_input spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("scripted_input requires a script")
	}
	return ecs.Add(w, e, component.ScriptedInputComponent.Kind(), &component.ScriptedInput{Script: spec.Script})
}

package system

import (
	"github.com/milk9111/tilecore/ecs"
	"github.com/milk9111/tilecore/ecs/component"
	"github.com/milk9111/tilecore/fsm"
)

type playerMachine = fsm.Machine[*component.PlayerStateContext]

// inputFor returns the input an entity acts on: its script's when it has one,
// otherwise the shared resource.
func inputFor(w *ecs.World, e ecs.Entity) component.PlayerInput {
	if si, ok := ecs.Get(w, e, component.ScriptedInputComponent.Kind()); ok {
		return si.Input
	}
	if in, ok := ecs.Resource(w, component.PlayerInputResource.Kind()); ok {
		return *in
	}
	return component.PlayerInput{}
}

func deltaSeconds(w *ecs.World) float64 {
	if dt, ok := ecs.Resource(w, component.DeltaTimeResource.Kind()); ok {
		return dt.Seconds
	}
	return 0
}

var defaultPlayer = component.DefaultPlayer()

// playerContext gathers the components a player state works on. Animation
// and rendering are optional; physics and facing are not.
func playerContext(w *ecs.World, e ecs.Entity, dt float64) (*component.PlayerStateContext, bool) {
	if !ecs.Has(w, e, component.ControlledComponent.Kind()) {
		return nil, false
	}
	mv, ok := ecs.Get(w, e, component.MovingObjectComponent.Kind())
	if !ok {
		return nil, false
	}
	c, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	if !ok {
		return nil, false
	}
	dir, ok := ecs.Get(w, e, component.DirectionalComponent.Kind())
	if !ok {
		return nil, false
	}
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		p = &defaultPlayer
	}
	a, _ := ecs.Get(w, e, component.AnimationSequenceComponent.Kind())
	r, _ := ecs.Get(w, e, component.RenderableComponent.Kind())

	return &component.PlayerStateContext{
		Entity:   uint64(e),
		Moving:   mv,
		Collider: c,
		Anim:     a,
		Render:   r,
		Dir:      *dir,
		Input:    inputFor(w, e),
		Delta:    dt,
		Player:   p,
	}, true
}

// dispatchPlayers calls hook on every running player machine.
func dispatchPlayers(w *ecs.World, hook func(*playerMachine, *component.PlayerStateContext)) {
	if w == nil {
		return
	}
	dt := deltaSeconds(w)
	ecs.ForEach(w, component.PlayerStateMachineComponent.Kind(), func(e ecs.Entity, sm *component.PlayerStateMachine) {
		if sm.Machine == nil || !sm.Machine.Running() {
			return
		}
		ctx, ok := playerContext(w, e, dt)
		if !ok {
			return
		}
		hook(sm.Machine, ctx)
	})
}

type PlayerHandleEventsSystem struct{}

func NewPlayerHandleEventsSystem() *PlayerHandleEventsSystem {
	return &PlayerHandleEventsSystem{}
}

func (s *PlayerHandleEventsSystem) Update(w *ecs.World) {
	dispatchPlayers(w, (*playerMachine).HandleEvents)
}

type PlayerUpdateSystem struct{}

func NewPlayerUpdateSystem() *PlayerUpdateSystem {
	return &PlayerUpdateSystem{}
}

func (s *PlayerUpdateSystem) Update(w *ecs.World) {
	dispatchPlayers(w, (*playerMachine).Update)
}

// PlayerFixedUpdateSystem runs on the fixed cadence. Counters it advances are
// measured in fixed ticks.
type PlayerFixedUpdateSystem struct{}

func NewPlayerFixedUpdateSystem() *PlayerFixedUpdateSystem {
	return &PlayerFixedUpdateSystem{}
}

func (s *PlayerFixedUpdateSystem) Update(w *ecs.World) {
	dispatchPlayers(w, (*playerMachine).FixedUpdate)
}

// StartStateMachineSystem starts machines tagged with StartStateMachine and
// drops the tag.
type StartStateMachineSystem struct{}

func NewStartStateMachineSystem() *StartStateMachineSystem {
	return &StartStateMachineSystem{}
}

func (s *StartStateMachineSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := deltaSeconds(w)
	ecs.ForEach2(w, component.StartStateMachineComponent.Kind(), component.PlayerStateMachineComponent.Kind(),
		func(e ecs.Entity, _ *component.StartStateMachine, sm *component.PlayerStateMachine) {
			ctx, ok := playerContext(w, e, dt)
			if !ok || sm.Machine == nil {
				return
			}
			sm.Machine.Start(ctx)
			ecs.Remove(w, e, component.StartStateMachineComponent.Kind())
		})
}

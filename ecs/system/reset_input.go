package system

import (
	"github.com/milk9111/tilecore/ecs"
	"github.com/milk9111/tilecore/ecs/component"
)

// ResetInputSystem clears one-shot actions once every state has seen them.
// Held directions survive.
type ResetInputSystem struct{}

func NewResetInputSystem() *ResetInputSystem {
	return &ResetInputSystem{}
}

func (s *ResetInputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if in, ok := ecs.Resource(w, component.PlayerInputResource.Kind()); ok {
		in.ResetActions()
	}
	ecs.ForEach(w, component.ScriptedInputComponent.Kind(), func(_ ecs.Entity, si *component.ScriptedInput) {
		si.Input.ResetActions()
	})
}

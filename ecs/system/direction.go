package system

import (
	"github.com/milk9111/tilecore/ecs"
	"github.com/milk9111/tilecore/ecs/component"
)

// DirectionSystem turns controlled entities toward the pressed direction.
// Pressing both or neither keeps the current facing.
type DirectionSystem struct{}

func NewDirectionSystem() *DirectionSystem {
	return &DirectionSystem{}
}

func (s *DirectionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.ControlledComponent.Kind(), component.DirectionalComponent.Kind(),
		func(e ecs.Entity, _ *component.Controlled, dir *component.Directional) {
			in := inputFor(w, e)
			switch {
			case in.Left && !in.Right:
				*dir = component.FacingLeft
			case in.Right && !in.Left:
				*dir = component.FacingRight
			}
		})
}

package system

import (
	"github.com/milk9111/tilecore/ecs"
	"github.com/milk9111/tilecore/ecs/component"
)

// AnimationAdvanceSystem samples one frame per fixed tick into animation
// renderables. An exhausted sequence leaves the last frame in place.
type AnimationAdvanceSystem struct{}

func NewAnimationAdvanceSystem() *AnimationAdvanceSystem {
	return &AnimationAdvanceSystem{}
}

func (s *AnimationAdvanceSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.AnimationSequenceComponent.Kind(), component.RenderableComponent.Kind(),
		func(_ ecs.Entity, a *component.AnimationSequence, r *component.Renderable) {
			if r.Kind != component.RenderAnimation || a.Sequence == nil {
				return
			}
			if frame, ok := a.Sequence.Next(); ok {
				r.Frame = frame
			}
		})
}

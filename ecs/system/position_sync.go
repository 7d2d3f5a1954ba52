package system

import (
	"github.com/milk9111/tilecore/ecs"
	"github.com/milk9111/tilecore/ecs/component"
	"github.com/milk9111/tilecore/physics"
)

// PositionSyncSystem copies physics positions into the render-facing
// Position component.
type PositionSyncSystem struct {
	Workers int

	pairs []positionPair
}

type positionPair struct {
	mv *physics.MovingObject
	p  *component.Position
}

func NewPositionSyncSystem(workers int) *PositionSyncSystem {
	return &PositionSyncSystem{Workers: workers}
}

func (s *PositionSyncSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.pairs = s.pairs[:0]
	ecs.ForEach2(w, component.MovingObjectComponent.Kind(), component.PositionComponent.Kind(),
		func(_ ecs.Entity, mv *physics.MovingObject, p *component.Position) {
			s.pairs = append(s.pairs, positionPair{mv: mv, p: p})
		})

	forChunks(len(s.pairs), s.Workers, func(_, lo, hi int) {
		for _, pair := range s.pairs[lo:hi] {
			pair.p.X = pair.mv.Position.X
			pair.p.Y = pair.mv.Position.Y
		}
	})
}

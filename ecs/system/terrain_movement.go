package system

import (
	"github.com/milk9111/tilecore/ecs"
	"github.com/milk9111/tilecore/ecs/component"
	"github.com/milk9111/tilecore/physics"
)

// TerrainMovementSystem integrates every moving body and resolves it against
// the level terrain. Bodies never read each other here, so chunks run in
// parallel. Without a terrain resource bodies only integrate.
type TerrainMovementSystem struct {
	Workers int

	bodies []movingBody
}

type movingBody struct {
	mv *physics.MovingObject
	c  *physics.Collider
}

func NewTerrainMovementSystem(workers int) *TerrainMovementSystem {
	return &TerrainMovementSystem{Workers: workers}
}

func (s *TerrainMovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := deltaSeconds(w)
	lt, _ := ecs.Resource(w, component.LevelTerrainResource.Kind())

	s.bodies = s.bodies[:0]
	ecs.ForEach(w, component.MovingObjectComponent.Kind(), func(e ecs.Entity, mv *physics.MovingObject) {
		c, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
		s.bodies = append(s.bodies, movingBody{mv: mv, c: c})
	})

	forChunks(len(s.bodies), s.Workers, func(_, lo, hi int) {
		for _, b := range s.bodies[lo:hi] {
			if b.c == nil || lt == nil || lt.Terrain == nil {
				physics.Integrate(b.mv, dt)
				continue
			}
			physics.Step(b.mv, b.c, lt.Terrain, dt)
		}
	})
}

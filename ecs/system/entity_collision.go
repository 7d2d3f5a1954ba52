package system

import (
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilecore/common"
	"github.com/milk9111/tilecore/ecs"
	"github.com/milk9111/tilecore/ecs/component"
	"github.com/milk9111/tilecore/physics"
)

// EntityCollisionSystem pushes overlapping bodies apart. The quadtree is
// rebuilt every tick and is read-only once built, so the queries fan out.
// Each chunk draws from its own generator seeded from the system's.
//
// Bodies sharing a non-zero Group ignore each other.
type EntityCollisionSystem struct {
	MaxObjects int
	MaxLevels  int
	Impulse    float64
	Workers    int

	rng     *rand.Rand
	members []collisionMember
	groups  map[ecs.Entity]int
}

type collisionMember struct {
	e     ecs.Entity
	mv    *physics.MovingObject
	bb    cp.BB
	group int
}

func NewEntityCollisionSystem(maxObjects, maxLevels int, impulse float64, workers int, seed uint64) *EntityCollisionSystem {
	return &EntityCollisionSystem{
		MaxObjects: maxObjects,
		MaxLevels:  maxLevels,
		Impulse:    impulse,
		Workers:    workers,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		groups:     map[ecs.Entity]int{},
	}
}

func (s *EntityCollisionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.members = s.members[:0]
	clear(s.groups)
	ecs.ForEach3(w, component.CollisionDetectionComponent.Kind(), component.MovingObjectComponent.Kind(), component.ColliderComponent.Kind(),
		func(e ecs.Entity, cd *component.CollisionDetection, mv *physics.MovingObject, c *physics.Collider) {
			s.members = append(s.members, collisionMember{e: e, mv: mv, bb: c.AABB.Rect(mv.Position), group: cd.Group})
			s.groups[e] = cd.Group
		})
	if len(s.members) < 2 {
		return
	}

	tree := physics.NewQuadTree[ecs.Entity](s.bounds(w), s.MaxObjects, s.MaxLevels)
	for _, m := range s.members {
		tree.Insert(m.e, m.bb)
	}

	rngs := make([]*rand.Rand, chunkCount(len(s.members), s.Workers))
	for i := range rngs {
		rngs[i] = rand.New(rand.NewPCG(s.rng.Uint64(), s.rng.Uint64()))
	}

	forChunks(len(s.members), s.Workers, func(chunk, lo, hi int) {
		rng := rngs[chunk]
		for _, m := range s.members[lo:hi] {
			candidates := tree.Retrieve(m.bb)
			if m.group != 0 {
				candidates = s.otherGroups(candidates, m.group)
			}
			physics.Separate(m.mv, m.e, m.bb, candidates, rng, s.Impulse)
		}
	})
}

// otherGroups drops candidates in group. It reads s.groups only.
func (s *EntityCollisionSystem) otherGroups(candidates []physics.Item[ecs.Entity], group int) []physics.Item[ecs.Entity] {
	out := candidates[:0]
	for _, c := range candidates {
		if s.groups[c.Key] != group {
			out = append(out, c)
		}
	}
	return out
}

// bounds is the terrain rectangle, or the boxes' union when there is no
// level.
func (s *EntityCollisionSystem) bounds(w *ecs.World) cp.BB {
	if lt, ok := ecs.Resource(w, component.LevelTerrainResource.Kind()); ok && lt.Terrain != nil {
		lo, hi := lt.Terrain.Bounds()
		return cp.NewBBForExtents(common.LerpVector(lo, hi, 0.5), (hi.X-lo.X)/2, (hi.Y-lo.Y)/2)
	}
	bb := s.members[0].bb
	for _, m := range s.members[1:] {
		bb = bb.Merge(m.bb)
	}
	return bb
}

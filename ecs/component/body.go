package component

import "github.com/milk9111/tilecore/physics"

var MovingObjectComponent = NewComponent[physics.MovingObject]()

// ColliderComponent carries the AABB and the contact flags the terrain sweeps
// write each tick.
var ColliderComponent = NewComponent[physics.Collider]()

// CollisionDetection opts an entity into the entity-vs-entity broad phase.
type CollisionDetection struct {
	Group int
}

var CollisionDetectionComponent = NewComponent[CollisionDetection]()

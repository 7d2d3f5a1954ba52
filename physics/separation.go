package physics

import (
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilecore/common"
)

// SeparationImpulse returns a velocity kick of the given magnitude in a random
// direction. Overlapping bodies drift apart after a few ticks of these.
func SeparationImpulse(rng *rand.Rand, magnitude float64) common.Vector {
	for {
		v := cp.Vector{X: rng.Float64() - 0.5, Y: rng.Float64() - 0.5}
		if v.LengthSq() > 0 {
			return v.Normalize().Mult(magnitude)
		}
	}
}

// Separate adds one impulse to mv for every other key in candidates whose box
// intersects self. It returns the number of overlaps found.
func Separate[K comparable](mv *MovingObject, self K, selfBB cp.BB, candidates []Item[K], rng *rand.Rand, magnitude float64) int {
	hits := 0
	for _, c := range candidates {
		if c.Key == self || !selfBB.Intersects(c.BB) {
			continue
		}
		mv.Velocity = mv.Velocity.Add(SeparationImpulse(rng, magnitude))
		hits++
	}
	return hits
}

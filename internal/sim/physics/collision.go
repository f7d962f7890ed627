package physics

import "github.com/photonai/arena/internal/sim/entities"

// CirclesOverlap reports whether two circles (position + radius) overlap,
// the collision test applied to Ships and Pellets against every other body
// (spec.md §4.4 step 1): |posA − posB|² < (radiusA + radiusB)².
func CirclesOverlap(posA, posB entities.Vec2, radiusA, radiusB float32) bool {
	r := posA.Sub(posB)
	sumRadii := radiusA + radiusB
	return r.LengthSq() < sumRadii*sumRadii
}

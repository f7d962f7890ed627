package physics

import "github.com/photonai/arena/internal/sim/entities"

// GravityAcceleration computes the acceleration that a body of mass
// otherMass at otherPos exerts on a body at pos, under the two-body
// inverse-square law named in spec.md §1 (Non-goals) and §3:
//
//	a = g * otherMass * r̂ / |r|²
//
// where r̂ is the unit vector from pos toward otherPos. A zero mass
// contributes nothing. Coincident bodies (|r|=0) are a programmer error
// per spec.md §4.4 ("maps must not place bodies exactly coincident"); this
// still returns zero rather than propagating NaN into the log.
func GravityAcceleration(pos, otherPos entities.Vec2, otherMass, g float32) entities.Vec2 {
	if otherMass == 0 || g == 0 {
		return entities.Zero()
	}

	r := otherPos.Sub(pos)
	distSq := r.LengthSq()
	if distSq == 0 {
		return entities.Zero()
	}

	magnitude := g * otherMass / distSq
	return r.Normalize().Scale(magnitude)
}

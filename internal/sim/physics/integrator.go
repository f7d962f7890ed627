package physics

import "github.com/photonai/arena/internal/sim/entities"

// Integrate performs the half-step-velocity (leap-frog-like) integration
// step specified in spec.md §4.4 step 3:
//
//	v' = v + dt·a
//	pos' = pos + (dt/2)(v + v')
//
// Acceleration is held constant over the step.
func Integrate(pos, vel, acc entities.Vec2, dt float32) (newPos, newVel entities.Vec2) {
	newVel = vel.Add(acc.Scale(dt))
	newPos = pos.Add(vel.Add(newVel).Scale(dt / 2))
	return newPos, newVel
}

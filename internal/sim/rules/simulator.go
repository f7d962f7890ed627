// Package rules implements the per-tick physics update (the Simulator,
// spec.md §4.4), the fog-of-war vision filter (spec.md §4.5), and the
// composable stop predicates the game loop evaluates each tick
// (spec.md §4.7).
package rules

import (
	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/sim/entities"
	"github.com/photonai/arena/internal/sim/physics"
)

// Advance computes the ordered list of events for the next tick from the
// current world, dt, and each ship's last-known controls (spec.md §4.4).
// It never mutates world — the caller applies the returned Step through
// the World.Apply layer so that the event stream stays the single source
// of truth for every state transition.
//
// Iteration is ascending by id (world.OrderedIDs), which together with the
// float32-only arithmetic in internal/sim/physics is what makes two runs
// over an identical input stream produce byte-identical Steps.
func Advance(world *entities.World, ids *entities.IDGenerator, dt float32, controls map[int]entities.ControllerState) proto.Step {
	orderedIDs := world.OrderedIDs()
	events := make([]proto.Event, 0, len(orderedIDs))

	for _, id := range orderedIDs {
		obj := world.Objects[id]
		kind := obj.Kind()
		body := *obj.BodyPtr() // snapshot: this tick's physics reads pre-tick state only

		// Step 1 — collision test (Ships and Pellets only; Planets are
		// obstacles, never destroyed by a collision).
		if kind == entities.KindShip || kind == entities.KindPellet {
			if collidesWithAny(world, orderedIDs, id, body) {
				events = append(events, destroyEvent(id))
				continue
			}
		}

		control := controls[id] // zero value (all-stop) if this object has no bot bound

		// Step 2 — acceleration: thrust (Ship only) plus gravity from every
		// other massive body, gated on this object's own mass (spec.md
		// §4.4: pellets, mass 0, do not feel gravity).
		acc := entities.Zero()
		if ship, ok := obj.(*entities.Ship); ok {
			thrust := entities.ClampThrust(control.Thrust)
			acc = acc.Add(entities.Bearing(body.Orientation).Scale(thrust * ship.MaxThrust))
		}
		if body.Mass > 0 {
			for _, otherID := range orderedIDs {
				if otherID == id {
					continue
				}
				otherBody := world.Objects[otherID].BodyPtr()
				acc = acc.Add(physics.GravityAcceleration(body.Position, otherBody.Position, otherBody.Mass, world.Space.Gravity))
			}
		}

		// Step 3 — integration (half-step velocity).
		newPos, newVel := physics.Integrate(body.Position, body.Velocity, acc, dt)

		// Step 4 — wrap (Ship) / bounds-kill (Pellet).
		if kind == entities.KindShip {
			newPos = entities.WrapPosition(newPos, world.Space.Dimensions)
		} else if kind == entities.KindPellet {
			if !entities.InBounds(newPos, world.Space.Dimensions) {
				events = append(events, destroyEvent(id))
				continue
			}
		}

		// Step 5 — orientation (Ship only).
		newOrientation := body.Orientation
		if ship, ok := obj.(*entities.Ship); ok {
			newOrientation = entities.NormalizeAngle(body.Orientation + dt*entities.ClampRotate(control.Rotate)*ship.MaxRotate)
		}

		// Step 6 — weapon update and possible pellet spawn (Ship only).
		if ship, ok := obj.(*entities.Ship); ok {
			newWeapon, pelletEvent := advanceWeapon(ship.Weapon, control, dt, ids, newPos, newVel, newOrientation, body.Radius)
			if pelletEvent != nil {
				events = append(events, *pelletEvent)
			}
			events = append(events, shipStateEvent(id, body, newPos, newVel, newOrientation, newWeapon, control))
			continue
		}

		// Step 7 — pellet TTL.
		if pellet, ok := obj.(*entities.Pellet); ok {
			newTTL := pellet.TimeToLive - dt
			if newTTL <= 0 {
				events = append(events, destroyEvent(id))
				continue
			}
			events = append(events, pelletStateEvent(id, body, newPos, newVel, newTTL))
			continue
		}

		// Step 8 — Planet: unconditional STATE with the updated body.
		events = append(events, planetStateEvent(id, body, newPos, newVel))
	}

	return proto.NewEventsStep(world.Clock+1, dt, events)
}

func collidesWithAny(world *entities.World, orderedIDs []int, id int, body entities.Body) bool {
	for _, otherID := range orderedIDs {
		if otherID == id {
			continue
		}
		otherBody := world.Objects[otherID].BodyPtr()
		if physics.CirclesOverlap(body.Position, otherBody.Position, body.Radius, otherBody.Radius) {
			return true
		}
	}
	return false
}

// advanceWeapon runs the reload/temperature update and, if the weapon
// fires this tick, returns the Pellet-CREATE event alongside the new
// Weapon state (spec.md §4.4 step 6). The "1.01 * radius" muzzle offset
// keeps a freshly spawned pellet from immediately re-colliding with the
// ship that fired it.
func advanceWeapon(w entities.Weapon, control entities.ControllerState, dt float32, ids *entities.IDGenerator, shipPos, shipVel entities.Vec2, orientation, shipRadius float32) (entities.Weapon, *proto.Event) {
	next := w
	next.Reload = physics.AdvanceReload(w.Reload, dt)
	next.Temperature = physics.DecayTemperature(w.Temperature, w.Params.MaxTemperature, w.Params.TemperatureDecay, dt)
	next.Fired = false

	if !control.Fire || !physics.CanFire(next.Reload, next.Temperature, w.Params.MaxTemperature) {
		return next, nil
	}

	next.Fired = true
	next.Reload = w.Params.MaxReload
	next.Temperature += 1

	muzzle := entities.Bearing(orientation)
	pelletID := ids.Next()
	pelletPos := shipPos.Add(muzzle.Scale(1.01 * shipRadius))
	pelletVel := shipVel.Add(muzzle.Scale(w.Params.Speed))
	ttl := w.Params.PelletTimeToLive

	event := proto.Event{
		ID:     pelletID,
		Kind:   proto.EventCreate,
		Object: proto.ObjectPellet,
		Create: &proto.ObjCreate{
			Radius:     0,
			Mass:       0,
			Position:   proto.Vec2{X: pelletPos.X, Y: pelletPos.Y},
			Velocity:   proto.Vec2{X: pelletVel.X, Y: pelletVel.Y},
			TimeToLive: &ttl,
		},
	}
	return next, &event
}

func destroyEvent(id int) proto.Event {
	return proto.Event{ID: id, Kind: proto.EventDestroy, Destroy: &proto.Destroy{}}
}

func shipStateEvent(id int, body entities.Body, pos, vel entities.Vec2, orientation float32, weapon entities.Weapon, control entities.ControllerState) proto.Event {
	return proto.Event{
		ID:   id,
		Kind: proto.EventState,
		State: &proto.ObjState{
			Radius:      body.Radius,
			Mass:        body.Mass,
			Position:    proto.Vec2{X: pos.X, Y: pos.Y},
			Velocity:    proto.Vec2{X: vel.X, Y: vel.Y},
			Orientation: orientation,
			Weapon: &proto.WeaponState{
				Fired:       weapon.Fired,
				Reload:      weapon.Reload,
				Temperature: weapon.Temperature,
			},
			Controller: &proto.ControllerState{
				Fire:   control.Fire,
				Rotate: entities.ClampRotate(control.Rotate),
				Thrust: entities.ClampThrust(control.Thrust),
			},
		},
	}
}

func pelletStateEvent(id int, body entities.Body, pos, vel entities.Vec2, ttl float32) proto.Event {
	return proto.Event{
		ID:   id,
		Kind: proto.EventState,
		State: &proto.ObjState{
			Radius:     body.Radius,
			Mass:       body.Mass,
			Position:   proto.Vec2{X: pos.X, Y: pos.Y},
			Velocity:   proto.Vec2{X: vel.X, Y: vel.Y},
			TimeToLive: &ttl,
		},
	}
}

func planetStateEvent(id int, body entities.Body, pos, vel entities.Vec2) proto.Event {
	return proto.Event{
		ID:   id,
		Kind: proto.EventState,
		State: &proto.ObjState{
			Radius:      body.Radius,
			Mass:        body.Mass,
			Position:    proto.Vec2{X: pos.X, Y: pos.Y},
			Velocity:    proto.Vec2{X: vel.X, Y: vel.Y},
			Orientation: body.Orientation,
		},
	}
}

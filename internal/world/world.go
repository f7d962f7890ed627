// Package world converts the wire-level proto.Step records into mutations
// of an entities.World, enforcing the invariants spec.md §3 places on the
// event stream (unknown ids, duplicate CREATE/DESTROY, monotone clock).
package world

import (
	"errors"
	"fmt"

	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/sim/entities"
)

// Sentinel errors for World.Apply's invariant checks (spec.md §7).
var (
	ErrDuplicateID = errors.New("duplicate object id")
	ErrUnknownID   = errors.New("unknown object id")
)

// State wraps an entities.World with the bookkeeping Apply needs across
// calls: which ids have ever been created or destroyed, so invariant 2
// (at most one CREATE, at most one DESTROY per id) holds across the whole
// stream rather than just the current object set.
type State struct {
	World *entities.World

	everCreated   map[int]bool
	everDestroyed map[int]bool
	haveClock     bool
}

// New creates an empty State ready to ingest a Space-Create step.
func New() *State {
	return &State{
		World:         entities.NewWorld(),
		everCreated:   make(map[int]bool),
		everDestroyed: make(map[int]bool),
	}
}

// Apply ingests one validated proto.Step, mutating the wrapped World
// (spec.md §4.2). The caller is expected to have already run
// proto.ValidateStep; Apply re-checks only the invariants that require
// World-wide state (ids, clock monotonicity).
func (s *State) Apply(step proto.Step) error {
	if s.haveClock && step.Clock <= s.World.Clock {
		return fmt.Errorf("%w: clock %d did not advance past %d", proto.ErrMalformedEvent, step.Clock, s.World.Clock)
	}

	if step.IsSpaceCreate() {
		return s.applySpaceCreate(step)
	}

	for _, evt := range step.Events {
		if err := s.applyEvent(evt, step.Clock); err != nil {
			return err
		}
	}

	s.World.Clock = step.Clock
	s.World.Time += step.Duration
	s.haveClock = true
	return nil
}

func (s *State) applySpaceCreate(step proto.Step) error {
	sc := step.SpaceCreate
	var lifetime *float32
	if sc.Lifetime != nil {
		v := *sc.Lifetime
		lifetime = &v
	}
	s.World.Space = entities.NewSpace(entities.NewVec2(sc.Dimensions.X, sc.Dimensions.Y), sc.Gravity, lifetime)
	s.World.Objects = make(map[int]entities.Object)
	s.World.Time = 0
	s.World.Clock = step.Clock
	s.haveClock = true
	return nil
}

func (s *State) applyEvent(evt proto.Event, clock int) error {
	switch evt.Kind {
	case proto.EventCreate:
		return s.applyCreate(evt, clock)
	case proto.EventState:
		return s.applyState(evt, clock)
	case proto.EventDestroy:
		return s.applyDestroy(evt)
	default:
		return fmt.Errorf("%w: event %d has unknown kind %q", proto.ErrMalformedEvent, evt.ID, evt.Kind)
	}
}

func (s *State) applyCreate(evt proto.Event, clock int) error {
	if s.everCreated[evt.ID] {
		return fmt.Errorf("%w: id %d already created", ErrDuplicateID, evt.ID)
	}
	if _, exists := s.World.Objects[evt.ID]; exists {
		return fmt.Errorf("%w: id %d already created", ErrDuplicateID, evt.ID)
	}

	obj, err := newObjectFromCreate(evt.Object, evt.Create)
	if err != nil {
		return err
	}
	obj.BodyPtr().UpdateClock = clock
	s.World.Objects[evt.ID] = obj
	s.everCreated[evt.ID] = true
	return nil
}

func (s *State) applyState(evt proto.Event, clock int) error {
	obj, ok := s.World.Objects[evt.ID]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrUnknownID, evt.ID)
	}
	if err := mutateFromState(obj, evt.State); err != nil {
		return err
	}
	obj.BodyPtr().UpdateClock = clock
	return nil
}

func (s *State) applyDestroy(evt proto.Event) error {
	if _, ok := s.World.Objects[evt.ID]; !ok {
		return fmt.Errorf("%w: id %d", ErrUnknownID, evt.ID)
	}
	if s.everDestroyed[evt.ID] {
		return fmt.Errorf("%w: id %d already destroyed", ErrDuplicateID, evt.ID)
	}
	delete(s.World.Objects, evt.ID)
	s.everDestroyed[evt.ID] = true
	return nil
}

func newObjectFromCreate(kind proto.ObjectKind, c *proto.ObjCreate) (entities.Object, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: create event with no payload", proto.ErrMalformedEvent)
	}

	resolvedKind := kind
	if resolvedKind == "" {
		raw := structuralShape(c)
		k, err := proto.ClassifyObjCreate(raw)
		if err != nil {
			return nil, err
		}
		resolvedKind = k
	}

	body := entities.Body{
		Radius:      c.Radius,
		Mass:        c.Mass,
		Position:    entities.NewVec2(c.Position.X, c.Position.Y),
		Velocity:    entities.NewVec2(c.Velocity.X, c.Velocity.Y),
		Orientation: c.Orientation,
	}

	switch resolvedKind {
	case proto.ObjectShip:
		if c.Weapon == nil || c.Controller == nil || c.MaxThrust == nil {
			return nil, fmt.Errorf("%w: ship create missing weapon/controller/max_thrust", proto.ErrMalformedEvent)
		}
		weaponParams := entities.WeaponParams{
			MaxReload:        c.Weapon.MaxReload,
			MaxTemperature:   c.Weapon.MaxTemperature,
			TemperatureDecay: c.Weapon.TemperatureDecay,
			Speed:            c.Weapon.Speed,
			PelletTimeToLive: c.Weapon.TimeToLive,
		}
		weapon := entities.NewWeapon(weaponParams)
		if c.WeaponState != nil {
			weapon.Fired = c.WeaponState.Fired
			weapon.Reload = c.WeaponState.Reload
			weapon.Temperature = c.WeaponState.Temperature
		}
		controller := entities.NewController(entities.Identity{Name: c.Controller.Name, Version: c.Controller.Version})
		if c.ControllerState != nil {
			controller.State = entities.ControllerState{
				Fire:   c.ControllerState.Fire,
				Rotate: c.ControllerState.Rotate,
				Thrust: c.ControllerState.Thrust,
			}
		}
		maxRotate := float32(0)
		if c.MaxRotate != nil {
			maxRotate = *c.MaxRotate
		}
		return entities.NewShip(body, weapon, controller, *c.MaxThrust, maxRotate), nil

	case proto.ObjectPellet:
		if c.TimeToLive == nil {
			return nil, fmt.Errorf("%w: pellet create missing time_to_live", proto.ErrMalformedEvent)
		}
		return entities.NewPellet(body, *c.TimeToLive), nil

	case proto.ObjectPlanet:
		name := ""
		if c.Name != nil {
			name = *c.Name
		}
		return entities.NewPlanet(body, name), nil

	default:
		return nil, fmt.Errorf("%w: unrecognized object kind %q", proto.ErrMalformedEvent, resolvedKind)
	}
}

// structuralShape reduces an ObjCreate back to the presence-map
// ClassifyObjCreate expects, for the legacy path where Event.Object was not
// set by the producer.
func structuralShape(c *proto.ObjCreate) map[string]interface{} {
	raw := make(map[string]interface{})
	if c.Weapon != nil {
		raw["weapon"] = c.Weapon
	}
	if c.Controller != nil {
		raw["controller"] = c.Controller
	}
	if c.MaxThrust != nil {
		raw["max_thrust"] = *c.MaxThrust
	}
	if c.TimeToLive != nil {
		raw["time_to_live"] = *c.TimeToLive
	}
	if c.Name != nil {
		raw["name"] = *c.Name
	}
	return raw
}

func mutateFromState(obj entities.Object, st *proto.ObjState) error {
	if st == nil {
		return fmt.Errorf("%w: state event with no payload", proto.ErrMalformedEvent)
	}
	body := obj.BodyPtr()
	body.Radius = st.Radius
	body.Mass = st.Mass
	body.Position = entities.NewVec2(st.Position.X, st.Position.Y)
	body.Velocity = entities.NewVec2(st.Velocity.X, st.Velocity.Y)
	body.Orientation = st.Orientation

	if ship, ok := obj.(*entities.Ship); ok {
		if st.Weapon != nil {
			ship.Weapon.Fired = st.Weapon.Fired
			ship.Weapon.Reload = st.Weapon.Reload
			ship.Weapon.Temperature = st.Weapon.Temperature
		}
		if st.Controller != nil {
			ship.Controller.State = entities.ControllerState{
				Fire:   st.Controller.Fire,
				Rotate: st.Controller.Rotate,
				Thrust: st.Controller.Thrust,
			}
		}
	}
	if pellet, ok := obj.(*entities.Pellet); ok && st.TimeToLive != nil {
		pellet.TimeToLive = *st.TimeToLive
	}
	return nil
}

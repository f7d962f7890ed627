package proto

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedEvent is returned when a Step or Event fails schema
// validation (spec.md §7).
var ErrMalformedEvent = errors.New("malformed event")

// ClassifyObjCreate structurally disambiguates a decoded, untagged
// object-create payload by trying the variants richest-to-poorest — Ship,
// then Pellet, then Planet — exactly the order spec.md §4.1 mandates,
// since a Ship payload also trivially satisfies the poorer shapes. This is
// the backward-compatibility path for logs recorded before the explicit
// Kind tag existed (spec.md §9); new Steps set Event.Object directly.
func ClassifyObjCreate(raw map[string]interface{}) (ObjectKind, error) {
	_, hasWeapon := raw["weapon"]
	_, hasController := raw["controller"]
	_, hasMaxThrust := raw["max_thrust"]
	if hasWeapon && hasController && hasMaxThrust {
		return ObjectShip, nil
	}

	_, hasTTL := raw["time_to_live"]
	if hasTTL && !hasWeapon {
		return ObjectPellet, nil
	}

	_, hasName := raw["name"]
	if hasName && !hasTTL {
		return ObjectPlanet, nil
	}

	return "", fmt.Errorf("%w: unrecognized object-create shape %v", ErrMalformedEvent, keysOf(raw))
}

func keysOf(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// ValidateVec2 rejects non-finite components.
func ValidateVec2(v Vec2) error {
	for _, c := range []float32{v.X, v.Y} {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite vector component", ErrMalformedEvent)
		}
	}
	return nil
}

// ValidateObjCreate checks the fields every ObjCreate shares, and that the
// combination of create-only fields matches exactly one object kind (no
// mixing Pellet's TimeToLive with Ship's Weapon, etc.).
func ValidateObjCreate(c *ObjCreate) error {
	if c == nil {
		return fmt.Errorf("%w: nil object-create", ErrMalformedEvent)
	}
	if c.Radius < 0 || c.Mass < 0 {
		return fmt.Errorf("%w: negative radius or mass", ErrMalformedEvent)
	}
	if err := ValidateVec2(c.Position); err != nil {
		return err
	}
	if err := ValidateVec2(c.Velocity); err != nil {
		return err
	}

	isShip := c.Weapon != nil && c.Controller != nil && c.MaxThrust != nil
	isPellet := c.TimeToLive != nil && c.Weapon == nil
	isPlanet := c.Name != nil && c.TimeToLive == nil

	count := 0
	for _, b := range []bool{isShip, isPellet, isPlanet} {
		if b {
			count++
		}
	}
	if count != 1 {
		return fmt.Errorf("%w: object-create must match exactly one variant, matched %d", ErrMalformedEvent, count)
	}
	return nil
}

// ValidateEvent checks that an Event's Kind agrees with which payload is
// present, and recursively validates the payload.
func ValidateEvent(e *Event) error {
	if e == nil {
		return fmt.Errorf("%w: nil event", ErrMalformedEvent)
	}

	present := 0
	if e.Create != nil {
		present++
	}
	if e.State != nil {
		present++
	}
	if e.Destroy != nil {
		present++
	}
	if present != 1 {
		return fmt.Errorf("%w: event %d must carry exactly one payload, got %d", ErrMalformedEvent, e.ID, present)
	}

	switch e.Kind {
	case EventCreate:
		if e.Create == nil {
			return fmt.Errorf("%w: event %d tagged create but has no create payload", ErrMalformedEvent, e.ID)
		}
		return ValidateObjCreate(e.Create)
	case EventState:
		if e.State == nil {
			return fmt.Errorf("%w: event %d tagged state but has no state payload", ErrMalformedEvent, e.ID)
		}
		return ValidateVec2(e.State.Position)
	case EventDestroy:
		if e.Destroy == nil {
			return fmt.Errorf("%w: event %d tagged destroy but has no destroy payload", ErrMalformedEvent, e.ID)
		}
		return nil
	default:
		return fmt.Errorf("%w: event %d has unknown kind %q", ErrMalformedEvent, e.ID, e.Kind)
	}
}

// ValidateStep validates every event in a Step. A Space-Create Step
// carries no events; it is rejected only for a negative gravity.
func ValidateStep(s *Step) error {
	if s == nil {
		return fmt.Errorf("%w: nil step", ErrMalformedEvent)
	}
	if s.IsSpaceCreate() {
		if s.Gravity() < 0 {
			return fmt.Errorf("%w: negative gravity", ErrMalformedEvent)
		}
		return nil
	}
	for i := range s.Events {
		if err := ValidateEvent(&s.Events[i]); err != nil {
			return err
		}
	}
	return nil
}

// Gravity returns the gravity constant carried by a Space-Create step, or
// zero if this is not a Space-Create step.
func (s Step) Gravity() float32 {
	if s.SpaceCreate == nil {
		return 0
	}
	return s.SpaceCreate.Gravity
}

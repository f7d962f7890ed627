package rules

import (
	"fmt"

	"github.com/photonai/arena/internal/sim/entities"
)

// Outcome is what a stop predicate reports when it trips: a reason string
// and, if the game had exactly one definite winner, that winner's stable
// identity (spec.md §4.7, §6).
type Outcome struct {
	Reason string
	Winner *entities.Identity
}

// Predicate inspects world and returns a non-nil Outcome when the game
// should stop. It is pure and side-effect free.
type Predicate func(world *entities.World) *Outcome

// StopAfter trips once world.Time reaches or exceeds limit seconds.
func StopAfter(limit float32) Predicate {
	return func(world *entities.World) *Outcome {
		if world.Time >= limit {
			return &Outcome{Reason: fmt.Sprintf("exceeded time limit %g", limit)}
		}
		return nil
	}
}

// StopWhenNoShips trips (a draw) once no Ship remains in the world.
func StopWhenNoShips() Predicate {
	return func(world *entities.World) *Outcome {
		if world.ShipCount() == 0 {
			return &Outcome{Reason: "no ships remaining"}
		}
		return nil
	}
}

// StopWhenOneShip trips once exactly one Ship remains, naming its
// controller as the winner; zero ships still trips, as a draw.
func StopWhenOneShip() Predicate {
	return func(world *entities.World) *Outcome {
		ships := world.Ships()
		switch len(ships) {
		case 0:
			return &Outcome{Reason: "no ships remaining"}
		case 1:
			winner := ships[0].Ship.Controller.Identity
			return &Outcome{Reason: fmt.Sprintf("won by %s:%s", winner.Name, winner.Version), Winner: &winner}
		default:
			return nil
		}
	}
}

// Any composes predicates so the combined one trips on the first
// predicate (in order) that trips.
func Any(predicates ...Predicate) Predicate {
	return func(world *entities.World) *Outcome {
		for _, p := range predicates {
			if outcome := p(world); outcome != nil {
				return outcome
			}
		}
		return nil
	}
}

// DefaultPredicate picks the stop predicate spec.md §4.7 mandates for a
// given bot count: 0 bots → time-only; 1 → no-ships-or-time; >=2 →
// one-ship-or-time.
func DefaultPredicate(botCount int, limit float32) Predicate {
	switch {
	case botCount == 0:
		return StopAfter(limit)
	case botCount == 1:
		return Any(StopWhenNoShips(), StopAfter(limit))
	default:
		return Any(StopWhenOneShip(), StopAfter(limit))
	}
}

// Package engine composes the World, Simulator, Controller router, and
// stop predicates into the Game loop (spec.md §4.6, §4.7): the only
// package that actually drives a game from a MapSpec and a set of Bots.
package engine

import (
	"context"

	"github.com/photonai/arena/internal/proto"
)

// Bot is the contract an external controller process satisfies
// (spec.md §4.6, §6): a function from Request to a ControllerState or
// nil. A nil response is only valid when the request's ShipID was nil —
// the one-time "hello, here is the world, no ship to control yet" call.
// Response latency is bounded by the caller's context; an exceeded
// deadline is a transport error like any other (spec.md §4.6 rule 2).
type Bot interface {
	Call(ctx context.Context, req proto.Request) (*proto.ControllerState, error)
	Close() error
}

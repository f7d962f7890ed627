package transport

import (
	"context"

	"github.com/photonai/arena/internal/proto"
)

// LocalFunc is the signature a LocalBot calls per request.
type LocalFunc func(ctx context.Context, req proto.Request) (*proto.ControllerState, error)

// LocalBot adapts an in-process function to the engine.Bot contract —
// the transport tests use, and any bot that happens to live in the same
// process as the game loop (spec.md §6).
type LocalBot struct {
	fn     LocalFunc
	closed bool
}

// NewLocalBot wraps fn as a Bot.
func NewLocalBot(fn LocalFunc) *LocalBot {
	return &LocalBot{fn: fn}
}

func (b *LocalBot) Call(ctx context.Context, req proto.Request) (*proto.ControllerState, error) {
	return b.fn(ctx, req)
}

func (b *LocalBot) Close() error {
	b.closed = true
	return nil
}

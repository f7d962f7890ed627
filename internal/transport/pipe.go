package transport

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/wire"
)

// PipeBot drives an external bot process over any io.ReadWriteCloser —
// the reference stdin/stdout transport (spec.md §6) — framing
// Request/ControllerState records with the same CBOR codec the step log
// uses (internal/wire), left uncompressed: per-tick latency matters far
// more here than on-disk size.
//
// Call serializes access with a mutex so two concurrent callers can never
// interleave a write or a read on the underlying pipe — the wire
// protocol's "at most one response per request, no interleaving"
// guarantee (spec.md §6).
type PipeBot struct {
	rwc io.ReadWriteCloser
	enc *wire.Encoder
	dec *wire.Decoder
	mu  sync.Mutex
}

// NewPipeBot wraps rwc. Closing the PipeBot closes rwc.
func NewPipeBot(rwc io.ReadWriteCloser) *PipeBot {
	return &PipeBot{rwc: rwc, enc: wire.NewEncoder(rwc), dec: wire.NewDecoder(rwc)}
}

func (p *PipeBot) Call(ctx context.Context, req proto.Request) (*proto.ControllerState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.enc.Encode(req); err != nil {
		return nil, fmt.Errorf("pipebot: sending request: %w", err)
	}

	type result struct {
		resp *proto.ControllerState
		err  error
	}
	done := make(chan result, 1)
	go func() {
		var resp proto.ControllerState
		if err := p.dec.Decode(&resp); err != nil {
			done <- result{nil, fmt.Errorf("pipebot: reading response: %w", err)}
			return
		}
		done <- result{&resp, nil}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.resp, r.err
	}
}

func (p *PipeBot) Close() error {
	return p.rwc.Close()
}

package steplog

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/photonai/arena/internal/observability"
	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/wire"
)

// binaryWriter implements the self-describing binary container spec.md
// §6 calls for: each Step is CBOR-encoded, gzip-compressed as its own
// block, and written as a 4-byte big-endian block-length prefix followed
// by the compressed bytes. One block per Step keeps a reader able to
// resynchronize after a truncated file — there is never a dangling
// half-written gzip stream spanning multiple Steps.
type binaryWriter struct {
	w io.WriteCloser
}

func newBinaryWriter(w io.WriteCloser) *binaryWriter {
	return &binaryWriter{w: w}
}

func (b *binaryWriter) WriteStep(step proto.Step) error {
	start := time.Now()
	defer func() {
		if h := observability.GetStepWriteDurationHistogram(); h != nil {
			h.Observe(time.Since(start).Seconds())
		}
	}()

	payload, err := wire.Marshal(step)
	if err != nil {
		return fmt.Errorf("steplog: encoding step %d: %w", step.Clock, err)
	}

	var block bytes.Buffer
	gz := gzip.NewWriter(&block)
	if _, err := gz.Write(payload); err != nil {
		return fmt.Errorf("steplog: compressing step %d: %w", step.Clock, err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("steplog: closing block for step %d: %w", step.Clock, err)
	}

	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(block.Len()))
	if _, err := b.w.Write(prefix[:]); err != nil {
		return fmt.Errorf("steplog: writing block length for step %d: %w", step.Clock, err)
	}
	if _, err := b.w.Write(block.Bytes()); err != nil {
		return fmt.Errorf("steplog: writing block for step %d: %w", step.Clock, err)
	}
	if f, ok := b.w.(interface{ Sync() error }); ok {
		if err := f.Sync(); err != nil {
			return fmt.Errorf("steplog: flushing step %d: %w", step.Clock, err)
		}
	}
	return nil
}

func (b *binaryWriter) Close() error {
	return b.w.Close()
}

// ReadBinary reads every Step written by a binaryWriter, in order, until
// EOF. It is the companion reader used by replay tooling and tests.
func ReadBinary(r io.Reader) ([]proto.Step, error) {
	var steps []proto.Step
	for {
		var prefix [4]byte
		if _, err := io.ReadFull(r, prefix[:]); err != nil {
			if err == io.EOF {
				return steps, nil
			}
			return steps, fmt.Errorf("steplog: reading block length: %w", err)
		}
		n := binary.BigEndian.Uint32(prefix[:])
		block := make([]byte, n)
		if _, err := io.ReadFull(r, block); err != nil {
			return steps, fmt.Errorf("steplog: reading block: %w", err)
		}

		gz, err := gzip.NewReader(bytes.NewReader(block))
		if err != nil {
			return steps, fmt.Errorf("steplog: opening block: %w", err)
		}
		payload, err := io.ReadAll(gz)
		if err != nil {
			return steps, fmt.Errorf("steplog: decompressing block: %w", err)
		}

		var step proto.Step
		if err := wire.Unmarshal(payload, &step); err != nil {
			return steps, fmt.Errorf("steplog: decoding step: %w", err)
		}
		steps = append(steps, step)
	}
}

package steplog

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/photonai/arena/internal/observability"
	"github.com/photonai/arena/internal/proto"
)

// jsonlWriter implements the newline-delimited JSON encoding spec.md §6
// calls for: one Step per line, flushed immediately.
type jsonlWriter struct {
	w   io.WriteCloser
	enc *json.Encoder
}

func newJSONLWriter(w io.WriteCloser) *jsonlWriter {
	return &jsonlWriter{w: w, enc: json.NewEncoder(w)}
}

func (j *jsonlWriter) WriteStep(step proto.Step) error {
	start := time.Now()
	defer func() {
		if h := observability.GetStepWriteDurationHistogram(); h != nil {
			h.Observe(time.Since(start).Seconds())
		}
	}()

	if err := j.enc.Encode(step); err != nil {
		return fmt.Errorf("steplog: encoding step %d: %w", step.Clock, err)
	}
	if f, ok := j.w.(interface{ Sync() error }); ok {
		if err := f.Sync(); err != nil {
			return fmt.Errorf("steplog: flushing step %d: %w", step.Clock, err)
		}
	}
	return nil
}

func (j *jsonlWriter) Close() error {
	return j.w.Close()
}

// ReadJSONL reads every Step written by a jsonlWriter, in order.
func ReadJSONL(r io.Reader) ([]proto.Step, error) {
	dec := json.NewDecoder(r)
	var steps []proto.Step
	for {
		var step proto.Step
		if err := dec.Decode(&step); err != nil {
			if err == io.EOF {
				return steps, nil
			}
			return steps, fmt.Errorf("steplog: decoding step: %w", err)
		}
		steps = append(steps, step)
	}
}

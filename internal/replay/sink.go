package replay

import (
	"fmt"

	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/world"
)

// StepSink is the same shape as engine.StepSink, defined independently so
// this package doesn't need to import internal/engine just to be handed
// one of its Configs.
type StepSink interface {
	WriteStep(step proto.Step) error
}

// SnapshottingSink wraps a StepSink (typically the game's steplog.Writer)
// and replays the same Steps into its own world.State so it can hand a
// SnapshotStore a World every N ticks, without the game loop itself
// needing to know replay exists.
type SnapshottingSink struct {
	inner StepSink
	store *SnapshotStore
	every int
	state *world.State
}

// NewSnapshottingSink wraps inner, capturing to store every `every`
// clock ticks (every <= 0 disables capture — inner still receives every
// Step either way).
func NewSnapshottingSink(inner StepSink, store *SnapshotStore, every int) *SnapshottingSink {
	return &SnapshottingSink{inner: inner, store: store, every: every, state: world.New()}
}

// WriteStep forwards step to the wrapped sink, then folds it into this
// sink's own replica World and captures a snapshot on the configured
// cadence.
func (s *SnapshottingSink) WriteStep(step proto.Step) error {
	if s.inner != nil {
		if err := s.inner.WriteStep(step); err != nil {
			return err
		}
	}

	if err := s.state.Apply(step); err != nil {
		return fmt.Errorf("replay: replaying step %d into snapshot state: %w", step.Clock, err)
	}

	if s.every > 0 && step.Clock%s.every == 0 {
		s.store.Capture(s.state.World)
	}
	return nil
}

// Package replay keeps periodic, deep-copied snapshots of a running
// World keyed by clock tick, adapted from the teacher's
// internal/session/rollback.go SnapshotManager (which snapshotted its
// single-ship/pallets/sun World) to the event-sourced, multi-object
// entities.World this engine runs. A step log on its own only replays
// forward; a SnapshotStore lets a viewer or debugger jump to a tick
// without re-simulating every step since the start of the game, and
// gives entities.Body's UpdateClock field the consumer spec.md §9
// promises it.
package replay

import (
	"fmt"

	"github.com/photonai/arena/internal/sim/entities"
)

// Snapshot is a captured, independent copy of a World at one clock tick.
// Mutating it never affects the live game or any other Snapshot.
type Snapshot struct {
	Clock int
	Time  float32
	World *entities.World
}

// RollbackHook lets a caller react to snapshot capture and restore —
// e.g. to pause/resume a UI, or to invalidate a derived cache keyed by
// clock tick.
type RollbackHook interface {
	BeforeSnapshot(snapshot *Snapshot)
	AfterRestore(snapshot *Snapshot)
}

// SnapshotStore retains one Snapshot per captured clock tick. It is not
// safe for concurrent use; callers running it alongside a GameLoop
// should capture synchronously between ticks, e.g. from a StepSink.
type SnapshotStore struct {
	snapshots map[int]*Snapshot
	hooks     []RollbackHook
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{snapshots: make(map[int]*Snapshot)}
}

// RegisterHook registers a RollbackHook invoked on every Capture/Restore.
func (s *SnapshotStore) RegisterHook(hook RollbackHook) {
	s.hooks = append(s.hooks, hook)
}

// Capture deep-copies world and stores it under its current Clock,
// overwriting any snapshot already held for that tick.
func (s *SnapshotStore) Capture(world *entities.World) *Snapshot {
	snap := &Snapshot{
		Clock: world.Clock,
		Time:  world.Time,
		World: copyWorld(world),
	}
	for _, hook := range s.hooks {
		hook.BeforeSnapshot(snap)
	}
	s.snapshots[snap.Clock] = snap
	return snap
}

// Restore returns a fresh deep copy of the World captured at clock, so
// the caller can resume simulating from it without aliasing the stored
// snapshot. The second return is false if no snapshot exists for clock.
func (s *SnapshotStore) Restore(clock int) (*entities.World, bool) {
	snap, ok := s.snapshots[clock]
	if !ok {
		return nil, false
	}
	for _, hook := range s.hooks {
		hook.AfterRestore(snap)
	}
	return copyWorld(snap.World), true
}

// Ticks returns the clock ticks for which a snapshot is held, not
// necessarily sorted.
func (s *SnapshotStore) Ticks() []int {
	ticks := make([]int, 0, len(s.snapshots))
	for clock := range s.snapshots {
		ticks = append(ticks, clock)
	}
	return ticks
}

// Clear discards every stored snapshot.
func (s *SnapshotStore) Clear() {
	s.snapshots = make(map[int]*Snapshot)
}

// copyWorld deep-copies a World: a fresh Objects map holding a clone of
// each Object, so neither map mutation nor in-place Body edits on the
// live World can reach back into a stored Snapshot.
func copyWorld(w *entities.World) *entities.World {
	objects := make(map[int]entities.Object, len(w.Objects))
	for id, obj := range w.Objects {
		objects[id] = copyObject(obj)
	}
	return &entities.World{
		Clock:   w.Clock,
		Time:    w.Time,
		Space:   w.Space,
		Objects: objects,
	}
}

// copyObject clones obj by value, panicking on a Kind() this package
// doesn't know about — a new entities.Object variant means this package
// needs updating too, better to fail loudly at replay time than silently
// alias live state.
func copyObject(obj entities.Object) entities.Object {
	switch o := obj.(type) {
	case *entities.Ship:
		cp := *o
		return &cp
	case *entities.Planet:
		cp := *o
		return &cp
	case *entities.Pellet:
		cp := *o
		return &cp
	default:
		panic(fmt.Sprintf("replay: copyObject: unhandled object kind %v", obj.Kind()))
	}
}

package entities

import "sort"

// World is the authoritative event-sourced snapshot: space parameters plus
// an id→object map (spec.md §3). Only the game loop mutates it directly;
// everything else observes it through the accessors below.
type World struct {
	Clock   int
	Time    float32
	Space   Space
	Objects map[int]Object
}

// NewWorld creates an empty World. Space is zero-valued until the first
// Space-Create step is applied.
func NewWorld() *World {
	return &World{Objects: make(map[int]Object)}
}

// OrderedIDs returns the ids currently present in ascending order. The
// Simulator iterates objects in this order so that the deterministic
// semantics of spec.md §4.4 hold (ascending id, no parallel reductions).
func (w *World) OrderedIDs() []int {
	ids := make([]int, 0, len(w.Objects))
	for id := range w.Objects {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Ships returns the ids and pointers of every live Ship, ascending by id.
func (w *World) Ships() []struct {
	ID   int
	Ship *Ship
} {
	var out []struct {
		ID   int
		Ship *Ship
	}
	for _, id := range w.OrderedIDs() {
		if ship, ok := w.Objects[id].(*Ship); ok {
			out = append(out, struct {
				ID   int
				Ship *Ship
			}{ID: id, Ship: ship})
		}
	}
	return out
}

// Planets returns the ids and pointers of every Planet, ascending by id.
func (w *World) Planets() []struct {
	ID     int
	Planet *Planet
} {
	var out []struct {
		ID     int
		Planet *Planet
	}
	for _, id := range w.OrderedIDs() {
		if planet, ok := w.Objects[id].(*Planet); ok {
			out = append(out, struct {
				ID     int
				Planet *Planet
			}{ID: id, Planet: planet})
		}
	}
	return out
}

// ShipCount returns the number of live ships, used by the stop predicates
// in spec.md §4.7.
func (w *World) ShipCount() int {
	n := 0
	for _, obj := range w.Objects {
		if obj.Kind() == KindShip {
			n++
		}
	}
	return n
}

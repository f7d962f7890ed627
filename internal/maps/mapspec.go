// Package maps implements the seeded, deterministic MapSpec factories
// (spec.md §4.3) and the name→factory Registry that replaces the source
// system's singleton attribute-lookup registry with an explicit table
// built at startup (spec.md §9).
package maps

import "github.com/photonai/arena/internal/proto"

// ControllerMeta identifies a competing bot for the purposes of placing
// its ship — the game loop supplies one per (controller_meta, Bot) pair
// in competition order (spec.md §4.7).
type ControllerMeta struct {
	Name    string
	Version string
}

// MapSpec is a seeded, deterministic factory for a game's initial Space,
// planet list, and ship placements (spec.md §4.3). space() and planets()
// are pure functions of the seed; ship(meta) called k times yields the
// k-th placement in a deterministic sequence (spec.md §6).
type MapSpec interface {
	Space() proto.SpaceCreate
	Planets() []proto.ObjCreate
	Ship(meta ControllerMeta) proto.ObjCreate
}

// Factory builds a MapSpec for a given 32-bit seed.
type Factory func(seed int32) MapSpec

package maps

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// entry pairs a map's Factory with the engine versions it's known to
// produce valid Steps for. A map added for a newer wire schema than the
// engine running it understands should fail Build loudly rather than
// hand the engine events it can't interpret.
type entry struct {
	factory    Factory
	engineVers *semver.Constraints
}

// Registry is an explicit name→Factory table, built once at startup,
// replacing the source system's singleton registry keyed by dynamic
// attribute lookup (spec.md §9). Each entry additionally carries the
// semver range of engine versions it supports, checked once at Build
// time rather than per-Step.
type Registry struct {
	entries map[string]entry
}

// NewRegistry builds a Registry pre-populated with the four reference
// maps (spec.md §4.3, §6). All four are part of the engine's original
// release line, so they're registered against engine v1.x.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]entry)}
	r.Register("empty", NewEmpty, "^1.0.0")
	r.Register("singleton", NewSingleton, "^1.0.0")
	r.Register("orbital", NewOrbital, "^1.0.0")
	r.Register("binary", NewBinary, "^1.0.0")
	return r
}

// Register adds or overwrites the factory for name, tagged with the
// semver constraint (e.g. "^1.0.0", ">=1.2.0 <2.0.0") of engine versions
// the map is compatible with. Register panics on a malformed constraint
// string since those are a programming error, never user input.
func (r *Registry) Register(name string, factory Factory, engineConstraint string) {
	c, err := semver.NewConstraint(engineConstraint)
	if err != nil {
		panic(fmt.Sprintf("maps: invalid engine constraint %q for map %q: %v", engineConstraint, name, err))
	}
	r.entries[name] = entry{factory: factory, engineVers: c}
}

// Build looks up name, checks it against engineVersion, and constructs a
// MapSpec for seed. engineVersion is a plain semver string like "1.3.0".
func (r *Registry) Build(name string, seed int32, engineVersion string) (MapSpec, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("maps: unknown map %q", name)
	}

	v, err := semver.NewVersion(engineVersion)
	if err != nil {
		return nil, fmt.Errorf("maps: invalid engine version %q: %w", engineVersion, err)
	}
	if !e.engineVers.Check(v) {
		return nil, fmt.Errorf("maps: map %q requires engine %s, got %s", name, e.engineVers.String(), engineVersion)
	}

	return e.factory(seed), nil
}

// Names returns the registered map names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}

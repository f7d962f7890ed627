package rules

import (
	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/sim/entities"
)

// Obscured reports whether planet p lies between viewer and target on the
// open segment joining their centres, with perpendicular miss-distance
// less than p's radius (spec.md §4.5, glossary "Fog of war / Obscure").
func Obscured(viewer, target, planetPos entities.Vec2, planetRadius float32) bool {
	l := target.Sub(viewer)
	d := l.Length()
	if d == 0 {
		return false
	}
	u := l.Scale(1 / d)
	toPlanet := planetPos.Sub(viewer)
	k := u.Dot(toPlanet)
	if !(k > 0 && k < d) {
		return false
	}
	perpSq := toPlanet.LengthSq() - k*k
	return perpSq < planetRadius*planetRadius
}

// ObscuredFrom reports whether any planet in the world obscures target
// from viewer (spec.md §4.5). viewer and target are ship positions.
func ObscuredFrom(world *entities.World, viewer, target entities.Vec2) bool {
	for _, p := range world.Planets() {
		if Obscured(viewer, target, p.Planet.Body.Position, p.Planet.Body.Radius) {
			return true
		}
	}
	return false
}

// FilterForShip rewrites step into the Step that viewerID's controller is
// allowed to see (spec.md §4.5): Space-Create steps pass through
// untouched; otherwise every STATE event belonging to a ship currently
// obscured from the viewer is dropped. CREATE and DESTROY events are
// never dropped — spawn and death are always revealed.
func FilterForShip(world *entities.World, viewerID int, step proto.Step) proto.Step {
	if step.IsSpaceCreate() {
		return step
	}

	viewer, ok := world.Objects[viewerID].(*entities.Ship)
	if !ok {
		return step
	}
	viewerPos := viewer.Body.Position

	filtered := make([]proto.Event, 0, len(step.Events))
	for _, evt := range step.Events {
		if evt.Kind == proto.EventState {
			if target, isShip := world.Objects[evt.ID].(*entities.Ship); isShip && evt.ID != viewerID {
				if ObscuredFrom(world, viewerPos, target.Body.Position) {
					continue
				}
			}
		}
		filtered = append(filtered, evt)
	}
	return proto.NewEventsStep(step.Clock, step.Duration, filtered)
}

package maps

import (
	"math"

	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/sim/entities"
)

// orbitalMap has a central planet plus a ring of smaller planets around
// it (spec.md §4.3's "at least empty and singleton" leaves room for
// richer reference maps; this one exercises the Simulator's multi-body
// gravity path). Planets are stationary — maps always place them at zero
// velocity (spec.md §3) — only their position traces an orbit shape.
type orbitalMap struct {
	seed      int32
	dims      proto.Vec2
	nextShip  int
	baseAngle float32
}

const orbitalSatelliteCount = 3

// NewOrbital builds the `orbital` reference MapSpec.
func NewOrbital(seed int32) MapSpec {
	return &orbitalMap{seed: seed, dims: proto.Vec2{X: 500, Y: 500}, baseAngle: seededAngle(seed)}
}

func (m *orbitalMap) Space() proto.SpaceCreate {
	return proto.SpaceCreate{Dimensions: m.dims, Gravity: 0.08}
}

func (m *orbitalMap) Planets() []proto.ObjCreate {
	center := entities.NewVec2(m.dims.X/2, m.dims.Y/2)
	planets := make([]proto.ObjCreate, 0, orbitalSatelliteCount+1)
	planets = append(planets, planetAt("sol", proto.Vec2{X: center.X, Y: center.Y}, defaultPlanetRadius, defaultPlanetMass))

	orbitRadius := 0.25 * minF32(m.dims.X, m.dims.Y)
	for i := 0; i < orbitalSatelliteCount; i++ {
		theta := entities.NormalizeAngle(m.baseAngle + float32(i)*(2*math.Pi/orbitalSatelliteCount))
		pos := center.Add(entities.Bearing(theta).Scale(orbitRadius))
		name := "moon"
		planets = append(planets, planetAt(name, proto.Vec2{X: pos.X, Y: pos.Y}, defaultPlanetRadius/3, defaultPlanetMass/20))
	}
	return planets
}

func (m *orbitalMap) Ship(meta ControllerMeta) proto.ObjCreate {
	k := m.nextShip
	m.nextShip++

	theta := entities.NormalizeAngle(m.baseAngle + BinarySubdivision(k)*2*math.Pi)
	ringRadius := 0.45 * minF32(m.dims.X, m.dims.Y)
	center := entities.NewVec2(m.dims.X/2, m.dims.Y/2)
	pos := center.Add(entities.Bearing(theta).Scale(ringRadius))
	facing := entities.NormalizeAngle(theta + math.Pi)

	return shipAt(meta, proto.Vec2{X: pos.X, Y: pos.Y}, facing)
}

package maps

import (
	"math"

	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/sim/entities"
)

// singletonMap places one massive planet at the centre of the space
// (spec.md §4.3) and spreads ships on a ring around it using binary
// subdivision of bearing, so successive placements are maximally spread
// without knowing the eventual bot count.
type singletonMap struct {
	seed      int32
	dims      proto.Vec2
	nextShip  int
	baseAngle float32
}

// NewSingleton builds the `singleton` reference MapSpec.
func NewSingleton(seed int32) MapSpec {
	return &singletonMap{seed: seed, dims: proto.Vec2{X: 400, Y: 400}, baseAngle: seededAngle(seed)}
}

func (m *singletonMap) Space() proto.SpaceCreate {
	return proto.SpaceCreate{Dimensions: m.dims, Gravity: 0.05}
}

func (m *singletonMap) Planets() []proto.ObjCreate {
	center := proto.Vec2{X: m.dims.X / 2, Y: m.dims.Y / 2}
	return []proto.ObjCreate{planetAt("sol", center, defaultPlanetRadius, defaultPlanetMass)}
}

func (m *singletonMap) Ship(meta ControllerMeta) proto.ObjCreate {
	k := m.nextShip
	m.nextShip++

	theta := entities.NormalizeAngle(m.baseAngle + BinarySubdivision(k)*2*math.Pi)
	ringRadius := 0.35 * minF32(m.dims.X, m.dims.Y)
	center := entities.NewVec2(m.dims.X/2, m.dims.Y/2)
	pos := center.Add(entities.Bearing(theta).Scale(ringRadius))
	facing := entities.NormalizeAngle(theta + math.Pi)

	return shipAt(meta, proto.Vec2{X: pos.X, Y: pos.Y}, facing)
}

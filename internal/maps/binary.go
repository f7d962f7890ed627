package maps

import (
	"math"

	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/sim/entities"
)

// binaryMap scatters a small asteroid field using the same binary
// subdivision sequence that spreads ship bearings (spec.md glossary,
// "binary subdivision"), applied independently to the x and y axes so
// the field fills the space evenly. The field always holds
// binaryFieldPlanetCount planets at the same positions, whatever the seed.
// Ships ring the outside as in singleton.
type binaryMap struct {
	seed      int32
	dims      proto.Vec2
	nextShip  int
	baseAngle float32
}

const binaryFieldPlanetCount = 5

// NewBinary builds the `binary` reference MapSpec.
func NewBinary(seed int32) MapSpec {
	return &binaryMap{seed: seed, dims: proto.Vec2{X: 600, Y: 600}, baseAngle: seededAngle(seed)}
}

func (m *binaryMap) Space() proto.SpaceCreate {
	return proto.SpaceCreate{Dimensions: m.dims, Gravity: 0.03}
}

func (m *binaryMap) Planets() []proto.ObjCreate {
	planets := make([]proto.ObjCreate, 0, binaryFieldPlanetCount)
	margin := 0.15
	for i := 1; i <= binaryFieldPlanetCount; i++ {
		fx := BinarySubdivision(i)
		fy := BinarySubdivision(i + binaryFieldPlanetCount)
		x := (float32(margin) + fx*float32(1-2*margin)) * m.dims.X
		y := (float32(margin) + fy*float32(1-2*margin)) * m.dims.Y
		planets = append(planets, planetAt("asteroid", proto.Vec2{X: x, Y: y}, defaultPlanetRadius/2, defaultPlanetMass/10))
	}
	return planets
}

func (m *binaryMap) Ship(meta ControllerMeta) proto.ObjCreate {
	k := m.nextShip
	m.nextShip++

	theta := entities.NormalizeAngle(m.baseAngle + BinarySubdivision(k)*2*math.Pi)
	ringRadius := 0.47 * minF32(m.dims.X, m.dims.Y)
	center := entities.NewVec2(m.dims.X/2, m.dims.Y/2)
	pos := center.Add(entities.Bearing(theta).Scale(ringRadius))
	facing := entities.NormalizeAngle(theta + math.Pi)

	return shipAt(meta, proto.Vec2{X: pos.X, Y: pos.Y}, facing)
}

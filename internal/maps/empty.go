package maps

import (
	"math"

	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/sim/entities"
)

// emptyMap has no planets (spec.md §4.3): ships spread around the edge of
// the space using binary subdivision of bearing, facing the centre.
type emptyMap struct {
	seed      int32
	dims      proto.Vec2
	nextShip  int
	baseAngle float32
}

// NewEmpty builds the `empty` reference MapSpec.
func NewEmpty(seed int32) MapSpec {
	return &emptyMap{seed: seed, dims: proto.Vec2{X: 400, Y: 400}, baseAngle: seededAngle(seed)}
}

func (m *emptyMap) Space() proto.SpaceCreate {
	return proto.SpaceCreate{Dimensions: m.dims, Gravity: 0}
}

func (m *emptyMap) Planets() []proto.ObjCreate {
	return nil
}

func (m *emptyMap) Ship(meta ControllerMeta) proto.ObjCreate {
	k := m.nextShip
	m.nextShip++

	theta := entities.NormalizeAngle(m.baseAngle + BinarySubdivision(k)*2*math.Pi)
	ringRadius := 0.45 * minF32(m.dims.X, m.dims.Y)
	center := entities.NewVec2(m.dims.X/2, m.dims.Y/2)
	pos := center.Add(entities.Bearing(theta).Scale(ringRadius))
	facing := entities.NormalizeAngle(theta + math.Pi)

	return shipAt(meta, proto.Vec2{X: pos.X, Y: pos.Y}, facing)
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

package world

import (
	"testing"

	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/sim/entities"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestWorld(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "World Suite")
}

func f32(v float32) *float32 { return &v }
func str(v string) *string   { return &v }

func planetCreate(name string) *proto.ObjCreate {
	return &proto.ObjCreate{Radius: 10, Mass: 100, Name: str(name)}
}

func shipCreate() *proto.ObjCreate {
	return &proto.ObjCreate{
		Radius: 1, Mass: 1, MaxThrust: f32(5), MaxRotate: f32(1),
		Weapon:     &proto.WeaponParams{MaxReload: 0.5, MaxTemperature: 3},
		Controller: &proto.ControllerIdentity{Name: "bot", Version: "v1"},
	}
}

func pelletCreate() *proto.ObjCreate {
	return &proto.ObjCreate{Radius: 0, Mass: 0, TimeToLive: f32(2)}
}

var _ = Describe("World.Apply", Label("scope:unit", "layer:world", "b:event-sourcing", "r:high"), func() {
	var s *State

	BeforeEach(func() {
		s = New()
	})

	It("initializes space on a Space-Create step and resets time/clock", func() {
		lifetime := float32(30)
		step := proto.NewSpaceStep(0, 0, proto.SpaceCreate{Dimensions: proto.Vec2{X: 100, Y: 100}, Gravity: 0.5, Lifetime: &lifetime})
		Expect(s.Apply(step)).To(Succeed())

		Expect(s.World.Space.Dimensions).To(Equal(entities.NewVec2(100, 100)))
		Expect(s.World.Space.Gravity).To(Equal(float32(0.5)))
		Expect(*s.World.Space.Lifetime).To(Equal(float32(30)))
		Expect(s.World.Clock).To(Equal(0))
		Expect(s.World.Time).To(Equal(float32(0)))
		Expect(s.World.Objects).To(BeEmpty())
	})

	It("constructs a Planet from a CREATE event", func() {
		Expect(s.Apply(proto.NewSpaceStep(0, 0, proto.SpaceCreate{}))).To(Succeed())
		step := proto.NewEventsStep(1, 0, []proto.Event{{ID: 1, Kind: proto.EventCreate, Object: proto.ObjectPlanet, Create: planetCreate("sol")}})
		Expect(s.Apply(step)).To(Succeed())

		obj, ok := s.World.Objects[1]
		Expect(ok).To(BeTrue())
		planet, ok := obj.(*entities.Planet)
		Expect(ok).To(BeTrue())
		Expect(planet.Name).To(Equal("sol"))
		Expect(planet.BodyPtr().UpdateClock).To(Equal(1))
	})

	It("constructs a Ship from a CREATE event using the explicit Object tag", func() {
		Expect(s.Apply(proto.NewSpaceStep(0, 0, proto.SpaceCreate{}))).To(Succeed())
		step := proto.NewEventsStep(1, 0, []proto.Event{{ID: 2, Kind: proto.EventCreate, Object: proto.ObjectShip, Create: shipCreate()}})
		Expect(s.Apply(step)).To(Succeed())

		ship, ok := s.World.Objects[2].(*entities.Ship)
		Expect(ok).To(BeTrue())
		Expect(ship.MaxThrust).To(Equal(float32(5)))
		Expect(ship.Controller.Identity.Name).To(Equal("bot"))
	})

	It("falls back to structural classification when Object is unset", func() {
		Expect(s.Apply(proto.NewSpaceStep(0, 0, proto.SpaceCreate{}))).To(Succeed())
		step := proto.NewEventsStep(1, 0, []proto.Event{{ID: 3, Kind: proto.EventCreate, Create: pelletCreate()}})
		Expect(s.Apply(step)).To(Succeed())

		_, ok := s.World.Objects[3].(*entities.Pellet)
		Expect(ok).To(BeTrue())
	})

	It("mutates an existing object in place on STATE, including nested weapon/controller", func() {
		Expect(s.Apply(proto.NewSpaceStep(0, 0, proto.SpaceCreate{}))).To(Succeed())
		Expect(s.Apply(proto.NewEventsStep(1, 0, []proto.Event{{ID: 2, Kind: proto.EventCreate, Object: proto.ObjectShip, Create: shipCreate()}}))).To(Succeed())

		stateStep := proto.NewEventsStep(2, 0.1, []proto.Event{{ID: 2, Kind: proto.EventState, State: &proto.ObjState{
			Radius: 1, Mass: 1, Position: proto.Vec2{X: 5, Y: 5},
			Weapon:     &proto.WeaponState{Fired: true, Reload: 0.5, Temperature: 1},
			Controller: &proto.ControllerState{Fire: true, Rotate: 0.3, Thrust: 0.7},
		}}})
		Expect(s.Apply(stateStep)).To(Succeed())

		ship := s.World.Objects[2].(*entities.Ship)
		Expect(ship.Body.Position).To(Equal(entities.NewVec2(5, 5)))
		Expect(ship.Weapon.Fired).To(BeTrue())
		Expect(ship.Controller.State.Thrust).To(BeNumerically("~", 0.7, 1e-6))
		Expect(ship.BodyPtr().UpdateClock).To(Equal(2))
	})

	It("removes an object on DESTROY", func() {
		Expect(s.Apply(proto.NewSpaceStep(0, 0, proto.SpaceCreate{}))).To(Succeed())
		Expect(s.Apply(proto.NewEventsStep(1, 0, []proto.Event{{ID: 3, Kind: proto.EventCreate, Object: proto.ObjectPellet, Create: pelletCreate()}}))).To(Succeed())
		Expect(s.Apply(proto.NewEventsStep(2, 0.1, []proto.Event{{ID: 3, Kind: proto.EventDestroy, Destroy: &proto.Destroy{}}}))).To(Succeed())

		_, ok := s.World.Objects[3]
		Expect(ok).To(BeFalse())
	})

	It("rejects a STATE event for an unknown id", func() {
		Expect(s.Apply(proto.NewSpaceStep(0, 0, proto.SpaceCreate{}))).To(Succeed())
		err := s.Apply(proto.NewEventsStep(1, 0, []proto.Event{{ID: 99, Kind: proto.EventState, State: &proto.ObjState{}}}))
		Expect(err).To(MatchError(ErrUnknownID))
	})

	It("rejects a second CREATE for an id already created, even after destruction", func() {
		Expect(s.Apply(proto.NewSpaceStep(0, 0, proto.SpaceCreate{}))).To(Succeed())
		Expect(s.Apply(proto.NewEventsStep(1, 0, []proto.Event{{ID: 3, Kind: proto.EventCreate, Object: proto.ObjectPellet, Create: pelletCreate()}}))).To(Succeed())
		Expect(s.Apply(proto.NewEventsStep(2, 0.1, []proto.Event{{ID: 3, Kind: proto.EventDestroy, Destroy: &proto.Destroy{}}}))).To(Succeed())

		err := s.Apply(proto.NewEventsStep(3, 0.1, []proto.Event{{ID: 3, Kind: proto.EventCreate, Object: proto.ObjectPellet, Create: pelletCreate()}}))
		Expect(err).To(MatchError(ErrDuplicateID))
	})

	It("rejects a second DESTROY for the same id", func() {
		Expect(s.Apply(proto.NewSpaceStep(0, 0, proto.SpaceCreate{}))).To(Succeed())
		Expect(s.Apply(proto.NewEventsStep(1, 0, []proto.Event{{ID: 3, Kind: proto.EventCreate, Object: proto.ObjectPellet, Create: pelletCreate()}}))).To(Succeed())
		Expect(s.Apply(proto.NewEventsStep(2, 0.1, []proto.Event{{ID: 3, Kind: proto.EventDestroy, Destroy: &proto.Destroy{}}}))).To(Succeed())

		step := proto.Step{Clock: 3, Duration: 0.1, Events: []proto.Event{{ID: 3, Kind: proto.EventDestroy, Destroy: &proto.Destroy{}}}}
		err := s.Apply(step)
		Expect(err).To(MatchError(ErrUnknownID))
	})

	It("rejects a non-monotone clock", func() {
		Expect(s.Apply(proto.NewSpaceStep(5, 0, proto.SpaceCreate{}))).To(Succeed())
		err := s.Apply(proto.NewEventsStep(5, 0.1, nil))
		Expect(err).To(MatchError(proto.ErrMalformedEvent))
	})

	It("accumulates time across ticks", func() {
		Expect(s.Apply(proto.NewSpaceStep(0, 0, proto.SpaceCreate{}))).To(Succeed())
		Expect(s.Apply(proto.NewEventsStep(1, 0.016, nil))).To(Succeed())
		Expect(s.Apply(proto.NewEventsStep(2, 0.016, nil))).To(Succeed())
		Expect(s.World.Time).To(BeNumerically("~", 0.032, 1e-6))
	})
})

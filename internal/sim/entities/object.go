package entities

// Kind tags the three Object variants sharing a Body substructure
// (spec.md §3). A tagged sum plays the role the original subclassing
// hierarchy (Body → Ship/Pellet/Planet) played in the source system
// (spec.md §9, "Object polymorphism").
type Kind int

const (
	KindPlanet Kind = iota
	KindShip
	KindPellet
)

func (k Kind) String() string {
	switch k {
	case KindPlanet:
		return "planet"
	case KindShip:
		return "ship"
	case KindPellet:
		return "pellet"
	default:
		return "unknown"
	}
}

// Body is the physical substructure common to all three Object variants.
type Body struct {
	Radius      float32
	Mass        float32
	Position    Vec2
	Velocity    Vec2
	Orientation float32 // radians, 0 ⇒ +Y, increases clockwise

	// UpdateClock is the clock at which this object was last touched.
	// The core loop never reads it; it is preserved for replay tooling
	// (spec.md §9, open question) and is exercised by internal/replay.
	UpdateClock int
}

// Object is the capability interface every variant implements, giving
// shared code (collisions, wrap, gravity) uniform access to the Body
// without needing a type switch.
type Object interface {
	Kind() Kind
	BodyPtr() *Body
}

// Planet is an Object variant. Maps place planets at zero velocity; they
// are immovable in practice, participate in collisions as obstacles, but
// are never destroyed by one (spec.md §3).
type Planet struct {
	Body Body
	Name string
}

func (p *Planet) Kind() Kind     { return KindPlanet }
func (p *Planet) BodyPtr() *Body { return &p.Body }

// NewPlanet creates a Planet with the given body and name.
func NewPlanet(body Body, name string) *Planet {
	return &Planet{Body: body, Name: name}
}

// Ship is an Object variant carrying a Weapon and a Controller.
type Ship struct {
	Body       Body
	Weapon     Weapon
	Controller Controller
	MaxThrust  float32
	MaxRotate  float32
}

func (s *Ship) Kind() Kind     { return KindShip }
func (s *Ship) BodyPtr() *Body { return &s.Body }

// NewShip creates a Ship with the given body, weapon, controller and
// movement limits.
func NewShip(body Body, weapon Weapon, controller Controller, maxThrust, maxRotate float32) *Ship {
	return &Ship{
		Body:       body,
		Weapon:     weapon,
		Controller: controller,
		MaxThrust:  maxThrust,
		MaxRotate:  maxRotate,
	}
}

// Pellet is an Object variant with a remaining lifetime.
type Pellet struct {
	Body       Body
	TimeToLive float32
}

func (p *Pellet) Kind() Kind     { return KindPellet }
func (p *Pellet) BodyPtr() *Body { return &p.Body }

// NewPellet creates a Pellet with the given body and remaining lifetime.
func NewPellet(body Body, timeToLive float32) *Pellet {
	return &Pellet{Body: body, TimeToLive: timeToLive}
}

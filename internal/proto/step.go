package proto

// Package proto defines the canonical, on-wire Step/Event record shapes
// (spec.md §4.1) — the stable schema both the Step log and the bot wire
// protocol are built on. These are plain DTOs with no dependency on the
// sim entity types; internal/world turns them into entity mutations, and
// internal/sim/rules builds them from entity state.

// Vec2 is the wire representation of a 2-vector.
type Vec2 struct {
	X float32 `json:"x" cbor:"x"`
	Y float32 `json:"y" cbor:"y"`
}

// SpaceCreate is the payload of the one Step that establishes the game's
// Space (spec.md §3, §4.7 Step 0).
type SpaceCreate struct {
	Dimensions Vec2     `json:"dimensions" cbor:"dimensions"`
	Gravity    float32  `json:"gravity" cbor:"gravity"`
	Lifetime   *float32 `json:"lifetime,omitempty" cbor:"lifetime,omitempty"`
}

// WeaponParams are the stable, create-only weapon tunables (spec.md §3).
type WeaponParams struct {
	MaxReload        float32 `json:"max_reload" cbor:"max_reload"`
	MaxTemperature   float32 `json:"max_temperature" cbor:"max_temperature"`
	TemperatureDecay float32 `json:"temperature_decay" cbor:"temperature_decay"`
	Speed            float32 `json:"speed" cbor:"speed"`
	TimeToLive       float32 `json:"time_to_live" cbor:"time_to_live"`
}

// WeaponState is the per-tick weapon state echoed on every Ship STATE
// event (spec.md §3).
type WeaponState struct {
	Fired       bool    `json:"fired" cbor:"fired"`
	Reload      float32 `json:"reload" cbor:"reload"`
	Temperature float32 `json:"temperature" cbor:"temperature"`
}

// ControllerIdentity names a controller. Stable across a game, present
// only on CREATE (spec.md §3).
type ControllerIdentity struct {
	Name    string `json:"name" cbor:"name"`
	Version string `json:"version" cbor:"version"`
}

// ControllerState is the fire/rotate/thrust triple echoed on every Ship
// STATE event, and is also the shape of a Bot's response (spec.md §3, §4.6).
type ControllerState struct {
	Fire   bool    `json:"fire" cbor:"fire"`
	Rotate float32 `json:"rotate" cbor:"rotate"`
	Thrust float32 `json:"thrust" cbor:"thrust"`
}

// ObjCreate is the CREATE payload for an object. Exactly one of the three
// shapes applies, distinguished structurally (spec.md §4.1): Ship has
// Weapon+Controller+MaxThrust; Pellet has TimeToLive and no Weapon; Planet
// has Name and no TimeToLive.
type ObjCreate struct {
	Radius      float32 `json:"radius" cbor:"radius"`
	Mass        float32 `json:"mass" cbor:"mass"`
	Position    Vec2    `json:"position" cbor:"position"`
	Velocity    Vec2    `json:"velocity" cbor:"velocity"`
	Orientation float32 `json:"orientation" cbor:"orientation"`

	// Ship-only.
	Weapon          *WeaponParams       `json:"weapon,omitempty" cbor:"weapon,omitempty"`
	WeaponState     *WeaponState        `json:"weapon_state,omitempty" cbor:"weapon_state,omitempty"`
	Controller      *ControllerIdentity `json:"controller,omitempty" cbor:"controller,omitempty"`
	ControllerState *ControllerState    `json:"controller_state,omitempty" cbor:"controller_state,omitempty"`
	MaxThrust       *float32            `json:"max_thrust,omitempty" cbor:"max_thrust,omitempty"`
	MaxRotate       *float32            `json:"max_rotate,omitempty" cbor:"max_rotate,omitempty"`

	// Pellet-only.
	TimeToLive *float32 `json:"time_to_live,omitempty" cbor:"time_to_live,omitempty"`

	// Planet-only.
	Name *string `json:"name,omitempty" cbor:"name,omitempty"`
}

// ObjState mirrors ObjCreate without the create-only fields (spec.md §4.1).
// A Pellet's time_to_live is per-tick state, not create-only (it counts
// down every tick), so it travels here rather than in ObjCreate-only
// territory.
type ObjState struct {
	Radius      float32 `json:"radius" cbor:"radius"`
	Mass        float32 `json:"mass" cbor:"mass"`
	Position    Vec2    `json:"position" cbor:"position"`
	Velocity    Vec2    `json:"velocity" cbor:"velocity"`
	Orientation float32 `json:"orientation" cbor:"orientation"`

	Weapon     *WeaponState     `json:"weapon,omitempty" cbor:"weapon,omitempty"`
	Controller *ControllerState `json:"controller,omitempty" cbor:"controller,omitempty"`
	TimeToLive *float32         `json:"time_to_live,omitempty" cbor:"time_to_live,omitempty"`
}

// Destroy is an empty record (spec.md §4.1).
type Destroy struct{}

// EventKind explicitly tags which of ObjCreate/ObjState/Destroy an Event
// carries. spec.md §9 prefers an explicit tag over relying purely on
// structural disambiguation; Validate (validate.go) still offers the
// structural richest-to-poorest fallback for ingesting legacy logs that
// predate the tag.
type EventKind string

const (
	EventCreate  EventKind = "create"
	EventState   EventKind = "state"
	EventDestroy EventKind = "destroy"
)

// ObjectKind names which Object variant a Create/State payload describes.
type ObjectKind string

const (
	ObjectShip   ObjectKind = "ship"
	ObjectPellet ObjectKind = "pellet"
	ObjectPlanet ObjectKind = "planet"
)

// Event is one per-object record within a Step (spec.md §4.1).
type Event struct {
	ID      int        `json:"id" cbor:"id"`
	Kind    EventKind  `json:"kind" cbor:"kind"`
	Object  ObjectKind `json:"object,omitempty" cbor:"object,omitempty"`
	Create  *ObjCreate `json:"create,omitempty" cbor:"create,omitempty"`
	State   *ObjState  `json:"state,omitempty" cbor:"state,omitempty"`
	Destroy *Destroy   `json:"destroy,omitempty" cbor:"destroy,omitempty"`
}

// Step is one unit of the engine's output log (spec.md §4.1): either the
// initial Space-Create announcement or a list of per-object events for
// one tick. Exactly one of SpaceCreate or Events is set.
type Step struct {
	Clock       int         `json:"clock" cbor:"clock"`
	Duration    float32     `json:"duration" cbor:"duration"`
	SpaceCreate *SpaceCreate `json:"space,omitempty" cbor:"space,omitempty"`
	Events      []Event     `json:"events,omitempty" cbor:"events,omitempty"`
}

// IsSpaceCreate reports whether this Step is the Space-Create setup step.
func (s Step) IsSpaceCreate() bool {
	return s.SpaceCreate != nil
}

// NewSpaceStep builds the Step that announces the Space.
func NewSpaceStep(clock int, duration float32, space SpaceCreate) Step {
	return Step{Clock: clock, Duration: duration, SpaceCreate: &space}
}

// NewEventsStep builds a Step carrying a list of per-object events.
func NewEventsStep(clock int, duration float32, events []Event) Step {
	return Step{Clock: clock, Duration: duration, Events: events}
}

package maps

import "github.com/photonai/arena/internal/proto"

// Shared tunables for the four reference maps (spec.md §4.3 requires at
// least empty and singleton; orbital and binary round out the set).
const (
	defaultShipRadius     float32 = 1
	defaultShipMass       float32 = 1
	defaultMaxThrust      float32 = 40
	defaultMaxRotate      float32 = 3

	defaultMaxReload        float32 = 0.2
	defaultMaxTemperature   float32 = 3
	defaultTemperatureDecay float32 = 0.5
	defaultWeaponSpeed      float32 = 80
	defaultPelletTTL        float32 = 3

	defaultPlanetRadius float32 = 15
	defaultPlanetMass   float32 = 4000
)

func defaultWeaponParams() proto.WeaponParams {
	return proto.WeaponParams{
		MaxReload:        defaultMaxReload,
		MaxTemperature:   defaultMaxTemperature,
		TemperatureDecay: defaultTemperatureDecay,
		Speed:            defaultWeaponSpeed,
		TimeToLive:       defaultPelletTTL,
	}
}

func f32ptr(v float32) *float32 { return &v }
func strptr(v string) *string   { return &v }

// shipAt builds the Ship-Create record for meta at position, facing
// orientation, with the reference weapon loadout every reference map
// shares.
func shipAt(meta ControllerMeta, position proto.Vec2, orientation float32) proto.ObjCreate {
	weapon := defaultWeaponParams()
	return proto.ObjCreate{
		Radius:      defaultShipRadius,
		Mass:        defaultShipMass,
		Position:    position,
		Orientation: orientation,
		Weapon:      &weapon,
		Controller:  &proto.ControllerIdentity{Name: meta.Name, Version: meta.Version},
		MaxThrust:   f32ptr(defaultMaxThrust),
		MaxRotate:   f32ptr(defaultMaxRotate),
	}
}

func planetAt(name string, position proto.Vec2, radius, mass float32) proto.ObjCreate {
	return proto.ObjCreate{
		Radius:   radius,
		Mass:     mass,
		Position: position,
		Name:     strptr(name),
	}
}

// seededAngle derives a deterministic baseline bearing offset from seed so
// that two maps built from different seeds don't place their first ship
// identically, without needing any non-deterministic randomness. It is a
// pure function of seed — a seeded linear-congruential mix, not a PRNG
// stream — so repeated calls to Space()/Planets() for the same seed are
// exact repeats.
func seededAngle(seed int32) float32 {
	mixed := uint32(seed)*2654435761 + 0x9E3779B9
	return (float32(mixed%360000) / 1000) * (3.14159265 / 180)
}

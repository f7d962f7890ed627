package entities

// WeaponParams are the stable, per-ship tunables of a Weapon
// (spec.md §3).
type WeaponParams struct {
	MaxReload         float32 // seconds to fully reload after firing
	MaxTemperature    float32 // temperature at which firing is gated off
	TemperatureDecay  float32 // time to cool from MaxTemperature+1 back to MaxTemperature
	Speed             float32 // pellet muzzle speed
	PelletTimeToLive  float32 // time_to_live given to spawned pellets
}

// Weapon is a Ship's firing subsystem: stable params plus per-tick state.
type Weapon struct {
	Params WeaponParams

	Fired       bool    // did-fire-this-tick flag
	Reload      float32 // seconds remaining before ready, >= 0
	Temperature float32 // current temperature, >= 0
}

// NewWeapon creates a Weapon at rest (cold, ready to fire).
func NewWeapon(params WeaponParams) Weapon {
	return Weapon{Params: params}
}

// Ready reports whether the weapon could fire right now, ignoring the
// controller's fire request (spec.md §4.4 step 6).
func (w Weapon) Ready() bool {
	return w.Reload == 0 && w.Temperature < w.Params.MaxTemperature
}

package physics

import "math"

// AdvanceReload counts a weapon's reload timer down by dt, never below
// zero (spec.md §4.4 step 6).
func AdvanceReload(reload, dt float32) float32 {
	reload -= dt
	if reload < 0 {
		return 0
	}
	return reload
}

// DecayTemperature cools a weapon's temperature over dt seconds so that it
// takes temperatureDecay seconds to fall from maxTemperature+1 back to
// maxTemperature (spec.md §4.4 step 6):
//
//	decay_ratio = (T_max/(T_max+1))^(dt/temperature_decay)
//	temperature' = decay_ratio · temperature
//
// A non-positive temperatureDecay leaves the temperature unchanged (no
// cooling configured).
func DecayTemperature(temperature, maxTemperature, temperatureDecay, dt float32) float32 {
	if temperatureDecay <= 0 {
		return temperature
	}
	ratio := math.Pow(float64(maxTemperature)/float64(maxTemperature+1), float64(dt)/float64(temperatureDecay))
	return temperature * float32(ratio)
}

// CanFire reports whether a weapon with the given post-decay reload and
// temperature, under maxTemperature, may fire this tick (spec.md §4.4
// step 6): reload is zero and temperature is strictly below the gate.
func CanFire(reload, temperature, maxTemperature float32) bool {
	return reload == 0 && temperature < maxTemperature
}

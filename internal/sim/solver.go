package sim

import "math"

// Physical constants for cycling
const (
	Gravity    = 9.81  // m/s^2
	AirDensity = 1.225 // kg/m^3, sea level
	Crr        = 0.004 // rolling resistance coefficient
)

const (
	// minSpeedMs keeps the search bracket away from zero so segment time
	// (distance / speed) is always finite.
	minSpeedMs = 0.1
	// speedTolMs is the bracket width at which the bisection stops.
	speedTolMs     = 0.001
	maxSolverIters = 100
	// speedLimitEpsMs decides whether a solved speed counts as holding the
	// configured cap. Tunable threshold, not a physical quantity.
	speedLimitEpsMs = 0.01
)

// PowerNeeded returns the watts required to hold speedMs on the given grade.
// Grade is a true rise/run ratio, so the slope angle is atan(grade) rather
// than a small-angle approximation. The curve crosses any attainable power
// budget exactly once going up, which is what makes SolveSpeed well-defined.
func PowerNeeded(speedMs, grade, massKg, dragAreaM2 float64) float64 {
	theta := math.Atan(grade)
	forceGravity := massKg * Gravity * math.Sin(theta)
	forceRolling := massKg * Gravity * math.Cos(theta) * Crr
	forceAero := 0.5 * AirDensity * dragAreaM2 * speedMs * speedMs
	return (forceGravity + forceRolling + forceAero) * speedMs
}

// SolveSpeed returns the equilibrium speed in m/s for one segment. If the
// power budget covers the configured top speed the rider is speed-limited
// and maxSpeedMs is returned exactly (steep descents land here). Otherwise
// the speed where PowerNeeded equals maxPowerW is found by bisection on
// [minSpeedMs, maxSpeedMs].
func SolveSpeed(grade, massKg, dragAreaM2, maxPowerW, maxSpeedMs float64) float64 {
	if PowerNeeded(maxSpeedMs, grade, massKg, dragAreaM2) <= maxPowerW {
		return maxSpeedMs
	}

	low, high := minSpeedMs, maxSpeedMs
	for i := 0; i < maxSolverIters && high-low > speedTolMs; i++ {
		mid := (low + high) / 2
		if PowerNeeded(mid, grade, massKg, dragAreaM2) < maxPowerW {
			low = mid
		} else {
			high = mid
		}
	}
	return (low + high) / 2
}

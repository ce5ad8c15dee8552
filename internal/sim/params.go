package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData is returned when a route has fewer than two points.
	ErrInsufficientData = errors.New("route needs at least two points")
	// ErrInvalidParams is returned when a rider parameter is non-positive.
	ErrInvalidParams = errors.New("invalid rider parameters")
	// ErrInvalidRange is returned for out-of-bounds aggregation indexes.
	ErrInvalidRange = errors.New("range indexes out of bounds")
)

// RiderParams describes the rider and bike for one simulation run.
type RiderParams struct {
	TotalMassKg float64 `json:"total_mass_kg"`
	DragAreaM2  float64 `json:"drag_area_m2"`
	MaxPowerW   float64 `json:"max_power_w"`
	MaxSpeedKmh float64 `json:"max_speed_kmh"`
}

// Validate rejects non-positive parameters before any physics runs, so NaN
// and Inf never enter the solver.
func (p RiderParams) Validate() error {
	if p.TotalMassKg <= 0 {
		return fmt.Errorf("%w: total_mass_kg must be positive", ErrInvalidParams)
	}
	if p.DragAreaM2 <= 0 {
		return fmt.Errorf("%w: drag_area_m2 must be positive", ErrInvalidParams)
	}
	if p.MaxPowerW <= 0 {
		return fmt.Errorf("%w: max_power_w must be positive", ErrInvalidParams)
	}
	if p.MaxSpeedKmh <= 0 {
		return fmt.Errorf("%w: max_speed_kmh must be positive", ErrInvalidParams)
	}
	return nil
}

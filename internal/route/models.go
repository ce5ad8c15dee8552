package route

import (
	"time"

	"github.com/brospi/gpx-bike-simulator/internal/sim"
)

type Route struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	PointCount          int              `json:"point_count"`
	TotalDistanceM      float64          `json:"total_distance_m"`
	TotalElevationGainM float64          `json:"total_elevation_gain_m"`
	Points              []sim.TrackPoint `json:"points,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
}

package ride

import (
	"time"

	"github.com/brospi/gpx-bike-simulator/internal/sim"
)

// Ride is one simulation run of a route with a fixed set of rider
// parameters. The per-point sequence is cached separately; the stored row
// carries only whole-route stats.
type Ride struct {
	ID        string          `json:"id"`
	RouteID   string          `json:"route_id"`
	Params    sim.RiderParams `json:"params"`
	Stats     sim.Stats       `json:"stats"`
	CreatedAt time.Time       `json:"created_at"`
}

type runRequest struct {
	RouteID string          `json:"route_id"`
	Params  sim.RiderParams `json:"params"`
}

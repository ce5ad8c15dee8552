package sim

import "math"

// Point is one sample of a simulated ride. Cumulative fields (distance,
// time, elevation gain) never decrease along the sequence.
type Point struct {
	DistanceM      float64 `json:"distance_m"`
	ElevationM     float64 `json:"elevation_m"`
	SpeedKmh       float64 `json:"speed_kmh"`
	PowerW         float64 `json:"power_w"`
	TimeS          float64 `json:"time_s"`
	GradePct       float64 `json:"grade_pct"`
	ElevationGainM float64 `json:"elevation_gain_m"`
	Lat            float64 `json:"lat,omitempty"`
	Lng            float64 `json:"lng,omitempty"`
}

// Simulate runs the point-to-point speed model over a route and returns one
// Point per track point. The first entry is a synthetic zero sample holding
// the starting elevation, so every cumulative series has a defined origin.
// The input slice is never mutated; the result is freshly allocated on each
// call.
func Simulate(points []TrackPoint, params RiderParams) ([]Point, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	segments := BuildSegments(points)
	if len(segments) == 0 {
		return nil, ErrInsufficientData
	}

	maxSpeedMs := params.MaxSpeedKmh / 3.6

	result := make([]Point, 0, len(points))
	result = append(result, Point{ElevationM: points[0].ElevationM})

	var timeS, gainM float64
	prevElevation := points[0].ElevationM

	for _, seg := range segments {
		speedMs := SolveSpeed(seg.Grade, params.TotalMassKg, params.DragAreaM2, params.MaxPowerW, maxSpeedMs)
		timeS += seg.Distance3DM / speedMs

		if seg.ElevationM > prevElevation {
			gainM += seg.ElevationM - prevElevation
		}
		prevElevation = seg.ElevationM

		// Power-limited segments run at the full budget. Speed-limited
		// segments report the power actually needed to hold the cap, which
		// goes to zero on descents steep enough to need braking.
		powerW := params.MaxPowerW
		if math.Abs(speedMs-maxSpeedMs) < speedLimitEpsMs {
			powerW = math.Max(0, PowerNeeded(speedMs, seg.Grade, params.TotalMassKg, params.DragAreaM2))
		}

		result = append(result, Point{
			DistanceM:      seg.CumDistanceM,
			ElevationM:     seg.ElevationM,
			SpeedKmh:       speedMs * 3.6,
			PowerW:         powerW,
			TimeS:          timeS,
			GradePct:       seg.Grade * 100,
			ElevationGainM: gainM,
			Lat:            seg.Lat,
			Lng:            seg.Lng,
		})
	}
	return result, nil
}

package sim

import (
	"math"

	"github.com/brospi/gpx-bike-simulator/internal/shared/geo"
)

// TrackPoint is one point of a route in traversal order.
type TrackPoint struct {
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	ElevationM float64 `json:"elevation_m"`
}

// Segment joins two consecutive track points. Grade is rise over horizontal
// run, not an angle.
type Segment struct {
	Distance3DM  float64
	Grade        float64
	ElevationM   float64
	CumDistanceM float64
	Lat          float64
	Lng          float64
}

// BuildSegments converts an ordered point sequence into N-1 segments with
// cumulative 3D distance. Fewer than two points yields nil. Consecutive
// points with identical coordinates are legal: the segment gets grade 0 and
// its distance is the absolute elevation delta.
func BuildSegments(points []TrackPoint) []Segment {
	if len(points) < 2 {
		return nil
	}

	segments := make([]Segment, 0, len(points)-1)
	cum := 0.0
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]

		horizontal := geo.HaversineKm(prev.Lat, prev.Lng, cur.Lat, cur.Lng) * 1000
		rise := cur.ElevationM - prev.ElevationM
		dist3d := math.Sqrt(horizontal*horizontal + rise*rise)

		grade := 0.0
		if horizontal > 0 {
			grade = rise / horizontal
		}

		cum += dist3d
		segments = append(segments, Segment{
			Distance3DM:  dist3d,
			Grade:        grade,
			ElevationM:   cur.ElevationM,
			CumDistanceM: cum,
			Lat:          cur.Lat,
			Lng:          cur.Lng,
		})
	}
	return segments
}

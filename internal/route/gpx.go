package route

import (
	"github.com/brospi/gpx-bike-simulator/internal/sim"

	"github.com/tkrajina/gpxgo/gpx"
)

// ParsePoints extracts an ordered track point sequence from raw GPX. Track
// segments are preferred; GPX route points are the fallback for files that
// carry no tracks. Points without elevation default to 0.
func ParsePoints(data []byte) ([]sim.TrackPoint, error) {
	gpxFile, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, err
	}

	var points []sim.TrackPoint
	add := func(p *gpx.GPXPoint) {
		points = append(points, sim.TrackPoint{
			Lat:        p.Latitude,
			Lng:        p.Longitude,
			ElevationM: p.Elevation.Value(),
		})
	}

	for _, track := range gpxFile.Tracks {
		for _, segment := range track.Segments {
			for i := range segment.Points {
				add(&segment.Points[i])
			}
		}
	}
	if len(points) == 0 {
		for _, rte := range gpxFile.Routes {
			for i := range rte.Points {
				add(&rte.Points[i])
			}
		}
	}

	if len(points) < 2 {
		return nil, sim.ErrInsufficientData
	}
	return points, nil
}

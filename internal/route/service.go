package route

import (
	"context"
	"encoding/json"

	"github.com/brospi/gpx-bike-simulator/internal/db"
	"github.com/brospi/gpx-bike-simulator/internal/sim"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

// CreateRoute stores a route with its full point sequence and the geometric
// totals derived from it.
func (s *Service) CreateRoute(ctx context.Context, name string, points []sim.TrackPoint) (Route, error) {
	segments := sim.BuildSegments(points)
	if len(segments) == 0 {
		return Route{}, sim.ErrInsufficientData
	}

	var gain float64
	prev := points[0].ElevationM
	for _, seg := range segments {
		if seg.ElevationM > prev {
			gain += seg.ElevationM - prev
		}
		prev = seg.ElevationM
	}

	rt := Route{
		ID:                  uuid.NewString(),
		Name:                name,
		PointCount:          len(points),
		TotalDistanceM:      segments[len(segments)-1].CumDistanceM,
		TotalElevationGainM: gain,
		Points:              points,
	}

	pointsJSON, err := json.Marshal(points)
	if err != nil {
		return Route{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO routes (id, name, point_count, total_distance_m, total_elevation_gain_m, points)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, rt.ID, rt.Name, rt.PointCount, rt.TotalDistanceM, rt.TotalElevationGainM, pointsJSON)
	if err := row.Scan(&rt.CreatedAt); err != nil {
		return Route{}, err
	}
	return rt, nil
}

func (s *Service) GetRoute(ctx context.Context, id string) (Route, error) {
	var rt Route
	var pointsJSON []byte
	row := s.db.QueryRow(ctx, `
		SELECT id, name, point_count, total_distance_m, total_elevation_gain_m, points, created_at
		FROM routes WHERE id=$1
	`, id)
	if err := row.Scan(&rt.ID, &rt.Name, &rt.PointCount, &rt.TotalDistanceM, &rt.TotalElevationGainM, &pointsJSON, &rt.CreatedAt); err != nil {
		return Route{}, err
	}
	if err := json.Unmarshal(pointsJSON, &rt.Points); err != nil {
		return Route{}, err
	}
	return rt, nil
}

// ListRoutes returns route summaries without point sequences.
func (s *Service) ListRoutes(ctx context.Context) ([]Route, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, point_count, total_distance_m, total_elevation_gain_m, created_at
		FROM routes ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []Route
	for rows.Next() {
		var rt Route
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.PointCount, &rt.TotalDistanceM, &rt.TotalElevationGainM, &rt.CreatedAt); err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, nil
}

func (s *Service) DeleteRoute(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM routes WHERE id=$1`, id)
	return err
}

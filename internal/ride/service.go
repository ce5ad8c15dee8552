package ride

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/brospi/gpx-bike-simulator/internal/db"
	"github.com/brospi/gpx-bike-simulator/internal/route"
	"github.com/brospi/gpx-bike-simulator/internal/sim"
	"github.com/brospi/gpx-bike-simulator/internal/stream"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Service struct {
	db       db.Querier
	cache    *redis.Client
	routes   *route.Service
	hub      *stream.Hub
	cacheTTL time.Duration
}

func NewService(q db.Querier, cache *redis.Client, routes *route.Service, hub *stream.Hub, cacheTTL time.Duration) *Service {
	return &Service{db: q, cache: cache, routes: routes, hub: hub, cacheTTL: cacheTTL}
}

// Run simulates a route with the given parameters, stores the whole-route
// stats, caches the point sequence and notifies watchers of the route.
func (s *Service) Run(ctx context.Context, routeID string, params sim.RiderParams) (Ride, error) {
	rt, err := s.routes.GetRoute(ctx, routeID)
	if err != nil {
		return Ride{}, err
	}

	points, err := sim.Simulate(rt.Points, params)
	if err != nil {
		return Ride{}, err
	}
	stats, err := sim.AggregateAll(points)
	if err != nil {
		return Ride{}, err
	}

	r := Ride{
		ID:      uuid.NewString(),
		RouteID: routeID,
		Params:  params,
		Stats:   stats,
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return Ride{}, err
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO rides (id, route_id, params, total_time_s, total_distance_m, avg_speed_kmh, avg_power_w)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, r.ID, r.RouteID, paramsJSON, stats.TotalTimeS, stats.TotalDistanceM, stats.AvgSpeedKmh, stats.AvgPowerW)
	if err := row.Scan(&r.CreatedAt); err != nil {
		return Ride{}, err
	}

	s.cachePoints(ctx, r.ID, points)

	if s.hub != nil {
		payload, _ := json.Marshal(r)
		s.hub.Broadcast(routeID, payload)
	}
	return r, nil
}

func (s *Service) GetRide(ctx context.Context, id string) (Ride, error) {
	var r Ride
	var paramsJSON []byte
	row := s.db.QueryRow(ctx, `
		SELECT id, route_id, params, total_time_s, total_distance_m, avg_speed_kmh, avg_power_w, created_at
		FROM rides WHERE id=$1
	`, id)
	if err := row.Scan(&r.ID, &r.RouteID, &paramsJSON, &r.Stats.TotalTimeS, &r.Stats.TotalDistanceM,
		&r.Stats.AvgSpeedKmh, &r.Stats.AvgPowerW, &r.CreatedAt); err != nil {
		return Ride{}, err
	}
	if err := json.Unmarshal(paramsJSON, &r.Params); err != nil {
		return Ride{}, err
	}
	return r, nil
}

// Points returns the simulated point sequence of a ride. On a cache miss the
// run is repeated from the stored parameters; the simulation is
// deterministic, so the rebuilt sequence is identical to the original.
func (s *Service) Points(ctx context.Context, id string) ([]sim.Point, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, pointsKey(id)).Bytes()
		if err == nil {
			var points []sim.Point
			if err := json.Unmarshal(cached, &points); err == nil {
				return points, nil
			}
		}
	}

	r, err := s.GetRide(ctx, id)
	if err != nil {
		return nil, err
	}
	rt, err := s.routes.GetRoute(ctx, r.RouteID)
	if err != nil {
		return nil, err
	}
	points, err := sim.Simulate(rt.Points, r.Params)
	if err != nil {
		return nil, err
	}

	s.cachePoints(ctx, id, points)
	return points, nil
}

// RangeStats aggregates an index sub-range of a ride without re-simulating.
// This is the backend of interactive map/chart selection: the client maps a
// selection to two indexes and everything else stays computed.
func (s *Service) RangeStats(ctx context.Context, id string, start, end int) (sim.Stats, error) {
	points, err := s.Points(ctx, id)
	if err != nil {
		return sim.Stats{}, err
	}
	// -1 is the "last point" sentinel; any other negative index is invalid
	// and rejected by Aggregate.
	if end == -1 {
		end = len(points) - 1
	}
	return sim.Aggregate(points, start, end)
}

func (s *Service) cachePoints(ctx context.Context, id string, points []sim.Point) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(points)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, pointsKey(id), payload, s.cacheTTL).Err(); err != nil {
		log.Printf("ride cache set error: %v", err)
	}
}

func pointsKey(id string) string {
	return "ride:" + id + ":points"
}

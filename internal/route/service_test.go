package route

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/brospi/gpx-bike-simulator/internal/sim"

	"github.com/pashagolub/pgxmock/v3"
)

func testPoints() []sim.TrackPoint {
	return []sim.TrackPoint{
		{Lat: 41.380, Lng: 2.170, ElevationM: 10},
		{Lat: 41.385, Lng: 2.175, ElevationM: 25},
		{Lat: 41.390, Lng: 2.180, ElevationM: 18},
	}
}

func TestCreateAndGetRoute(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	createdAt := time.Now()
	mock.ExpectQuery(`INSERT INTO routes`).
		WithArgs(pgxmock.AnyArg(), "Collserola loop", 3, pgxmock.AnyArg(), 15.0, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	svc := NewService(mock)
	rt, err := svc.CreateRoute(context.Background(), "Collserola loop", testPoints())
	if err != nil {
		t.Fatalf("create route: %v", err)
	}
	if rt.PointCount != 3 {
		t.Fatalf("unexpected point count: %d", rt.PointCount)
	}
	if rt.TotalDistanceM <= 0 {
		t.Fatalf("expected positive total distance")
	}
	if rt.TotalElevationGainM != 15 {
		t.Fatalf("expected 15 m gain, got %v", rt.TotalElevationGainM)
	}

	pointsJSON, _ := json.Marshal(testPoints())
	mock.ExpectQuery(`SELECT id, name, point_count, total_distance_m, total_elevation_gain_m, points, created_at`).
		WithArgs(rt.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "point_count", "total_distance_m", "total_elevation_gain_m", "points", "created_at"}).
			AddRow(rt.ID, rt.Name, rt.PointCount, rt.TotalDistanceM, rt.TotalElevationGainM, pointsJSON, createdAt))

	loaded, err := svc.GetRoute(context.Background(), rt.ID)
	if err != nil {
		t.Fatalf("get route: %v", err)
	}
	if len(loaded.Points) != 3 {
		t.Fatalf("expected points to round-trip, got %d", len(loaded.Points))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateRouteTooFewPoints(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.CreateRoute(context.Background(), "empty", nil)
	if !errors.Is(err, sim.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestListAndDeleteRoutes(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, point_count, total_distance_m, total_elevation_gain_m, created_at`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "point_count", "total_distance_m", "total_elevation_gain_m", "created_at"}).
			AddRow("route-1", "A", 10, 1200.0, 80.0, time.Now()).
			AddRow("route-2", "B", 20, 5400.0, 210.0, time.Now()))

	svc := NewService(mock)
	routes, err := svc.ListRoutes(context.Background())
	if err != nil {
		t.Fatalf("list routes: %v", err)
	}
	if len(routes) != 2 || routes[0].ID != "route-1" {
		t.Fatalf("unexpected routes: %+v", routes)
	}
	if routes[0].Points != nil {
		t.Fatalf("list should not carry point sequences")
	}

	mock.ExpectExec(`DELETE FROM routes`).WithArgs("route-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	if err := svc.DeleteRoute(context.Background(), "route-1"); err != nil {
		t.Fatalf("delete route: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetRouteNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, point_count`).
		WithArgs("missing").
		WillReturnError(errors.New("no rows in result set"))

	svc := NewService(mock)
	if _, err := svc.GetRoute(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error for missing route")
	}
}

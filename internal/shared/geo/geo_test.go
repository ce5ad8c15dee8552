package geo

import "testing"

func TestHaversineKm(t *testing.T) {
	// Jakarta (-6.2, 106.816) to Bandung (-6.9175, 107.6191) ~ 115-120 km
	d := HaversineKm(-6.2, 106.816, -6.9175, 107.6191)
	if d < 100 || d > 140 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestHaversineKmIdenticalPoints(t *testing.T) {
	if d := HaversineKm(41.38, 2.17, 41.38, 2.17); d != 0 {
		t.Fatalf("expected zero distance, got %v", d)
	}
}

func TestHaversineKmShortHop(t *testing.T) {
	// ~1.4 km between two points in Barcelona
	d := HaversineKm(41.38, 2.17, 41.39, 2.16)
	if d <= 0 || d > 3 {
		t.Fatalf("unexpected short-hop distance: %v", d)
	}
}

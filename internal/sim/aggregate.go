package sim

// Stats summarizes a simulated ride or any index sub-range of it.
type Stats struct {
	TotalTimeS     float64 `json:"total_time_s"`
	TotalDistanceM float64 `json:"total_distance_m"`
	AvgSpeedKmh    float64 `json:"avg_speed_kmh"`
	AvgPowerW      float64 `json:"avg_power_w"`
}

// Aggregate computes totals and averages over data[start..end]. Average
// power is time-weighted: each sample counts for the duration of its
// segment, not once per sample, so slow densely-sampled stretches do not
// skew the mean. Zero-duration ranges report zero averages.
func Aggregate(data []Point, start, end int) (Stats, error) {
	if start < 0 || end < start || end >= len(data) {
		return Stats{}, ErrInvalidRange
	}

	stats := Stats{
		TotalTimeS:     data[end].TimeS - data[start].TimeS,
		TotalDistanceM: data[end].DistanceM - data[start].DistanceM,
	}
	if stats.TotalTimeS == 0 {
		return stats, nil
	}

	var powerSeconds float64
	for i := start + 1; i <= end; i++ {
		powerSeconds += data[i].PowerW * (data[i].TimeS - data[i-1].TimeS)
	}

	stats.AvgSpeedKmh = stats.TotalDistanceM / stats.TotalTimeS * 3.6
	stats.AvgPowerW = powerSeconds / stats.TotalTimeS
	return stats, nil
}

// AggregateAll aggregates over the whole sequence.
func AggregateAll(data []Point) (Stats, error) {
	if len(data) == 0 {
		return Stats{}, ErrInvalidRange
	}
	return Aggregate(data, 0, len(data)-1)
}

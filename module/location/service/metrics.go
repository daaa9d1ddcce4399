package service

import (
	"math"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
)

type pingStats struct {
	metrics   domain.Metrics
	movements []float64
}

// aggregatePings derives the summary metrics for pings in the order given.
// It reports false when there are no pings.
func aggregatePings(pings []domain.LocationPing, office domain.Office, t Thresholds) (pingStats, bool) {
	if len(pings) == 0 {
		return pingStats{}, false
	}

	var (
		m            domain.Metrics
		sumDistance  float64
		sumAccuracy  float64
		withAccuracy int
	)
	movements := make([]float64, 0, len(pings)-1)
	uniqueCoords := make(map[[2]int64]struct{}, len(pings))
	scale := math.Pow10(t.UniqueLocationDecimals)

	m.TotalPings = len(pings)
	m.MinDistanceKm = math.Inf(1)

	for i, p := range pings {
		dist := Distance(p.Lat, p.Lng, office.Lat, office.Lng)
		sumDistance += dist
		m.MaxDistanceKm = math.Max(m.MaxDistanceKm, dist)
		m.MinDistanceKm = math.Min(m.MinDistanceKm, dist)
		if dist <= office.RadiusKm {
			m.PingsInZone++
		}

		if i > 0 {
			prev := pings[i-1]
			mv := Distance(prev.Lat, prev.Lng, p.Lat, p.Lng)
			movements = append(movements, mv)
			m.TotalMovementKm += mv
		}

		if p.Accuracy != nil {
			sumAccuracy += *p.Accuracy
			withAccuracy++
		}

		key := [2]int64{
			int64(math.Round(p.Lat * scale)),
			int64(math.Round(p.Lng * scale)),
		}
		uniqueCoords[key] = struct{}{}
	}

	m.AvgDistanceKm = sumDistance / float64(m.TotalPings)
	m.ZonePercentage = float64(m.PingsInZone) / float64(m.TotalPings) * 100
	if len(movements) > 0 {
		m.AvgMovementKm = m.TotalMovementKm / float64(len(movements))
	}
	m.AvgGPSAccuracyM = t.DefaultAccuracyM
	if withAccuracy > 0 {
		m.AvgGPSAccuracyM = sumAccuracy / float64(withAccuracy)
	}
	m.UniqueLocations = len(uniqueCoords)

	return pingStats{metrics: m, movements: movements}, true
}

package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
)

const maxConfidence = 100

type evaluation struct {
	score    int
	findings domain.Findings
}

func (e *evaluation) risk(penalty int, finding string) {
	e.findings.RiskFactors = append(e.findings.RiskFactors, finding)
	e.score -= penalty
}

func (e *evaluation) spoofing(penalty int, finding string) {
	e.findings.SpoofingIndicators = append(e.findings.SpoofingIndicators, finding)
	e.score -= penalty
}

// evaluateSignals runs every check against the aggregated stats. Checks are
// independent; their order only decides the order of findings.
func evaluateSignals(pings []domain.LocationPing, office domain.Office, stats pingStats, t Thresholds) (int, domain.Findings) {
	m := stats.metrics
	e := &evaluation{
		score: maxConfidence,
		findings: domain.Findings{
			RiskFactors:        []string{},
			SpoofingIndicators: []string{},
		},
	}

	if m.AvgDistanceKm > office.RadiusKm*t.FarFromOfficeFactor {
		e.risk(t.FarFromOfficePenalty, fmt.Sprintf(
			"Average location %.2fkm from office (allowed: %gkm)", m.AvgDistanceKm, office.RadiusKm))
	}

	if m.ZonePercentage < t.MinZonePercentage {
		e.risk(t.LowZonePenalty, fmt.Sprintf("Only %.0f%% of pings within work zone", m.ZonePercentage))
	}

	if m.TotalPings >= t.StationaryMinPings && m.TotalMovementKm < t.StationaryMaxMovementKm {
		e.spoofing(t.StationaryPenalty, "Unnaturally stationary - possible GPS spoofing")
	}

	if m.TotalMovementKm > t.ExcessiveMovementKm {
		e.risk(t.ExcessiveMovementPenalty, fmt.Sprintf("Excessive movement detected: %.2fkm", m.TotalMovementKm))
	}

	if m.AvgGPSAccuracyM > t.MaxAvgAccuracyM {
		e.spoofing(t.PoorAccuracyPenalty, fmt.Sprintf(
			"Poor GPS accuracy: %.0fm (may indicate indoor/spoofing)", m.AvgGPSAccuracyM))
	}

	for _, mv := range stats.movements {
		if mv > t.MaxJumpKm {
			e.spoofing(t.ImpossibleJumpPenalty, fmt.Sprintf("Impossible movement detected: %.2fkm between pings", mv))
			break
		}
	}

	if m.UniqueLocations == 1 && m.TotalPings >= t.IdenticalMinPings &&
		hasAtMostDecimals(pings[0].Lat, t.IdenticalDecimals) &&
		hasAtMostDecimals(pings[0].Lng, t.IdenticalDecimals) {
		e.spoofing(t.IdenticalPenalty, "All pings have identical coordinates - likely GPS spoofing")
	}

	for _, p := range pings[:min(len(pings), t.RoundCheckPings)] {
		if hasAtMostDecimals(p.Lat, t.RoundDecimals) && hasAtMostDecimals(p.Lng, t.RoundDecimals) {
			e.spoofing(t.RoundPenalty, "Suspiciously round coordinates detected")
			break
		}
	}

	return max(0, min(maxConfidence, e.score)), e.findings
}

// hasAtMostDecimals reports whether v is written exactly with no more than n
// digits after the decimal point. Real fixes carry many digits of jitter.
func hasAtMostDecimals(v float64, n int) bool {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return true
	}
	return len(s)-dot-1 <= n
}

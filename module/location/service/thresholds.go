package service

import (
	"errors"
	"fmt"
)

// maxDecimals bounds coordinate scaling so 180*10^n stays well inside int64.
const maxDecimals = 10

// Thresholds is the single table of tunables used by the spoofing checks and
// the classifier. Distances are in km, accuracies in meters, penalties in
// confidence points.
type Thresholds struct {
	FarFromOfficeFactor  float64 `toml:"far_from_office_factor"`
	FarFromOfficePenalty int     `toml:"far_from_office_penalty"`

	MinZonePercentage float64 `toml:"min_zone_percentage"`
	LowZonePenalty    int     `toml:"low_zone_penalty"`

	// StationaryMaxMovementKm awaits product-owner confirmation; an earlier
	// revision used 0.01.
	StationaryMinPings      int     `toml:"stationary_min_pings"`
	StationaryMaxMovementKm float64 `toml:"stationary_max_movement_km"`
	StationaryPenalty       int     `toml:"stationary_penalty"`

	ExcessiveMovementKm      float64 `toml:"excessive_movement_km"`
	ExcessiveMovementPenalty int     `toml:"excessive_movement_penalty"`

	DefaultAccuracyM    float64 `toml:"default_accuracy_m"`
	MaxAvgAccuracyM     float64 `toml:"max_avg_accuracy_m"`
	PoorAccuracyPenalty int     `toml:"poor_accuracy_penalty"`

	MaxJumpKm             float64 `toml:"max_jump_km"`
	ImpossibleJumpPenalty int     `toml:"impossible_jump_penalty"`

	UniqueLocationDecimals int `toml:"unique_location_decimals"`
	IdenticalMinPings      int `toml:"identical_min_pings"`
	IdenticalDecimals      int `toml:"identical_decimals"`
	IdenticalPenalty       int `toml:"identical_penalty"`

	RoundCheckPings int `toml:"round_check_pings"`
	RoundDecimals   int `toml:"round_decimals"`
	RoundPenalty    int `toml:"round_penalty"`

	VerifiedMinScore     int `toml:"verified_min_score"`
	PartialMinScore      int `toml:"partial_min_score"`
	PartialMaxIndicators int `toml:"partial_max_indicators"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		FarFromOfficeFactor:  2,
		FarFromOfficePenalty: 30,

		MinZonePercentage: 70,
		LowZonePenalty:    20,

		StationaryMinPings:      4,
		StationaryMaxMovementKm: 0.001,
		StationaryPenalty:       15,

		ExcessiveMovementKm:      5,
		ExcessiveMovementPenalty: 15,

		DefaultAccuracyM:    50,
		MaxAvgAccuracyM:     100,
		PoorAccuracyPenalty: 10,

		MaxJumpKm:             2,
		ImpossibleJumpPenalty: 20,

		UniqueLocationDecimals: 5,
		IdenticalMinPings:      4,
		IdenticalDecimals:      3,
		IdenticalPenalty:       25,

		RoundCheckPings: 3,
		RoundDecimals:   1,
		RoundPenalty:    15,

		VerifiedMinScore:     80,
		PartialMinScore:      60,
		PartialMaxIndicators: 1,
	}
}

func (t Thresholds) Validate() error {
	var errs []error
	positive := map[string]float64{
		"far_from_office_factor":     t.FarFromOfficeFactor,
		"stationary_max_movement_km": t.StationaryMaxMovementKm,
		"excessive_movement_km":      t.ExcessiveMovementKm,
		"default_accuracy_m":         t.DefaultAccuracyM,
		"max_avg_accuracy_m":         t.MaxAvgAccuracyM,
		"max_jump_km":                t.MaxJumpKm,
	}
	for name, v := range positive {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s: must be positive", name))
		}
	}
	if t.MinZonePercentage < 0 || t.MinZonePercentage > 100 {
		errs = append(errs, errors.New("min_zone_percentage: must be between 0 and 100"))
	}
	penalties := map[string]int{
		"far_from_office_penalty":    t.FarFromOfficePenalty,
		"low_zone_penalty":           t.LowZonePenalty,
		"stationary_penalty":         t.StationaryPenalty,
		"excessive_movement_penalty": t.ExcessiveMovementPenalty,
		"poor_accuracy_penalty":      t.PoorAccuracyPenalty,
		"impossible_jump_penalty":    t.ImpossibleJumpPenalty,
		"identical_penalty":          t.IdenticalPenalty,
		"round_penalty":              t.RoundPenalty,
	}
	for name, v := range penalties {
		if v < 0 || v > maxConfidence {
			errs = append(errs, fmt.Errorf("%s: must be between 0 and %d", name, maxConfidence))
		}
	}
	decimals := map[string]int{
		"unique_location_decimals": t.UniqueLocationDecimals,
		"identical_decimals":       t.IdenticalDecimals,
		"round_decimals":           t.RoundDecimals,
	}
	for name, v := range decimals {
		if v < 0 || v > maxDecimals {
			errs = append(errs, fmt.Errorf("%s: must be between 0 and %d", name, maxDecimals))
		}
	}
	scores := map[string]int{
		"verified_min_score": t.VerifiedMinScore,
		"partial_min_score":  t.PartialMinScore,
	}
	for name, v := range scores {
		if v < 0 || v > maxConfidence {
			errs = append(errs, fmt.Errorf("%s: must be between 0 and %d", name, maxConfidence))
		}
	}
	if t.StationaryMinPings < 1 || t.IdenticalMinPings < 1 || t.RoundCheckPings < 1 {
		errs = append(errs, errors.New("ping counts: must be at least 1"))
	}
	if t.PartialMinScore > t.VerifiedMinScore {
		errs = append(errs, errors.New("partial_min_score: must not exceed verified_min_score"))
	}
	if t.PartialMaxIndicators < 0 {
		errs = append(errs, errors.New("partial_max_indicators: must not be negative"))
	}
	return errors.Join(errs...)
}

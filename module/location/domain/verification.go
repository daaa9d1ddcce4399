package domain

import (
	"fmt"
	"math"
	"time"
)

const DefaultOfficeRadiusKm = 0.5

type VerificationStatus string

const (
	StatusNoData             VerificationStatus = "NO_DATA"
	StatusVerified           VerificationStatus = "VERIFIED"
	StatusPartiallyVerified  VerificationStatus = "PARTIALLY_VERIFIED"
	StatusSpoofingSuspected  VerificationStatus = "SPOOFING_SUSPECTED"
	StatusVerificationFailed VerificationStatus = "VERIFICATION_FAILED"
)

// Office is the anchor the pings are measured against. The zone is the disc
// of RadiusKm around (Lat, Lng).
type Office struct {
	Lat      float64 `json:"office_latitude"`
	Lng      float64 `json:"office_longitude"`
	RadiusKm float64 `json:"office_radius_km"`
}

type VerificationRequest struct {
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Office
	Pings []LocationPing `json:"pings"`
}

// Validate applies the default radius when none was given and rejects
// malformed geometry. Returned errors wrap ErrInvalidRequest.
func (r *VerificationRequest) Validate() error {
	if math.IsNaN(r.Office.RadiusKm) || math.IsInf(r.Office.RadiusKm, 0) || r.Office.RadiusKm < 0 {
		return fmt.Errorf("%w: office_radius_km must be a positive number", ErrInvalidRequest)
	}
	if r.Office.RadiusKm == 0 {
		r.Office.RadiusKm = DefaultOfficeRadiusKm
	}
	if err := ValidateCoordinates(r.Office.Lat, r.Office.Lng); err != nil {
		return fmt.Errorf("%w: office: %v", ErrInvalidRequest, err)
	}
	for i, p := range r.Pings {
		if err := ValidateCoordinates(p.Lat, p.Lng); err != nil {
			return fmt.Errorf("%w: pings[%d]: %v", ErrInvalidRequest, i, err)
		}
	}
	return nil
}

// HistoryVerificationRequest verifies the pings already stored for an
// employee within [Start, End].
type HistoryVerificationRequest struct {
	EmployeeID   int64
	EmployeeName string
	Office       Office
	Start        time.Time
	End          time.Time
}

type Metrics struct {
	TotalPings      int     `json:"total_pings"`
	PingsInZone     int     `json:"pings_in_zone"`
	ZonePercentage  float64 `json:"zone_percentage"`
	AvgDistanceKm   float64 `json:"avg_distance_km"`
	MinDistanceKm   float64 `json:"min_distance_km"`
	MaxDistanceKm   float64 `json:"max_distance_km"`
	TotalMovementKm float64 `json:"total_movement_km"`
	AvgMovementKm   float64 `json:"avg_movement_km"`
	UniqueLocations int     `json:"unique_locations"`
	AvgGPSAccuracyM float64 `json:"avg_gps_accuracy_m"`
}

type Findings struct {
	RiskFactors        []string `json:"risk_factors"`
	SpoofingIndicators []string `json:"spoofing_indicators"`
}

type VerificationResult struct {
	ID             string             `json:"id,omitempty"`
	Verified       bool               `json:"verified"`
	Confidence     int                `json:"confidence"`
	Status         VerificationStatus `json:"status"`
	Message        string             `json:"message"`
	EmployeeID     int64              `json:"employee_id"`
	EmployeeName   string             `json:"employee_name"`
	Metrics        Metrics            `json:"metrics"`
	Findings
	Recommendation string    `json:"recommendation"`
	AIAnalysis     string    `json:"ai_analysis,omitempty"`
	CheckedAt      time.Time `json:"checked_at"`
}

// LocationAlert is raised for verdicts that did not verify the employee.
type LocationAlert struct {
	VerificationID     string             `json:"verification_id"`
	EmployeeID         int64              `json:"employee_id"`
	EmployeeName       string             `json:"employee_name"`
	Status             VerificationStatus `json:"status"`
	Confidence         int                `json:"confidence"`
	RiskFactors        []string           `json:"risk_factors"`
	SpoofingIndicators []string           `json:"spoofing_indicators"`
	CheckedAt          time.Time          `json:"checked_at"`
}

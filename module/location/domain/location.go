package domain

import (
	"fmt"
	"math"
	"time"
)

type LocationPing struct {
	Lat       float64   `json:"latitude"`
	Lng       float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
	Accuracy  *float64  `json:"accuracy,omitempty"`
	// Altitude and Speed are collected from devices but no check reads them yet.
	Altitude *float64 `json:"altitude,omitempty"`
	Speed    *float64 `json:"speed,omitempty"`
}

type EmployeePing struct {
	EmployeeID int64        `json:"employee_id"`
	Ping       LocationPing `json:"ping"`
}

type PingQuery struct {
	EmployeeID int64
	Start      time.Time
	End        time.Time
}

// ValidateCoordinates rejects anything outside the WGS84 degree ranges,
// including NaN and infinities. Out-of-range values are never clamped.
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v: must be between -90 and 90", lat)
	}
	if math.IsNaN(lng) || math.IsInf(lng, 0) || lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %v: must be between -180 and 180", lng)
	}
	return nil
}

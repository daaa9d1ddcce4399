package domain

type PatternAnalysis struct {
	EmployeeID          int64    `json:"employee_id"`
	EmployeeName        string   `json:"employee_name"`
	LegitimacyScore     int      `json:"legitimacy_score"`
	PatternType         string   `json:"pattern_type"`
	DetectedPatterns    []string `json:"detected_patterns"`
	SpoofingProbability int      `json:"spoofing_probability"`
	Recommendation      string   `json:"recommendation"`
	Summary             string   `json:"summary"`
	AIPowered           bool     `json:"ai_powered"`
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"strings"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
)

const patternMaxPings = 20

var errNoJSONObject = errors.New("reply contains no JSON object")

// PatternService asks a text-generation model to classify an employee's
// ping history. Without a model, or when it fails, a static fallback is
// returned instead of an error.
type PatternService struct {
	analyzer PatternAnalyzer
}

func NewPatternService(analyzer PatternAnalyzer) *PatternService {
	return &PatternService{analyzer: analyzer}
}

type patternReply struct {
	LegitimacyScore     *float64 `json:"legitimacy_score"`
	PatternType         string   `json:"pattern_type"`
	DetectedPatterns    []string `json:"detected_patterns"`
	SpoofingProbability *float64 `json:"spoofing_probability"`
	Recommendation      string   `json:"recommendation"`
	Summary             string   `json:"summary"`
}

func (s *PatternService) Analyze(ctx context.Context, req *domain.VerificationRequest) (*domain.PatternAnalysis, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.analyzer == nil {
		return fallbackPattern(req), nil
	}

	trimmed := *req
	trimmed.Pings = req.Pings[:min(len(req.Pings), patternMaxPings)]

	raw, err := s.analyzer.AnalyzePattern(ctx, &trimmed)
	if err != nil {
		log.Printf("pattern analysis for employee %d: %v", req.EmployeeID, err)
		return fallbackPattern(req), nil
	}

	reply, err := parsePatternReply(raw)
	if err != nil {
		log.Printf("pattern analysis for employee %d: %v", req.EmployeeID, err)
		return fallbackPattern(req), nil
	}

	analysis := &domain.PatternAnalysis{
		EmployeeID:          req.EmployeeID,
		EmployeeName:        req.EmployeeName,
		LegitimacyScore:     scoreOr(reply.LegitimacyScore, 50),
		PatternType:         stringOr(reply.PatternType, "UNKNOWN"),
		DetectedPatterns:    reply.DetectedPatterns,
		SpoofingProbability: scoreOr(reply.SpoofingProbability, 0),
		Recommendation:      stringOr(reply.Recommendation, "Manual review required"),
		Summary:             stringOr(reply.Summary, "Analysis completed"),
		AIPowered:           true,
	}
	if analysis.DetectedPatterns == nil {
		analysis.DetectedPatterns = []string{}
	}
	return analysis, nil
}

// parsePatternReply pulls the outermost JSON object out of a model reply,
// which may be wrapped in prose or code fences.
func parsePatternReply(raw string) (*patternReply, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, errNoJSONObject
	}

	var reply patternReply
	if err := json.Unmarshal([]byte(raw[start:end+1]), &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func fallbackPattern(req *domain.VerificationRequest) *domain.PatternAnalysis {
	return &domain.PatternAnalysis{
		EmployeeID:          req.EmployeeID,
		EmployeeName:        req.EmployeeName,
		LegitimacyScore:     70,
		PatternType:         "UNKNOWN",
		DetectedPatterns:    []string{"AI analysis unavailable"},
		SpoofingProbability: 0,
		Recommendation:      "Manual verification recommended",
		Summary:             "Basic analysis completed without AI",
		AIPowered:           false,
	}
}

func scoreOr(v *float64, fallback int) int {
	if v == nil || math.IsNaN(*v) {
		return fallback
	}
	return max(0, min(100, int(math.Round(*v))))
}

func stringOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

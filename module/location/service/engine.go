package service

import "github.com/nandanugg/hrms-integrity/module/location/domain"

// Evaluate scores a validated request. It is a pure function of its inputs
// and safe to call concurrently; ID, CheckedAt and AIAnalysis are left empty.
func Evaluate(req *domain.VerificationRequest, t Thresholds) *domain.VerificationResult {
	result := &domain.VerificationResult{
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
	}

	stats, ok := aggregatePings(req.Pings, req.Office, t)
	if !ok {
		result.Status = domain.StatusNoData
		result.Findings = domain.Findings{
			RiskFactors:        []string{"No location pings received"},
			SpoofingIndicators: []string{},
		}
		applyVerdict(result)
		return result
	}

	score, findings := evaluateSignals(req.Pings, req.Office, stats, t)

	result.Confidence = score
	result.Metrics = stats.metrics
	result.Findings = findings
	result.Status = classify(stats.metrics.TotalPings, score, findings, t)
	applyVerdict(result)
	return result
}

func applyVerdict(result *domain.VerificationResult) {
	v := verdicts[result.Status]
	result.Verified = v.verified
	result.Message = v.message
	result.Recommendation = v.recommendation
}

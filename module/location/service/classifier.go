package service

import "github.com/nandanugg/hrms-integrity/module/location/domain"

type verdict struct {
	verified       bool
	message        string
	recommendation string
}

var verdicts = map[domain.VerificationStatus]verdict{
	domain.StatusNoData: {
		message:        "No location data provided",
		recommendation: "Employee must enable location services",
	},
	domain.StatusVerified: {
		verified:       true,
		message:        "Location verified - Employee presence confirmed",
		recommendation: "No action required - Employee location verified",
	},
	domain.StatusPartiallyVerified: {
		verified:       true,
		message:        "Location partially verified - Minor anomalies detected",
		recommendation: "Monitor employee's future check-ins for patterns",
	},
	domain.StatusSpoofingSuspected: {
		message:        "GPS spoofing suspected - Manual verification required",
		recommendation: "Conduct physical verification; consider disciplinary action if spoofing confirmed.",
	},
	domain.StatusVerificationFailed: {
		message:        "Location verification failed - Employee may not be at work location",
		recommendation: "Require employee to check-in again with better GPS signal or use biometric verification",
	},
}

// classify picks the first matching state, in order.
func classify(totalPings, score int, findings domain.Findings, t Thresholds) domain.VerificationStatus {
	indicators := len(findings.SpoofingIndicators)
	switch {
	case totalPings == 0:
		return domain.StatusNoData
	case score >= t.VerifiedMinScore && indicators == 0:
		return domain.StatusVerified
	case score >= t.PartialMinScore && indicators <= t.PartialMaxIndicators:
		return domain.StatusPartiallyVerified
	case indicators > 0:
		return domain.StatusSpoofingSuspected
	default:
		return domain.StatusVerificationFailed
	}
}

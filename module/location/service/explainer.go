package service

import (
	"context"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
)

// Explainer produces a free-text assessment of a verdict. It is best-effort:
// callers must not let its failure change the verdict.
type Explainer interface {
	Explain(ctx context.Context, metrics domain.Metrics, findings domain.Findings) (string, error)
}

// PatternAnalyzer returns the raw model reply for a pattern-analysis prompt.
type PatternAnalyzer interface {
	AnalyzePattern(ctx context.Context, req *domain.VerificationRequest) (string, error)
}

type NopExplainer struct{}

func (NopExplainer) Explain(context.Context, domain.Metrics, domain.Findings) (string, error) {
	return "", nil
}

package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
	"github.com/nandanugg/hrms-integrity/module/location/internal/repository/database"
	"github.com/nandanugg/hrms-integrity/module/location/internal/repository/publisher"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type VerificationService struct {
	repo       database.VerificationRepository
	pings      database.PingRepository
	publisher  publisher.AlertPublisher
	explainer  Explainer
	thresholds Thresholds
	now        func() time.Time
	newID      func() string
}

func NewVerificationService(
	repo database.VerificationRepository,
	pings database.PingRepository,
	pub publisher.AlertPublisher,
	explainer Explainer,
	thresholds Thresholds,
) *VerificationService {
	if explainer == nil {
		explainer = NopExplainer{}
	}
	return &VerificationService{
		repo:       repo,
		pings:      pings,
		publisher:  pub,
		explainer:  explainer,
		thresholds: thresholds,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Verify scores the request, records the verdict and raises an alert when
// the employee could not be verified.
func (s *VerificationService) Verify(ctx context.Context, req *domain.VerificationRequest) (*domain.VerificationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := Evaluate(req, s.thresholds)
	if result.Status != domain.StatusNoData {
		result.AIAnalysis = s.explain(ctx, result)
	}
	result.ID = s.newID()
	result.CheckedAt = s.now().UTC()

	if err := s.repo.Insert(ctx, result); err != nil {
		return nil, fmt.Errorf("save verification: %w", err)
	}

	if shouldAlert(result.Status) {
		if err := s.publisher.PublishAlert(ctx, toAlert(result)); err != nil {
			log.Printf("publish location alert %s: %v", result.ID, err)
		}
	}
	return result, nil
}

// VerifyHistory runs Verify over the pings stored for the employee between
// Start and End.
func (s *VerificationService) VerifyHistory(ctx context.Context, req *domain.HistoryVerificationRequest) (*domain.VerificationResult, error) {
	if req.End.Before(req.Start) {
		return nil, fmt.Errorf("%w: end must not be before start", domain.ErrInvalidRequest)
	}

	history, err := s.pings.GetHistory(ctx, &domain.PingQuery{
		EmployeeID: req.EmployeeID,
		Start:      req.Start,
		End:        req.End,
	})
	if err != nil {
		return nil, fmt.Errorf("load ping history: %w", err)
	}

	pings := make([]domain.LocationPing, len(history))
	for i, ep := range history {
		pings[i] = ep.Ping
	}

	return s.Verify(ctx, &domain.VerificationRequest{
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		Office:       req.Office,
		Pings:        pings,
	})
}

func (s *VerificationService) Get(ctx context.Context, id string) (*domain.VerificationResult, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *VerificationService) ListByEmployee(ctx context.Context, employeeID int64, limit int) ([]domain.VerificationResult, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)
	return s.repo.ListByEmployee(ctx, employeeID, limit)
}

func (s *VerificationService) explain(ctx context.Context, result *domain.VerificationResult) string {
	text, err := s.explainer.Explain(ctx, result.Metrics, result.Findings)
	if err != nil {
		log.Printf("location explanation for employee %d: %v", result.EmployeeID, err)
		return ""
	}
	return text
}

func shouldAlert(status domain.VerificationStatus) bool {
	return status == domain.StatusSpoofingSuspected || status == domain.StatusVerificationFailed
}

func toAlert(result *domain.VerificationResult) *domain.LocationAlert {
	return &domain.LocationAlert{
		VerificationID:     result.ID,
		EmployeeID:         result.EmployeeID,
		EmployeeName:       result.EmployeeName,
		Status:             result.Status,
		Confidence:         result.Confidence,
		RiskFactors:        result.RiskFactors,
		SpoofingIndicators: result.SpoofingIndicators,
		CheckedAt:          result.CheckedAt,
	}
}

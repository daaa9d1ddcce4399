package service

import (
	"context"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
)

type mockPingRepo struct {
	insertFn     func(ctx context.Context, ping *domain.EmployeePing) error
	getLatestFn  func(ctx context.Context, employeeID int64) (*domain.EmployeePing, error)
	getHistoryFn func(ctx context.Context, query *domain.PingQuery) ([]domain.EmployeePing, error)
}

func (m *mockPingRepo) Insert(ctx context.Context, ping *domain.EmployeePing) error {
	return m.insertFn(ctx, ping)
}

func (m *mockPingRepo) GetLatest(ctx context.Context, employeeID int64) (*domain.EmployeePing, error) {
	return m.getLatestFn(ctx, employeeID)
}

func (m *mockPingRepo) GetHistory(ctx context.Context, query *domain.PingQuery) ([]domain.EmployeePing, error) {
	return m.getHistoryFn(ctx, query)
}

type mockVerificationRepo struct {
	insertFn         func(ctx context.Context, result *domain.VerificationResult) error
	getByIDFn        func(ctx context.Context, id string) (*domain.VerificationResult, error)
	listByEmployeeFn func(ctx context.Context, employeeID int64, limit int) ([]domain.VerificationResult, error)
	inserted         []*domain.VerificationResult
}

func (m *mockVerificationRepo) Insert(ctx context.Context, result *domain.VerificationResult) error {
	m.inserted = append(m.inserted, result)
	if m.insertFn != nil {
		return m.insertFn(ctx, result)
	}
	return nil
}

func (m *mockVerificationRepo) GetByID(ctx context.Context, id string) (*domain.VerificationResult, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockVerificationRepo) ListByEmployee(ctx context.Context, employeeID int64, limit int) ([]domain.VerificationResult, error) {
	return m.listByEmployeeFn(ctx, employeeID, limit)
}

type mockAlertPublisher struct {
	publishAlertFn func(ctx context.Context, alert *domain.LocationAlert) error
	calls          []*domain.LocationAlert
}

func (m *mockAlertPublisher) PublishAlert(ctx context.Context, alert *domain.LocationAlert) error {
	m.calls = append(m.calls, alert)
	if m.publishAlertFn != nil {
		return m.publishAlertFn(ctx, alert)
	}
	return nil
}

type mockExplainer struct {
	explainFn func(ctx context.Context, metrics domain.Metrics, findings domain.Findings) (string, error)
	calls     int
}

func (m *mockExplainer) Explain(ctx context.Context, metrics domain.Metrics, findings domain.Findings) (string, error) {
	m.calls++
	return m.explainFn(ctx, metrics, findings)
}

type mockAnalyzer struct {
	analyzeFn func(ctx context.Context, req *domain.VerificationRequest) (string, error)
}

func (m *mockAnalyzer) AnalyzePattern(ctx context.Context, req *domain.VerificationRequest) (string, error) {
	return m.analyzeFn(ctx, req)
}

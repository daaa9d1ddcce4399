package database

import (
	"context"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
)

type PingRepository interface {
	Insert(ctx context.Context, ping *domain.EmployeePing) error
	GetLatest(ctx context.Context, employeeID int64) (*domain.EmployeePing, error)
	GetHistory(ctx context.Context, query *domain.PingQuery) ([]domain.EmployeePing, error)
}

type VerificationRepository interface {
	Insert(ctx context.Context, result *domain.VerificationResult) error
	GetByID(ctx context.Context, id string) (*domain.VerificationResult, error)
	ListByEmployee(ctx context.Context, employeeID int64, limit int) ([]domain.VerificationResult, error)
}

package service

import (
	"context"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
	"github.com/nandanugg/hrms-integrity/module/location/internal/repository/database"
)

type PingService struct {
	repo database.PingRepository
}

func NewPingService(repo database.PingRepository) *PingService {
	return &PingService{repo: repo}
}

func (s *PingService) SaveLocation(ctx context.Context, ping *domain.EmployeePing) error {
	return s.repo.Insert(ctx, ping)
}

func (s *PingService) GetLatest(ctx context.Context, employeeID int64) (*domain.EmployeePing, error) {
	return s.repo.GetLatest(ctx, employeeID)
}

func (s *PingService) GetHistory(ctx context.Context, query *domain.PingQuery) ([]domain.EmployeePing, error) {
	return s.repo.GetHistory(ctx, query)
}

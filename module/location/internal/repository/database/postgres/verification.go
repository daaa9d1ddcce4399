package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
	"github.com/nandanugg/hrms-integrity/module/location/internal/repository/database"
)

var _ database.VerificationRepository = (*VerificationRepo)(nil)

const verificationColumns = `id, employee_id, employee_name, status, verified, confidence, message, metrics, risk_factors, spoofing_indicators, recommendation, ai_analysis, checked_at`

type VerificationRepo struct {
	db *sql.DB
}

func NewVerificationRepo(db *sql.DB) *VerificationRepo {
	return &VerificationRepo{db: db}
}

func (r *VerificationRepo) Insert(ctx context.Context, result *domain.VerificationResult) error {
	metrics, err := json.Marshal(result.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}

	var aiAnalysis sql.NullString
	if result.AIAnalysis != "" {
		aiAnalysis = sql.NullString{String: result.AIAnalysis, Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO location_verifications (`+verificationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		result.ID, result.EmployeeID, result.EmployeeName, string(result.Status), result.Verified,
		result.Confidence, result.Message, metrics, pq.Array(result.RiskFactors),
		pq.Array(result.SpoofingIndicators), result.Recommendation, aiAnalysis, result.CheckedAt,
	)
	return err
}

func (r *VerificationRepo) GetByID(ctx context.Context, id string) (*domain.VerificationResult, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+verificationColumns+` FROM location_verifications WHERE id = $1`,
		id,
	)

	result, err := scanVerification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *VerificationRepo) ListByEmployee(ctx context.Context, employeeID int64, limit int) ([]domain.VerificationResult, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+verificationColumns+` FROM location_verifications WHERE employee_id = $1 ORDER BY checked_at DESC LIMIT $2`,
		employeeID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.VerificationResult
	for rows.Next() {
		result, err := scanVerification(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, rows.Err()
}

func scanVerification(s scanner) (*domain.VerificationResult, error) {
	var (
		result     domain.VerificationResult
		status     string
		metrics    []byte
		aiAnalysis sql.NullString
	)
	err := s.Scan(
		&result.ID, &result.EmployeeID, &result.EmployeeName, &status, &result.Verified,
		&result.Confidence, &result.Message, &metrics, pq.Array(&result.RiskFactors),
		pq.Array(&result.SpoofingIndicators), &result.Recommendation, &aiAnalysis, &result.CheckedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(metrics, &result.Metrics); err != nil {
		return nil, fmt.Errorf("unmarshal metrics: %w", err)
	}
	result.Status = domain.VerificationStatus(status)
	result.AIAnalysis = aiAnalysis.String
	if result.RiskFactors == nil {
		result.RiskFactors = []string{}
	}
	if result.SpoofingIndicators == nil {
		result.SpoofingIndicators = []string{}
	}
	return &result, nil
}

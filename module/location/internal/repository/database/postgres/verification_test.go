package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
)

const verificationID = "3f0b6c1e-8a51-4c2e-9a57-0d7f3e4b2a10"

var verificationRowColumns = []string{
	"id", "employee_id", "employee_name", "status", "verified", "confidence", "message", "metrics",
	"risk_factors", "spoofing_indicators", "recommendation", "ai_analysis", "checked_at",
}

func TestVerificationInsert_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	checkedAt := time.Unix(1715013000, 0).UTC()
	mock.ExpectExec(`INSERT INTO location_verifications`).
		WithArgs(verificationID, int64(1042), "R. Sharma", "SPOOFING_SUSPECTED", false, 45,
			"GPS spoofing suspected - Manual verification required", sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), "Conduct physical verification", nil, checkedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewVerificationRepo(db)
	err = repo.Insert(context.Background(), &domain.VerificationResult{
		ID:           verificationID,
		Confidence:   45,
		Status:       domain.StatusSpoofingSuspected,
		Message:      "GPS spoofing suspected - Manual verification required",
		EmployeeID:   1042,
		EmployeeName: "R. Sharma",
		Metrics:      domain.Metrics{TotalPings: 5, PingsInZone: 5, ZonePercentage: 100, UniqueLocations: 1},
		Findings: domain.Findings{
			RiskFactors:        []string{},
			SpoofingIndicators: []string{"Unnaturally stationary - possible GPS spoofing"},
		},
		Recommendation: "Conduct physical verification",
		CheckedAt:      checkedAt,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestVerificationInsert_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`INSERT INTO location_verifications`).
		WillReturnError(sqlmock.ErrCancelled)

	repo := NewVerificationRepo(db)
	err = repo.Insert(context.Background(), &domain.VerificationResult{ID: verificationID, Status: domain.StatusNoData})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestVerificationGetByID_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	checkedAt := time.Unix(1715013000, 0).UTC()
	rows := sqlmock.NewRows(verificationRowColumns).AddRow(
		verificationID, int64(1042), "R. Sharma", "PARTIALLY_VERIFIED", true, int64(85),
		"Location partially verified - Minor anomalies detected",
		[]byte(`{"total_pings":4,"pings_in_zone":4,"zone_percentage":100,"avg_distance_km":0.004,"unique_locations":1,"avg_gps_accuracy_m":10}`),
		"{}", `{"Unnaturally stationary - possible GPS spoofing"}`,
		"Monitor employee's future check-ins for patterns", "Device looks stationary at a desk.", checkedAt,
	)

	mock.ExpectQuery(`SELECT (.+) FROM location_verifications WHERE id = (.+)`).
		WithArgs(verificationID).
		WillReturnRows(rows)

	repo := NewVerificationRepo(db)
	result, err := repo.GetByID(context.Background(), verificationID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != domain.StatusPartiallyVerified || !result.Verified || result.Confidence != 85 {
		t.Errorf("unexpected verdict %s/%v/%d", result.Status, result.Verified, result.Confidence)
	}
	if result.Metrics.TotalPings != 4 || result.Metrics.AvgDistanceKm != 0.004 {
		t.Errorf("unexpected metrics %+v", result.Metrics)
	}
	if result.RiskFactors == nil || len(result.RiskFactors) != 0 {
		t.Errorf("expected empty risk factors, got %v", result.RiskFactors)
	}
	if len(result.SpoofingIndicators) != 1 || result.SpoofingIndicators[0] != "Unnaturally stationary - possible GPS spoofing" {
		t.Errorf("unexpected indicators %v", result.SpoofingIndicators)
	}
	if result.AIAnalysis != "Device looks stationary at a desk." {
		t.Errorf("unexpected ai analysis %q", result.AIAnalysis)
	}
	if !result.CheckedAt.Equal(checkedAt) {
		t.Errorf("expected %v, got %v", checkedAt, result.CheckedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestVerificationGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT (.+) FROM location_verifications WHERE id = (.+)`).
		WithArgs(verificationID).
		WillReturnRows(sqlmock.NewRows(verificationRowColumns))

	repo := NewVerificationRepo(db)
	_, err = repo.GetByID(context.Background(), verificationID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVerificationListByEmployee_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows(verificationRowColumns).
		AddRow("b7c1", int64(1042), "R. Sharma", "VERIFIED", true, int64(100), "ok", []byte(`{"total_pings":6}`),
			"{}", "{}", "No action required - Employee location verified", nil, time.Unix(1715099000, 0)).
		AddRow("a2f9", int64(1042), "R. Sharma", "VERIFICATION_FAILED", false, int64(50), "failed", []byte(`{"total_pings":4}`),
			`{"Only 0% of pings within work zone"}`, "{}", "Require employee to check-in again", nil, time.Unix(1715013000, 0))

	mock.ExpectQuery(`SELECT (.+) FROM location_verifications WHERE employee_id = (.+) ORDER BY checked_at DESC LIMIT (.+)`).
		WithArgs(int64(1042), 20).
		WillReturnRows(rows)

	repo := NewVerificationRepo(db)
	results, err := repo.ListByEmployee(context.Background(), 1042, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != domain.StatusVerified || results[0].AIAnalysis != "" {
		t.Errorf("unexpected first result %+v", results[0])
	}
	if len(results[1].RiskFactors) != 1 {
		t.Errorf("expected 1 risk factor, got %v", results[1].RiskFactors)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestVerificationListByEmployee_BadMetrics(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows(verificationRowColumns).
		AddRow("b7c1", int64(1042), "R. Sharma", "VERIFIED", true, int64(100), "ok", []byte(`not json`),
			"{}", "{}", "", nil, time.Unix(1715099000, 0))
	mock.ExpectQuery(`SELECT (.+) FROM location_verifications`).
		WithArgs(int64(1042), 5).
		WillReturnRows(rows)

	repo := NewVerificationRepo(db)
	if _, err := repo.ListByEmployee(context.Background(), 1042, 5); err == nil {
		t.Fatal("expected error")
	}
}

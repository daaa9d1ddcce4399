package config

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS employee_pings (
		id          BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL,
		latitude    DOUBLE PRECISION NOT NULL,
		longitude   DOUBLE PRECISION NOT NULL,
		accuracy    DOUBLE PRECISION,
		altitude    DOUBLE PRECISION,
		speed       DOUBLE PRECISION,
		timestamp   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_employee_pings_employee_time ON employee_pings (employee_id, timestamp)`,
	`CREATE TABLE IF NOT EXISTS location_verifications (
		id                  UUID PRIMARY KEY,
		employee_id         BIGINT NOT NULL,
		employee_name       TEXT NOT NULL,
		status              TEXT NOT NULL,
		verified            BOOLEAN NOT NULL,
		confidence          INTEGER NOT NULL,
		message             TEXT NOT NULL,
		metrics             JSONB NOT NULL,
		risk_factors        TEXT[] NOT NULL DEFAULT '{}',
		spoofing_indicators TEXT[] NOT NULL DEFAULT '{}',
		recommendation      TEXT NOT NULL,
		ai_analysis         TEXT,
		checked_at          TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_location_verifications_employee ON location_verifications (employee_id, checked_at DESC)`,
}

// Migrate creates the tables the location module reads and writes.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

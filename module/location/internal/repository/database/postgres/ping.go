package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
	"github.com/nandanugg/hrms-integrity/module/location/internal/repository/database"
)

var _ database.PingRepository = (*PingRepo)(nil)

const pingColumns = `employee_id, latitude, longitude, accuracy, altitude, speed, timestamp`

type PingRepo struct {
	db *sql.DB
}

func NewPingRepo(db *sql.DB) *PingRepo {
	return &PingRepo{db: db}
}

func (r *PingRepo) Insert(ctx context.Context, ping *domain.EmployeePing) error {
	p := ping.Ping
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO employee_pings (`+pingColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ping.EmployeeID, p.Lat, p.Lng, p.Accuracy, p.Altitude, p.Speed, p.Timestamp,
	)
	return err
}

func (r *PingRepo) GetLatest(ctx context.Context, employeeID int64) (*domain.EmployeePing, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+pingColumns+` FROM employee_pings WHERE employee_id = $1 ORDER BY timestamp DESC LIMIT 1`,
		employeeID,
	)

	ep, err := scanPing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ep, nil
}

func (r *PingRepo) GetHistory(ctx context.Context, query *domain.PingQuery) ([]domain.EmployeePing, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+pingColumns+` FROM employee_pings WHERE employee_id = $1 AND timestamp >= $2 AND timestamp <= $3 ORDER BY timestamp ASC`,
		query.EmployeeID, query.Start, query.End,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.EmployeePing
	for rows.Next() {
		ep, err := scanPing(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *ep)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPing(s scanner) (*domain.EmployeePing, error) {
	var (
		ep                        domain.EmployeePing
		accuracy, altitude, speed sql.NullFloat64
	)
	err := s.Scan(&ep.EmployeeID, &ep.Ping.Lat, &ep.Ping.Lng, &accuracy, &altitude, &speed, &ep.Ping.Timestamp)
	if err != nil {
		return nil, err
	}
	ep.Ping.Accuracy = nullableFloat(accuracy)
	ep.Ping.Altitude = nullableFloat(altitude)
	ep.Ping.Speed = nullableFloat(speed)
	return &ep, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

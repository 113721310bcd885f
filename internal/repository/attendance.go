package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

type AttendanceRepository struct {
	pool PgxPool
}

func NewAttendanceRepository(pool PgxPool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

func (r *AttendanceRepository) Create(ctx context.Context, record *domain.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (id, employee_id, recorded_at, confidence, status, is_manual)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.EmployeeID,
		record.Timestamp,
		record.Confidence,
		record.Status,
		record.Manual,
	)
	if err != nil {
		return fmt.Errorf("create attendance record: %w", err)
	}

	return nil
}

// LatestForEmployee returns the employee's most recent check-in at or after
// since, or nil when there is none. Drives the duplicate check-in window.
func (r *AttendanceRepository) LatestForEmployee(ctx context.Context, employeeID string, since time.Time) (*domain.AttendanceRecord, error) {
	query := `
		SELECT a.id, a.employee_id, e.name, a.recorded_at, a.confidence, a.status, a.is_manual
		FROM attendance_records a
		JOIN employees e ON e.employee_id = a.employee_id
		WHERE a.employee_id = $1 AND a.recorded_at >= $2
		ORDER BY a.recorded_at DESC
		LIMIT 1
	`

	var record domain.AttendanceRecord
	err := r.pool.QueryRow(ctx, query, employeeID, since).Scan(
		&record.ID,
		&record.EmployeeID,
		&record.EmployeeName,
		&record.Timestamp,
		&record.Confidence,
		&record.Status,
		&record.Manual,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest attendance record: %w", err)
	}

	return &record, nil
}

// ListForDay returns all check-ins on the calendar day containing day, in
// chronological order. Day boundaries follow day's location.
func (r *AttendanceRepository) ListForDay(ctx context.Context, day time.Time) ([]domain.AttendanceRecord, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	query := `
		SELECT a.id, a.employee_id, e.name, a.recorded_at, a.confidence, a.status, a.is_manual
		FROM attendance_records a
		JOIN employees e ON e.employee_id = a.employee_id
		WHERE a.recorded_at >= $1 AND a.recorded_at < $2
		ORDER BY a.recorded_at
	`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}
	defer rows.Close()

	var records []domain.AttendanceRecord
	for rows.Next() {
		var record domain.AttendanceRecord
		if err := rows.Scan(
			&record.ID,
			&record.EmployeeID,
			&record.EmployeeName,
			&record.Timestamp,
			&record.Confidence,
			&record.Status,
			&record.Manual,
		); err != nil {
			return nil, fmt.Errorf("scan attendance record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

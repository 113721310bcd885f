package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

type EmployeeRepository struct {
	pool PgxPool
}

func NewEmployeeRepository(pool PgxPool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	query := `
		INSERT INTO employees (id, employee_id, name, department, email, phone, is_active, enrolled_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW())
		RETURNING enrolled_at
	`

	if employee.ID == uuid.Nil {
		employee.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		employee.ID,
		employee.EmployeeID,
		employee.Name,
		employee.Department,
		employee.Email,
		employee.Phone,
	).Scan(&employee.EnrolledAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmployeeExists
		}
		return fmt.Errorf("create employee: %w", err)
	}

	employee.Active = true
	return nil
}

func (r *EmployeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `
		SELECT e.id, e.employee_id, e.name, e.department, e.email, e.phone, e.is_active, e.enrolled_at,
		       (SELECT COUNT(*) FROM face_embeddings f WHERE f.employee_id = e.employee_id)
		FROM employees e
		WHERE e.employee_id = $1
	`

	var employee domain.Employee
	err := r.pool.QueryRow(ctx, query, employeeID).Scan(
		&employee.ID,
		&employee.EmployeeID,
		&employee.Name,
		&employee.Department,
		&employee.Email,
		&employee.Phone,
		&employee.Active,
		&employee.EnrolledAt,
		&employee.FaceCount,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}

	return &employee, nil
}

func (r *EmployeeRepository) List(ctx context.Context, activeOnly bool) ([]domain.Employee, error) {
	query := `
		SELECT e.id, e.employee_id, e.name, e.department, e.email, e.phone, e.is_active, e.enrolled_at,
		       (SELECT COUNT(*) FROM face_embeddings f WHERE f.employee_id = e.employee_id)
		FROM employees e
		WHERE ($1 = FALSE OR e.is_active)
		ORDER BY e.name
	`

	rows, err := r.pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(
			&e.ID,
			&e.EmployeeID,
			&e.Name,
			&e.Department,
			&e.Email,
			&e.Phone,
			&e.Active,
			&e.EnrolledAt,
			&e.FaceCount,
		); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func (r *EmployeeRepository) SetActive(ctx context.Context, employeeID string, active bool) error {
	query := `
		UPDATE employees SET is_active = $2 WHERE employee_id = $1
	`

	result, err := r.pool.Exec(ctx, query, employeeID, active)
	if err != nil {
		return fmt.Errorf("set employee active: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}

	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	query := `
		DELETE FROM employees WHERE employee_id = $1
	`

	result, err := r.pool.Exec(ctx, query, employeeID)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}

	return nil
}

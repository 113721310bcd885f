package repository

import (
	"context"
	"time"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

// EmployeeRepositoryInterface defines operations for employee data access
type EmployeeRepositoryInterface interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Employee, error)
	SetActive(ctx context.Context, employeeID string, active bool) error
	Delete(ctx context.Context, employeeID string) error
}

// EmbeddingRepositoryInterface defines operations for face embedding storage
type EmbeddingRepositoryInterface interface {
	Create(ctx context.Context, embedding *domain.FaceEmbedding) error
	ListAll(ctx context.Context) ([]domain.EnrolledEmbedding, error)
	DeleteByEmployee(ctx context.Context, employeeID string) error
}

// AttendanceRepositoryInterface defines operations for the attendance log
type AttendanceRepositoryInterface interface {
	Create(ctx context.Context, record *domain.AttendanceRecord) error
	LatestForEmployee(ctx context.Context, employeeID string, since time.Time) (*domain.AttendanceRecord, error)
	ListForDay(ctx context.Context, day time.Time) ([]domain.AttendanceRecord, error)
}

package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) List(ctx context.Context, activeOnly bool) ([]domain.Employee, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) SetActive(ctx context.Context, employeeID string, active bool) error {
	args := m.Called(ctx, employeeID, active)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	args := m.Called(ctx, employeeID)
	return args.Error(0)
}

type MockEmbeddingRepository struct {
	mock.Mock
}

func (m *MockEmbeddingRepository) Create(ctx context.Context, embedding *domain.FaceEmbedding) error {
	args := m.Called(ctx, embedding)
	return args.Error(0)
}

func (m *MockEmbeddingRepository) ListAll(ctx context.Context) ([]domain.EnrolledEmbedding, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EnrolledEmbedding), args.Error(1)
}

func (m *MockEmbeddingRepository) DeleteByEmployee(ctx context.Context, employeeID string) error {
	args := m.Called(ctx, employeeID)
	return args.Error(0)
}

type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Create(ctx context.Context, record *domain.AttendanceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAttendanceRepository) LatestForEmployee(ctx context.Context, employeeID string, since time.Time) (*domain.AttendanceRecord, error) {
	args := m.Called(ctx, employeeID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttendanceRecord), args.Error(1)
}

func (m *MockAttendanceRepository) ListForDay(ctx context.Context, day time.Time) ([]domain.AttendanceRecord, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AttendanceRecord), args.Error(1)
}

type MockFaceProvider struct {
	mock.Mock
}

func (m *MockFaceProvider) DetectFaces(ctx context.Context, image []byte) ([]domain.FaceObservation, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FaceObservation), args.Error(1)
}

func (m *MockFaceProvider) ExtractEmbedding(ctx context.Context, image []byte) ([]float64, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

package service

import (
	"context"
	"log/slog"

	"github.com/abduldattijo/biometricattendance/internal/domain"
	"github.com/abduldattijo/biometricattendance/internal/repository"
)

type EmployeeService struct {
	employeeRepo repository.EmployeeRepositoryInterface
	embeddings   repository.EmbeddingRepositoryInterface
	logger       *slog.Logger
}

func NewEmployeeService(
	employeeRepo repository.EmployeeRepositoryInterface,
	embeddings repository.EmbeddingRepositoryInterface,
	logger *slog.Logger,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		embeddings:   embeddings,
		logger:       logger,
	}
}

func (s *EmployeeService) Get(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return s.employeeRepo.GetByEmployeeID(ctx, employeeID)
}

func (s *EmployeeService) List(ctx context.Context, activeOnly bool) ([]domain.Employee, error) {
	return s.employeeRepo.List(ctx, activeOnly)
}

func (s *EmployeeService) SetActive(ctx context.Context, employeeID string, active bool) error {
	if err := s.employeeRepo.SetActive(ctx, employeeID, active); err != nil {
		return err
	}
	s.logger.Info("employee active flag changed",
		slog.String("employee_id", employeeID),
		slog.Bool("active", active),
	)
	return nil
}

// Delete removes the employee with their embeddings and attendance history.
func (s *EmployeeService) Delete(ctx context.Context, employeeID string) error {
	if err := s.embeddings.DeleteByEmployee(ctx, employeeID); err != nil {
		return err
	}
	if err := s.employeeRepo.Delete(ctx, employeeID); err != nil {
		return err
	}
	s.logger.Info("employee deleted", slog.String("employee_id", employeeID))
	return nil
}

package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

// EmployeeService interface for the service
type EmployeeService interface {
	Get(ctx context.Context, employeeID string) (*domain.Employee, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Employee, error)
	SetActive(ctx context.Context, employeeID string, active bool) error
	Delete(ctx context.Context, employeeID string) error
}

// EmployeeHandler handles employee management requests
type EmployeeHandler struct {
	service EmployeeService
	logger  *slog.Logger
}

func NewEmployeeHandler(service EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: service,
		logger:  logger,
	}
}

// List GET /v1/employees?active=true
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active", false)

	employees, err := h.service.List(c.Context(), activeOnly)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count":     len(employees),
		"employees": employees,
	})
}

// Get GET /v1/employees/:employee_id
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	employeeID, err := parseEmployeeID(c)
	if err != nil {
		return err
	}

	employee, err := h.service.Get(c.Context(), employeeID)
	if err != nil {
		return err
	}

	return c.JSON(employee)
}

// SetActiveRequest body for PATCH /v1/employees/:employee_id/active
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive PATCH /v1/employees/:employee_id/active
func (h *EmployeeHandler) SetActive(c *fiber.Ctx) error {
	employeeID, err := parseEmployeeID(c)
	if err != nil {
		return err
	}

	var req SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	if err := h.service.SetActive(c.Context(), employeeID, req.Active); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Delete DELETE /v1/employees/:employee_id - remove the employee and their
// biometric data
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	employeeID, err := parseEmployeeID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), employeeID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func parseEmployeeID(c *fiber.Ctx) (string, error) {
	employeeID := strings.TrimSpace(c.Params("employee_id"))
	if employeeID == "" {
		return "", domain.ErrValidationFailed.WithError(errors.New("employee_id is required"))
	}
	return employeeID, nil
}

package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

// AttendanceService interface for the service
type AttendanceService interface {
	Checkin(ctx context.Context, image []byte) (*domain.CheckinResult, error)
	ManualCheckin(ctx context.Context, employeeID string) (*domain.CheckinResult, error)
	Today(ctx context.Context) ([]domain.AttendanceRecord, error)
}

// AttendanceHandler handles check-in requests
type AttendanceHandler struct {
	service AttendanceService
	logger  *slog.Logger
}

func NewAttendanceHandler(service AttendanceService, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger,
	}
}

// Checkin POST /v1/checkins - recognize a face and record attendance
func (h *AttendanceHandler) Checkin(c *fiber.Ctx) error {
	imageBytes, err := extractAndValidateImage(c)
	if err != nil {
		return fmt.Errorf("checkin: %w", err)
	}

	result, err := h.service.Checkin(c.Context(), imageBytes)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// ManualCheckinRequest body for POST /v1/checkins/manual
type ManualCheckinRequest struct {
	EmployeeID string `json:"employee_id"`
}

// ManualCheckin POST /v1/checkins/manual - record attendance by employee ID
func (h *AttendanceHandler) ManualCheckin(c *fiber.Ctx) error {
	var req ManualCheckinRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	if req.EmployeeID == "" {
		return domain.ErrValidationFailed.WithError(errors.New("employee_id is required"))
	}

	result, err := h.service.ManualCheckin(c.Context(), req.EmployeeID)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// Today GET /v1/attendance/today - the day's attendance log
func (h *AttendanceHandler) Today(c *fiber.Ctx) error {
	records, err := h.service.Today(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count":   len(records),
		"records": records,
	})
}

package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/abduldattijo/biometricattendance/internal/domain"
	"github.com/abduldattijo/biometricattendance/internal/enroll"
	"github.com/abduldattijo/biometricattendance/internal/service"
)

const (
	maxImageSize = 10 * 1024 * 1024 // 10MB
)

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// EnrollmentService interface for the service
type EnrollmentService interface {
	StartSession(ctx context.Context, employee enroll.EmployeeInfo) (*service.SessionInfo, error)
	SubmitFrame(ctx context.Context, sessionID uuid.UUID, image []byte) (*service.FrameResponse, error)
	GetSession(sessionID uuid.UUID) (*service.SessionInfo, error)
	CancelSession(sessionID uuid.UUID) error
}

// EnrollmentHandler handles guided enrollment requests
type EnrollmentHandler struct {
	service EnrollmentService
	logger  *slog.Logger
}

func NewEnrollmentHandler(service EnrollmentService, logger *slog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service: service,
		logger:  logger,
	}
}

// StartRequest body for POST /v1/enrollments
type StartRequest struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// Start POST /v1/enrollments - open a guided capture session
func (h *EnrollmentHandler) Start(c *fiber.Ctx) error {
	var req StartRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.Name = strings.TrimSpace(req.Name)
	if req.EmployeeID == "" || req.Name == "" {
		return domain.ErrValidationFailed.WithError(errors.New("employee_id and name are required"))
	}

	info, err := h.service.StartSession(c.Context(), enroll.EmployeeInfo{
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Department: strings.TrimSpace(req.Department),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(info)
}

// SubmitFrame POST /v1/enrollments/:session_id/frames - validate one frame
func (h *EnrollmentHandler) SubmitFrame(c *fiber.Ctx) error {
	sessionID, err := parseSessionID(c)
	if err != nil {
		return err
	}

	imageBytes, err := extractAndValidateImage(c)
	if err != nil {
		return fmt.Errorf("submit frame: %w", err)
	}

	resp, err := h.service.SubmitFrame(c.Context(), sessionID, imageBytes)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Get GET /v1/enrollments/:session_id - session status
func (h *EnrollmentHandler) Get(c *fiber.Ctx) error {
	sessionID, err := parseSessionID(c)
	if err != nil {
		return err
	}

	info, err := h.service.GetSession(sessionID)
	if err != nil {
		return err
	}

	return c.JSON(info)
}

// Cancel DELETE /v1/enrollments/:session_id - abort the session
func (h *EnrollmentHandler) Cancel(c *fiber.Ctx) error {
	sessionID, err := parseSessionID(c)
	if err != nil {
		return err
	}

	if err := h.service.CancelSession(sessionID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func parseSessionID(c *fiber.Ctx) (uuid.UUID, error) {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return uuid.Nil, domain.ErrValidationFailed.WithError(errors.New("invalid session_id"))
	}
	return sessionID, nil
}

func extractAndValidateImage(c *fiber.Ctx) ([]byte, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(err)
	}

	if file.Size > maxImageSize || file.Size == 0 {
		return nil, domain.ErrInvalidImage.WithError(nil)
	}

	contentType := file.Header.Get("Content-Type")
	if !validImageTypes[contentType] {
		return nil, domain.ErrInvalidImage.WithError(nil)
	}

	f, err := file.Open()
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	imageBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	return imageBytes, nil
}

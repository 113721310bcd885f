package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abduldattijo/biometricattendance/internal/domain"
	"github.com/abduldattijo/biometricattendance/internal/match"
	"github.com/abduldattijo/biometricattendance/internal/provider"
	"github.com/abduldattijo/biometricattendance/internal/repository"
	"github.com/abduldattijo/biometricattendance/internal/ws"
)

// Check-in messages surfaced to the kiosk UI.
const (
	msgWelcome        = "Welcome, %s!"
	msgAlreadyChecked = "%s already checked in at %s"
	msgNotRecognized  = "Face not recognized. Try again or use manual check-in"
	msgAmbiguousMatch = "Multiple possible matches. Please use manual check-in"
	msgManualRecorded = "Manual check-in recorded for %s"
)

type AttendanceService struct {
	provider       provider.FaceProvider
	matcher        *match.Matcher
	employeeRepo   repository.EmployeeRepositoryInterface
	embeddings     repository.EmbeddingRepositoryInterface
	attendanceRepo repository.AttendanceRepositoryInterface
	hub            *ws.Hub
	logger         *slog.Logger
	window         time.Duration
}

func NewAttendanceService(
	faceProvider provider.FaceProvider,
	matcher *match.Matcher,
	employeeRepo repository.EmployeeRepositoryInterface,
	embeddings repository.EmbeddingRepositoryInterface,
	attendanceRepo repository.AttendanceRepositoryInterface,
	hub *ws.Hub,
	logger *slog.Logger,
	duplicateWindow time.Duration,
) *AttendanceService {
	return &AttendanceService{
		provider:       faceProvider,
		matcher:        matcher,
		employeeRepo:   employeeRepo,
		embeddings:     embeddings,
		attendanceRepo: attendanceRepo,
		hub:            hub,
		logger:         logger,
		window:         duplicateWindow,
	}
}

// Checkin recognizes the face in the image and records attendance. An
// unrecognized or ambiguous probe is not an error: the result says what
// happened and the kiosk offers manual check-in.
func (s *AttendanceService) Checkin(ctx context.Context, image []byte) (*domain.CheckinResult, error) {
	enrolled, err := s.embeddings.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(enrolled) == 0 {
		return nil, domain.ErrNoEnrolledFaces
	}

	probe, err := s.provider.ExtractEmbedding(ctx, image)
	if err != nil {
		return nil, domain.ErrNoFaceDetected.WithError(fmt.Errorf("extract probe: %w", err))
	}

	result := s.matcher.Match(probe, enrolled)

	if !result.Matched {
		s.logger.Info("checkin not recognized", slog.Float64("best_score", result.BestScore))
		return &domain.CheckinResult{
			Match:   result,
			Message: msgNotRecognized,
		}, nil
	}

	if result.Ambiguous {
		s.logger.Warn("ambiguous checkin match",
			slog.String("best", result.BestEmployeeID),
			slog.Float64("best_score", result.BestScore),
		)
		return &domain.CheckinResult{
			Match:   result,
			Message: msgAmbiguousMatch,
		}, nil
	}

	employee, err := s.employeeRepo.GetByEmployeeID(ctx, result.BestEmployeeID)
	if err != nil {
		return nil, err
	}
	if !employee.Active {
		return nil, domain.ErrEmployeeInactive
	}

	confidence := result.BestScore
	return s.record(ctx, employee, &confidence, false, result)
}

// ManualCheckin records attendance by employee ID, for when recognition
// cannot decide.
func (s *AttendanceService) ManualCheckin(ctx context.Context, employeeID string) (*domain.CheckinResult, error) {
	employee, err := s.employeeRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !employee.Active {
		return nil, domain.ErrEmployeeInactive
	}

	return s.record(ctx, employee, nil, true, domain.MatchResult{})
}

// Today lists the day's attendance log.
func (s *AttendanceService) Today(ctx context.Context) ([]domain.AttendanceRecord, error) {
	return s.attendanceRepo.ListForDay(ctx, time.Now().UTC())
}

// record writes the attendance row unless the employee already checked in
// inside the duplicate window.
func (s *AttendanceService) record(ctx context.Context, employee *domain.Employee, confidence *float64, manual bool, matchResult domain.MatchResult) (*domain.CheckinResult, error) {
	since := time.Now().UTC().Add(-s.window)
	last, err := s.attendanceRepo.LatestForEmployee(ctx, employee.EmployeeID, since)
	if err != nil {
		return nil, err
	}
	if last != nil {
		return &domain.CheckinResult{
			Recognized:       !manual,
			AlreadyCheckedIn: true,
			Employee:         employee,
			Match:            matchResult,
			LastCheckin:      &last.Timestamp,
			Message:          fmt.Sprintf(msgAlreadyChecked, employee.Name, last.Timestamp.Format("15:04")),
		}, nil
	}

	record := &domain.AttendanceRecord{
		EmployeeID:   employee.EmployeeID,
		EmployeeName: employee.Name,
		Timestamp:    time.Now().UTC(),
		Confidence:   confidence,
		Status:       domain.StatusPresent,
		Manual:       manual,
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.hub.BroadcastAll(ws.EventCheckin, record)
	s.logger.Info("attendance recorded",
		slog.String("employee_id", employee.EmployeeID),
		slog.Bool("manual", manual),
	)

	message := fmt.Sprintf(msgWelcome, employee.Name)
	if manual {
		message = fmt.Sprintf(msgManualRecorded, employee.Name)
	}

	return &domain.CheckinResult{
		Recognized: !manual,
		Employee:   employee,
		Match:      matchResult,
		Record:     record,
		Message:    message,
	}, nil
}

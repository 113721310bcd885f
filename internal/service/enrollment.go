// Package service orchestrates the decision pipeline: enrollment sessions,
// recognition check-in, and employee management.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abduldattijo/biometricattendance/internal/domain"
	"github.com/abduldattijo/biometricattendance/internal/enroll"
	"github.com/abduldattijo/biometricattendance/internal/imaging"
	"github.com/abduldattijo/biometricattendance/internal/match"
	"github.com/abduldattijo/biometricattendance/internal/provider"
	"github.com/abduldattijo/biometricattendance/internal/repository"
	"github.com/abduldattijo/biometricattendance/internal/ws"
)

// EnrollmentConfig carries the session parameters.
type EnrollmentConfig struct {
	Poses      []domain.PoseTarget
	HoldFrames int
	Countdown  int
}

// FrameResponse is what the client sees after submitting one frame.
type FrameResponse struct {
	State              enroll.State          `json:"state"`
	CurrentPose        domain.PoseTarget     `json:"current_pose,omitempty"`
	Feedback           []string              `json:"feedback"`
	ReadyToCapture     bool                  `json:"ready_to_capture"`
	CountdownRemaining int                   `json:"countdown_remaining"`
	CapturedPoses      int                   `json:"captured_poses"`
	TotalPoses         int                   `json:"total_poses"`
	Quality            domain.QualityVerdict `json:"quality"`
	Pose               domain.PoseVerdict    `json:"pose"`
}

// SessionInfo describes a session to API clients.
type SessionInfo struct {
	ID            uuid.UUID         `json:"id"`
	EmployeeID    string            `json:"employee_id"`
	State         enroll.State      `json:"state"`
	CurrentPose   domain.PoseTarget `json:"current_pose,omitempty"`
	CapturedPoses int               `json:"captured_poses"`
	TotalPoses    int               `json:"total_poses"`
	StartedAt     time.Time         `json:"started_at"`
}

// sessionEntry pairs a session with its lock. Frames for one session are
// strictly serialized; concurrent submissions would race the debounce counter.
type sessionEntry struct {
	mu      sync.Mutex
	session *enroll.Session
}

type EnrollmentService struct {
	validator    *enroll.Validator
	provider     provider.FaceProvider
	employeeRepo repository.EmployeeRepositoryInterface
	embeddings   repository.EmbeddingRepositoryInterface
	hub          *ws.Hub
	logger       *slog.Logger
	cfg          EnrollmentConfig

	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionEntry
}

func NewEnrollmentService(
	validator *enroll.Validator,
	faceProvider provider.FaceProvider,
	employeeRepo repository.EmployeeRepositoryInterface,
	embeddings repository.EmbeddingRepositoryInterface,
	hub *ws.Hub,
	logger *slog.Logger,
	cfg EnrollmentConfig,
) *EnrollmentService {
	return &EnrollmentService{
		validator:    validator,
		provider:     faceProvider,
		employeeRepo: employeeRepo,
		embeddings:   embeddings,
		hub:          hub,
		logger:       logger,
		cfg:          cfg,
		sessions:     make(map[uuid.UUID]*sessionEntry),
	}
}

// StartSession opens a guided capture session for a new employee. The
// employee row is only written once the capture set completes, so an
// abandoned session leaves nothing behind.
func (s *EnrollmentService) StartSession(ctx context.Context, employee enroll.EmployeeInfo) (*SessionInfo, error) {
	if employee.EmployeeID == "" || employee.Name == "" {
		return nil, domain.ErrValidationFailed
	}

	_, err := s.employeeRepo.GetByEmployeeID(ctx, employee.EmployeeID)
	if err == nil {
		return nil, domain.ErrEmployeeExists
	}
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		return nil, err
	}

	session := enroll.NewSession(employee, s.cfg.Poses, s.cfg.HoldFrames, s.cfg.Countdown)

	s.mu.Lock()
	s.sessions[session.ID] = &sessionEntry{session: session}
	s.mu.Unlock()

	s.logger.Info("enrollment session started",
		slog.String("session_id", session.ID.String()),
		slog.String("employee_id", employee.EmployeeID),
	)

	return s.sessionInfo(session), nil
}

// SubmitFrame runs one frame through validation and advances the session.
func (s *EnrollmentService) SubmitFrame(ctx context.Context, sessionID uuid.UUID, image []byte) (*FrameResponse, error) {
	entry, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	session := entry.session
	if session.State() == enroll.StateCancelled {
		return nil, domain.ErrSessionComplete
	}
	if session.State() == enroll.StateComplete {
		// A complete session still in the registry means an earlier
		// persistence attempt failed. Retry the handoff with the captures
		// already held instead of dead-ending the enrollment.
		if err := s.finalize(ctx, session); err != nil {
			return nil, err
		}
		s.hub.BroadcastToSession(sessionID, ws.EventComplete, map[string]any{
			"employee_id": session.Employee.EmployeeID,
		})
		return s.frameResponse(session, domain.FrameVerdict{}), nil
	}

	decoded, err := imaging.Decode(image, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	faces, err := s.provider.DetectFaces(ctx, image)
	if err != nil {
		return nil, domain.ErrInternal.WithError(fmt.Errorf("detect faces: %w", err))
	}
	for i := range faces {
		faces[i] = imaging.ScaleObservation(faces[i], decoded.Scale)
	}

	target, _ := session.CurrentPose()
	verdict := s.validator.Validate(decoded.Frame, faces, target)

	events := session.Tick(verdict, image, decoded.Frame)

	resp := s.frameResponse(session, verdict)
	s.hub.BroadcastToSession(sessionID, ws.EventFrameFeedback, resp)

	for _, ev := range events {
		switch ev.Type {
		case enroll.EventPoseCaptured:
			s.logger.Info("pose captured",
				slog.String("session_id", sessionID.String()),
				slog.String("pose", string(ev.Pose)),
			)
			s.hub.BroadcastToSession(sessionID, ws.EventPoseCaptured, map[string]any{
				"pose":    ev.Pose,
				"quality": ev.Capture.Quality,
			})

		case enroll.EventComplete:
			if err := s.finalize(ctx, session); err != nil {
				return nil, err
			}
			s.hub.BroadcastToSession(sessionID, ws.EventComplete, map[string]any{
				"employee_id": session.Employee.EmployeeID,
			})
		}
	}

	return resp, nil
}

// GetSession reports session status.
func (s *EnrollmentService) GetSession(sessionID uuid.UUID) (*SessionInfo, error) {
	entry, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return s.sessionInfo(entry.session), nil
}

// CancelSession aborts a session and discards partial captures.
func (s *EnrollmentService) CancelSession(sessionID uuid.UUID) error {
	entry, err := s.entry(sessionID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	entry.session.Cancel()
	entry.mu.Unlock()

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	s.hub.BroadcastToSession(sessionID, ws.EventCancelled, nil)
	s.logger.Info("enrollment session cancelled", slog.String("session_id", sessionID.String()))
	return nil
}

// finalize extracts embeddings from the captured set, creates the employee,
// and persists one embedding per pose plus the averaged composite. The session
// is only deregistered once everything is persisted; on failure any partial
// employee row is rolled back so the session can retry and the employee ID
// stays enrollable.
func (s *EnrollmentService) finalize(ctx context.Context, session *enroll.Session) error {
	captures := session.Captures()

	vectors := make([][]float64, 0, len(captures))
	for _, c := range captures {
		embedding, err := s.provider.ExtractEmbedding(ctx, c.Image)
		if err != nil {
			return domain.ErrEmbeddingFailed.WithError(fmt.Errorf("pose %s: %w", c.Pose, err))
		}
		vectors = append(vectors, embedding)
	}

	employee := &domain.Employee{
		EmployeeID: session.Employee.EmployeeID,
		Name:       session.Employee.Name,
		Department: session.Employee.Department,
		Email:      session.Employee.Email,
		Phone:      session.Employee.Phone,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return err
	}

	for i, c := range captures {
		row := &domain.FaceEmbedding{
			EmployeeID:   employee.EmployeeID,
			Pose:         c.Pose,
			Embedding:    vectors[i],
			QualityScore: c.Quality,
		}
		if err := s.embeddings.Create(ctx, row); err != nil {
			s.rollbackEmployee(ctx, employee.EmployeeID)
			return err
		}
	}

	if avg := match.AverageEmbedding(vectors); avg != nil {
		row := &domain.FaceEmbedding{
			EmployeeID: employee.EmployeeID,
			Pose:       domain.PoseAverage,
			Embedding:  avg,
		}
		if err := s.embeddings.Create(ctx, row); err != nil {
			s.rollbackEmployee(ctx, employee.EmployeeID)
			return err
		}
	}

	s.mu.Lock()
	delete(s.sessions, session.ID)
	s.mu.Unlock()

	s.logger.Info("enrollment complete",
		slog.String("employee_id", employee.EmployeeID),
		slog.Int("embeddings", len(captures)+1),
	)
	return nil
}

// rollbackEmployee undoes a partially persisted enrollment. Embedding rows
// created before the failure go with the employee via the schema's cascade.
func (s *EnrollmentService) rollbackEmployee(ctx context.Context, employeeID string) {
	if err := s.employeeRepo.Delete(ctx, employeeID); err != nil {
		s.logger.Error("rollback of partial enrollment failed",
			slog.String("employee_id", employeeID),
			slog.Any("error", err),
		)
	}
}

func (s *EnrollmentService) entry(sessionID uuid.UUID) (*sessionEntry, error) {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return entry, nil
}

func (s *EnrollmentService) sessionInfo(session *enroll.Session) *SessionInfo {
	captured, total := session.Progress()
	info := &SessionInfo{
		ID:            session.ID,
		EmployeeID:    session.Employee.EmployeeID,
		State:         session.State(),
		CapturedPoses: captured,
		TotalPoses:    total,
		StartedAt:     session.StartedAt,
	}
	if pose, ok := session.CurrentPose(); ok {
		info.CurrentPose = pose
	}
	return info
}

func (s *EnrollmentService) frameResponse(session *enroll.Session, verdict domain.FrameVerdict) *FrameResponse {
	captured, total := session.Progress()
	resp := &FrameResponse{
		State:              session.State(),
		Feedback:           verdict.Feedback,
		ReadyToCapture:     verdict.ReadyToCapture,
		CountdownRemaining: session.CountdownRemaining(),
		CapturedPoses:      captured,
		TotalPoses:         total,
		Quality:            verdict.Quality,
		Pose:               verdict.Pose,
	}
	if pose, ok := session.CurrentPose(); ok {
		resp.CurrentPose = pose
	}
	return resp
}

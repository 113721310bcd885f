package enroll

import (
	"time"

	"github.com/google/uuid"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

// State of a guided capture session.
type State string

const (
	StateAwaitingPose State = "awaiting_pose"
	StateStabilizing  State = "stabilizing"
	StateCountingDown State = "counting_down"
	StateComplete     State = "complete"
	StateCancelled    State = "cancelled"
)

// EventType of a state machine emission.
type EventType string

const (
	EventPoseCaptured EventType = "pose.captured"
	EventComplete     EventType = "enrollment.complete"
)

// Event is a discrete emission from a session tick.
type Event struct {
	Type    EventType
	Pose    domain.PoseTarget
	Capture *Capture
}

// Capture is one latched frame for a target pose.
type Capture struct {
	Pose       domain.PoseTarget
	Image      []byte // original encoded bytes, for embedding extraction
	Frame      *domain.Frame
	Quality    float64
	CapturedAt time.Time
}

// EmployeeInfo is the identity being enrolled, carried by the session until
// the completed capture set is handed off for persistence.
type EmployeeInfo struct {
	EmployeeID string
	Name       string
	Department string
	Email      string
	Phone      string
}

// Session is the guided capture state machine for one enrollment. All state
// is held in the value; there is no ambient/global state, so independent
// sessions run concurrently. Ticks for a single session must be serialized
// by the caller.
type Session struct {
	ID       uuid.UUID
	Employee EmployeeInfo

	poses      []domain.PoseTarget
	holdFrames int
	countdown  int

	state     State
	poseIdx   int
	stable    int
	remaining int
	candidate *Capture
	captures  []*Capture

	StartedAt time.Time
}

// NewSession starts a session at the first pose of the sequence.
func NewSession(employee EmployeeInfo, poses []domain.PoseTarget, holdFrames, countdown int) *Session {
	return &Session{
		ID:         uuid.New(),
		Employee:   employee,
		poses:      poses,
		holdFrames: holdFrames,
		countdown:  countdown,
		state:      StateAwaitingPose,
		StartedAt:  time.Now().UTC(),
	}
}

// State returns the current machine state.
func (s *Session) State() State { return s.state }

// CurrentPose returns the pose the machine is waiting on. ok is false once
// the session is complete or cancelled.
func (s *Session) CurrentPose() (domain.PoseTarget, bool) {
	if s.state == StateComplete || s.state == StateCancelled || s.poseIdx >= len(s.poses) {
		return "", false
	}
	return s.poses[s.poseIdx], true
}

// Progress reports captured poses out of total.
func (s *Session) Progress() (captured, total int) {
	return len(s.captures), len(s.poses)
}

// CountdownRemaining returns the ticks left in the countdown, 0 outside it.
func (s *Session) CountdownRemaining() int {
	if s.state != StateCountingDown {
		return 0
	}
	return s.remaining
}

// Captures returns the ordered capture set. Only meaningful once Complete.
func (s *Session) Captures() []*Capture { return s.captures }

// Tick advances the machine with one frame verdict. The frame bytes are
// latched as the capture candidate the moment readiness holds, so the image
// that gets captured is the one that validated — the countdown does not
// re-validate, deliberately, to avoid capturing a frame taken mid-motion if
// the subject relaxes once the countdown starts.
func (s *Session) Tick(verdict domain.FrameVerdict, image []byte, frame *domain.Frame) []Event {
	switch s.state {
	case StateComplete, StateCancelled:
		return nil

	case StateCountingDown:
		// The countdown elapses independent of further validation.
		s.remaining--
		if s.remaining > 0 {
			return nil
		}
		return s.capture()

	default: // AwaitingPose / Stabilizing
		if !verdict.ReadyToCapture {
			s.stable = 0
			s.state = StateAwaitingPose
			return nil
		}

		s.stable++
		if s.stable < s.holdFrames {
			s.state = StateStabilizing
			return nil
		}

		// Latch the frame that satisfied the hold as the candidate.
		target, _ := s.CurrentPose()
		s.candidate = &Capture{
			Pose:       target,
			Image:      image,
			Frame:      frame,
			Quality:    verdict.Quality.Score,
			CapturedAt: time.Now().UTC(),
		}

		if s.countdown <= 0 {
			return s.capture()
		}
		s.state = StateCountingDown
		s.remaining = s.countdown
		return nil
	}
}

// Cancel tears the session down at any state; partial captures are discarded.
func (s *Session) Cancel() {
	s.state = StateCancelled
	s.candidate = nil
	s.captures = nil
}

func (s *Session) capture() []Event {
	c := s.candidate
	s.candidate = nil
	s.captures = append(s.captures, c)
	s.stable = 0

	events := []Event{{Type: EventPoseCaptured, Pose: c.Pose, Capture: c}}

	s.poseIdx++
	if s.poseIdx >= len(s.poses) {
		s.state = StateComplete
		events = append(events, Event{Type: EventComplete})
	} else {
		s.state = StateAwaitingPose
	}
	return events
}

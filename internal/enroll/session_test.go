package enroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

func readyVerdict() domain.FrameVerdict {
	return domain.FrameVerdict{
		Quality:        domain.QualityVerdict{Pass: true, Score: 100},
		Pose:           domain.PoseVerdict{Pass: true, Correction: domain.CorrectionNone},
		ReadyToCapture: true,
	}
}

func notReadyVerdict() domain.FrameVerdict {
	return domain.FrameVerdict{
		Quality: domain.QualityVerdict{Pass: true, Score: 100},
		Pose:    domain.PoseVerdict{Pass: false, Correction: domain.CorrectionTurnLeft},
	}
}

func testEmployee() EmployeeInfo {
	return EmployeeInfo{EmployeeID: "EMP001", Name: "Amina Bello"}
}

func TestSessionImmediateCapture(t *testing.T) {
	s := NewSession(testEmployee(), []domain.PoseTarget{domain.PoseFront}, 1, 0)
	assert.Equal(t, StateAwaitingPose, s.State())

	events := s.Tick(readyVerdict(), []byte("frame1"), nil)

	require.Len(t, events, 2)
	assert.Equal(t, EventPoseCaptured, events[0].Type)
	assert.Equal(t, domain.PoseFront, events[0].Pose)
	assert.Equal(t, EventComplete, events[1].Type)
	assert.Equal(t, StateComplete, s.State())

	captures := s.Captures()
	require.Len(t, captures, 1)
	assert.Equal(t, []byte("frame1"), captures[0].Image)
}

func TestSessionHoldDebounce(t *testing.T) {
	s := NewSession(testEmployee(), []domain.PoseTarget{domain.PoseFront}, 3, 0)

	assert.Empty(t, s.Tick(readyVerdict(), []byte("f1"), nil))
	assert.Equal(t, StateStabilizing, s.State())
	assert.Empty(t, s.Tick(readyVerdict(), []byte("f2"), nil))

	events := s.Tick(readyVerdict(), []byte("f3"), nil)
	require.Len(t, events, 2)

	// The frame that satisfied the hold is the one captured.
	assert.Equal(t, []byte("f3"), s.Captures()[0].Image)
}

// One bad frame resets the hold counter: stability must be consecutive.
func TestSessionHoldResetOnBadFrame(t *testing.T) {
	s := NewSession(testEmployee(), []domain.PoseTarget{domain.PoseFront}, 2, 0)

	assert.Empty(t, s.Tick(readyVerdict(), []byte("f1"), nil))
	assert.Equal(t, StateStabilizing, s.State())

	assert.Empty(t, s.Tick(notReadyVerdict(), []byte("f2"), nil))
	assert.Equal(t, StateAwaitingPose, s.State())

	// Two fresh ready frames are needed again.
	assert.Empty(t, s.Tick(readyVerdict(), []byte("f3"), nil))
	events := s.Tick(readyVerdict(), []byte("f4"), nil)
	require.Len(t, events, 2)
	assert.Equal(t, []byte("f4"), s.Captures()[0].Image)
}

func TestSessionCountdown(t *testing.T) {
	s := NewSession(testEmployee(), []domain.PoseTarget{domain.PoseFront}, 1, 3)

	assert.Empty(t, s.Tick(readyVerdict(), []byte("latched"), nil))
	assert.Equal(t, StateCountingDown, s.State())
	assert.Equal(t, 3, s.CountdownRemaining())

	assert.Empty(t, s.Tick(readyVerdict(), []byte("tick1"), nil))
	assert.Equal(t, 2, s.CountdownRemaining())
	assert.Empty(t, s.Tick(readyVerdict(), []byte("tick2"), nil))
	assert.Equal(t, 1, s.CountdownRemaining())

	events := s.Tick(readyVerdict(), []byte("tick3"), nil)
	require.Len(t, events, 2)
	assert.Equal(t, StateComplete, s.State())

	// The latched candidate is captured, not a countdown frame.
	assert.Equal(t, []byte("latched"), s.Captures()[0].Image)
}

// Once the countdown starts it never re-validates: a subject relaxing
// mid-count still gets the frame that validated.
func TestSessionCountdownIgnoresLaterVerdicts(t *testing.T) {
	s := NewSession(testEmployee(), []domain.PoseTarget{domain.PoseFront}, 1, 2)

	assert.Empty(t, s.Tick(readyVerdict(), []byte("latched"), nil))
	assert.Empty(t, s.Tick(notReadyVerdict(), []byte("moved"), nil))

	events := s.Tick(notReadyVerdict(), []byte("moved again"), nil)
	require.Len(t, events, 2)
	assert.Equal(t, []byte("latched"), s.Captures()[0].Image)
}

func TestSessionPoseProgression(t *testing.T) {
	poses := []domain.PoseTarget{domain.PoseFront, domain.PoseLeft, domain.PoseRight}
	s := NewSession(testEmployee(), poses, 1, 0)

	current, ok := s.CurrentPose()
	require.True(t, ok)
	assert.Equal(t, domain.PoseFront, current)

	events := s.Tick(readyVerdict(), []byte("front"), nil)
	require.Len(t, events, 1)
	assert.Equal(t, EventPoseCaptured, events[0].Type)
	assert.Equal(t, domain.PoseFront, events[0].Pose)

	current, ok = s.CurrentPose()
	require.True(t, ok)
	assert.Equal(t, domain.PoseLeft, current)

	captured, total := s.Progress()
	assert.Equal(t, 1, captured)
	assert.Equal(t, 3, total)

	s.Tick(readyVerdict(), []byte("left"), nil)
	events = s.Tick(readyVerdict(), []byte("right"), nil)
	require.Len(t, events, 2)
	assert.Equal(t, EventComplete, events[1].Type)

	_, ok = s.CurrentPose()
	assert.False(t, ok)

	captures := s.Captures()
	require.Len(t, captures, 3)
	assert.Equal(t, domain.PoseLeft, captures[1].Pose)
	assert.Equal(t, domain.PoseRight, captures[2].Pose)
}

func TestSessionCancel(t *testing.T) {
	s := NewSession(testEmployee(), []domain.PoseTarget{domain.PoseFront, domain.PoseLeft}, 1, 0)
	s.Tick(readyVerdict(), []byte("front"), nil)

	s.Cancel()
	assert.Equal(t, StateCancelled, s.State())
	assert.Empty(t, s.Captures())

	// Further frames are ignored.
	assert.Empty(t, s.Tick(readyVerdict(), []byte("late"), nil))
	_, ok := s.CurrentPose()
	assert.False(t, ok)
}

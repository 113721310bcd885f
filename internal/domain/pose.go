package domain

// PoseTarget is one of the guided-enrollment target poses.
type PoseTarget string

const (
	PoseFront PoseTarget = "front"
	PoseLeft  PoseTarget = "left"
	PoseRight PoseTarget = "right"
	PoseUp    PoseTarget = "up"
	PoseDown  PoseTarget = "down"

	// PoseAverage labels the averaged pseudo-pose embedding stored on
	// enrollment completion. Never a capture target.
	PoseAverage PoseTarget = "average"
)

// ValidPoseTarget reports whether p is a capturable target pose.
func ValidPoseTarget(p PoseTarget) bool {
	switch p {
	case PoseFront, PoseLeft, PoseRight, PoseUp, PoseDown:
		return true
	}
	return false
}

// Pose holds estimated head rotation in degrees. Sign convention:
// negative yaw = turned toward the subject's left, positive pitch = tilted up.
type Pose struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
}

// Correction is the single directional hint surfaced when a pose misses its
// target band. Roll never produces a hint.
type Correction string

const (
	CorrectionNone      Correction = "none"
	CorrectionTurnLeft  Correction = "turn_left"
	CorrectionTurnRight Correction = "turn_right"
	CorrectionTiltUp    Correction = "tilt_up"
	CorrectionTiltDown  Correction = "tilt_down"
)

// PoseVerdict is the result of classifying an estimated pose against a target.
type PoseVerdict struct {
	Pass       bool       `json:"pass"`
	Correction Correction `json:"correction"`
	// Pose is nil when landmarks could not be resolved.
	Pose *Pose `json:"pose,omitempty"`
}

// Package pose derives head orientation from facial landmark geometry and
// classifies it against the guided-enrollment target poses.
package pose

import (
	"math"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

// Geometry constants for the 5-point landmark estimate. The nose sits roughly
// 55% of the way from the eye line to the mouth line on a frontal face; yaw
// and pitch are read off the nose displacement from those reference lines.
const (
	yawScaleDeg      = 90.0
	pitchScaleDeg    = 120.0
	neutralNoseRatio = 0.55
	minEyeDistance   = 4.0 // pixels; below this the geometry is unresolvable
)

// AngleBand is an inclusive [Min, Max] degree range.
type AngleBand struct {
	Min float64
	Max float64
}

func (b AngleBand) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// deviation returns the signed distance outside the band, 0 when inside.
func (b AngleBand) deviation(v float64) float64 {
	if v < b.Min {
		return v - b.Min
	}
	if v > b.Max {
		return v - b.Max
	}
	return 0
}

// TargetBand is the yaw/pitch tolerance band for one target pose.
type TargetBand struct {
	Yaw   AngleBand
	Pitch AngleBand
}

// Bands maps each target pose to its tolerance band.
type Bands map[domain.PoseTarget]TargetBand

// BandConfig are the operator-tunable degree bounds the bands are built from.
type BandConfig struct {
	FrontTolerance float64 // |yaw| and |pitch| bound for the front pose
	TurnMin        float64 // minimum |yaw| for left/right
	TurnMax        float64 // maximum |yaw| for left/right
	TiltMin        float64 // minimum |pitch| for up/down
	TiltMax        float64 // maximum |pitch| for up/down
}

// DefaultBandConfig mirrors the calibrated enrollment defaults: a forgiving
// front window and wide turn/tilt ranges to avoid oscillating feedback.
func DefaultBandConfig() BandConfig {
	return BandConfig{
		FrontTolerance: 20,
		TurnMin:        20,
		TurnMax:        50,
		TiltMin:        15,
		TiltMax:        40,
	}
}

// BuildBands expands the config into per-target bands. Off-axis tolerance is
// the front tolerance throughout: a turned head must still hold level pitch.
func BuildBands(c BandConfig) Bands {
	front := AngleBand{Min: -c.FrontTolerance, Max: c.FrontTolerance}
	return Bands{
		domain.PoseFront: {Yaw: front, Pitch: front},
		domain.PoseLeft:  {Yaw: AngleBand{Min: -c.TurnMax, Max: -c.TurnMin}, Pitch: front},
		domain.PoseRight: {Yaw: AngleBand{Min: c.TurnMin, Max: c.TurnMax}, Pitch: front},
		domain.PoseUp:    {Yaw: front, Pitch: AngleBand{Min: c.TiltMin, Max: c.TiltMax}},
		domain.PoseDown:  {Yaw: front, Pitch: AngleBand{Min: -c.TiltMax, Max: -c.TiltMin}},
	}
}

// Estimator estimates and classifies head pose.
type Estimator struct {
	bands Bands
}

func NewEstimator(bands Bands) *Estimator {
	return &Estimator{bands: bands}
}

// Estimate derives yaw/pitch/roll in degrees from the 5-point landmarks.
// Convention: negative yaw = turned toward the subject's left, positive
// pitch = tilted up. Returns ok=false when the geometry is unresolvable.
func (e *Estimator) Estimate(lm domain.Landmarks) (domain.Pose, bool) {
	leftEye, rightEye := lm.LeftEye(), lm.RightEye()
	nose := lm.Nose()
	mouthMid := domain.Point{
		X: (lm.LeftMouth().X + lm.RightMouth().X) / 2,
		Y: (lm.LeftMouth().Y + lm.RightMouth().Y) / 2,
	}

	eyeDX := rightEye.X - leftEye.X
	eyeDY := rightEye.Y - leftEye.Y
	eyeDist := math.Hypot(eyeDX, eyeDY)
	if eyeDist < minEyeDistance {
		return domain.Pose{}, false
	}

	eyeMid := domain.Point{X: (leftEye.X + rightEye.X) / 2, Y: (leftEye.Y + rightEye.Y) / 2}

	// Roll from the eye-line slope.
	roll := math.Atan2(eyeDY, eyeDX) * 180 / math.Pi

	// Yaw from the horizontal nose displacement relative to eye spacing:
	// the nose drifts toward the camera-near side as the head turns.
	yaw := (nose.X - eyeMid.X) / eyeDist * yawScaleDeg

	// Pitch from the nose position between the eye and mouth lines.
	span := mouthMid.Y - eyeMid.Y
	if math.Abs(span) < 1 {
		return domain.Pose{}, false
	}
	noseRatio := (nose.Y - eyeMid.Y) / span
	pitch := (neutralNoseRatio - noseRatio) * pitchScaleDeg

	return domain.Pose{Yaw: yaw, Pitch: pitch, Roll: roll}, true
}

// Classify checks an estimated pose against the target's tolerance band and,
// on failure, picks the single correction hint for the out-of-band axis.
// When yaw and pitch are both out, yaw wins: horizontal correction disrupts
// framing more and should be fixed first. Roll is informational only and
// never produces a hint.
func (e *Estimator) Classify(p domain.Pose, target domain.PoseTarget) domain.PoseVerdict {
	band, ok := e.bands[target]
	if !ok {
		return domain.PoseVerdict{Pass: false, Correction: domain.CorrectionNone, Pose: &p}
	}

	yawDev := band.Yaw.deviation(p.Yaw)
	pitchDev := band.Pitch.deviation(p.Pitch)

	if yawDev == 0 && pitchDev == 0 {
		return domain.PoseVerdict{Pass: true, Correction: domain.CorrectionNone, Pose: &p}
	}

	var correction domain.Correction
	if yawDev != 0 {
		// Above the band means not turned far enough left (or too far
		// right): the head must come leftward, and vice versa.
		if yawDev > 0 {
			correction = domain.CorrectionTurnLeft
		} else {
			correction = domain.CorrectionTurnRight
		}
	} else {
		if pitchDev < 0 {
			correction = domain.CorrectionTiltUp
		} else {
			correction = domain.CorrectionTiltDown
		}
	}

	return domain.PoseVerdict{Pass: false, Correction: correction, Pose: &p}
}

// EstimateAndClassify is the per-frame entry point: estimate from landmarks,
// then classify against the target. Unresolvable landmarks yield a failing
// verdict with no numeric pose and no correction hint, so callers surface a
// structural message instead of a meaningless direction.
func (e *Estimator) EstimateAndClassify(lm *domain.Landmarks, target domain.PoseTarget) domain.PoseVerdict {
	if lm == nil {
		return domain.PoseVerdict{Pass: false, Correction: domain.CorrectionNone}
	}
	p, ok := e.Estimate(*lm)
	if !ok {
		return domain.PoseVerdict{Pass: false, Correction: domain.CorrectionNone}
	}
	return e.Classify(p, target)
}

// Instruction returns the user-facing prompt for a target pose.
func Instruction(target domain.PoseTarget) string {
	switch target {
	case domain.PoseFront:
		return "Look straight at the camera"
	case domain.PoseLeft:
		return "Turn your head to the LEFT"
	case domain.PoseRight:
		return "Turn your head to the RIGHT"
	case domain.PoseUp:
		return "Tilt your head UP (chin up)"
	case domain.PoseDown:
		return "Tilt your head DOWN (chin down)"
	}
	return "Follow the instruction"
}

// Hint returns the user-facing line for a correction.
func Hint(c domain.Correction) string {
	switch c {
	case domain.CorrectionTurnLeft:
		return "Turn your head more to the LEFT"
	case domain.CorrectionTurnRight:
		return "Turn your head more to the RIGHT"
	case domain.CorrectionTiltUp:
		return "Tilt your head UP more"
	case domain.CorrectionTiltDown:
		return "Tilt your head DOWN more"
	}
	return "Adjust head position"
}

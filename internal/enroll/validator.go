// Package enroll implements the guided multi-pose enrollment pipeline: the
// per-frame validator and the capture state machine that turns streams of
// frame verdicts into discrete pose captures.
package enroll

import (
	"github.com/abduldattijo/biometricattendance/internal/domain"
	"github.com/abduldattijo/biometricattendance/internal/pose"
	"github.com/abduldattijo/biometricattendance/internal/quality"
)

const (
	feedbackNoFace        = "No face detected. Position yourself in frame"
	feedbackMultipleFaces = "Multiple faces detected. Only one person in frame"
	feedbackReady         = "Perfect! Hold still..."
)

// Validator combines the quality evaluator and pose estimator into the
// per-frame verdict driving guided capture.
type Validator struct {
	quality *quality.Evaluator
	pose    *pose.Estimator
}

func NewValidator(q *quality.Evaluator, p *pose.Estimator) *Validator {
	return &Validator{quality: q, pose: p}
}

// Validate runs quality and pose checks independently against the same frame
// and combines them. ReadyToCapture is true iff both pass.
//
// Feedback ordering contract: target instruction first, then every failing
// quality line (all of them, so the subject can fix everything in one pass),
// then the single pose hint when quality passes but pose fails, then the
// hold-still line when the frame is ready.
func (v *Validator) Validate(frame *domain.Frame, faces []domain.FaceObservation, target domain.PoseTarget) domain.FrameVerdict {
	qv := v.quality.Evaluate(frame, faces)

	var lm *domain.Landmarks
	if len(faces) == 1 {
		lm = faces[0].Landmarks
	}
	pv := v.pose.EstimateAndClassify(lm, target)

	verdict := domain.FrameVerdict{
		Quality:        qv,
		Pose:           pv,
		ReadyToCapture: qv.Pass && pv.Pass,
	}
	verdict.Feedback = v.feedback(verdict, target)
	return verdict
}

func (v *Validator) feedback(fv domain.FrameVerdict, target domain.PoseTarget) []string {
	lines := []string{pose.Instruction(target)}

	if reason, structural := fv.Quality.Structural(); structural {
		switch reason {
		case domain.ReasonMultipleFaces:
			lines = append(lines, feedbackMultipleFaces)
		default:
			lines = append(lines, feedbackNoFace)
		}
		return lines
	}

	if !fv.Quality.Pass {
		lines = append(lines, fv.Quality.FailureMessages()...)
	}
	// A pose failure with no correction means the landmarks were
	// unresolvable; the quality landmark check already carries that
	// message and a directional hint would be meaningless.
	if !fv.Pose.Pass && fv.Pose.Correction != domain.CorrectionNone {
		lines = append(lines, pose.Hint(fv.Pose.Correction))
	}
	if fv.ReadyToCapture {
		lines = append(lines, feedbackReady)
	}
	return lines
}

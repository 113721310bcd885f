package domain

// FrameVerdict combines the quality and pose verdicts for one submitted frame.
// Invariant: ReadyToCapture == Quality.Pass && Pose.Pass.
//
// Feedback ordering is a contract: the first line names the current target
// pose, then one line per failing quality check, then (when quality passes but
// pose does not) the single correction hint, then a hold-still line when the
// frame is capture ready. Downstream consumers treat the first line as the
// headline and the rest as actionable detail.
type FrameVerdict struct {
	Quality        QualityVerdict `json:"quality"`
	Pose           PoseVerdict    `json:"pose"`
	ReadyToCapture bool           `json:"ready_to_capture"`
	Feedback       []string       `json:"feedback"`
}

package domain

// EnrolledEmbedding is one stored embedding row loaded for matching.
type EnrolledEmbedding struct {
	EmployeeID string
	Pose       PoseTarget
	Embedding  []float64
}

// MatchCandidate is one ranked identity in a match result.
type MatchCandidate struct {
	EmployeeID string  `json:"employee_id"`
	Score      float64 `json:"score"`
}

// MatchResult is the outcome of matching a probe embedding against all
// enrolled identities. Invariant: when Matched is true, BestScore >= the
// configured threshold and BestEmployeeID is the arg-max over candidates.
type MatchResult struct {
	Matched        bool    `json:"matched"`
	BestEmployeeID string  `json:"best_employee_id,omitempty"`
	BestScore      float64 `json:"best_score"`
	// Ambiguous flags a near-tie between the two best identities; callers
	// should treat the result as inconclusive and fall back to manual
	// check-in rather than trust BestEmployeeID.
	Ambiguous  bool             `json:"ambiguous"`
	Candidates []MatchCandidate `json:"candidates"`
}

// Package match scores probe face embeddings against the enrolled gallery
// using cosine similarity.
package match

import (
	"sort"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

// Options tune the matching decision.
type Options struct {
	// Threshold is the minimum best score for a positive match.
	Threshold float64
	// TopK bounds the returned candidate list.
	TopK int
	// AmbiguityEpsilon flags a near-tie: when the two best identities score
	// within this margin of each other the result is marked ambiguous.
	AmbiguityEpsilon float64
}

// Matcher compares a probe embedding against enrolled embeddings.
type Matcher struct {
	opts Options
}

func NewMatcher(opts Options) *Matcher {
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	return &Matcher{opts: opts}
}

// Match scores the probe against every enrolled embedding and aggregates
// per identity by taking the MAXIMUM similarity across that identity's
// stored poses. The max, not the mean: a strong frontal match should not be
// dragged down by the probe's distance from the same person's profile shots.
func (m *Matcher) Match(probe []float64, enrolled []domain.EnrolledEmbedding) domain.MatchResult {
	best := make(map[string]float64)
	for _, e := range enrolled {
		score := CosineSimilarity(probe, e.Embedding)
		if cur, ok := best[e.EmployeeID]; !ok || score > cur {
			best[e.EmployeeID] = score
		}
	}

	candidates := make([]domain.MatchCandidate, 0, len(best))
	for id, score := range best {
		candidates = append(candidates, domain.MatchCandidate{EmployeeID: id, Score: score})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].EmployeeID < candidates[j].EmployeeID
	})

	if len(candidates) > m.opts.TopK {
		candidates = candidates[:m.opts.TopK]
	}

	result := domain.MatchResult{Candidates: candidates}
	if len(candidates) == 0 {
		return result
	}

	top := candidates[0]
	result.BestScore = top.Score
	if top.Score < m.opts.Threshold {
		return result
	}

	result.Matched = true
	result.BestEmployeeID = top.EmployeeID
	if len(candidates) > 1 && top.Score-candidates[1].Score < m.opts.AmbiguityEpsilon {
		result.Ambiguous = true
	}
	return result
}

package match

import (
	"math"
)

// CosineSimilarity calculates the cosine similarity between two embedding
// vectors. Returns a value between -1.0 (opposite) and 1.0 (identical).
// Mismatched or empty vectors score 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// NormalizeEmbedding normalizes an embedding vector to unit length.
func NormalizeEmbedding(embedding []float64) []float64 {
	if len(embedding) == 0 {
		return embedding
	}

	var norm float64
	for _, v := range embedding {
		norm += v * v
	}

	if norm == 0 {
		return embedding
	}

	norm = math.Sqrt(norm)
	normalized := make([]float64, len(embedding))
	for i, v := range embedding {
		normalized[i] = v / norm
	}

	return normalized
}

// AverageEmbedding averages a set of same-dimension embeddings and normalizes
// the result. The averaged vector is stored alongside the per-pose rows so a
// probe that matches none of the discrete poses well still has a robust
// composite to score against. Returns nil when the set is empty or ragged.
func AverageEmbedding(embeddings [][]float64) []float64 {
	if len(embeddings) == 0 {
		return nil
	}

	dim := len(embeddings[0])
	if dim == 0 {
		return nil
	}

	avg := make([]float64, dim)
	for _, e := range embeddings {
		if len(e) != dim {
			return nil
		}
		for i, v := range e {
			avg[i] += v
		}
	}

	n := float64(len(embeddings))
	for i := range avg {
		avg[i] /= n
	}

	return NormalizeEmbedding(avg)
}

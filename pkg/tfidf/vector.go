package tfidf

import "math"

// CosineSimilarity calculates the cosine similarity between two vectors.
// Returns 0.0 if dimensions mismatch or either vector is all zeros.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	dotProduct := 0.0
	normA := 0.0
	normB := 0.0

	for i := 0; i < len(a); i++ {
		x, y := float64(a[i]), float64(b[i])
		dotProduct += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Normalize modifies vector in-place to have unit length (L2 norm)
func Normalize(v []float32) {
	sumSq := 0.0
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}

	if sumSq == 0 {
		return
	}

	norm := math.Sqrt(sumSq)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
}

// IsZero reports whether every component is zero.
func IsZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Centroid returns the element-wise mean of rows. All rows must share a
// dimension of dim; an empty set yields a zero vector.
func Centroid(rows [][]float32, dim int) []float32 {
	sum := make([]float64, dim)
	for _, r := range rows {
		for j, x := range r {
			sum[j] += float64(x)
		}
	}
	out := make([]float32, dim)
	if len(rows) == 0 {
		return out
	}
	n := float64(len(rows))
	for j := range sum {
		out[j] = float32(sum[j] / n)
	}
	return out
}

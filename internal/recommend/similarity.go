// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package recommend

import "math"

// SimilarityMatrix is a symmetric user x user cosine similarity matrix.
// The zero value is the empty sentinel returned when similarity is not
// meaningful.
type SimilarityMatrix struct {
	n    int
	data []float64
}

// Empty reports whether this is the empty sentinel.
func (s *SimilarityMatrix) Empty() bool {
	return s == nil || s.n == 0
}

// Size returns the number of users on each axis.
func (s *SimilarityMatrix) Size() int {
	if s == nil {
		return 0
	}
	return s.n
}

// At returns the similarity between rows a and b.
func (s *SimilarityMatrix) At(a, b int) float64 {
	return s.data[a*s.n+b]
}

func (s *SimilarityMatrix) set(a, b int, v float64) {
	s.data[a*s.n+b] = v
	s.data[b*s.n+a] = v
}

// CosineSimilarity computes S[a][b] = (row_a . row_b) / (|row_a| |row_b|).
//
// Fewer than two rows or an all-zero matrix return the empty sentinel without
// computing anything. An all-zero row has similarity 0 to every row, itself
// included. Non-zero rows have exactly 1 on the diagonal.
func CosineSimilarity(m Matrix) *SimilarityMatrix {
	if m == nil || m.Rows() < 2 || m.IsZero() {
		return &SimilarityMatrix{}
	}

	n := m.Rows()
	norms := make([]float64, n)
	for r := 0; r < n; r++ {
		var sum float64
		for _, v := range m.Row(r) {
			sum += v * v
		}
		norms[r] = math.Sqrt(sum)
	}

	s := &SimilarityMatrix{n: n, data: make([]float64, n*n)}
	for a := 0; a < n; a++ {
		if norms[a] == 0 {
			continue
		}
		s.data[a*n+a] = 1
		rowA := m.Row(a)
		for b := a + 1; b < n; b++ {
			if norms[b] == 0 {
				continue
			}
			s.set(a, b, clampUnit(dot(rowA, m.Row(b))/(norms[a]*norms[b])))
		}
	}

	return s
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// clampUnit absorbs floating point drift just outside [-1, 1].
func clampUnit(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}

// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package recommend

import (
	"math"
	"testing"
)

func denseFrom(rows [][]float64) *DenseMatrix {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m := NewDenseMatrix(len(rows), cols)
	for r, row := range rows {
		for c, v := range row {
			m.Set(r, c, v)
		}
	}
	return m
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCosineSimilarity_EmptySentinel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    Matrix
	}{
		{name: "nil matrix", m: nil},
		{name: "no rows", m: NewDenseMatrix(0, 0)},
		{name: "single row", m: denseFrom([][]float64{{5, 3}})},
		{name: "all zero", m: denseFrom([][]float64{{0, 0}, {0, 0}, {0, 0}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if s := CosineSimilarity(tt.m); !s.Empty() {
				t.Errorf("expected empty sentinel, got size %d", s.Size())
			}
		})
	}
}

func TestCosineSimilarity_Values(t *testing.T) {
	t.Parallel()

	m := denseFrom([][]float64{
		{5, 0, 0},
		{5, 5, 0},
		{0, 0, 5},
		{0, 0, 0},
		{1, 0, 0},
	})
	s := CosineSimilarity(m)

	if s.Size() != 5 {
		t.Fatalf("size = %d, want 5", s.Size())
	}

	if got, want := s.At(0, 1), 1/math.Sqrt2; !approxEqual(got, want) {
		t.Errorf("S[0][1] = %v, want %v", got, want)
	}
	if got := s.At(0, 2); got != 0 {
		t.Errorf("S[0][2] = %v, want 0 for disjoint rows", got)
	}
	if got := s.At(0, 4); !approxEqual(got, 1) {
		t.Errorf("S[0][4] = %v, want 1 for parallel rows", got)
	}

	for b := 0; b < 5; b++ {
		if got := s.At(3, b); got != 0 {
			t.Errorf("zero row S[3][%d] = %v, want 0", b, got)
		}
	}

	for a := 0; a < 5; a++ {
		if a == 3 {
			continue
		}
		if got := s.At(a, a); got != 1 {
			t.Errorf("diagonal S[%d][%d] = %v, want 1", a, a, got)
		}
	}
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	t.Parallel()

	m := denseFrom([][]float64{
		{5, 2, 0, 1},
		{0, 3, 4, 0},
		{1, 1, 1, 1},
		{0, 0, 2, 5},
	})
	s := CosineSimilarity(m)

	for a := 0; a < s.Size(); a++ {
		for b := 0; b < s.Size(); b++ {
			if s.At(a, b) != s.At(b, a) {
				t.Errorf("S[%d][%d]=%v != S[%d][%d]=%v", a, b, s.At(a, b), b, a, s.At(b, a))
			}
			if v := s.At(a, b); math.IsNaN(v) || v < -1 || v > 1 {
				t.Errorf("S[%d][%d] = %v out of range", a, b, v)
			}
		}
	}
}

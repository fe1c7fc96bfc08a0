// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package recommend

import "testing"

func buildPipeline(orderItems []OrderItem, interactions []Interaction) (*InteractionMatrix, *SimilarityMatrix) {
	im := BuildMatrix(Aggregate(orderItems, interactions))
	return im, CosineSimilarity(im.M)
}

func TestRank_NeighborWeightedScoring(t *testing.T) {
	t.Parallel()

	// user 1: A
	// user 2: A, B          sim(1,2) = 1/sqrt(2)
	// user 3: A, C (click)  sim(1,3) = 5/sqrt(29)
	// B = 5 * 0.7071 = 3.54 beats C = 2 * 0.9285 = 1.86
	im, sim := buildPipeline(
		[]OrderItem{{UserID: 1, ItemID: 100}, {UserID: 2, ItemID: 100}, {UserID: 2, ItemID: 200}, {UserID: 3, ItemID: 100}},
		[]Interaction{{UserID: 3, ItemID: 300, Kind: KindClick}},
	)

	got, reason := Rank(1, 5, im, sim)
	if reason != FallbackNone {
		t.Fatalf("unexpected fallback %q", reason)
	}
	if want := []int64{200, 300}; !equalIDs(got, want) {
		t.Errorf("Rank() = %v, want %v", got, want)
	}
}

func TestRank_ExcludesTargetEvidence(t *testing.T) {
	t.Parallel()

	im, sim := buildPipeline(
		[]OrderItem{
			{UserID: 1, ItemID: 1}, {UserID: 1, ItemID: 2},
			{UserID: 2, ItemID: 1}, {UserID: 2, ItemID: 2}, {UserID: 2, ItemID: 3},
			{UserID: 3, ItemID: 2}, {UserID: 3, ItemID: 4},
		},
		[]Interaction{{UserID: 1, ItemID: 4, Kind: KindView}},
	)

	got, reason := Rank(1, 10, im, sim)
	if reason != FallbackNone {
		t.Fatalf("unexpected fallback %q", reason)
	}

	seen := map[int64]bool{1: true, 2: true, 4: true}
	for _, id := range got {
		if seen[id] {
			t.Errorf("recommended item %d the user already has evidence for", id)
		}
	}
	if want := []int64{3}; !equalIDs(got, want) {
		t.Errorf("Rank() = %v, want %v", got, want)
	}
}

func TestRank_TieBreakAscendingItemID(t *testing.T) {
	t.Parallel()

	im, sim := buildPipeline(
		[]OrderItem{
			{UserID: 1, ItemID: 1},
			{UserID: 2, ItemID: 1}, {UserID: 2, ItemID: 50}, {UserID: 2, ItemID: 30}, {UserID: 2, ItemID: 40},
		},
		nil,
	)

	got, _ := Rank(1, 2, im, sim)
	if want := []int64{30, 40}; !equalIDs(got, want) {
		t.Errorf("Rank() = %v, want %v", got, want)
	}
}

func TestRank_SkipsNonPositiveSimilarity(t *testing.T) {
	t.Parallel()

	m := denseFrom([][]float64{
		{5, 0, 0},
		{0, 4, 0},
		{0, 0, 3},
	})
	im := &InteractionMatrix{M: m, UserIDs: []int64{1, 2, 3}, ItemIDs: []int64{10, 20, 30}}
	sim := &SimilarityMatrix{n: 3, data: []float64{
		1, -0.5, 0.2,
		-0.5, 1, 0,
		0.2, 0, 1,
	}}

	got, reason := Rank(1, 5, im, sim)
	if reason != FallbackNone {
		t.Fatalf("unexpected fallback %q", reason)
	}
	if want := []int64{30}; !equalIDs(got, want) {
		t.Errorf("Rank() = %v, want %v (negative neighbor must not contribute)", got, want)
	}
}

func TestRank_SelfExcludedByPosition(t *testing.T) {
	t.Parallel()

	// users 1 and 2 have identical rows, so S[0][1] = 1 and user 2 ranks as a
	// neighbor, but user 1's own row never contributes.
	m := denseFrom([][]float64{
		{5, 0},
		{5, 3},
	})
	im := &InteractionMatrix{M: m, UserIDs: []int64{1, 2}, ItemIDs: []int64{10, 20}}
	sim := &SimilarityMatrix{n: 2, data: []float64{1, 1, 1, 1}}

	got, reason := Rank(1, 5, im, sim)
	if reason != FallbackNone {
		t.Fatalf("unexpected fallback %q", reason)
	}
	if want := []int64{20}; !equalIDs(got, want) {
		t.Errorf("Rank() = %v, want %v", got, want)
	}
}

func TestRank_FallbackReasons(t *testing.T) {
	t.Parallel()

	twoUsers := &InteractionMatrix{
		M:       denseFrom([][]float64{{5, 0}, {0, 5}}),
		UserIDs: []int64{1, 2},
		ItemIDs: []int64{10, 20},
	}
	disjointSim := CosineSimilarity(twoUsers.M)

	tests := []struct {
		name string
		user int64
		im   *InteractionMatrix
		sim  *SimilarityMatrix
		want FallbackReason
	}{
		{name: "empty matrix", user: 1, im: BuildMatrix(Aggregate(nil, nil)), sim: &SimilarityMatrix{}, want: FallbackNoData},
		{name: "unknown user", user: 99, im: twoUsers, sim: disjointSim, want: FallbackUnknownUser},
		{name: "empty similarity", user: 1, im: twoUsers, sim: &SimilarityMatrix{}, want: FallbackNoSimilarity},
		{name: "index outside similarity", user: 2, im: twoUsers, sim: &SimilarityMatrix{n: 1, data: []float64{1}}, want: FallbackIndexOutOfRange},
		{name: "disjoint users", user: 1, im: twoUsers, sim: disjointSim, want: FallbackNoCandidates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, reason := Rank(tt.user, 5, tt.im, tt.sim)
			if reason != tt.want {
				t.Errorf("reason = %q, want %q", reason, tt.want)
			}
			if got != nil {
				t.Errorf("expected nil items on fallback, got %v", got)
			}
		})
	}
}

func TestRank_TruncatesToN(t *testing.T) {
	t.Parallel()

	im, sim := buildPipeline(
		[]OrderItem{
			{UserID: 1, ItemID: 1},
			{UserID: 2, ItemID: 1}, {UserID: 2, ItemID: 2}, {UserID: 2, ItemID: 3}, {UserID: 2, ItemID: 4},
		},
		nil,
	)

	got, _ := Rank(1, 2, im, sim)
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

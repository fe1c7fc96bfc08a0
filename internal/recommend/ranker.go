// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package recommend

import "sort"

// neighbor is another user's row and its similarity to the target.
type neighbor struct {
	row        int
	similarity float64
}

// candidate is an accumulated item score keyed by external item id.
type candidate struct {
	itemID int64
	score  float64
}

// Rank produces up to n item ids for targetUserID by neighbor-weighted scoring.
//
// When personalization is impossible it returns (nil, reason) and the caller
// must delegate to popularity. Reasons, checked in order:
//   - no users in the matrix
//   - target not among the users
//   - empty similarity sentinel
//   - target row outside the similarity bounds
//   - no positive-similarity neighbor contributes an unseen item
//
// Items are ordered by accumulated score descending, then ascending item id.
func Rank(targetUserID int64, n int, im *InteractionMatrix, sim *SimilarityMatrix) ([]int64, FallbackReason) {
	if im.Empty() {
		return nil, FallbackNoData
	}
	t, ok := im.UserRow(targetUserID)
	if !ok {
		return nil, FallbackUnknownUser
	}
	if sim.Empty() {
		return nil, FallbackNoSimilarity
	}
	if t >= sim.Size() {
		return nil, FallbackIndexOutOfRange
	}

	candidates := accumulate(t, im, sim)
	if len(candidates) == 0 {
		return nil, FallbackNoCandidates
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].itemID < candidates[j].itemID
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	if n <= 0 {
		return nil, FallbackNoCandidates
	}

	out := make([]int64, n)
	for i := 0; i < n; i++ {
		out[i] = candidates[i].itemID
	}
	return out, FallbackNone
}

// rankNeighbors orders every row except t by similarity descending. Self is
// excluded by position; equal similarities keep ascending row order.
func rankNeighbors(t int, sim *SimilarityMatrix) []neighbor {
	neighbors := make([]neighbor, 0, sim.Size()-1)
	for r := 0; r < sim.Size(); r++ {
		if r == t {
			continue
		}
		neighbors = append(neighbors, neighbor{row: r, similarity: sim.At(t, r)})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].similarity > neighbors[j].similarity
	})
	return neighbors
}

// accumulate sums M[n][i] * S[t][n] over positive-similarity neighbors for
// every item the target has no evidence for.
func accumulate(t int, im *InteractionMatrix, sim *SimilarityMatrix) []candidate {
	target := im.M.Row(t)
	scores := make(map[int64]float64)

	for _, nb := range rankNeighbors(t, sim) {
		// sorted descending, so nothing after this contributes either
		if nb.similarity <= 0 {
			break
		}
		for col, v := range im.M.Row(nb.row) {
			if v == 0 || target[col] != 0 {
				continue
			}
			scores[im.ItemIDs[col]] += v * nb.similarity
		}
	}

	out := make([]candidate, 0, len(scores))
	for id, score := range scores {
		out = append(out, candidate{itemID: id, score: score})
	}
	return out
}

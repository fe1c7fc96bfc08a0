// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package recommend

// Matrix is a read-only user x item score matrix. Zero means no evidence.
// DenseMatrix is the only implementation today; ranking and similarity only
// depend on this interface so a sparse layout can replace it.
type Matrix interface {
	// Rows returns the number of users.
	Rows() int

	// Cols returns the number of items.
	Cols() int

	// At returns the score at (row, col).
	At(row, col int) float64

	// Row returns the scores for one user. Callers must not modify it.
	Row(row int) []float64

	// NonZero returns the number of entries with evidence.
	NonZero() int

	// IsZero reports whether every entry is zero (or the matrix is empty).
	IsZero() bool
}

// DenseMatrix stores scores row-major in a single slice.
type DenseMatrix struct {
	rows int
	cols int
	data []float64
}

// NewDenseMatrix allocates a zeroed rows x cols matrix.
func NewDenseMatrix(rows, cols int) *DenseMatrix {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &DenseMatrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}
}

// Rows implements Matrix.
func (m *DenseMatrix) Rows() int { return m.rows }

// Cols implements Matrix.
func (m *DenseMatrix) Cols() int { return m.cols }

// At implements Matrix.
func (m *DenseMatrix) At(row, col int) float64 {
	return m.data[row*m.cols+col]
}

// Set writes a score.
func (m *DenseMatrix) Set(row, col int, v float64) {
	m.data[row*m.cols+col] = v
}

// Row implements Matrix.
func (m *DenseMatrix) Row(row int) []float64 {
	start := row * m.cols
	return m.data[start : start+m.cols : start+m.cols]
}

// NonZero implements Matrix.
func (m *DenseMatrix) NonZero() int {
	n := 0
	for _, v := range m.data {
		if v != 0 {
			n++
		}
	}
	return n
}

// IsZero implements Matrix.
func (m *DenseMatrix) IsZero() bool {
	for _, v := range m.data {
		if v != 0 {
			return false
		}
	}
	return true
}

var _ Matrix = (*DenseMatrix)(nil)

// InteractionMatrix bundles the score matrix with its identifier arrays.
// Position k of UserIDs/ItemIDs is row/column k of M.
type InteractionMatrix struct {
	M       Matrix
	UserIDs []int64
	ItemIDs []int64
}

// Empty reports whether the matrix has no users.
func (im *InteractionMatrix) Empty() bool {
	return im == nil || len(im.UserIDs) == 0 || im.M == nil || im.M.Rows() == 0
}

// UserRow returns the row position of a user id.
func (im *InteractionMatrix) UserRow(userID int64) (int, bool) {
	for i, id := range im.UserIDs {
		if id == userID {
			return i, true
		}
	}
	return -1, false
}

// BuildMatrix converts an aggregation into a dense matrix with identifier
// arrays. An empty aggregation yields a zero-row matrix and empty arrays, which
// callers treat as the signal to use popularity.
func BuildMatrix(agg *Aggregation) *InteractionMatrix {
	if agg.Empty() {
		return &InteractionMatrix{
			M:       NewDenseMatrix(0, 0),
			UserIDs: []int64{},
			ItemIDs: []int64{},
		}
	}

	userIDs := make([]int64, len(agg.UserIndex))
	for id, pos := range agg.UserIndex {
		userIDs[pos] = id
	}
	itemIDs := make([]int64, len(agg.ItemIndex))
	for id, pos := range agg.ItemIndex {
		itemIDs[pos] = id
	}

	m := NewDenseMatrix(len(userIDs), len(itemIDs))
	for _, rec := range agg.Records {
		m.Set(agg.UserIndex[rec.UserID], agg.ItemIndex[rec.ItemID], float64(rec.Score))
	}

	return &InteractionMatrix{
		M:       m,
		UserIDs: userIDs,
		ItemIDs: itemIDs,
	}
}

// Package rowindex derives row-oriented summaries of a column-major matrix
// in a single pass, so row-axis queries do not need a transposing rewrite.
package rowindex

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/packmat/matrix"
)

// Tally accumulates per-row statistics as entries stream through a writer.
type Tally struct {
	counts   []uint32
	occupied *roaring.Bitmap
}

// NewTally creates a tally for a matrix with the given row count.
func NewTally(rows uint32) *Tally {
	return &Tally{
		counts:   make([]uint32, rows),
		occupied: roaring.New(),
	}
}

// Add records one entry at the given row.
func (t *Tally) Add(row uint32) error {
	if row >= uint32(len(t.counts)) {
		return matrix.ErrRowRange
	}
	t.counts[row]++
	t.occupied.Add(row)
	return nil
}

// Counts returns the number of entries per row, length rows. The slice
// aliases the tally's storage.
func (t *Tally) Counts() []uint32 {
	return t.counts
}

// Occupied returns the set of rows with at least one entry.
func (t *Tally) Occupied() *roaring.Bitmap {
	return t.occupied
}

// OccupiedRows returns how many rows hold at least one entry.
func (t *Tally) OccupiedRows() uint64 {
	return t.occupied.GetCardinality()
}

package rowindex

import (
	"testing"

	"github.com/hupe1980/packmat/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTally(t *testing.T) {
	tally := NewTally(5)

	for _, row := range []uint32{0, 2, 2, 4, 2} {
		require.NoError(t, tally.Add(row))
	}

	assert.Equal(t, []uint32{1, 0, 3, 0, 1}, tally.Counts())
	assert.Equal(t, uint64(3), tally.OccupiedRows())
	assert.True(t, tally.Occupied().Contains(2))
	assert.False(t, tally.Occupied().Contains(1))
}

func TestTally_RowRange(t *testing.T) {
	tally := NewTally(3)
	assert.ErrorIs(t, tally.Add(3), matrix.ErrRowRange)
	assert.Equal(t, uint64(0), tally.OccupiedRows())
}

func TestTally_Empty(t *testing.T) {
	tally := NewTally(0)
	assert.Empty(t, tally.Counts())
	assert.Equal(t, uint64(0), tally.OccupiedRows())
}

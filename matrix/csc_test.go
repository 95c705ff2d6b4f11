package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCSC(t *testing.T, rows uint32, columns [][]Entry[uint32]) *CSC[uint32] {
	t.Helper()
	m, err := FromColumns(rows, columns)
	require.NoError(t, err)
	return m
}

func drain(t *testing.T, l Loader[uint32]) [][]Entry[uint32] {
	t.Helper()
	out := make([][]Entry[uint32], l.Cols())
	buf := make([]Entry[uint32], 3) // small on purpose, forces partial loads
	for l.NextCol() {
		c := l.CurrentCol()
		for {
			n, err := l.Load(buf)
			require.NoError(t, err)
			if n == 0 {
				break
			}
			out[c] = append(out[c], buf[:n]...)
		}
	}
	return out
}

func TestCSC_Iteration(t *testing.T) {
	columns := [][]Entry[uint32]{
		{{Row: 0, Val: 5}, {Row: 2, Val: 7}},
		nil,
		{{Row: 1, Val: 9}},
	}
	m := mustCSC(t, 4, columns)

	assert.Equal(t, uint32(4), m.Rows())
	assert.Equal(t, uint32(3), m.Cols())
	assert.Equal(t, 3, m.NNZ())

	got := drain(t, m)
	assert.Equal(t, columns[0], got[0])
	assert.Empty(t, got[1])
	assert.Equal(t, columns[2], got[2])
}

func TestCSC_IdempotentExhaustion(t *testing.T) {
	m := mustCSC(t, 4, [][]Entry[uint32]{{{Row: 1, Val: 2}}})

	require.True(t, m.NextCol())
	buf := make([]Entry[uint32], 8)
	n, err := m.Load(buf)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	for i := 0; i < 3; i++ {
		n, err = m.Load(buf)
		require.NoError(t, err)
		assert.Zero(t, n)
	}

	for i := 0; i < 3; i++ {
		assert.False(t, m.NextCol())
		assert.Equal(t, uint32(4), m.Rows())
		assert.Equal(t, uint32(1), m.Cols())
	}
}

func TestCSC_RestartDeterminism(t *testing.T) {
	m := mustCSC(t, 10, [][]Entry[uint32]{
		{{Row: 0, Val: 1}, {Row: 5, Val: 2}},
		{{Row: 3, Val: 4}},
	})

	first := drain(t, m)
	require.NoError(t, m.Restart())
	second := drain(t, m)
	assert.Equal(t, first, second)

	// Restart mid-column.
	require.NoError(t, m.Restart())
	require.True(t, m.NextCol())
	one := make([]Entry[uint32], 1)
	_, err := m.Load(one)
	require.NoError(t, err)
	require.NoError(t, m.Restart())
	third := drain(t, m)
	assert.Equal(t, first, third)
}

func TestCSC_LoadBeforeNextCol(t *testing.T) {
	m := mustCSC(t, 4, [][]Entry[uint32]{{{Row: 1, Val: 2}}})
	n, err := m.Load(make([]Entry[uint32], 4))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewCSC_Validation(t *testing.T) {
	entries := []Entry[uint32]{{Row: 0, Val: 1}, {Row: 2, Val: 2}}

	_, err := NewCSC(4, 2, []uint32{0, 2}, entries)
	assert.ErrorIs(t, err, ErrColPtr)

	_, err = NewCSC(4, 1, []uint32{0, 1}, entries)
	assert.ErrorIs(t, err, ErrColPtr)

	_, err = NewCSC(4, 1, []uint32{0, 2}, []Entry[uint32]{{Row: 2, Val: 1}, {Row: 2, Val: 2}})
	assert.ErrorIs(t, err, ErrRowOrder)

	_, err = NewCSC(4, 1, []uint32{0, 2}, []Entry[uint32]{{Row: 3, Val: 1}, {Row: 1, Val: 2}})
	assert.ErrorIs(t, err, ErrRowOrder)

	_, err = NewCSC(2, 1, []uint32{0, 1}, []Entry[uint32]{{Row: 2, Val: 1}})
	assert.ErrorIs(t, err, ErrRowRange)
}

func TestCollect(t *testing.T) {
	columns := [][]Entry[uint32]{
		{{Row: 0, Val: 5}, {Row: 2, Val: 7}},
		nil,
		{{Row: 1, Val: 9}},
	}
	m := mustCSC(t, 4, columns)

	// Leave the source mid-iteration; Collect must restart it.
	require.True(t, m.NextCol())

	got, err := Collect[uint32](m)
	require.NoError(t, err)
	assert.Equal(t, m.ColPtr(), got.ColPtr())
	assert.Equal(t, columns[0], got.Column(0))
	assert.Equal(t, columns[2], got.Column(2))
}

func TestCSC_Names(t *testing.T) {
	m := mustCSC(t, 2, [][]Entry[uint32]{nil, nil, nil})

	require.NoError(t, m.SetRowNames([]string{"gene-a", "gene-b"}))
	require.NoError(t, m.SetColNames([]string{"cell-1", "cell-2", "cell-3"}))

	name, ok := m.RowName(1)
	require.True(t, ok)
	assert.Equal(t, "gene-b", name)
	_, ok = m.RowName(2)
	assert.False(t, ok)

	err := m.SetRowNames([]string{"too", "many", "names"})
	var nle *NameLengthError
	require.ErrorAs(t, err, &nle)
	assert.Equal(t, "row", nle.Axis)
}

package matrix

import (
	"errors"
	"math"
)

// unstartedCol marks a loader that has not seen its first NextCol yet.
// Advancing wraps it to column 0.
const unstartedCol = math.MaxUint32

var (
	// ErrColPtr reports a column pointer array that is not monotone,
	// not length cols+1, or inconsistent with the entry count.
	ErrColPtr = errors.New("matrix: invalid col_ptr")
	// ErrRowOrder reports a column whose row indices are not strictly
	// ascending.
	ErrRowOrder = errors.New("matrix: rows within a column must be strictly ascending")
	// ErrRowRange reports a row index outside the matrix dimensions.
	ErrRowRange = errors.New("matrix: row index out of range")
)

// CSC is an in-memory compressed-sparse-column matrix. It implements
// Loader and is the materialized form other loaders are collected into.
type CSC[T any] struct {
	rows, cols uint32
	colPtr     []uint32 // cumulative entry counts, length cols+1
	entries    []Entry[T]

	cur uint32
	off uint32 // index of the next entry to serve

	rowNames []string
	colNames []string
}

// NewCSC builds a CSC matrix from raw storage. colPtr must have length
// cols+1, start at 0, be monotone and end at len(entries); each column's
// entries must be strictly ascending by row.
func NewCSC[T any](rows, cols uint32, colPtr []uint32, entries []Entry[T]) (*CSC[T], error) {
	if uint32(len(colPtr)) != cols+1 || colPtr[0] != 0 || colPtr[cols] != uint32(len(entries)) {
		return nil, ErrColPtr
	}
	for c := uint32(0); c < cols; c++ {
		if colPtr[c+1] < colPtr[c] {
			return nil, ErrColPtr
		}
		for i := colPtr[c]; i < colPtr[c+1]; i++ {
			if entries[i].Row >= rows {
				return nil, ErrRowRange
			}
			if i > colPtr[c] && entries[i].Row <= entries[i-1].Row {
				return nil, ErrRowOrder
			}
		}
	}
	m := &CSC[T]{rows: rows, cols: cols, colPtr: colPtr, entries: entries}
	m.Restart()
	return m, nil
}

// FromColumns builds a CSC matrix from per-column entry slices.
func FromColumns[T any](rows uint32, columns [][]Entry[T]) (*CSC[T], error) {
	colPtr := make([]uint32, len(columns)+1)
	var entries []Entry[T]
	for c, col := range columns {
		entries = append(entries, col...)
		colPtr[c+1] = uint32(len(entries))
	}
	return NewCSC(rows, uint32(len(columns)), colPtr, entries)
}

// Rows implements Loader.
func (m *CSC[T]) Rows() uint32 { return m.rows }

// Cols implements Loader.
func (m *CSC[T]) Cols() uint32 { return m.cols }

// Restart implements Loader. It never fails for an in-memory matrix but
// keeps the Loader signature.
func (m *CSC[T]) Restart() error {
	m.cur = unstartedCol
	m.off = 0
	return nil
}

// NextCol implements Loader.
func (m *CSC[T]) NextCol() bool {
	next := m.cur + 1 // wraps to 0 when unstarted
	if next >= m.cols {
		return false
	}
	m.cur = next
	m.off = m.colPtr[next]
	return true
}

// CurrentCol implements Loader.
func (m *CSC[T]) CurrentCol() uint32 { return m.cur }

// Load implements Loader.
func (m *CSC[T]) Load(buf []Entry[T]) (int, error) {
	if m.cur >= m.cols {
		return 0, nil
	}
	n := copy(buf, m.entries[m.off:m.colPtr[m.cur+1]])
	m.off += uint32(n)
	return n, nil
}

// NNZ returns the number of stored entries.
func (m *CSC[T]) NNZ() int { return len(m.entries) }

// Column returns the entries of column c. The slice aliases the matrix
// storage and must not be mutated.
func (m *CSC[T]) Column(c uint32) []Entry[T] {
	return m.entries[m.colPtr[c]:m.colPtr[c+1]]
}

// ColPtr returns the cumulative entry counts per column. The slice aliases
// the matrix storage and must not be mutated.
func (m *CSC[T]) ColPtr() []uint32 { return m.colPtr }

// SetRowNames attaches row names. The list must be empty or length rows.
func (m *CSC[T]) SetRowNames(names []string) error {
	if len(names) > 0 && uint32(len(names)) != m.rows {
		return &NameLengthError{Axis: "row", Want: m.rows, Got: len(names)}
	}
	m.rowNames = names
	return nil
}

// SetColNames attaches column names. The list must be empty or length cols.
func (m *CSC[T]) SetColNames(names []string) error {
	if len(names) > 0 && uint32(len(names)) != m.cols {
		return &NameLengthError{Axis: "col", Want: m.cols, Got: len(names)}
	}
	m.colNames = names
	return nil
}

// RowName implements Dims.
func (m *CSC[T]) RowName(i uint32) (string, bool) {
	if i < uint32(len(m.rowNames)) {
		return m.rowNames[i], true
	}
	return "", false
}

// ColName implements Dims.
func (m *CSC[T]) ColName(i uint32) (string, bool) {
	if i < uint32(len(m.colNames)) {
		return m.colNames[i], true
	}
	return "", false
}

// Collect restarts src and drains it into an in-memory CSC matrix.
// Columns may arrive in any order; the result is keyed by CurrentCol.
func Collect[T any](src Loader[T]) (*CSC[T], error) {
	if err := src.Restart(); err != nil {
		return nil, err
	}
	columns := make([][]Entry[T], src.Cols())
	buf := make([]Entry[T], 128)
	for src.NextCol() {
		c := src.CurrentCol()
		for {
			n, err := src.Load(buf)
			if err != nil {
				return nil, err
			}
			if n == 0 {
				break
			}
			columns[c] = append(columns[c], buf[:n]...)
		}
	}
	return FromColumns(src.Rows(), columns)
}

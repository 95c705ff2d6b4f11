// Package matrix defines the streaming contract shared by every sparse
// matrix source and sink.
//
// Loaders are purely column-major, similar to compressed-sparse-column
// layouts: entries need only be grouped by column, with each column's
// entries sorted ascending by row index. Neither global row nor column
// ordering matters beyond that contiguity. Transposition requires
// materializing all entries and is deliberately not part of the contract.
//
// To implement a new Loader:
//  1. Implement Rows and Cols to return the fixed dimensions.
//  2. Implement Load to fill the next entries from the current column;
//     it must return 0 repeatedly at the end of a column until NextCol
//     is called.
//  3. Implement NextCol to advance to the next available column.
//  4. Implement Restart to rewind the loader to the beginning.
package matrix

import "context"

// Entry is a single (row, value) pair of a sparse matrix column.
type Entry[T any] struct {
	Row uint32
	Val T
}

// Loader streams a sparse matrix column by column.
//
// The lifecycle is: Restart (optional, loaders start rewound), then
// repeat NextCol followed by Load until Load returns 0, until NextCol
// returns false. CurrentCol is only meaningful after a successful
// NextCol. A non-nil error from Load is fatal for the instance;
// recovery, if the underlying data allows any, goes through Restart.
type Loader[T any] interface {
	// Rows returns the number of rows. Valid in any state.
	Rows() uint32
	// Cols returns the number of columns. Valid in any state.
	Cols() uint32
	// Restart rewinds the loader to the beginning, discarding any
	// iteration state. Safe to call at any point, including mid-column.
	Restart() error
	// NextCol advances to the next column, returning false once no
	// columns remain.
	NextCol() bool
	// CurrentCol returns the index of the current column.
	CurrentCol() uint32
	// Load fills buf with entries from the current column and returns
	// how many were written, possibly fewer than len(buf). It returns
	// 0 with a nil error, repeatedly and without side effects, once the
	// column is exhausted.
	Load(buf []Entry[T]) (int, error)
}

// Writer persists a sparse matrix by fully draining a Loader.
type Writer[T any] interface {
	// Write drains src column by column. It polls ctx between blocks of
	// work so cancellation aborts promptly rather than after the full
	// matrix; an aborted write leaves the destination in an undefined
	// partial state.
	Write(ctx context.Context, src Loader[T]) error
}

// Dims is optionally implemented by loaders that carry row and column
// names. The second return reports whether a name exists for the index.
type Dims interface {
	RowName(i uint32) (string, bool)
	ColName(i uint32) (string, bool)
}

// RowName returns the row name from l if it implements Dims.
func RowName[T any](l Loader[T], i uint32) (string, bool) {
	if d, ok := l.(Dims); ok {
		return d.RowName(i)
	}
	return "", false
}

// ColName returns the column name from l if it implements Dims.
func ColName[T any](l Loader[T], i uint32) (string, bool) {
	if d, ok := l.(Dims); ok {
		return d.ColName(i)
	}
	return "", false
}

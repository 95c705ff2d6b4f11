package matrix

import "fmt"

// NameLengthError reports a name list whose length does not match the
// matrix dimension it labels.
type NameLengthError struct {
	Axis string // "row" or "col"
	Want uint32
	Got  int
}

func (e *NameLengthError) Error() string {
	return fmt.Sprintf("rename: %s names must be length 0 or %d, got %d", e.Axis, e.Want, e.Got)
}

// RenameDims replaces, preserves, or clears the row and column names of a
// loader while forwarding iteration unchanged.
//
// To change names, provide a name list of exactly the matching dimension.
// To preserve the inner loader's names, leave the list empty and the clear
// flag unset. To drop names entirely, use WithClearedRowNames or
// WithClearedColNames.
type RenameDims[T any] struct {
	Wrapper[T]
	rowNames      []string
	colNames      []string
	clearRowNames bool
	clearColNames bool
}

// RenameOption configures a RenameDims decorator.
type RenameOption func(*renameConfig)

type renameConfig struct {
	clearRowNames bool
	clearColNames bool
}

// WithClearedRowNames drops row names instead of renaming or preserving
// them. The row name list must then be empty.
func WithClearedRowNames() RenameOption {
	return func(c *renameConfig) { c.clearRowNames = true }
}

// WithClearedColNames drops column names instead of renaming or preserving
// them. The column name list must then be empty.
func WithClearedColNames() RenameOption {
	return func(c *renameConfig) { c.clearColNames = true }
}

// NewRenameDims wraps inner with renamed dimensions. Name lists must be
// empty or exactly match the corresponding dimension; violations fail here,
// at construction, never later during iteration.
func NewRenameDims[T any](inner Loader[T], rowNames, colNames []string, optFns ...RenameOption) (*RenameDims[T], error) {
	var cfg renameConfig
	for _, fn := range optFns {
		fn(&cfg)
	}

	if len(rowNames) > 0 && uint32(len(rowNames)) != inner.Rows() {
		return nil, &NameLengthError{Axis: "row", Want: inner.Rows(), Got: len(rowNames)}
	}
	if len(colNames) > 0 && uint32(len(colNames)) != inner.Cols() {
		return nil, &NameLengthError{Axis: "col", Want: inner.Cols(), Got: len(colNames)}
	}
	if cfg.clearRowNames && len(rowNames) != 0 {
		return nil, &NameLengthError{Axis: "row", Want: 0, Got: len(rowNames)}
	}
	if cfg.clearColNames && len(colNames) != 0 {
		return nil, &NameLengthError{Axis: "col", Want: 0, Got: len(colNames)}
	}

	return &RenameDims[T]{
		Wrapper:       Wrapper[T]{Inner: inner},
		rowNames:      rowNames,
		colNames:      colNames,
		clearRowNames: cfg.clearRowNames,
		clearColNames: cfg.clearColNames,
	}, nil
}

// RowName implements Dims.
func (r *RenameDims[T]) RowName(i uint32) (string, bool) {
	if r.clearRowNames {
		return "", false
	}
	if len(r.rowNames) == 0 {
		return RowName(r.Inner, i)
	}
	if i < uint32(len(r.rowNames)) {
		return r.rowNames[i], true
	}
	return "", false
}

// ColName implements Dims.
func (r *RenameDims[T]) ColName(i uint32) (string, bool) {
	if r.clearColNames {
		return "", false
	}
	if len(r.colNames) == 0 {
		return ColName(r.Inner, i)
	}
	if i < uint32(len(r.colNames)) {
		return r.colNames[i], true
	}
	return "", false
}

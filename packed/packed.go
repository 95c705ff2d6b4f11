// Package packed implements the bit-packed on-disk sparse matrix format:
// a concrete reader and writer for the streaming matrix contract.
//
// A packed matrix is seven integer streams:
//
//	val_data / val_idx    bit-packed values and a directory with one entry
//	                      per block: the cumulative word offset into
//	                      val_data after that block
//	row_data / row_idx    bit-packed zigzag row deltas and their directory
//	row_starts            per-block delta baseline: the last row index
//	                      before the block (0 for the first block)
//	col_ptr               cumulative entry count per column, length cols+1,
//	                      starting at 0
//	row_count             per-row entry counts, length rows, derived while
//	                      writing
//
// Blocks are a fixed 128 entries (bitpack.BlockSize) and independent of
// column boundaries: one block may span several columns. Readers keep a
// partially consumed block buffer across NextCol instead of re-decoding,
// and writers do not flush on column boundaries. A trailing partial block
// is padded; col_ptr bookkeeping guarantees padding is never read back.
//
// Because a block of width w always packs to exactly 4*w words, the
// directory streams need no explicit width field: the width of block k is
// (idx[k]-idx[k-1])/4.
//
// Entry counts are carried in uint32 streams, which caps a single packed
// matrix at 2^32-1 entries.
package packed

import (
	"errors"
	"fmt"

	"github.com/hupe1980/packmat/stream"
)

// Stream names of the packed format, used as blob names by convention.
const (
	StreamValData   = "val_data"
	StreamValIdx    = "val_idx"
	StreamRowData   = "row_data"
	StreamRowStarts = "row_starts"
	StreamRowIdx    = "row_idx"
	StreamColPtr    = "col_ptr"
	StreamRowCount  = "row_count"
)

// StreamNames lists all seven stream names.
func StreamNames() []string {
	return []string{
		StreamValData, StreamValIdx,
		StreamRowData, StreamRowStarts, StreamRowIdx,
		StreamColPtr, StreamRowCount,
	}
}

// ErrMissingStream is returned when a reader or writer is constructed
// without all seven streams.
var ErrMissingStream = errors.New("packed: missing stream")

// ErrColumnOrder is returned by the writer when a source loader yields
// columns out of ascending order.
var ErrColumnOrder = errors.New("packed: source columns must be ascending")

// ErrTooLarge is returned when a matrix exceeds the format's entry limit.
var ErrTooLarge = errors.New("packed: matrix exceeds 2^32-1 entries")

// FormatError reports an inconsistency between the directory streams and
// the decodable data, such as col_ptr promising more entries than the data
// streams hold. It is fatal for the reader instance that surfaced it.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type FormatError struct {
	Stream string
	Reason string
	cause  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("packed: %s: %s", e.Stream, e.Reason)
}

func (e *FormatError) Unwrap() error { return e.cause }

// ReadStreams bundles the seven streams a Reader decodes from.
type ReadStreams struct {
	ValData   stream.Reader
	ValIdx    stream.Reader
	RowData   stream.Reader
	RowStarts stream.Reader
	RowIdx    stream.Reader
	ColPtr    stream.Reader
	RowCount  stream.Reader
}

func (s *ReadStreams) validate() error {
	if s.ValData == nil || s.ValIdx == nil || s.RowData == nil ||
		s.RowStarts == nil || s.RowIdx == nil || s.ColPtr == nil || s.RowCount == nil {
		return ErrMissingStream
	}
	return nil
}

func (s *ReadStreams) all() []stream.Reader {
	return []stream.Reader{s.ValData, s.ValIdx, s.RowData, s.RowStarts, s.RowIdx, s.ColPtr, s.RowCount}
}

// WriteStreams bundles the seven streams a Writer encodes into.
type WriteStreams struct {
	ValData   stream.Writer
	ValIdx    stream.Writer
	RowData   stream.Writer
	RowStarts stream.Writer
	RowIdx    stream.Writer
	ColPtr    stream.Writer
	RowCount  stream.Writer
}

func (s *WriteStreams) validate() error {
	if s.ValData == nil || s.ValIdx == nil || s.RowData == nil ||
		s.RowStarts == nil || s.RowIdx == nil || s.ColPtr == nil || s.RowCount == nil {
		return ErrMissingStream
	}
	return nil
}

func (s *WriteStreams) all() []stream.Writer {
	return []stream.Writer{s.ValData, s.ValIdx, s.RowData, s.RowStarts, s.RowIdx, s.ColPtr, s.RowCount}
}

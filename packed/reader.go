package packed

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/packmat/bitpack"
	"github.com/hupe1980/packmat/matrix"
	"github.com/hupe1980/packmat/stream"
)

// unstartedCol marks a reader positioned before its first column.
const unstartedCol = math.MaxUint32

// Reader decodes a packed matrix and implements matrix.Loader[uint32].
//
// The reader owns two 128-entry decode buffers that are retained across
// column boundaries: when a column ends mid-block, the next column's first
// Load resumes from the same buffer without re-decoding. All decode state
// is private to the instance; concurrent use requires separate readers
// over independently rewindable streams.
type Reader struct {
	s          ReadStreams
	rows, cols uint32

	colPtr []uint32 // loaded on restart, length cols+1

	rowBuf  [bitpack.BlockSize]uint32
	valBuf  [bitpack.BlockSize]uint32
	packBuf [bitpack.BlockSize]uint32

	curIdx       int // next unread slot in rowBuf/valBuf, BlockSize when drained
	prevValIdx   uint32
	prevRowIdx   uint32
	curCol       uint32
	colRemaining uint32
	skip         uint32 // entries abandoned by NextCol before column exhaustion

	err error // sticky decode error, cleared only by Restart

	rowCounts []uint32
}

// NewReader constructs a Reader over the given streams and positions it at
// the beginning. Dimensions come from the caller (typically a manifest);
// col_ptr is validated against them immediately.
func NewReader(rows, cols uint32, s ReadStreams) (*Reader, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	r := &Reader{s: s, rows: rows, cols: cols}
	if err := r.Restart(); err != nil {
		return nil, err
	}
	return r, nil
}

// Rows implements matrix.Loader.
func (r *Reader) Rows() uint32 { return r.rows }

// Cols implements matrix.Loader.
func (r *Reader) Cols() uint32 { return r.cols }

// Restart implements matrix.Loader. It rewinds all streams, reloads the
// column directory and invalidates the decode buffers.
func (r *Reader) Restart() error {
	for _, s := range r.s.all() {
		if err := s.Rewind(); err != nil {
			return fmt.Errorf("packed: rewind: %w", err)
		}
	}

	colPtr := make([]uint32, r.cols+1)
	if err := stream.ReadFull(r.s.ColPtr, colPtr); err != nil {
		return &FormatError{Stream: StreamColPtr, Reason: fmt.Sprintf("want %d entries", r.cols+1), cause: err}
	}
	if colPtr[0] != 0 {
		return &FormatError{Stream: StreamColPtr, Reason: "must start at 0"}
	}
	for c := uint32(0); c < r.cols; c++ {
		if colPtr[c+1] < colPtr[c] {
			return &FormatError{Stream: StreamColPtr, Reason: fmt.Sprintf("not monotone at column %d", c)}
		}
	}

	r.colPtr = colPtr
	r.curIdx = bitpack.BlockSize
	r.prevValIdx = 0
	r.prevRowIdx = 0
	r.curCol = unstartedCol
	r.colRemaining = 0
	r.skip = 0
	r.err = nil
	return nil
}

// NextCol implements matrix.Loader. It only does pointer arithmetic;
// decoding is deferred to Load. Entries of the previous column that were
// never loaded are skipped lazily on the next Load.
func (r *Reader) NextCol() bool {
	if r.err != nil {
		return false
	}
	next := r.curCol + 1 // wraps to 0 when unstarted
	if next >= r.cols {
		return false
	}
	r.skip += r.colRemaining
	r.curCol = next
	r.colRemaining = r.colPtr[next+1] - r.colPtr[next]
	return true
}

// CurrentCol implements matrix.Loader.
func (r *Reader) CurrentCol() uint32 { return r.curCol }

// Load implements matrix.Loader.
func (r *Reader) Load(buf []matrix.Entry[uint32]) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.curCol >= r.cols {
		return 0, nil
	}

	for r.skip > 0 {
		if r.curIdx == bitpack.BlockSize {
			if err := r.decodeBlock(); err != nil {
				r.err = err
				return 0, err
			}
		}
		n := min(int(r.skip), bitpack.BlockSize-r.curIdx)
		r.curIdx += n
		r.skip -= uint32(n)
	}

	total := 0
	for total < len(buf) && r.colRemaining > 0 {
		if r.curIdx == bitpack.BlockSize {
			if err := r.decodeBlock(); err != nil {
				r.err = err
				return total, err
			}
		}
		n := min(len(buf)-total, int(r.colRemaining), bitpack.BlockSize-r.curIdx)
		for i := 0; i < n; i++ {
			buf[total+i] = matrix.Entry[uint32]{Row: r.rowBuf[r.curIdx+i], Val: r.valBuf[r.curIdx+i]}
		}
		r.curIdx += n
		total += n
		r.colRemaining -= uint32(n)
	}
	return total, nil
}

// decodeBlock reads one directory entry per data stream, decodes the next
// 128-entry block into the value and row buffers and resets the cursor.
func (r *Reader) decodeBlock() error {
	valWidth, err := r.nextWidth(r.s.ValIdx, &r.prevValIdx, StreamValIdx)
	if err != nil {
		return err
	}
	if err := r.readBlock(r.s.ValData, valWidth, r.valBuf[:], StreamValData); err != nil {
		return err
	}

	rowWidth, err := r.nextWidth(r.s.RowIdx, &r.prevRowIdx, StreamRowIdx)
	if err != nil {
		return err
	}
	base, err := stream.ReadOne(r.s.RowStarts)
	if err != nil {
		return &FormatError{Stream: StreamRowStarts, Reason: "missing block baseline", cause: err}
	}
	if err := r.readBlock(r.s.RowData, rowWidth, r.rowBuf[:], StreamRowData); err != nil {
		return err
	}
	bitpack.DeltaDecode(r.rowBuf[:], base)

	r.curIdx = 0
	return nil
}

// nextWidth consumes one directory entry and derives the block's bit width
// from the cumulative word offset step.
func (r *Reader) nextWidth(s stream.Reader, prev *uint32, name string) (uint8, error) {
	idx, err := stream.ReadOne(s)
	if err != nil {
		return 0, &FormatError{Stream: name, Reason: "col_ptr promises more entries than are decodable", cause: err}
	}
	words := idx - *prev // wraps for non-monotone input, caught below
	if words%4 != 0 || words/4 > 32 {
		return 0, &FormatError{Stream: name, Reason: fmt.Sprintf("invalid directory step %d", words)}
	}
	*prev = idx
	return uint8(words / 4), nil
}

func (r *Reader) readBlock(s stream.Reader, width uint8, dst []uint32, name string) error {
	words := bitpack.WordCount(width)
	if err := stream.ReadFull(s, r.packBuf[:words]); err != nil {
		return &FormatError{Stream: name, Reason: "truncated block", cause: err}
	}
	if err := bitpack.UnpackInto(r.packBuf[:words], width, dst); err != nil {
		return &FormatError{Stream: name, Reason: "unpack failed", cause: err}
	}
	return nil
}

// RowCounts returns the derived per-row entry counts (the row_count
// stream), length Rows. The result is cached after the first call.
func (r *Reader) RowCounts() ([]uint32, error) {
	if r.rowCounts != nil {
		return r.rowCounts, nil
	}
	if err := r.s.RowCount.Rewind(); err != nil {
		return nil, fmt.Errorf("packed: rewind: %w", err)
	}
	counts := make([]uint32, r.rows)
	if err := stream.ReadFull(r.s.RowCount, counts); err != nil {
		return nil, &FormatError{Stream: StreamRowCount, Reason: fmt.Sprintf("want %d entries", r.rows), cause: err}
	}
	r.rowCounts = counts
	return counts, nil
}

// OccupiedRows returns the set of rows holding at least one entry, derived
// from the row_count stream without touching the data streams.
func (r *Reader) OccupiedRows() (*roaring.Bitmap, error) {
	counts, err := r.RowCounts()
	if err != nil {
		return nil, err
	}
	occupied := roaring.New()
	for row, c := range counts {
		if c > 0 {
			occupied.Add(uint32(row))
		}
	}
	return occupied, nil
}

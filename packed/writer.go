package packed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/packmat/bitpack"
	"github.com/hupe1980/packmat/matrix"
	"github.com/hupe1980/packmat/rowindex"
	"github.com/hupe1980/packmat/stream"
)

// Writer serializes any matrix.Loader[uint32] into the packed format.
// A Writer is single-use: Write finalizes all seven streams on success.
type Writer struct {
	s      WriteStreams
	logger *slog.Logger

	rowBuf  [bitpack.BlockSize]uint32
	valBuf  [bitpack.BlockSize]uint32
	packBuf [bitpack.BlockSize]uint32

	n        int    // entries buffered in rowBuf/valBuf
	lastRow  uint32 // delta chain tail, baseline for the next block
	valWords uint32 // cumulative word offsets, mirrored into the directories
	rowWords uint32
	blocks   uint64
	total    uint64

	tally *rowindex.Tally
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithLogger sets the logger used for progress reporting.
func WithLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWriter constructs a Writer over the given streams.
func NewWriter(s WriteStreams, optFns ...WriterOption) (*Writer, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	w := &Writer{
		s:      s,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range optFns {
		fn(w)
	}
	return w, nil
}

// Write implements matrix.Writer[uint32]. It restarts src, drains it
// column by column and finalizes the streams. Cancellation is polled at
// least once per block of entries, so an interrupted write aborts after at
// most roughly one block of extra work; the destination streams are then
// in an undefined partial state and must be discarded.
//
// Sources must yield columns in ascending order but may skip empty ones;
// skipped columns get their col_ptr entries regardless.
func (w *Writer) Write(ctx context.Context, src matrix.Loader[uint32]) error {
	if err := src.Restart(); err != nil {
		return fmt.Errorf("packed: restart source: %w", err)
	}
	w.reset(src.Rows())

	if err := stream.WriteOne(w.s.ColPtr, 0); err != nil {
		return err
	}

	cols := int64(src.Cols())
	last := int64(-1)
	buf := make([]matrix.Entry[uint32], bitpack.BlockSize)

	for src.NextCol() {
		col := int64(src.CurrentCol())
		if col <= last || col >= cols {
			return ErrColumnOrder
		}
		for j := last + 1; j < col; j++ {
			if err := stream.WriteOne(w.s.ColPtr, uint32(w.total)); err != nil {
				return err
			}
		}

		for {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("packed: write interrupted: %w", err)
			}
			n, err := src.Load(buf)
			if err != nil {
				return fmt.Errorf("packed: load source: %w", err)
			}
			if n == 0 {
				break
			}
			if err := w.append(buf[:n]); err != nil {
				return err
			}
		}

		if err := stream.WriteOne(w.s.ColPtr, uint32(w.total)); err != nil {
			return err
		}
		last = col
	}

	for j := last + 1; j < cols; j++ {
		if err := stream.WriteOne(w.s.ColPtr, uint32(w.total)); err != nil {
			return err
		}
	}

	if w.n > 0 {
		if err := w.flushBlock(); err != nil {
			return err
		}
	}
	if err := w.s.RowCount.Write(w.tally.Counts()); err != nil {
		return err
	}
	if err := w.closeStreams(ctx); err != nil {
		return err
	}

	w.logger.Debug("packed matrix written",
		"rows", src.Rows(),
		"cols", src.Cols(),
		"entries", w.total,
		"blocks", w.blocks,
		"occupied_rows", w.tally.OccupiedRows(),
	)
	return nil
}

// Total returns the number of entries written by the last Write.
func (w *Writer) Total() uint64 { return w.total }

// Tally returns the row index derived during the last Write.
func (w *Writer) Tally() *rowindex.Tally { return w.tally }

func (w *Writer) reset(rows uint32) {
	w.n = 0
	w.lastRow = 0
	w.valWords = 0
	w.rowWords = 0
	w.blocks = 0
	w.total = 0
	w.tally = rowindex.NewTally(rows)
}

func (w *Writer) append(entries []matrix.Entry[uint32]) error {
	for _, e := range entries {
		if err := w.tally.Add(e.Row); err != nil {
			return err
		}
		if w.total == math.MaxUint32 {
			return ErrTooLarge
		}
		w.rowBuf[w.n] = e.Row
		w.valBuf[w.n] = e.Val
		w.n++
		w.total++
		if w.n == bitpack.BlockSize {
			if err := w.flushBlock(); err != nil {
				return err
			}
		}
	}
	return nil
}

// flushBlock encodes the buffered entries as one block. A partial trailing
// block is padded with the last row index (delta 0) and zero values;
// col_ptr bookkeeping guarantees padding is never read back.
func (w *Writer) flushBlock() error {
	pad := w.rowBuf[w.n-1]
	for i := w.n; i < bitpack.BlockSize; i++ {
		w.rowBuf[i] = pad
		w.valBuf[i] = 0
	}
	base := w.lastRow
	w.lastRow = w.rowBuf[bitpack.BlockSize-1]

	_, words, err := bitpack.PackInto(w.valBuf[:], w.packBuf[:])
	if err != nil {
		return err
	}
	w.valWords += uint32(words)
	if err := w.s.ValData.Write(w.packBuf[:words]); err != nil {
		return err
	}
	if err := stream.WriteOne(w.s.ValIdx, w.valWords); err != nil {
		return err
	}

	bitpack.DeltaEncode(w.rowBuf[:], base)
	_, words, err = bitpack.PackInto(w.rowBuf[:], w.packBuf[:])
	if err != nil {
		return err
	}
	w.rowWords += uint32(words)
	if err := stream.WriteOne(w.s.RowStarts, base); err != nil {
		return err
	}
	if err := w.s.RowData.Write(w.packBuf[:words]); err != nil {
		return err
	}
	if err := stream.WriteOne(w.s.RowIdx, w.rowWords); err != nil {
		return err
	}

	w.blocks++
	w.n = 0
	return nil
}

// closeStreams finalizes the seven streams. Closing does the actual
// persistence for blob-backed streams, so it fans out.
func (w *Writer) closeStreams(ctx context.Context) error {
	g, _ := errgroup.WithContext(ctx)
	for _, s := range w.s.all() {
		g.Go(s.Close)
	}
	return g.Wait()
}

package stream

import "io"

// SliceReader serves values from an in-memory slice.
type SliceReader struct {
	values []uint32
	off    int
}

// NewSliceReader returns a Reader over values. The slice is not copied;
// callers must not mutate it while reading.
func NewSliceReader(values []uint32) *SliceReader {
	return &SliceReader{values: values}
}

// Read implements Reader.
func (r *SliceReader) Read(p []uint32) (int, error) {
	if r.off >= len(r.values) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, r.values[r.off:])
	r.off += n
	return n, nil
}

// Rewind implements Reader.
func (r *SliceReader) Rewind() error {
	r.off = 0
	return nil
}

// SliceWriter accumulates written values in memory.
type SliceWriter struct {
	values []uint32
	closed bool
}

// NewSliceWriter returns an empty in-memory Writer.
func NewSliceWriter() *SliceWriter {
	return &SliceWriter{}
}

// Write implements Writer.
func (w *SliceWriter) Write(p []uint32) error {
	if w.closed {
		return ErrClosed
	}
	w.values = append(w.values, p...)
	return nil
}

// Close implements Writer.
func (w *SliceWriter) Close() error {
	w.closed = true
	return nil
}

// Values returns everything written so far.
func (w *SliceWriter) Values() []uint32 {
	return w.values
}

// Reader returns a SliceReader over the written values.
func (w *SliceWriter) Reader() *SliceReader {
	return NewSliceReader(w.values)
}

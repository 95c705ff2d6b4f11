// Package stream provides sequential readers and writers over unsigned
// 32-bit integer sequences, the transport the packed matrix format is built
// on. Each packed matrix consists of several independent streams; how a
// stream is persisted (raw, zstd, lz4) is a property of the stream, not of
// the matrix format.
package stream

import "io"

// Reader is a sequential source of uint32 values.
type Reader interface {
	// Read fills p with the next values and returns how many were read.
	// It returns fewer than len(p) only at end of stream; once the stream
	// is exhausted it returns 0, io.EOF.
	Read(p []uint32) (int, error)
	// Rewind repositions the reader at the first value.
	Rewind() error
}

// Writer is a sequential sink of uint32 values.
type Writer interface {
	Write(p []uint32) error
	// Close finalizes the stream. No writes may follow.
	Close() error
}

// ReadFull reads exactly len(p) values from r. It returns
// io.ErrUnexpectedEOF if the stream ends first.
func ReadFull(r Reader, p []uint32) error {
	for len(p) > 0 {
		n, err := r.Read(p)
		p = p[n:]
		if err != nil {
			if err == io.EOF && len(p) > 0 {
				err = io.ErrUnexpectedEOF
			}
			if len(p) == 0 {
				return nil
			}
			return err
		}
		if n == 0 {
			return io.ErrUnexpectedEOF
		}
	}
	return nil
}

// ReadOne reads a single value from r.
func ReadOne(r Reader) (uint32, error) {
	var one [1]uint32
	if err := ReadFull(r, one[:]); err != nil {
		return 0, err
	}
	return one[0], nil
}

// WriteOne writes a single value to w.
func WriteOne(w Writer, v uint32) error {
	return w.Write([]uint32{v})
}

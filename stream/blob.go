package stream

import (
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/packmat/blobstore"
)

// OpenBlob opens the named blob and returns a Reader over its uint32
// payload. The whole payload is decoded up front; packed streams are small
// relative to the matrices they index, and Rewind then costs nothing.
func OpenBlob(store blobstore.Store, name string, comp Compression) (*SliceReader, error) {
	blob, err := store.Open(name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	data, err := blobstore.ReadAll(blob)
	if err != nil {
		return nil, fmt.Errorf("stream: read %s: %w", name, err)
	}
	raw, err := decompress(comp, data)
	if err != nil {
		return nil, fmt.Errorf("stream: decode %s: %w", name, err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("stream: decode %s: %w", name, ErrCorrupt)
	}
	values := make([]uint32, len(raw)/4)
	for i := range values {
		values[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return NewSliceReader(values), nil
}

// BlobWriter stages values in memory and persists them as a single blob on
// Close, so the underlying store only ever sees complete streams.
type BlobWriter struct {
	store  blobstore.Store
	name   string
	comp   Compression
	values []uint32
	closed bool
}

// NewBlobWriter returns a Writer that will persist to the named blob.
func NewBlobWriter(store blobstore.Store, name string, comp Compression) *BlobWriter {
	return &BlobWriter{store: store, name: name, comp: comp}
}

// Write implements Writer.
func (w *BlobWriter) Write(p []uint32) error {
	if w.closed {
		return ErrClosed
	}
	w.values = append(w.values, p...)
	return nil
}

// Close encodes the staged values and puts the blob. It is not idempotent;
// a second Close returns ErrClosed.
func (w *BlobWriter) Close() error {
	if w.closed {
		return ErrClosed
	}
	w.closed = true

	raw := make([]byte, len(w.values)*4)
	for i, v := range w.values {
		binary.LittleEndian.PutUint32(raw[i*4:], v)
	}
	data, err := compress(w.comp, raw)
	if err != nil {
		return fmt.Errorf("stream: encode %s: %w", w.name, err)
	}
	if err := w.store.Put(w.name, data); err != nil {
		return fmt.Errorf("stream: put %s: %w", w.name, err)
	}
	return nil
}

// Package blobstore abstracts the storage backend holding the packed
// integer streams. A packed matrix is a handful of small immutable blobs;
// stores only need whole-blob reads and atomic whole-blob writes.
package blobstore

import (
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for accessing immutable data blobs.
type Store interface {
	// Open opens a blob for reading.
	Open(name string) (Blob, error)
	// Put writes a blob atomically, replacing any previous content.
	Put(name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(name string) error
	// List returns the names of all blobs with the given prefix.
	List(prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	io.ReaderAt
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// ReadAll reads the full contents of a blob.
func ReadAll(b Blob) ([]byte, error) {
	data := make([]byte, b.Size())
	if len(data) == 0 {
		return data, nil
	}
	n, err := b.ReadAt(data, 0)
	if err == io.EOF && n == len(data) {
		err = nil
	}
	return data[:n], err
}

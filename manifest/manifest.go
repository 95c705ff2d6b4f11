// Package manifest persists the metadata a packed matrix cannot carry in
// its integer streams: dimensions, entry count, compression and codec.
// The manifest is written last, so a readable manifest implies complete
// streams.
package manifest

import (
	"errors"
	"fmt"

	"github.com/hupe1980/packmat/blobstore"
	"github.com/hupe1980/packmat/codec"
)

const (
	// FileName is the blob name of the manifest.
	FileName = "MANIFEST"
	// CurrentVersion is the packed format version written by this library.
	CurrentVersion = 1
)

// ErrVersion is returned when a manifest was written by an unknown format
// version.
var ErrVersion = errors.New("manifest: unsupported version")

// Manifest describes one packed matrix.
type Manifest struct {
	Version     int    `json:"version"`
	Rows        uint32 `json:"rows"`
	Cols        uint32 `json:"cols"`
	Entries     uint64 `json:"entries"`
	Compression string `json:"compression"`
	Codec       string `json:"codec"`
}

// Save writes the manifest blob.
func Save(store blobstore.Store, c codec.Codec, m *Manifest) error {
	if c == nil {
		c = codec.Default
	}
	m.Codec = c.Name()
	data, err := c.Marshal(m)
	if err != nil {
		return fmt.Errorf("manifest: marshal: %w", err)
	}
	if err := store.Put(FileName, data); err != nil {
		return fmt.Errorf("manifest: put: %w", err)
	}
	return nil
}

// Load reads and validates the manifest blob. The codec recorded in the
// manifest must match the one used to decode it; c defaults to
// codec.Default.
func Load(store blobstore.Store, c codec.Codec) (*Manifest, error) {
	if c == nil {
		c = codec.Default
	}
	blob, err := store.Open(FileName)
	if err != nil {
		return nil, fmt.Errorf("manifest: open: %w", err)
	}
	defer blob.Close()

	data, err := blobstore.ReadAll(blob)
	if err != nil {
		return nil, fmt.Errorf("manifest: read: %w", err)
	}

	var m Manifest
	if err := c.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: unmarshal: %w", err)
	}
	if m.Version != CurrentVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, m.Version)
	}
	if m.Codec != c.Name() {
		return nil, fmt.Errorf("manifest: written with codec %q, loading with %q", m.Codec, c.Name())
	}
	return &m, nil
}

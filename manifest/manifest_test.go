package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/packmat/blobstore"
	"github.com/hupe1980/packmat/codec"
)

func TestSaveLoad(t *testing.T) {
	store := blobstore.NewMemoryStore()

	m := &Manifest{
		Version:     CurrentVersion,
		Rows:        1000,
		Cols:        50,
		Entries:     4096,
		Compression: "zstd",
	}
	require.NoError(t, Save(store, nil, m))
	assert.Equal(t, "json", m.Codec)

	got, err := Load(store, nil)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(blobstore.NewMemoryStore(), nil)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestLoad_BadVersion(t *testing.T) {
	store := blobstore.NewMemoryStore()
	data := codec.MustMarshal(nil, &Manifest{Version: 99, Codec: "json"})
	require.NoError(t, store.Put(FileName, data))

	_, err := Load(store, nil)
	assert.ErrorIs(t, err, ErrVersion)
}

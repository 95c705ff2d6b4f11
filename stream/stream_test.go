package stream

import (
	"io"
	"testing"

	"github.com/hupe1980/packmat/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceReader(t *testing.T) {
	r := NewSliceReader([]uint32{1, 2, 3, 4, 5})

	buf := make([]uint32, 2)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []uint32{1, 2}, buf)

	buf = make([]uint32, 10)
	n, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []uint32{3, 4, 5}, buf[:n])

	_, err = r.Read(buf)
	assert.ErrorIs(t, err, io.EOF)

	require.NoError(t, r.Rewind())
	v, err := ReadOne(r)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v)
}

func TestReadFull(t *testing.T) {
	r := NewSliceReader([]uint32{1, 2, 3})

	buf := make([]uint32, 3)
	require.NoError(t, ReadFull(r, buf))
	assert.Equal(t, []uint32{1, 2, 3}, buf)

	err := ReadFull(r, make([]uint32, 1))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	require.NoError(t, r.Rewind())
	err = ReadFull(r, make([]uint32, 4))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestSliceWriter(t *testing.T) {
	w := NewSliceWriter()
	require.NoError(t, w.Write([]uint32{1, 2}))
	require.NoError(t, WriteOne(w, 3))
	require.NoError(t, w.Close())
	assert.Equal(t, []uint32{1, 2, 3}, w.Values())

	assert.ErrorIs(t, w.Write([]uint32{4}), ErrClosed)
}

func TestCompressionByName(t *testing.T) {
	for _, c := range []Compression{None, Zstd, LZ4} {
		got, ok := CompressionByName(c.String())
		require.True(t, ok, c.String())
		assert.Equal(t, c, got)
	}
	_, ok := CompressionByName("brotli")
	assert.False(t, ok)
}

func TestCompressRoundTrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		{1},
		[]byte("the quick brown fox jumps over the lazy dog"),
		make([]byte, 4096), // zeros, highly compressible
	}
	for _, c := range []Compression{None, Zstd, LZ4} {
		for i, raw := range payloads {
			data, err := compress(c, raw)
			require.NoError(t, err, "%s payload %d", c, i)
			out, err := decompress(c, data)
			require.NoError(t, err, "%s payload %d", c, i)
			assert.Equal(t, len(raw), len(out), "%s payload %d", c, i)
			if len(raw) > 0 {
				assert.Equal(t, raw, out, "%s payload %d", c, i)
			}
		}
	}
}

func TestBlobRoundTrip(t *testing.T) {
	values := make([]uint32, 1000)
	for i := range values {
		values[i] = uint32(i * i)
	}

	for _, c := range []Compression{None, Zstd, LZ4} {
		t.Run(c.String(), func(t *testing.T) {
			store := blobstore.NewMemoryStore()

			w := NewBlobWriter(store, "vals", c)
			require.NoError(t, w.Write(values[:500]))
			require.NoError(t, w.Write(values[500:]))
			require.NoError(t, w.Close())
			assert.ErrorIs(t, w.Close(), ErrClosed)

			r, err := OpenBlob(store, "vals", c)
			require.NoError(t, err)

			got := make([]uint32, len(values))
			require.NoError(t, ReadFull(r, got))
			assert.Equal(t, values, got)
			_, err = ReadOne(r)
			assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

			require.NoError(t, r.Rewind())
			require.NoError(t, ReadFull(r, got))
			assert.Equal(t, values, got)
		})
	}
}

func TestOpenBlob_Missing(t *testing.T) {
	store := blobstore.NewMemoryStore()
	_, err := OpenBlob(store, "nope", None)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestOpenBlob_Corrupt(t *testing.T) {
	store := blobstore.NewMemoryStore()

	// Raw payload whose length is not a multiple of 4.
	require.NoError(t, store.Put("bad", []byte{1, 2, 3}))
	_, err := OpenBlob(store, "bad", None)
	assert.ErrorIs(t, err, ErrCorrupt)

	// Garbage zstd frame.
	require.NoError(t, store.Put("badz", []byte{0, 0, 0, 9, 1, 2, 3, 4, 5}))
	_, err = OpenBlob(store, "badz", Zstd)
	assert.ErrorIs(t, err, ErrCorrupt)
}

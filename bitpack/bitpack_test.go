package bitpack

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidth(t *testing.T) {
	tests := []struct {
		name   string
		values []uint32
		want   uint8
	}{
		{"all zero", make([]uint32, BlockSize), 0},
		{"one", []uint32{1}, 1},
		{"seven", []uint32{7}, 3},
		{"eight", []uint32{8}, 4},
		{"max uint32", []uint32{^uint32(0)}, 32},
		{"mixed", []uint32{0, 1, 255, 3}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Width(tt.values))
		})
	}
}

func TestPackUnpack_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	var packBuf [BlockSize]uint32
	var out [BlockSize]uint32

	for width := 0; width <= 32; width++ {
		src := make([]uint32, BlockSize)
		if width > 0 {
			// Force at least one value at the full width so the chosen
			// width matches the loop variable.
			hi := uint32(1) << (width - 1)
			limit := uint64(1) << width
			for i := range src {
				src[i] = uint32(rng.Uint64() % limit)
			}
			src[rng.Intn(BlockSize)] |= hi
		}

		w, words, err := PackInto(src, packBuf[:])
		require.NoError(t, err, "width %d", width)
		require.Equal(t, uint8(width), w, "width %d", width)
		require.Equal(t, WordCount(w), words)

		require.NoError(t, UnpackInto(packBuf[:words], w, out[:]))
		require.Equal(t, src, out[:], "width %d", width)
	}
}

func TestPackUnpack_AllZero(t *testing.T) {
	src := make([]uint32, BlockSize)
	var packBuf [BlockSize]uint32

	w, words, err := PackInto(src, packBuf[:])
	require.NoError(t, err)
	assert.Equal(t, uint8(0), w)
	assert.Equal(t, 0, words)

	out := make([]uint32, BlockSize)
	for i := range out {
		out[i] = 7 // must be overwritten
	}
	require.NoError(t, UnpackInto(nil, 0, out))
	assert.Equal(t, src, out)
}

func TestPackUnpack_MaxUint32(t *testing.T) {
	src := make([]uint32, BlockSize)
	for i := range src {
		src[i] = ^uint32(0)
	}
	var packBuf [BlockSize]uint32

	w, words, err := PackInto(src, packBuf[:])
	require.NoError(t, err)
	assert.Equal(t, uint8(32), w)
	assert.Equal(t, BlockSize, words)

	out := make([]uint32, BlockSize)
	require.NoError(t, UnpackInto(packBuf[:words], w, out))
	assert.Equal(t, src, out)
}

func TestPackInto_Deterministic(t *testing.T) {
	src := make([]uint32, BlockSize)
	for i := range src {
		src[i] = uint32(i * 31)
	}
	var a, b [BlockSize]uint32

	w1, n1, err := PackInto(src, a[:])
	require.NoError(t, err)
	w2, n2, err := PackInto(src, b[:])
	require.NoError(t, err)

	assert.Equal(t, w1, w2)
	assert.Equal(t, n1, n2)
	assert.Equal(t, a[:n1], b[:n2])
}

func TestPackInto_RejectsPartialBlock(t *testing.T) {
	var packBuf [BlockSize]uint32
	for _, n := range []int{0, 1, 127, 129} {
		_, _, err := PackInto(make([]uint32, n), packBuf[:])
		assert.ErrorIs(t, err, ErrBlockSize, "length %d", n)
	}
}

func TestUnpackInto_Errors(t *testing.T) {
	out := make([]uint32, BlockSize)

	err := UnpackInto(make([]uint32, 4), 33, out)
	assert.ErrorIs(t, err, ErrWidth)

	err = UnpackInto(make([]uint32, 3), 1, out)
	assert.ErrorIs(t, err, ErrTruncated)

	err = UnpackInto(nil, 1, make([]uint32, 10))
	assert.ErrorIs(t, err, ErrBlockSize)
}

func TestDelta_RoundTripAscending(t *testing.T) {
	src := make([]uint32, BlockSize)
	v := uint32(3)
	for i := range src {
		v += uint32(i % 5)
		src[i] = v
	}
	orig := append([]uint32(nil), src...)

	DeltaEncode(src, 0)
	// Ascending input means small zigzag deltas.
	assert.Less(t, int(Width(src)), 8)
	DeltaDecode(src, 0)
	assert.Equal(t, orig, src)
}

func TestDelta_RoundTripColumnBoundaryDrop(t *testing.T) {
	// Two ascending runs with a drop in the middle, as happens when a
	// block spans two columns.
	src := make([]uint32, BlockSize)
	for i := 0; i < 64; i++ {
		src[i] = 1000000 + uint32(i)
	}
	for i := 64; i < BlockSize; i++ {
		src[i] = uint32(i - 64)
	}
	orig := append([]uint32(nil), src...)

	DeltaEncode(src, 42)
	DeltaDecode(src, 42)
	assert.Equal(t, orig, src)
}

func TestDelta_RoundTripExtremes(t *testing.T) {
	src := []uint32{0, ^uint32(0), 0, ^uint32(0), 5, 4, 3}
	orig := append([]uint32(nil), src...)

	DeltaEncode(src, ^uint32(0))
	DeltaDecode(src, ^uint32(0))
	assert.Equal(t, orig, src)
}

func BenchmarkPackInto(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	src := make([]uint32, BlockSize)
	for i := range src {
		src[i] = uint32(rng.Intn(1 << 12))
	}
	var dst [BlockSize]uint32

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, _, err := PackInto(src, dst[:]); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUnpackInto(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	src := make([]uint32, BlockSize)
	for i := range src {
		src[i] = uint32(rng.Intn(1 << 12))
	}
	var packBuf, out [BlockSize]uint32
	w, words, err := PackInto(src, packBuf[:])
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := UnpackInto(packBuf[:words], w, out[:]); err != nil {
			b.Fatal(err)
		}
	}
}

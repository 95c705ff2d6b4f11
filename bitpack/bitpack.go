// Package bitpack implements the fixed-size block codec used by the packed
// sparse-matrix format.
//
// The codec operates on blocks of exactly 128 unsigned 32-bit integers. Each
// block is packed at the minimal bit width sufficient for its largest value;
// the width is not stored in the block itself but carried by the caller
// (the packed format derives it from its directory streams). Ascending
// sequences such as row indices are first rewritten as zigzag deltas from a
// chained baseline, which keeps magnitudes small even when a block spans a
// column boundary and the sequence drops.
//
// All functions are pure and allocation-free; callers own the buffers.
package bitpack

import (
	"errors"
	"math/bits"
)

// BlockSize is the fixed number of integers per block.
const BlockSize = 128

// wordsPerBit is how many packed uint32 words one bit of width costs
// for a full block (128/32).
const wordsPerBit = BlockSize / 32

// ErrBlockSize is returned when the input is not exactly BlockSize values.
// The codec has no notion of partial blocks; padding is the caller's job.
var ErrBlockSize = errors.New("bitpack: block must contain exactly 128 values")

// ErrTruncated is returned when a packed payload is shorter than the
// declared bit width requires.
var ErrTruncated = errors.New("bitpack: packed block truncated")

// ErrWidth is returned for bit widths outside 0..32.
var ErrWidth = errors.New("bitpack: bit width out of range")

// Width returns the minimal bit width that can represent every value.
func Width(values []uint32) uint8 {
	var maxVal uint32
	for _, v := range values {
		maxVal |= v
	}
	return uint8(bits.Len32(maxVal))
}

// WordCount returns the number of packed uint32 words a full block
// occupies at the given bit width.
func WordCount(width uint8) int {
	return wordsPerBit * int(width)
}

// PackInto packs the BlockSize values of src into dst at the minimal bit
// width and returns that width and the number of words written. dst must
// have room for WordCount(32) words in the worst case; a
// [BlockSize]uint32-backed slice always suffices. At width 0 nothing is
// written.
func PackInto(src, dst []uint32) (width uint8, words int, err error) {
	if len(src) != BlockSize {
		return 0, 0, ErrBlockSize
	}
	width = Width(src)
	words = WordCount(width)
	if width == 0 {
		return 0, 0, nil
	}
	if len(dst) < words {
		return 0, 0, ErrTruncated
	}
	for i := range dst[:words] {
		dst[i] = 0
	}
	w := int(width)
	bit := 0
	for _, v := range src {
		word, off := bit>>5, bit&31
		dst[word] |= v << off
		if off+w > 32 {
			dst[word+1] = v >> (32 - off)
		}
		bit += w
	}
	return width, words, nil
}

// UnpackInto decodes BlockSize values packed at the given width from src
// into dst. dst must be exactly BlockSize long.
func UnpackInto(src []uint32, width uint8, dst []uint32) error {
	if len(dst) != BlockSize {
		return ErrBlockSize
	}
	if width > 32 {
		return ErrWidth
	}
	if width == 0 {
		clear(dst)
		return nil
	}
	if len(src) < WordCount(width) {
		return ErrTruncated
	}
	mask := ^uint32(0)
	if width < 32 {
		mask = 1<<width - 1
	}
	w := int(width)
	bit := 0
	for i := range dst {
		word, off := bit>>5, bit&31
		v := src[word] >> off
		if off+w > 32 {
			v |= src[word+1] << (32 - off)
		}
		dst[i] = v & mask
		bit += w
	}
	return nil
}

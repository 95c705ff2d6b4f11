package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the on-blob encoding of a stream.
type Compression uint8

const (
	// None stores raw little-endian uint32 payloads.
	None Compression = iota
	// Zstd compresses the payload with zstandard.
	Zstd
	// LZ4 compresses the payload with lz4 block compression.
	LZ4
)

// ErrClosed is returned when writing to a finalized stream.
var ErrClosed = errors.New("stream: writer is closed")

// ErrCorrupt is returned when a compressed payload cannot be decoded.
var ErrCorrupt = errors.New("stream: corrupt payload")

// String returns the stable name used in manifests.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// CompressionByName resolves a manifest name back to a Compression.
func CompressionByName(name string) (Compression, bool) {
	switch name {
	case "none":
		return None, true
	case "zstd":
		return Zstd, true
	case "lz4":
		return LZ4, true
	default:
		return None, false
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// compress encodes raw into the blob payload for the given compression.
// Compressed payloads are prefixed with the uncompressed length so lz4
// block decompression can size its output.
func compress(c Compression, raw []byte) ([]byte, error) {
	switch c {
	case None:
		return raw, nil
	case Zstd:
		enc := getZstdEncoder()
		defer putZstdEncoder(enc)
		out := make([]byte, 4, 4+len(raw)/2)
		binary.LittleEndian.PutUint32(out, uint32(len(raw)))
		return enc.EncodeAll(raw, out), nil
	case LZ4:
		out := make([]byte, 4+lz4.CompressBlockBound(len(raw)))
		binary.LittleEndian.PutUint32(out, uint32(len(raw)))
		n, err := lz4.CompressBlock(raw, out[4:], nil)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			// Incompressible; store raw with a zero marker length.
			out = append(out[:4:4], raw...)
			binary.LittleEndian.PutUint32(out, 0)
			return out, nil
		}
		return out[:4+n], nil
	default:
		return nil, fmt.Errorf("stream: unknown compression %d", c)
	}
}

// decompress is the inverse of compress.
func decompress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case None:
		return data, nil
	case Zstd:
		if len(data) < 4 {
			return nil, ErrCorrupt
		}
		size := binary.LittleEndian.Uint32(data)
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)
		out, err := dec.DecodeAll(data[4:], make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if uint32(len(out)) != size {
			return nil, ErrCorrupt
		}
		return out, nil
	case LZ4:
		if len(data) < 4 {
			return nil, ErrCorrupt
		}
		size := binary.LittleEndian.Uint32(data)
		if size == 0 {
			// Stored raw.
			return data[4:], nil
		}
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(data[4:], out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if uint32(n) != size {
			return nil, ErrCorrupt
		}
		return out, nil
	default:
		return nil, fmt.Errorf("stream: unknown compression %d", c)
	}
}

package packmat

import (
	"context"
	"fmt"

	"github.com/hupe1980/packmat/blobstore"
	"github.com/hupe1980/packmat/manifest"
	"github.com/hupe1980/packmat/matrix"
	"github.com/hupe1980/packmat/packed"
	"github.com/hupe1980/packmat/stream"
)

// WriteMatrix drains src into store as a packed matrix: seven integer
// stream blobs plus a MANIFEST written last, so a readable manifest
// implies complete streams. Cancelling ctx aborts the write promptly,
// leaving partial blobs behind; re-running WriteMatrix replaces them.
func WriteMatrix(ctx context.Context, store blobstore.Store, src matrix.Loader[uint32], optFns ...Option) error {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(o)
	}

	ws := packed.WriteStreams{
		ValData:   stream.NewBlobWriter(store, packed.StreamValData, o.compression),
		ValIdx:    stream.NewBlobWriter(store, packed.StreamValIdx, o.compression),
		RowData:   stream.NewBlobWriter(store, packed.StreamRowData, o.compression),
		RowStarts: stream.NewBlobWriter(store, packed.StreamRowStarts, o.compression),
		RowIdx:    stream.NewBlobWriter(store, packed.StreamRowIdx, o.compression),
		ColPtr:    stream.NewBlobWriter(store, packed.StreamColPtr, o.compression),
		RowCount:  stream.NewBlobWriter(store, packed.StreamRowCount, o.compression),
	}

	w, err := packed.NewWriter(ws, packed.WithLogger(o.logger.Logger))
	if err != nil {
		return err
	}
	if err := w.Write(ctx, src); err != nil {
		o.logger.LogWrite(src.Rows(), src.Cols(), 0, err)
		return err
	}

	m := &manifest.Manifest{
		Version:     manifest.CurrentVersion,
		Rows:        src.Rows(),
		Cols:        src.Cols(),
		Entries:     w.Total(),
		Compression: o.compression.String(),
	}
	if err := manifest.Save(store, o.codec, m); err != nil {
		o.logger.LogWrite(src.Rows(), src.Cols(), w.Total(), err)
		return err
	}

	o.logger.LogWrite(src.Rows(), src.Cols(), w.Total(), nil)
	return nil
}

// OpenMatrix opens the packed matrix stored in store. The manifest decides
// dimensions and stream compression; the returned reader implements
// matrix.Loader[uint32] and is positioned before the first column.
func OpenMatrix(store blobstore.Store, optFns ...Option) (*packed.Reader, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(o)
	}

	m, err := manifest.Load(store, o.codec)
	if err != nil {
		o.logger.LogOpen(0, 0, 0, err)
		return nil, err
	}
	comp, ok := stream.CompressionByName(m.Compression)
	if !ok {
		err := fmt.Errorf("packmat: unknown compression %q", m.Compression)
		o.logger.LogOpen(0, 0, 0, err)
		return nil, err
	}

	rs := packed.ReadStreams{}
	for name, dst := range map[string]*stream.Reader{
		packed.StreamValData:   &rs.ValData,
		packed.StreamValIdx:    &rs.ValIdx,
		packed.StreamRowData:   &rs.RowData,
		packed.StreamRowStarts: &rs.RowStarts,
		packed.StreamRowIdx:    &rs.RowIdx,
		packed.StreamColPtr:    &rs.ColPtr,
		packed.StreamRowCount:  &rs.RowCount,
	} {
		r, err := stream.OpenBlob(store, name, comp)
		if err != nil {
			o.logger.LogOpen(0, 0, 0, err)
			return nil, err
		}
		*dst = r
	}

	r, err := packed.NewReader(m.Rows, m.Cols, rs)
	if err != nil {
		o.logger.LogOpen(0, 0, 0, err)
		return nil, err
	}
	o.logger.LogOpen(m.Rows, m.Cols, m.Entries, nil)
	return r, nil
}

// Package packmat is a columnar, bit-packed storage engine for large
// sparse numeric matrices such as single-cell count matrices.
//
// Matrices are streamed column by column through the matrix.Loader /
// matrix.Writer contract, so transformation layers (renaming, filtering)
// compose with any storage format without materializing the whole matrix.
// The packed on-disk format compresses runs of row indices and values in
// fixed 128-entry blocks at a per-block minimal bit width.
//
// # Quick Start
//
// Write an in-memory matrix and read it back:
//
//	src, _ := matrix.FromColumns(rows, columns)
//
//	store, _ := blobstore.NewLocalStore("./data")
//	_ = packmat.WriteMatrix(ctx, store, src)
//
//	r, _ := packmat.OpenMatrix(store)
//	for r.NextCol() {
//	    buf := make([]matrix.Entry[uint32], 128)
//	    for {
//	        n, err := r.Load(buf)
//	        if n == 0 || err != nil {
//	            break
//	        }
//	        // consume buf[:n] for column r.CurrentCol()
//	    }
//	}
//
// # Layout
//
// A packed matrix is seven integer streams plus a MANIFEST blob. Streams
// can be stored raw or compressed (zstd, lz4), selected per matrix via
// WithCompression and recorded in the manifest.
//
// # Composition
//
// Wrappers own an inner loader and forward the contract, overriding only
// what they change:
//
//	renamed, _ := matrix.NewRenameDims[uint32](r, geneNames, cellNames)
//	_ = packmat.WriteMatrix(ctx, dst, renamed)
package packmat

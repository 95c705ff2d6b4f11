package matrix

// Wrapper is the embeddable base for Loader decorators. It forwards the
// whole contract to the inner loader; decorators override only what they
// change. Transformation layers (renaming, normalization, filtering)
// compose by stacking wrappers, none of which need to know the concrete
// storage format underneath.
type Wrapper[T any] struct {
	Inner Loader[T]
}

// Rows implements Loader.
func (w *Wrapper[T]) Rows() uint32 { return w.Inner.Rows() }

// Cols implements Loader.
func (w *Wrapper[T]) Cols() uint32 { return w.Inner.Cols() }

// Restart implements Loader.
func (w *Wrapper[T]) Restart() error { return w.Inner.Restart() }

// NextCol implements Loader.
func (w *Wrapper[T]) NextCol() bool { return w.Inner.NextCol() }

// CurrentCol implements Loader.
func (w *Wrapper[T]) CurrentCol() uint32 { return w.Inner.CurrentCol() }

// Load implements Loader.
func (w *Wrapper[T]) Load(buf []Entry[T]) (int, error) { return w.Inner.Load(buf) }

// RowName implements Dims by delegating to the inner loader.
func (w *Wrapper[T]) RowName(i uint32) (string, bool) { return RowName(w.Inner, i) }

// ColName implements Dims by delegating to the inner loader.
func (w *Wrapper[T]) ColName(i uint32) (string, bool) { return ColName(w.Inner, i) }

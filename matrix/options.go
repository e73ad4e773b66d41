// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for matrix construction and Calc.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper that resolves the effective configuration.
//
// Notes:
//   - The same Option set serves New (storage of the new matrix) and Calc
//     (storage of a RetNew result, pool used for dense evaluation).
//   - WithCapacity only affects SparseStorage; dense matrices ignore it.

package matrix

import (
	"github.com/katalvlaran/lvmatrix/annotation"
	"github.com/katalvlaran/lvmatrix/parallel"
	"github.com/katalvlaran/lvmatrix/storage"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValueKind is the value kind of a matrix built without WithValueKind.
	DefaultValueKind = Double

	// DefaultStorage is the storage of a matrix built without WithStorage.
	DefaultStorage = DenseStorage

	// DefaultCapacity leaves sparse storage unbounded.
	DefaultCapacity = storage.Unbounded

	// DefaultLayout is the dense stride formula.
	DefaultLayout = storage.RowMajor
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicValueKindInvalid = "matrix: WithValueKind: unknown value kind"
	panicStorageInvalid   = "matrix: WithStorage: storage must be DenseStorage or SparseStorage"
	panicCapacityInvalid  = "matrix: WithCapacity: capacity must be positive or storage.Unbounded"
	panicLayoutInvalid    = "matrix: WithLayout: unknown layout"
	panicPoolNil          = "matrix: WithPool: pool must not be nil"
)

// Option mutates Options. Constructors panic only on nonsensical values.
type Option func(*Options)

// Options is the effective configuration after applying Option setters.
type Options struct {
	kind       ValueKind
	kindSet    bool
	storage    StorageKind
	storageSet bool
	capacity   int
	layout     storage.Layout
	sink       EventSink
	ann        *annotation.Annotation
	pool       *parallel.Pool
}

// WithValueKind sets the value kind of the new matrix. For Calc it overrides
// the calculation's own kind for a RetNew result.
func WithValueKind(k ValueKind) Option {
	if !k.Valid() {
		panic(panicValueKindInvalid)
	}

	return func(o *Options) {
		o.kind = k
		o.kindSet = true
	}
}

// WithStorage selects DenseStorage or SparseStorage. For Calc it forces the
// storage of a RetNew result.
func WithStorage(k StorageKind) Option {
	if k != DenseStorage && k != SparseStorage {
		panic(panicStorageInvalid)
	}

	return func(o *Options) {
		o.storage = k
		o.storageSet = true
	}
}

// WithCapacity bounds sparse storage to n entries (LRU eviction).
func WithCapacity(n int) Option {
	if n <= 0 && n != storage.Unbounded {
		panic(panicCapacityInvalid)
	}

	return func(o *Options) { o.capacity = n }
}

// WithLayout sets the dense stride formula.
func WithLayout(l storage.Layout) Option {
	if l != storage.RowMajor && l != storage.ColumnMajor {
		panic(panicLayoutInvalid)
	}

	return func(o *Options) { o.layout = l }
}

// WithEventSink attaches a sink receiving CellChanged/Materialized events.
// A nil sink disables events.
func WithEventSink(s EventSink) Option {
	return func(o *Options) { o.sink = s }
}

// WithAnnotation attaches a copy of a to the new matrix.
func WithAnnotation(a *annotation.Annotation) Option {
	return func(o *Options) { o.ann = a.Clone() }
}

// WithPool sets the Parallel-For pool used by Calc and dense kernels.
func WithPool(p *parallel.Pool) Option {
	if p == nil {
		panic(panicPoolNil)
	}

	return func(o *Options) { o.pool = p }
}

// gatherOptions applies opts over the documented defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{
		kind:     DefaultValueKind,
		storage:  DefaultStorage,
		capacity: DefaultCapacity,
		layout:   DefaultLayout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Pool returns the configured pool, falling back to parallel.Default().
func (o Options) Pool() *parallel.Pool {
	if o.pool != nil {
		return o.pool
	}

	return parallel.Default()
}

// ResolveOptions exposes the effective configuration of opts to kernel
// packages built on top of matrix.
func ResolveOptions(opts ...Option) Options { return gatherOptions(opts...) }

// Layout returns the configured dense layout.
func (o Options) Layout() storage.Layout { return o.layout }

// Sink returns the configured event sink, or nil.
func (o Options) Sink() EventSink { return o.sink }

// ValueKind returns the configured value kind and whether WithValueKind set it.
func (o Options) ValueKind() (ValueKind, bool) { return o.kind, o.kindSet }

// StorageKind returns the configured storage and whether WithStorage set it.
func (o Options) StorageKind() (StorageKind, bool) { return o.storage, o.storageSet }

// Annotation returns the annotation set by WithAnnotation, or nil.
func (o Options) Annotation() *annotation.Annotation { return o.ann }

// SPDX-License-Identifier: MIT

package matrix

import (
	"errors"
	"fmt"
	"iter"
	"math/big"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/katalvlaran/lvmatrix/annotation"
	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/storage"
)

// Tags used in wrapped errors.
const (
	opDouble        = "Double"
	opSetDouble     = "SetDouble"
	opObject        = "Object"
	opSetObject     = "SetObject"
	opBigDecimal    = "BigDecimal"
	opSetBigDecimal = "SetBigDecimal"
	opBigInteger    = "BigInteger"
	opSetBigInteger = "SetBigInteger"
	opText          = "Text"
	opSetText       = "SetText"
)

// base carries what every Matrix implementation shares.
type base struct {
	id   uuid.UUID
	size coords.Size
	kind ValueKind
	sink EventSink

	mu  sync.RWMutex // guards ann
	ann *annotation.Annotation
}

func (b *base) init(size coords.Size, kind ValueKind, o Options) {
	b.id = uuid.New()
	b.size = size.Clone()
	b.kind = kind
	b.sink = o.sink
	b.ann = o.ann
}

func (b *base) ID() uuid.UUID { return b.id }
func (b *base) Size() coords.Size { return b.size.Clone() }
func (b *base) ValueKind() ValueKind { return b.kind }

func (b *base) AllCoordinates() iter.Seq[coords.Coordinates] { return coords.All(b.size) }

func (b *base) Annotation() *annotation.Annotation {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.ann
}

func (b *base) SetAnnotation(a *annotation.Annotation) {
	b.mu.Lock()
	b.ann = a
	b.mu.Unlock()
}

// check validates c against the declared size.
func (b *base) check(tag string, c coords.Coordinates) error {
	err := b.size.Check(c)
	if err == nil {
		return nil
	}
	if errors.Is(err, coords.ErrArity) {
		return fmt.Errorf("%s%s: %w", tag, c, ErrArity)
	}

	return fmt.Errorf("%s%s: %w", tag, c, ErrOutOfRange)
}

func (b *base) publish(kind EventKind, c coords.Coordinates) {
	if b.sink != nil {
		b.sink.Publish(Event{MatrixID: b.id, Kind: kind, Coordinates: c})
	}
}

// codec converts between a storage element type and the accessor kinds.
type codec[T any] struct {
	kind       ValueKind
	toDouble   func(T) (float64, error)
	fromDouble func(float64) (T, error)
	box        func(T) any
	unbox      func(any) (T, error)
}

var (
	doubleCodec = &codec[float64]{
		kind:       Double,
		toDouble:   func(v float64) (float64, error) { return v, nil },
		fromDouble: func(v float64) (float64, error) { return v, nil },
		box:        func(v float64) any { return v },
		unbox:      ToFloat64,
	}
	decimalCodec = &codec[decimal.Decimal]{
		kind:       BigDecimal,
		toDouble:   func(v decimal.Decimal) (float64, error) { return v.InexactFloat64(), nil },
		fromDouble: func(v float64) (decimal.Decimal, error) { return ToDecimal(v) },
		box:        func(v decimal.Decimal) any { return v },
		unbox:      ToDecimal,
	}
	// big.Int values are copied on the way in and out, so a stored pointer is
	// never shared with callers.
	bigIntCodec = &codec[*big.Int]{
		kind:       BigInteger,
		toDouble:   func(v *big.Int) (float64, error) { return ToFloat64(v) },
		fromDouble: func(v float64) (*big.Int, error) { return ToBigInt(v) },
		box: func(v *big.Int) any {
			if v == nil {
				return new(big.Int)
			}
			return new(big.Int).Set(v)
		},
		unbox: ToBigInt,
	}
	objectCodec = &codec[any]{
		kind:       Object,
		toDouble:   ToFloat64,
		fromDouble: func(v float64) (any, error) { return v, nil },
		box:        func(v any) any { return v },
		unbox:      func(v any) (any, error) { return v, nil },
	}
	textCodec = &codec[string]{
		kind:       String,
		toDouble:   func(v string) (float64, error) { return ToFloat64(v) },
		fromDouble: func(v float64) (string, error) { return ToText(v), nil },
		box:        func(v string) any { return v },
		unbox:      func(v any) (string, error) { return ToText(v), nil },
	}
)

// cells implements the Matrix accessors on top of a storage.Store.
type cells[T any] struct {
	base
	store storage.Store[T]
	codec *codec[T]
}

func (m *cells[T]) read(tag string, c coords.Coordinates) (T, error) {
	if err := m.check(tag, c); err != nil {
		var zero T
		return zero, err
	}
	v, err := m.store.Get(c)
	if err != nil {
		return v, matrixErrorf(tag, err)
	}

	return v, nil
}

func (m *cells[T]) Double(c coords.Coordinates) (float64, error) {
	v, err := m.read(opDouble, c)
	if err != nil {
		return 0, err
	}

	return m.codec.toDouble(v)
}

func (m *cells[T]) Object(c coords.Coordinates) (any, error) {
	v, err := m.read(opObject, c)
	if err != nil {
		return nil, err
	}

	return m.codec.box(v), nil
}

func (m *cells[T]) BigDecimal(c coords.Coordinates) (decimal.Decimal, error) {
	v, err := m.read(opBigDecimal, c)
	if err != nil {
		return decimal.Zero, err
	}

	return ToDecimal(m.codec.box(v))
}

func (m *cells[T]) BigInteger(c coords.Coordinates) (*big.Int, error) {
	v, err := m.read(opBigInteger, c)
	if err != nil {
		return nil, err
	}

	return ToBigInt(m.codec.box(v))
}

func (m *cells[T]) Text(c coords.Coordinates) (string, error) {
	v, err := m.read(opText, c)
	if err != nil {
		return "", err
	}

	return ToText(m.codec.box(v)), nil
}

// writeDouble stores v at c without publishing an event.
func (m *cells[T]) writeDouble(c coords.Coordinates, v float64) error {
	t, err := m.codec.fromDouble(v)
	if err != nil {
		return err
	}

	return m.store.Set(c, t)
}

// writeObject stores v at c without publishing an event.
func (m *cells[T]) writeObject(c coords.Coordinates, v any) error {
	t, err := m.codec.unbox(v)
	if err != nil {
		return err
	}

	return m.store.Set(c, t)
}

func (m *cells[T]) SetDouble(c coords.Coordinates, v float64) error {
	if err := m.check(opSetDouble, c); err != nil {
		return err
	}
	if err := m.writeDouble(c, v); err != nil {
		return matrixErrorf(opSetDouble, err)
	}
	m.publish(CellChanged, c)

	return nil
}

func (m *cells[T]) setAny(tag string, c coords.Coordinates, v any) error {
	if err := m.check(tag, c); err != nil {
		return err
	}
	if err := m.writeObject(c, v); err != nil {
		return matrixErrorf(tag, err)
	}
	m.publish(CellChanged, c)

	return nil
}

func (m *cells[T]) SetObject(c coords.Coordinates, v any) error {
	return m.setAny(opSetObject, c, v)
}

func (m *cells[T]) SetBigDecimal(c coords.Coordinates, v decimal.Decimal) error {
	return m.setAny(opSetBigDecimal, c, v)
}

func (m *cells[T]) SetBigInteger(c coords.Coordinates, v *big.Int) error {
	if v != nil {
		v = new(big.Int).Set(v)
	}

	return m.setAny(opSetBigInteger, c, v)
}

func (m *cells[T]) SetText(c coords.Coordinates, v string) error {
	return m.setAny(opSetText, c, v)
}

// denseMatrix is a storage-backed matrix over storage.Dense.
type denseMatrix[T any] struct {
	cells[T]
	dense *storage.Dense[T]
}

func newDenseMatrix[T any](size coords.Size, o Options, cd *codec[T]) (*denseMatrix[T], error) {
	d, err := storage.NewDense[T](size, o.layout)
	if err != nil {
		return nil, fmt.Errorf("New(%s): %w: %w", size, ErrBadShape, err)
	}
	m := &denseMatrix[T]{dense: d}
	m.init(size, cd.kind, o)
	m.store, m.codec = d, cd

	return m, nil
}

func (m *denseMatrix[T]) StorageKind() StorageKind { return DenseStorage }
func (m *denseMatrix[T]) ValueCount() int64 { return int64(m.dense.Len()) }

func (m *denseMatrix[T]) AvailableCoordinates() iter.Seq[coords.Coordinates] {
	return coords.All(m.size)
}

// Doubles exposes the backing buffer when T is float64.
func (m *denseMatrix[T]) Doubles() ([]float64, bool) {
	data, ok := any(m.dense.Raw()).([]float64)

	return data, ok
}

// Layout returns the stride formula of the backing buffer.
func (m *denseMatrix[T]) Layout() storage.Layout { return m.dense.Layout() }

func (m *denseMatrix[T]) Clone() Matrix {
	d := m.dense.Clone()
	out := &denseMatrix[T]{dense: d}
	out.init(m.size, m.kind, Options{sink: m.sink, ann: m.Annotation().Clone()})
	out.store, out.codec = d, m.codec

	return out
}

// sparseMatrix is a storage-backed matrix over storage.Sparse.
type sparseMatrix[T any] struct {
	cells[T]
	sparse *storage.Sparse[T]
}

func newSparseMatrix[T any](size coords.Size, o Options, cd *codec[T]) (*sparseMatrix[T], error) {
	var sopts []storage.SparseOption
	if o.capacity != storage.Unbounded {
		sopts = append(sopts, storage.WithCapacity(o.capacity))
	}
	s, err := storage.NewSparse[T](size, sopts...)
	if err != nil {
		return nil, fmt.Errorf("New(%s): %w: %w", size, ErrBadShape, err)
	}
	m := &sparseMatrix[T]{sparse: s}
	m.init(size, cd.kind, o)
	m.store, m.codec = s, cd

	return m, nil
}

func (m *sparseMatrix[T]) StorageKind() StorageKind { return SparseStorage }
func (m *sparseMatrix[T]) ValueCount() int64 { return int64(m.sparse.Len()) }

func (m *sparseMatrix[T]) AvailableCoordinates() iter.Seq[coords.Coordinates] {
	return m.sparse.Keys()
}

func (m *sparseMatrix[T]) Delete(c coords.Coordinates) bool {
	if !m.sparse.Delete(c) {
		return false
	}
	m.publish(CellChanged, c)

	return true
}

func (m *sparseMatrix[T]) Populated() int { return m.sparse.Len() }
func (m *sparseMatrix[T]) Capacity() int { return m.sparse.Capacity() }
func (m *sparseMatrix[T]) Evictions() int64 { return m.sparse.Evictions() }
func (m *sparseMatrix[T]) Has(c coords.Coordinates) bool { return m.sparse.Has(c) }

func (m *sparseMatrix[T]) Clone() Matrix {
	s := m.sparse.Clone()
	out := &sparseMatrix[T]{sparse: s}
	out.init(m.size, m.kind, Options{sink: m.sink, ann: m.Annotation().Clone()})
	out.store, out.codec = s, m.codec

	return out
}

// Compile-time checks.
var (
	_ Matrix      = (*denseMatrix[float64])(nil)
	_ DoubleArray = (*denseMatrix[float64])(nil)
	_ Matrix      = (*sparseMatrix[any])(nil)
	_ SparseStore = (*sparseMatrix[any])(nil)
)

// quietWriter is implemented by storage-backed matrices; Calc uses it to fill
// results without one event per cell.
type quietWriter interface {
	writeDouble(c coords.Coordinates, v float64) error
	writeObject(c coords.Coordinates, v any) error
	publish(kind EventKind, c coords.Coordinates)
}

// newStored allocates a storage-backed matrix for o.kind/o.storage.
func newStored(size coords.Size, o Options) (Matrix, error) {
	switch o.kind {
	case Double:
		return newWith(size, o, doubleCodec)
	case BigDecimal:
		return newWith(size, o, decimalCodec)
	case BigInteger:
		return newWith(size, o, bigIntCodec)
	case Object:
		return newWith(size, o, objectCodec)
	case String:
		return newWith(size, o, textCodec)
	default:
		return nil, matrixErrorf("New", ErrUnknownValueKind)
	}
}

func newWith[T any](size coords.Size, o Options, cd *codec[T]) (Matrix, error) {
	if o.storage == SparseStorage {
		m, err := newSparseMatrix(size, o, cd)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	m, err := newDenseMatrix(size, o, cd)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"iter"

	log "github.com/sirupsen/logrus"

	"github.com/katalvlaran/lvmatrix/annotation"
	"github.com/katalvlaran/lvmatrix/coords"
)

// Calculation describes a transform over source matrices. It knows its output
// size before any value is requested and must not mutate its sources when
// read.
//
// A Calculation evaluates cells through DoubleCalculation, ObjectCalculation
// or both; Calc and the Link view use whichever fits the requested kind.
type Calculation interface {
	// Name is a short operation tag ("plus", "transpose", ...).
	Name() string
	// Sources returns the operands; Sources()[0] is the RetOrig target.
	Sources() []Matrix
	// Size returns the output size.
	Size() coords.Size
	// ValueKind is the natural kind of the output.
	ValueKind() ValueKind
	// Available yields the coordinates the calculation defines; usually the
	// first source's AvailableCoordinates or all coordinates of Size.
	Available() iter.Seq[coords.Coordinates]
}

// DoubleCalculation evaluates and inverts cells as float64.
// SetDouble returns ErrUnsupportedOperation when the write has no inverse.
type DoubleCalculation interface {
	Calculation
	Double(c coords.Coordinates) (float64, error)
	SetDouble(c coords.Coordinates, v float64) error
}

// ObjectCalculation evaluates and inverts cells as arbitrary values.
type ObjectCalculation interface {
	Calculation
	Object(c coords.Coordinates) (any, error)
	SetObject(c coords.Coordinates, v any) error
}

// Pointwise is implemented by calculations whose value at c depends only on
// the sources' values at c. RetOrig writes such calculations in place unless
// a source is a view that reads other cells.
type Pointwise interface {
	Pointwise() bool
}

// SparsityPreserving is implemented by calculations whose result is zero
// wherever Available() yields nothing; a RetNew result over a sparse first
// source is then sparse and only Available() is evaluated.
type SparsityPreserving interface {
	PreservesSparsity() bool
}

// AnnotationPreserving is implemented by calculations that carry an
// annotation over to their result. ResultAnnotation must return a fresh copy.
type AnnotationPreserving interface {
	ResultAnnotation() *annotation.Annotation
}

// CalcDouble evaluates c at at as float64 through whichever interface c
// implements.
func CalcDouble(c Calculation, at coords.Coordinates) (float64, error) {
	switch x := c.(type) {
	case DoubleCalculation:
		return x.Double(at)
	case ObjectCalculation:
		v, err := x.Object(at)
		if err != nil {
			return 0, err
		}
		return ToFloat64(v)
	default:
		return 0, unevaluable(c)
	}
}

// CalcObject evaluates c at at as a value of c.ValueKind().
func CalcObject(c Calculation, at coords.Coordinates) (any, error) {
	switch x := c.(type) {
	case ObjectCalculation:
		return x.Object(at)
	case DoubleCalculation:
		return x.Double(at)
	default:
		return nil, unevaluable(c)
	}
}

func unevaluable(c Calculation) error {
	return fmt.Errorf("calculation %q: %w: implements neither DoubleCalculation nor ObjectCalculation",
		c.Name(), ErrUnsupportedOperation)
}

func isPointwise(c Calculation) bool {
	p, ok := c.(Pointwise)
	return ok && p.Pointwise()
}

// inPlaceSafe reports whether c may be written into its first source cell by
// cell: c is pointwise and no source is a view that reads other cells.
func inPlaceSafe(c Calculation) bool {
	if !isPointwise(c) {
		return false
	}
	for _, src := range c.Sources() {
		if l, ok := src.(Linked); ok && !inPlaceSafe(l.Calculation()) {
			return false
		}
	}

	return true
}

func preservesSparsity(c Calculation) bool {
	p, ok := c.(SparsityPreserving)
	return ok && p.PreservesSparsity()
}

func resultAnnotation(c Calculation) *annotation.Annotation {
	if p, ok := c.(AnnotationPreserving); ok {
		return p.ResultAnnotation()
	}

	return nil
}

// Calc materializes c according to ret.
// Implementation:
//   - RetLink: wrap c in a read-through view; nothing is evaluated.
//   - RetNew: allocate the result (sparse when c preserves sparsity over a
//     sparse first source, dense otherwise, unless WithStorage says so),
//     evaluate every coordinate into it, publish Materialized.
//   - RetOrig: require Size() == Sources()[0].Size(), then write the results
//     into that source and return it. Writing is in place only when c is
//     Pointwise and every source is read only at the written coordinate
//     (storage, or a RetLink view whose calculation is itself in-place
//     safe); a view such as a transpose may read cells already overwritten,
//     so any other case evaluates into a snapshot buffer first.
//
// A sparse RetOrig target keeps its storage kind. When c does not preserve
// sparsity every cell is written, so the target ends up fully populated.
//
// Dense RetNew results and in-place RetOrig over dense targets are filled
// through the Parallel-For pool (WithPool, default parallel.Default()).
// Errors: ErrNilMatrix, ErrShapeMismatch, ErrUnsupportedOperation, evaluation
// errors from c (aggregated when evaluation ran in parallel).
func Calc(c Calculation, ret Ret, opts ...Option) (Matrix, error) {
	if c == nil {
		return nil, matrixErrorf("Calc", ErrNilMatrix)
	}
	o := gatherOptions(opts...)
	log.WithFields(log.Fields{"calc": c.Name(), "ret": ret, "size": c.Size()}).Debug("matrix: calc")

	switch ret {
	case RetLink:
		return newLinked(c, o), nil
	case RetNew:
		return calcNew(c, o)
	case RetOrig:
		return calcOrig(c, o)
	default:
		return nil, matrixErrorf("Calc("+ret.String()+")", ErrUnsupportedOperation)
	}
}

// LinkTo is Calc(c, RetLink) without the error result.
func LinkTo(c Calculation, opts ...Option) Matrix {
	return newLinked(c, gatherOptions(opts...))
}

// calcNew evaluates c into a fresh matrix.
func calcNew(c Calculation, o Options) (Matrix, error) {
	size := c.Size()
	sources := c.Sources()

	ro := o
	ro.sink = nil // no per-cell events while filling
	ro.ann = nil
	if !o.kindSet {
		ro.kind = c.ValueKind()
	}
	sparse := false
	if o.storageSet {
		sparse = o.storage == SparseStorage
	} else if len(sources) > 0 && sources[0] != nil && IsSparse(sources[0]) && preservesSparsity(c) {
		sparse = true
	}
	if sparse {
		ro.storage = SparseStorage
	} else {
		ro.storage = DenseStorage
	}

	res, err := newStored(size, ro)
	if err != nil {
		return nil, matrixErrorf("Calc(new)", err)
	}
	w := res.(quietWriter)
	asDouble := ro.kind == Double

	if sparse {
		seq := c.Available()
		if !preservesSparsity(c) {
			seq = coords.All(size)
		}
		for at := range seq {
			if err = evalInto(c, w, at, asDouble); err != nil {
				return nil, matrixErrorf("Calc(new)", err)
			}
		}
	} else {
		n := size.Product()
		err = o.Pool().For(0, int(n)-1, func(i int) error {
			at, err := coords.FromIndex(size, int64(i))
			if err != nil {
				return err
			}
			return evalInto(c, w, at, asDouble)
		})
		if err != nil {
			return nil, matrixErrorf("Calc(new)", err)
		}
	}

	if a := resultAnnotation(c); a != nil {
		res.SetAnnotation(a)
	} else if o.ann != nil {
		res.SetAnnotation(o.ann)
	}
	if o.sink != nil {
		SetEventSink(res, o.sink)
		Notify(res, Materialized)
	}

	return res, nil
}

// SetEventSink attaches s to m. Kernels that fill a fresh result without
// events use it before announcing the result with Notify. It reports false
// for matrices that do not support sinks.
func SetEventSink(m Matrix, s EventSink) bool {
	type sinkHolder interface{ setSink(EventSink) }
	h, ok := m.(sinkHolder)
	if ok {
		h.setSink(s)
	}

	return ok
}

// Notify publishes a matrix-wide event of kind on m's sink, if any.
func Notify(m Matrix, kind EventKind) {
	type publisher interface {
		publish(EventKind, coords.Coordinates)
	}
	if p, ok := m.(publisher); ok {
		p.publish(kind, coords.Coordinates{})
	}
}

func (b *base) setSink(s EventSink) { b.sink = s }

// evalInto evaluates c at at and stores the value in w.
func evalInto(c Calculation, w quietWriter, at coords.Coordinates, asDouble bool) error {
	if asDouble {
		v, err := CalcDouble(c, at)
		if err != nil {
			return err
		}
		return w.writeDouble(at, v)
	}
	v, err := CalcObject(c, at)
	if err != nil {
		return err
	}

	return w.writeObject(at, v)
}

// calcOrig writes c back into its first source.
func calcOrig(c Calculation, o Options) (Matrix, error) {
	sources := c.Sources()
	if len(sources) == 0 || sources[0] == nil {
		return nil, matrixErrorf("Calc(orig)", ErrNilMatrix)
	}
	dst := sources[0]
	if !c.Size().Equal(dst.Size()) {
		return nil, fmt.Errorf("Calc(orig): %s result into %s source: %w", c.Size(), dst.Size(), ErrShapeMismatch)
	}

	targets := dst.AllCoordinates()
	if IsSparse(dst) && preservesSparsity(c) {
		// only the defined cells and the keys already populated can change;
		// collect them first since writing while ranging a live key set is
		// not stable
		targets = slicesSeq(unionKeys(c.Available(), dst.AvailableCoordinates()))
	}

	var err error
	if inPlaceSafe(c) {
		err = origInPlace(c, dst, targets, o)
	} else {
		err = origSnapshot(c, dst, targets)
	}
	if err != nil {
		return nil, matrixErrorf("Calc(orig)", err)
	}
	Notify(dst, Materialized)

	return dst, nil
}

// origInPlace handles pointwise calculations: each cell is read and written
// once, so iteration order cannot observe an overwritten cell.
func origInPlace(c Calculation, dst Matrix, targets iter.Seq[coords.Coordinates], o Options) error {
	w, quiet := dst.(quietWriter)
	asDouble := dst.ValueKind() == Double
	if quiet && dst.StorageKind() == DenseStorage {
		size := dst.Size()
		return o.Pool().For(0, int(size.Product())-1, func(i int) error {
			at, err := coords.FromIndex(size, int64(i))
			if err != nil {
				return err
			}
			return evalInto(c, w, at, asDouble)
		})
	}
	for at := range targets {
		if err := writeBack(c, dst, w, quiet, at, asDouble); err != nil {
			return err
		}
	}

	return nil
}

// origSnapshot evaluates every target before the first write.
func origSnapshot(c Calculation, dst Matrix, targets iter.Seq[coords.Coordinates]) error {
	type cell struct {
		at coords.Coordinates
		v  any
	}
	asDouble := dst.ValueKind() == Double
	var buf []cell
	for at := range targets {
		var (
			v   any
			err error
		)
		if asDouble {
			v, err = CalcDouble(c, at)
		} else {
			v, err = CalcObject(c, at)
		}
		if err != nil {
			return err
		}
		buf = append(buf, cell{at: at, v: v})
	}
	w, quiet := dst.(quietWriter)
	for _, x := range buf {
		var err error
		switch {
		case quiet && asDouble:
			err = w.writeDouble(x.at, x.v.(float64))
		case quiet:
			err = w.writeObject(x.at, x.v)
		case asDouble:
			err = dst.SetDouble(x.at, x.v.(float64))
		default:
			err = dst.SetObject(x.at, x.v)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func writeBack(c Calculation, dst Matrix, w quietWriter, quiet bool, at coords.Coordinates, asDouble bool) error {
	if quiet {
		return evalInto(c, w, at, asDouble)
	}
	if asDouble {
		v, err := CalcDouble(c, at)
		if err != nil {
			return err
		}
		return dst.SetDouble(at, v)
	}
	v, err := CalcObject(c, at)
	if err != nil {
		return err
	}

	return dst.SetObject(at, v)
}

// unionKeys collects a, then the keys of b not in a.
func unionKeys(a, b iter.Seq[coords.Coordinates]) []coords.Coordinates {
	out := coords.Collect(a)
	seen := make(map[coords.Coordinates]struct{}, len(out))
	for _, c := range out {
		seen[c] = struct{}{}
	}
	for c := range b {
		if _, ok := seen[c]; !ok {
			out = append(out, c)
		}
	}

	return out
}

func slicesSeq(cs []coords.Coordinates) iter.Seq[coords.Coordinates] {
	return func(yield func(coords.Coordinates) bool) {
		for _, c := range cs {
			if !yield(c) {
				return
			}
		}
	}
}

// SPDX-License-Identifier: MIT

package annotation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"sync"

	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/storage"
)

var (
	// ErrAxis indicates an axis index outside [0, Dims()).
	ErrAxis = errors.New("annotation: axis out of range")

	// ErrPosition indicates a negative position on an axis.
	ErrPosition = errors.New("annotation: negative position")

	// ErrNilAnnotation is returned by setters called on a nil *Annotation;
	// attach one with Matrix.SetAnnotation(annotation.New(dims)) first.
	ErrNilAnnotation = errors.New("annotation: nil annotation")
)

const panicDimsInvalid = "annotation: New: dims must be in [1, coords.MaxDimensions]"

// axisExtent is the declared length of every axis side matrix; positions are
// bounded only by the int64 range.
var axisExtent = coords.Size{math.MaxInt64}

// Annotation is the label set of one matrix.
type Annotation struct {
	mu    sync.RWMutex
	label any
	axes  []*storage.Sparse[any]
}

// New returns an empty Annotation for a matrix with dims axes.
// Panics when dims is outside [1, coords.MaxDimensions] (programmer error).
func New(dims int) *Annotation {
	if dims < 1 || dims > coords.MaxDimensions {
		panic(panicDimsInvalid)
	}
	a := &Annotation{axes: make([]*storage.Sparse[any], dims)}
	for d := range a.axes {
		a.axes[d] = newAxis()
	}

	return a
}

func newAxis() *storage.Sparse[any] {
	// axisExtent is a valid 1-D size, so NewSparse cannot fail
	s, _ := storage.NewSparse[any](axisExtent)

	return s
}

// Dims returns the number of annotated axes.
func (a *Annotation) Dims() int {
	if a == nil {
		return 0
	}

	return len(a.axes)
}

// Label returns the whole-matrix label, nil when unset.
func (a *Annotation) Label() any {
	if a == nil {
		return nil
	}
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.label
}

// SetLabel replaces the whole-matrix label.
// Errors: ErrNilAnnotation.
func (a *Annotation) SetLabel(label any) error {
	if a == nil {
		return fmt.Errorf("SetLabel: %w", ErrNilAnnotation)
	}
	a.mu.Lock()
	a.label = label
	a.mu.Unlock()

	return nil
}

// AxisLabel returns the label at pos on axis dim, nil when absent or when
// dim/pos are out of range.
func (a *Annotation) AxisLabel(dim int, pos int64) any {
	if a == nil || dim < 0 || dim >= len(a.axes) || pos < 0 {
		return nil
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, _ := a.axes[dim].Lookup(coords.MustNew(pos))

	return v
}

// SetAxisLabel stores label at pos on axis dim. A nil label deletes the entry.
// Errors: ErrNilAnnotation, ErrAxis, ErrPosition.
func (a *Annotation) SetAxisLabel(dim int, pos int64, label any) error {
	if a == nil {
		return fmt.Errorf("SetAxisLabel(%d): %w", dim, ErrNilAnnotation)
	}
	if dim < 0 || dim >= len(a.axes) {
		return fmt.Errorf("SetAxisLabel(%d): %w", dim, ErrAxis)
	}
	if pos < 0 {
		return fmt.Errorf("SetAxisLabel(%d,%d): %w", dim, pos, ErrPosition)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	c := coords.MustNew(pos)
	if label == nil {
		a.axes[dim].Delete(c)

		return nil
	}

	return a.axes[dim].Set(c, label)
}

// AxisPositions returns the labelled positions of axis dim in ascending order.
func (a *Annotation) AxisPositions(dim int) []int64 {
	if a == nil || dim < 0 || dim >= len(a.axes) {
		return nil
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	var out []int64
	for c := range a.axes[dim].Keys() {
		out = append(out, c.At(0))
	}
	slices.Sort(out)

	return out
}

// PositionOf returns the smallest position on axis dim whose label equals
// label (reflect.DeepEqual), or false when none does.
// Complexity: O(k log k) for k labelled positions.
func (a *Annotation) PositionOf(dim int, label any) (int64, bool) {
	for _, pos := range a.AxisPositions(dim) {
		if reflect.DeepEqual(a.AxisLabel(dim, pos), label) {
			return pos, true
		}
	}

	return 0, false
}

// Clone returns an independent copy: axis side matrices are copied, label
// values themselves are shared. Clone of nil is nil.
func (a *Annotation) Clone() *Annotation {
	if a == nil {
		return nil
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := &Annotation{label: a.label, axes: make([]*storage.Sparse[any], len(a.axes))}
	for d, ax := range a.axes {
		out.axes[d] = ax.Clone()
	}

	return out
}

// Transpose returns a copy with axes 0 and 1 swapped. Annotations with a
// single axis are cloned unchanged.
func (a *Annotation) Transpose() *Annotation {
	out := a.Clone()
	if out != nil && len(out.axes) >= 2 {
		out.axes[0], out.axes[1] = out.axes[1], out.axes[0]
	}

	return out
}

// Equal reports whether both annotations carry the same label and the same
// axis labels. Two nil annotations are equal.
func (a *Annotation) Equal(o *Annotation) bool {
	if a == nil || o == nil {
		return a == o
	}
	if a.Dims() != o.Dims() || !reflect.DeepEqual(a.Label(), o.Label()) {
		return false
	}
	for d := range a.axes {
		pa, po := a.AxisPositions(d), o.AxisPositions(d)
		if !slices.Equal(pa, po) {
			return false
		}
		for _, p := range pa {
			if !reflect.DeepEqual(a.AxisLabel(d, p), o.AxisLabel(d, p)) {
				return false
			}
		}
	}

	return true
}

// SPDX-License-Identifier: MIT

package distance

import (
	"iter"

	log "github.com/sirupsen/logrus"

	"github.com/katalvlaran/lvmatrix/annotation"
	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/matrix"
)

// Rows is the calculation of pairwise row distances of a 2-D matrix: an
// r×r symmetric result with a zero diagonal for a true metric. Rows are read
// from the source on every evaluation, so a RetLink view tracks the source.
type Rows struct {
	src    matrix.Matrix
	metric Metric
}

var (
	_ matrix.DoubleCalculation    = (*Rows)(nil)
	_ matrix.AnnotationPreserving = (*Rows)(nil)
)

func (c *Rows) Name() string { return "distance(" + c.metric.Name + ")" }
func (c *Rows) Sources() []matrix.Matrix { return []matrix.Matrix{c.src} }
func (c *Rows) ValueKind() matrix.ValueKind { return matrix.Double }

func (c *Rows) Size() coords.Size {
	r := c.src.Size().Rows()
	return coords.Size{r, r}
}

func (c *Rows) Available() iter.Seq[coords.Coordinates] { return coords.All(c.Size()) }

// ResultAnnotation labels both axes of the result with the source's row
// labels.
func (c *Rows) ResultAnnotation() *annotation.Annotation {
	src := c.src.Annotation()
	if src == nil {
		return nil
	}
	out := annotation.New(2)
	_ = out.SetLabel(src.Label()) // out is non-nil
	for _, pos := range src.AxisPositions(0) {
		l := src.AxisLabel(0, pos)
		_ = out.SetAxisLabel(0, pos, l)
		_ = out.SetAxisLabel(1, pos, l)
	}

	return out
}

func (c *Rows) row(i int64) ([]float64, error) {
	cols := c.src.Size().Columns()
	out := make([]float64, cols)
	for j := range out {
		v, err := c.src.Double(coords.Of2(i, int64(j)))
		if err != nil {
			return nil, err
		}
		out[j] = v
	}

	return out, nil
}

func (c *Rows) Double(at coords.Coordinates) (float64, error) {
	a, err := c.row(at.Row())
	if err != nil {
		return 0, err
	}
	b, err := c.row(at.Column())
	if err != nil {
		return 0, err
	}
	d, err := c.metric.Fn(a, b)
	if err != nil {
		return 0, distanceErrorf(c.metric.Name, err)
	}

	return d, nil
}

// SetDouble rejects the write: a distance has no unique preimage.
func (c *Rows) SetDouble(coords.Coordinates, float64) error {
	return distanceErrorf(c.Name(), matrix.ErrUnsupportedOperation)
}

// Pairwise returns the matrix of distances between the rows of the 2-D
// matrix m. RetOrig requires a square m.
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch,
// matrix.ErrUnsupportedOperation (metric without a function),
// matrix.ErrShapeMismatch (RetOrig), metric errors.
func Pairwise(m matrix.Matrix, metric Metric, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
	if err := matrix.Validate2D(m); err != nil {
		return nil, distanceErrorf("Pairwise", err)
	}
	if metric.Fn == nil {
		return nil, distanceErrorf("Pairwise", matrix.ErrUnsupportedOperation)
	}
	log.WithFields(log.Fields{"metric": metric.Name, "rows": m.Size().Rows(), "ret": ret}).Debug("distance: pairwise")

	return matrix.Calc(&Rows{src: m, metric: metric}, ret, opts...)
}

func init() {
	for _, metric := range Metrics() {
		matrix.RegisterKernel("distance."+metric.Name, func(args []matrix.Matrix, ret matrix.Ret) (matrix.Matrix, error) {
			if err := matrix.ValidateArity(args, 1); err != nil {
				return nil, distanceErrorf(metric.Name, err)
			}
			return Pairwise(args[0], metric, ret)
		})
	}
}

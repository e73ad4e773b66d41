// SPDX-License-Identifier: MIT

package linalg

import (
	"github.com/katalvlaran/lvmatrix/coords"
	"github.com/katalvlaran/lvmatrix/matrix"
	"github.com/katalvlaran/lvmatrix/storage"
)

// rowMajor returns the cells of the 2-D matrix m as a row-major slice. Dense
// row-major Double matrices are returned without copying; callers must not
// modify the result.
func rowMajor(m matrix.Matrix) ([]float64, error) {
	if data, layout, ok := matrix.AsDoubleArray(m); ok && layout == storage.RowMajor {
		return data, nil
	}
	s := m.Size()
	cols := s.Columns()
	out := make([]float64, s.Product())
	for at := range m.AvailableCoordinates() {
		v, err := m.Double(at)
		if err != nil {
			return nil, err
		}
		out[at.Row()*cols+at.Column()] = v
	}

	return out, nil
}

// fromRowMajor wraps data as a fresh rows×cols Double matrix.
func fromRowMajor(rows, cols int64, data []float64, o matrix.Options) (matrix.Matrix, error) {
	res, err := matrix.New(coords.Size{rows, cols})
	if err != nil {
		return nil, err
	}
	out, _, _ := matrix.AsDoubleArray(res)
	copy(out, data)
	announce(res, o)

	return res, nil
}

// announce attaches the configured annotation and sink to a freshly filled
// result and publishes Materialized.
func announce(m matrix.Matrix, o matrix.Options) {
	if a := o.Annotation(); a != nil {
		m.SetAnnotation(a)
	}
	if s := o.Sink(); s != nil {
		matrix.SetEventSink(m, s)
		matrix.Notify(m, matrix.Materialized)
	}
}

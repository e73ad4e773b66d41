// SPDX-License-Identifier: MIT

package ops

import "github.com/katalvlaran/lvmatrix/matrix"

func init() {
	binary := map[string]func(a, b matrix.Matrix, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error){
		"plus":   Plus,
		"minus":  Minus,
		"times":  Times,
		"divide": Divide,
	}
	for name, fn := range binary {
		matrix.RegisterKernel(name, func(args []matrix.Matrix, ret matrix.Ret) (matrix.Matrix, error) {
			if err := matrix.ValidateArity(args, 2); err != nil {
				return nil, opsErrorf(name, err)
			}
			return fn(args[0], args[1], ret)
		})
	}

	unary := map[string]func(a matrix.Matrix, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error){
		"negate":    Negate,
		"abs":       Abs,
		"transpose": Transpose,
		"copy":      Copy,
	}
	for _, dim := range []matrix.Dimension{matrix.Row, matrix.Column, matrix.All} {
		suffix := "." + dim.String()
		if dim == matrix.All {
			suffix = ""
		}
		unary["sum"+suffix] = func(a matrix.Matrix, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
			return Sum(a, dim, ret, opts...)
		}
		unary["mean"+suffix] = func(a matrix.Matrix, ret matrix.Ret, opts ...matrix.Option) (matrix.Matrix, error) {
			return Mean(a, dim, ret, opts...)
		}
	}
	for name, fn := range unary {
		matrix.RegisterKernel(name, func(args []matrix.Matrix, ret matrix.Ret) (matrix.Matrix, error) {
			if err := matrix.ValidateArity(args, 1); err != nil {
				return nil, opsErrorf(name, err)
			}
			return fn(args[0], ret)
		})
	}
}

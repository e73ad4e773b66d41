// SPDX-License-Identifier: MIT

package linalg

import "github.com/katalvlaran/lvmatrix/matrix"

func init() {
	matrix.RegisterKernel("mtimes", func(args []matrix.Matrix, ret matrix.Ret) (matrix.Matrix, error) {
		if err := matrix.ValidateArity(args, 2); err != nil {
			return nil, linalgErrorf(opMtimes, err)
		}
		return Mtimes(args[0], args[1], ret)
	})
	matrix.RegisterKernel("solve", func(args []matrix.Matrix, ret matrix.Ret) (matrix.Matrix, error) {
		if err := matrix.ValidateArity(args, 2); err != nil {
			return nil, linalgErrorf(opSolve, err)
		}
		return orig(ret, args[0], func() (matrix.Matrix, error) { return Solve(args[0], args[1]) })
	})
	matrix.RegisterKernel("inv", func(args []matrix.Matrix, ret matrix.Ret) (matrix.Matrix, error) {
		if err := matrix.ValidateArity(args, 1); err != nil {
			return nil, linalgErrorf(opInverse, err)
		}
		return orig(ret, args[0], func() (matrix.Matrix, error) { return Inverse(args[0]) })
	})
	matrix.RegisterKernel("det", func(args []matrix.Matrix, ret matrix.Ret) (matrix.Matrix, error) {
		if err := matrix.ValidateArity(args, 1); err != nil {
			return nil, linalgErrorf(opDet, err)
		}
		return orig(ret, args[0], func() (matrix.Matrix, error) {
			d, err := Det(args[0])
			if err != nil {
				return nil, err
			}
			return Scalar(d), nil
		})
	})
}

// orig runs an eager kernel and honors ret: RetOrig copies the result back
// into dst (sizes must match), RetLink is not supported.
func orig(ret matrix.Ret, dst matrix.Matrix, run func() (matrix.Matrix, error)) (matrix.Matrix, error) {
	if ret == matrix.RetLink {
		return nil, linalgErrorf("kernel", matrix.ErrUnsupportedOperation)
	}
	res, err := run()
	if err != nil || ret == matrix.RetNew {
		return res, err
	}
	if !res.Size().Equal(dst.Size()) {
		return nil, linalgErrorf("kernel", matrix.ErrShapeMismatch)
	}
	for at := range res.AllCoordinates() {
		v, _ := res.Double(at)
		if err = dst.SetDouble(at, v); err != nil {
			return nil, linalgErrorf("kernel", err)
		}
	}
	matrix.Notify(dst, matrix.Materialized)

	return dst, nil
}

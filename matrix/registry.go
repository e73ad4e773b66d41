// SPDX-License-Identifier: MIT

package matrix

import (
	"slices"
	"sync"
)

// KernelFunc is a named operation resolved through the registry: it receives
// its operands and the materialization strategy and returns the result.
type KernelFunc func(args []Matrix, ret Ret) (Matrix, error)

const (
	panicKernelName = "matrix: RegisterKernel: name must be non-empty"
	panicKernelNil  = "matrix: RegisterKernel: kernel must not be nil"
	panicKernelDup  = "matrix: RegisterKernel: duplicate kernel name"
)

var (
	kernelMu sync.RWMutex
	kernels  = make(map[string]KernelFunc)
)

// RegisterKernel makes fn resolvable as name. Kernel packages call it from
// init; registering the same name twice panics (programmer error).
func RegisterKernel(name string, fn KernelFunc) {
	if name == "" {
		panic(panicKernelName)
	}
	if fn == nil {
		panic(panicKernelNil)
	}
	kernelMu.Lock()
	defer kernelMu.Unlock()
	if _, dup := kernels[name]; dup {
		panic(panicKernelDup)
	}
	kernels[name] = fn
}

// Kernel resolves name. Errors: ErrUnknownKernel.
func Kernel(name string) (KernelFunc, error) {
	kernelMu.RLock()
	fn, ok := kernels[name]
	kernelMu.RUnlock()
	if !ok {
		return nil, matrixErrorf("Kernel("+name+")", ErrUnknownKernel)
	}

	return fn, nil
}

// Kernels lists the registered names in ascending order.
func Kernels() []string {
	kernelMu.RLock()
	out := make([]string, 0, len(kernels))
	for name := range kernels {
		out = append(out, name)
	}
	kernelMu.RUnlock()
	slices.Sort(out)

	return out
}

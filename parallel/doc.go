// SPDX-License-Identifier: MIT

// Package parallel implements the Parallel-For engine: a fixed-size pool of
// worker goroutines that executes step(i) once for every i in an inclusive
// range and returns only when every index has completed (synchronous
// fork-join).
//
// Partitioning policies:
//
//	Block        worker k owns one contiguous, near-equal block of indices.
//	Equidistant  worker k owns first+k, first+k+T, first+k+2T, ... (T = threads).
//
// With fewer than two threads the loop runs in the calling goroutine in
// increasing index order.
//
// Failure semantics: a failing or panicking step never aborts its siblings.
// All errors (panics are recovered into ErrWorkerPanic) are aggregated with
// go.uber.org/multierr and returned after every partition has finished, so
// errors.Is works for each individual cause.
//
// The pool never deadlocks on nested use: each partition is claimed exactly
// once, either by a worker or by the submitting goroutine, and the submitter
// claims every partition no worker has started before it waits.
package parallel

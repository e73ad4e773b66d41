// SPDX-License-Identifier: MIT

// Package matrix is the coordinate-addressed matrix facade of lvmatrix.
//
// A Matrix has a declared size (one extent per dimension), a value kind
// (Double, BigDecimal, BigInteger, Object, String) and one of three storage
// kinds:
//
//	DenseStorage        flat buffer addressed by a row- or column-major stride formula
//	SparseStorage       Coordinates -> value association, optionally LRU-bounded
//	CalculationStorage  read-through view over a Calculation and its sources
//
// Every Matrix is read and written by coords.Coordinates through typed
// accessors; a value stored as one kind is converted on the fly when read as
// another (see ConvertValue).
//
// # Calculations and Ret
//
// A Calculation describes a transform over source matrices and can evaluate
// any output coordinate on demand. Calc materializes it in one of three ways:
//
//	RetNew   allocate a fresh matrix and evaluate every coordinate into it
//	         (dense results are filled through the parallel package)
//	RetLink  return a live view; reads always reflect the current sources and
//	         writes are forwarded to a source when the calculation can invert them
//	RetOrig  write the results back into the first source, which must have the
//	         same size; the returned Matrix is that source
//
// RetOrig is alias-safe: calculations that declare themselves Pointwise are
// written cell by cell in place, all others are evaluated into a snapshot
// buffer first and written back afterwards.
//
// # Capabilities
//
// Optional behavior is discovered by type assertion on small interfaces:
// DoubleArray (raw contiguous float64 buffer), SparseStore (populated-entry
// management) and Linked (access to the underlying Calculation).
//
// # Events
//
// A matrix created WithEventSink publishes CellChanged for every successful
// write and Materialized when Calc fills or rewrites it. Bus is a simple
// publish/subscribe EventSink.
//
// Errors are package sentinels matched with errors.Is; see errors.go.
package matrix

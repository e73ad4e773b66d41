// SPDX-License-Identifier: MIT

// Package annotation holds the metadata attached to a matrix: one label for
// the whole matrix and, per axis, a sparse side matrix mapping a position on
// that axis to a label (column headers, row names and the like).
//
// An Annotation is owned by exactly one matrix. Copying a matrix deep-clones
// its Annotation; calculations decide individually whether to carry it over.
// All methods are safe for concurrent use; a nil *Annotation reads as empty.
package annotation

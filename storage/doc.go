// SPDX-License-Identifier: MIT

// Package storage provides the cell containers that back storage-kind
// matrices.
//
//   - Dense[T]: a flat slice indexed through a stride vector. Row-major
//     (last dimension contiguous) or column-major (first dimension
//     contiguous). Get/Set are O(1); out-of-range coordinates fail fast with
//     ErrOutOfRange and are never clamped. No internal locking: callers must
//     not write the same Dense from several goroutines.
//   - Sparse[T]: an association Coordinates → T. Absent keys read as the zero
//     value of T. An optional capacity turns it into a bounded cache with
//     deterministic least-recently-used eviction. Every instance serializes
//     Get/Set/eviction under its own lock.
//
// Both satisfy Store[T], the minimal read/write-by-coordinate contract.
package storage

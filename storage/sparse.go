// SPDX-License-Identifier: MIT

package storage

import (
	"iter"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	log "github.com/sirupsen/logrus"

	"github.com/katalvlaran/lvmatrix/coords"
)

// Unbounded is the capacity of a Sparse store that never evicts.
const Unbounded = -1

const panicCapacityInvalid = "storage: WithCapacity: capacity must be positive or Unbounded"

// SparseOption configures a Sparse store at construction.
type SparseOption func(*sparseOptions)

type sparseOptions struct {
	capacity int
	onEvict  func(coords.Coordinates, any)
}

// WithCapacity bounds the store to n resident entries. Inserting a new key
// into a full store evicts the least recently used entry first.
// Panics when n is neither positive nor Unbounded (programmer error).
func WithCapacity(n int) SparseOption {
	if n <= 0 && n != Unbounded {
		panic(panicCapacityInvalid)
	}

	return func(o *sparseOptions) { o.capacity = n }
}

// WithEvictHook registers fn to be called for every evicted entry. fn runs
// under the store lock and must not call back into the store.
func WithEvictHook(fn func(c coords.Coordinates, v any)) SparseOption {
	return func(o *sparseOptions) { o.onEvict = fn }
}

// Sparse is a coordinate-keyed association with optional bounded capacity.
//
// Unbounded stores keep a plain map and allow concurrent readers. Bounded
// stores keep recency order in a simplelru.LRU; since a read refreshes
// recency, every access to a bounded store takes the exclusive lock.
type Sparse[T any] struct {
	mu        sync.RWMutex
	size      coords.Size
	capacity  int
	data      map[coords.Coordinates]T              // unbounded mode
	lru       *simplelru.LRU[coords.Coordinates, T] // bounded mode
	evictions int64
	onEvict   func(coords.Coordinates, any)
}

// Compile-time check.
var _ Store[float64] = (*Sparse[float64])(nil)

// NewSparse creates an empty sparse store for the declared size.
// Errors: ErrBadShape for an invalid size.
func NewSparse[T any](size coords.Size, opts ...SparseOption) (*Sparse[T], error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}
	o := sparseOptions{capacity: Unbounded}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Sparse[T]{
		size:     size.Clone(),
		capacity: o.capacity,
		onEvict:  o.onEvict,
	}
	if o.capacity == Unbounded {
		s.data = make(map[coords.Coordinates]T)

		return s, nil
	}
	lru, err := simplelru.NewLRU[coords.Coordinates, T](o.capacity, s.evicted)
	if err != nil {
		return nil, err
	}
	s.lru = lru

	return s, nil
}

// evicted is the simplelru callback; it runs with s.mu held.
func (s *Sparse[T]) evicted(c coords.Coordinates, v T) {
	s.evictions++
	log.Tracef("storage: sparse evicted %v (capacity %d)", c, s.capacity)
	if s.onEvict != nil {
		s.onEvict(c, v)
	}
}

// Get returns the value at c, or the zero value of T when c is absent or has
// been evicted. Errors only on coordinates outside the declared size.
func (s *Sparse[T]) Get(c coords.Coordinates) (T, error) {
	var zero T
	if err := s.size.Check(c); err != nil {
		return zero, storageErrorf(ctxGet, c, mapCheckErr(err))
	}
	if s.lru != nil {
		s.mu.Lock()
		v, _ := s.lru.Get(c)
		s.mu.Unlock()

		return v, nil
	}
	s.mu.RLock()
	v := s.data[c]
	s.mu.RUnlock()

	return v, nil
}

// Lookup is Get that also reports whether c is resident.
func (s *Sparse[T]) Lookup(c coords.Coordinates) (T, bool) {
	if s.lru != nil {
		s.mu.Lock()
		defer s.mu.Unlock()

		return s.lru.Get(c)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[c]

	return v, ok
}

// Set inserts or overwrites c. In bounded mode a full store evicts its least
// recently used entry before the new key becomes resident.
func (s *Sparse[T]) Set(c coords.Coordinates, v T) error {
	if err := s.size.Check(c); err != nil {
		return storageErrorf(ctxSet, c, mapCheckErr(err))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lru != nil {
		s.lru.Add(c, v)

		return nil
	}
	s.data[c] = v

	return nil
}

// Delete removes c; it reports whether c was resident.
func (s *Sparse[T]) Delete(c coords.Coordinates) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lru != nil {
		return s.lru.Remove(c)
	}
	_, ok := s.data[c]
	delete(s.data, c)

	return ok
}

// Has reports whether c is resident without touching recency.
func (s *Sparse[T]) Has(c coords.Coordinates) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lru != nil {
		return s.lru.Contains(c)
	}
	_, ok := s.data[c]

	return ok
}

// Len returns the number of resident entries.
func (s *Sparse[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lru != nil {
		return s.lru.Len()
	}

	return len(s.data)
}

// Size returns a copy of the declared extents.
func (s *Sparse[T]) Size() coords.Size { return s.size.Clone() }

// Capacity returns the bound, or Unbounded.
func (s *Sparse[T]) Capacity() int { return s.capacity }

// Evictions returns how many entries capacity pressure has evicted so far.
func (s *Sparse[T]) Evictions() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.evictions
}

// Keys returns the resident keys as a snapshot taken when iteration starts.
// Unbounded stores yield map order (unspecified); bounded stores yield
// least- to most-recently used. Mutating the store while ranging is safe.
func (s *Sparse[T]) Keys() iter.Seq[coords.Coordinates] {
	return func(yield func(coords.Coordinates) bool) {
		for _, k := range s.snapshotKeys() {
			if !yield(k) {
				return
			}
		}
	}
}

// snapshotKeys copies the key set under the read lock.
func (s *Sparse[T]) snapshotKeys() []coords.Coordinates {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lru != nil {
		return s.lru.Keys()
	}
	keys := make([]coords.Coordinates, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}

	return keys
}

// Clone returns an independent copy with the same capacity and hook.
// Bounded clones preserve recency order.
func (s *Sparse[T]) Clone() *Sparse[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := &Sparse[T]{size: s.size.Clone(), capacity: s.capacity, onEvict: s.onEvict}
	if s.lru == nil {
		out.data = make(map[coords.Coordinates]T, len(s.data))
		for k, v := range s.data {
			out.data[k] = v
		}

		return out
	}
	// capacity was validated at construction, so NewLRU cannot fail here
	out.lru, _ = simplelru.NewLRU[coords.Coordinates, T](s.capacity, out.evicted)
	for _, k := range s.lru.Keys() {
		v, _ := s.lru.Peek(k)
		out.lru.Add(k, v)
	}

	return out
}

// mapCheckErr converts coords bound errors into storage sentinels.
func mapCheckErr(err error) error {
	if err == coords.ErrArity {
		return ErrArity
	}

	return ErrOutOfRange
}

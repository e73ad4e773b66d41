// SPDX-License-Identifier: MIT

package matrix

import (
	"sync"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvmatrix/coords"
)

// EventKind classifies a matrix change notification.
type EventKind int

const (
	// CellChanged is published after a successful single-cell write.
	CellChanged EventKind = iota
	// Materialized is published after Calc filled a RetNew result or
	// rewrote a RetOrig source.
	Materialized
)

// String returns "cell-changed" or "materialized".
func (k EventKind) String() string {
	if k == Materialized {
		return "materialized"
	}

	return "cell-changed"
}

// Event describes one change of a matrix. Coordinates is meaningful only for
// CellChanged.
type Event struct {
	MatrixID    uuid.UUID
	Kind        EventKind
	Coordinates coords.Coordinates
}

// EventSink receives change notifications. Publish is called synchronously
// on the writing goroutine and must not write to the same matrix.
type EventSink interface {
	Publish(e Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

// Publish calls f(e).
func (f EventSinkFunc) Publish(e Event) { f(e) }

// Bus is an EventSink fanning each event out to its subscribers.
// The zero value is ready to use.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(Event)
}

// NewBus returns an empty Bus.
func NewBus() *Bus { return &Bus{} }

// Subscribe registers fn and returns a function that removes it again.
// Cancel is idempotent.
func (b *Bus) Subscribe(fn func(Event)) (cancel func()) {
	b.mu.Lock()
	if b.subs == nil {
		b.subs = make(map[int]func(Event))
	}
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers e to every current subscriber in subscription order.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	fns := make([]func(Event), 0, len(b.subs))
	for id := 0; id < b.next; id++ {
		if fn, ok := b.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	b.mu.RUnlock()
	for _, fn := range fns {
		fn(e)
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subs)
}

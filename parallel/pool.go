// SPDX-License-Identifier: MIT

package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// ErrWorkerPanic wraps a panic recovered inside a step callback.
var ErrWorkerPanic = errors.New("parallel: step panicked")

// DefaultQueueFactor sizes the task queue as threads*DefaultQueueFactor.
const DefaultQueueFactor = 4

const (
	panicThreadsInvalid = "parallel: WithThreads: threads must be >= 1"
	panicQueueInvalid   = "parallel: WithQueue: queue length must be >= 0"
)

// Option configures a Pool.
type Option func(*poolOptions)

type poolOptions struct {
	threads int
	policy  Policy
	queue   int
}

// WithThreads sets the number of worker goroutines. Panics when n < 1.
func WithThreads(n int) Option {
	if n < 1 {
		panic(panicThreadsInvalid)
	}

	return func(o *poolOptions) { o.threads = n }
}

// WithPolicy sets the default partitioning policy used by For.
func WithPolicy(p Policy) Option {
	return func(o *poolOptions) { o.policy = p }
}

// WithQueue sets the task queue length. Panics when n < 0.
func WithQueue(n int) Option {
	if n < 0 {
		panic(panicQueueInvalid)
	}

	return func(o *poolOptions) { o.queue = n }
}

// Pool is a fixed-size set of worker goroutines servicing Parallel-For
// partitions. A Pool is safe for concurrent use by multiple callers.
type Pool struct {
	threads int
	policy  Policy
	tasks   chan func()
	closed  atomic.Bool
	mu      sync.RWMutex // guards the send side of tasks against Close
	workers sync.WaitGroup
}

// NewPool starts a pool. Defaults: runtime.NumCPU() threads, Block policy,
// queue of threads*DefaultQueueFactor.
func NewPool(opts ...Option) *Pool {
	o := poolOptions{threads: runtime.NumCPU(), policy: Block, queue: -1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.queue < 0 {
		o.queue = o.threads * DefaultQueueFactor
	}
	p := &Pool{
		threads: o.threads,
		policy:  o.policy,
		tasks:   make(chan func(), o.queue),
	}
	if p.threads >= 2 {
		p.workers.Add(p.threads)
		for w := 0; w < p.threads; w++ {
			go p.work()
		}
	}

	return p
}

// work drains the task queue until Close.
func (p *Pool) work() {
	defer p.workers.Done()
	for task := range p.tasks {
		task()
	}
}

// Threads returns the configured worker count.
func (p *Pool) Threads() int { return p.threads }

// Policy returns the default partitioning policy.
func (p *Pool) Policy() Policy { return p.policy }

// Close stops the workers after queued tasks finish. Subsequent For calls
// still work; they run in the calling goroutine.
func (p *Pool) Close() {
	if p.closed.Swap(true) {
		return
	}
	p.mu.Lock()
	close(p.tasks)
	p.mu.Unlock()
	p.workers.Wait()
}

// For runs step(i) for every i in [first, last] using the pool policy.
// See ForPolicy.
func (p *Pool) For(first, last int, step func(i int) error) error {
	return p.ForPolicy(p.policy, first, last, step)
}

// ForPolicy runs step(i) exactly once for every i in [first, last].
// Implementation:
//   - Stage 1: empty range returns nil; threads < 2 runs sequentially in
//     increasing order.
//   - Stage 2: split the range with Partition and offer one task per range
//     to the workers; the caller then claims every range still unstarted.
//   - Stage 3: wait for all ranges, then return the aggregated errors.
//
// Ordering between indices is unspecified. A step error or panic never stops
// other indices from running.
func (p *Pool) ForPolicy(policy Policy, first, last int, step func(i int) error) error {
	if last < first {
		return nil
	}
	threads := p.threads
	if p.closed.Load() {
		threads = 1
	}
	if threads < 2 || last == first {
		return runRange(Range{First: first, Last: last, Stride: 1}, step)
	}

	ranges := Partition(first, last, threads, policy)
	log.WithFields(log.Fields{
		"first":   first,
		"last":    last,
		"threads": len(ranges),
		"policy":  policy,
	}).Trace("parallel: for")

	var (
		wg     sync.WaitGroup
		errMu  sync.Mutex
		errAll error
	)
	jobs := make([]*job, len(ranges))
	wg.Add(len(ranges))
	for k, r := range ranges {
		jobs[k] = &job{run: func() {
			defer wg.Done()
			if err := runRange(r, step); err != nil {
				errMu.Lock()
				errAll = multierr.Append(errAll, err)
				errMu.Unlock()
			}
		}}
		p.submit(jobs[k].claim)
	}
	// the caller takes every range no worker has started yet, so nested
	// For calls from inside a step cannot starve the pool
	for _, j := range jobs {
		j.claim()
	}
	wg.Wait()

	if errAll != nil {
		log.Warnf("parallel: %d step(s) failed in [%d,%d]", len(multierr.Errors(errAll)), first, last)
	}

	return errAll
}

// job is one partition; whoever claims it first (worker or caller) runs it.
type job struct {
	claimed atomic.Bool
	run     func()
}

func (j *job) claim() {
	if j.claimed.CompareAndSwap(false, true) {
		j.run()
	}
}

// submit enqueues task without blocking; false means the queue was full or
// the pool closed and the caller will pick the task up itself.
func (p *Pool) submit(task func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed.Load() {
		return false
	}
	select {
	case p.tasks <- task:
		return true
	default:
		return false
	}
}

// runRange executes step over r, collecting every error instead of stopping.
func runRange(r Range, step func(i int) error) error {
	var errAll error
	r.Each(func(i int) {
		if err := safeStep(step, i); err != nil {
			errAll = multierr.Append(errAll, err)
		}
	})

	return errAll
}

// safeStep converts a panic inside step into ErrWorkerPanic.
func safeStep(step func(i int) error, i int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("index %d: %w: %v", i, ErrWorkerPanic, r)
		}
	}()

	return step(i)
}

var (
	defaultMu   sync.Mutex
	defaultPool *Pool
)

// Default returns the process-wide pool, creating it with NewPool() on first
// use.
func Default() *Pool {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultPool == nil {
		defaultPool = NewPool()
	}

	return defaultPool
}

// SetDefault installs p as the process-wide pool and closes the previous one.
func SetDefault(p *Pool) {
	defaultMu.Lock()
	prev := defaultPool
	defaultPool = p
	defaultMu.Unlock()
	if prev != nil && prev != p {
		prev.Close()
	}
}

// For runs step over [first, last] on the default pool.
func For(first, last int, step func(i int) error) error {
	return Default().For(first, last, step)
}

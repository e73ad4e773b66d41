// SPDX-License-Identifier: MIT

package parallel

// Policy selects how an index range is split across workers.
type Policy int

const (
	// Block assigns each worker one contiguous block.
	Block Policy = iota
	// Equidistant assigns worker k the indices first+k, first+k+threads, ...
	Equidistant
)

// String returns "block" or "equidistant".
func (p Policy) String() string {
	if p == Equidistant {
		return "equidistant"
	}

	return "block"
}

// ParsePolicy maps "block"/"equidistant" to a Policy.
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "block", "":
		return Block, true
	case "equidistant", "strided":
		return Equidistant, true
	default:
		return Block, false
	}
}

// Range is the set of indices one worker executes: First, First+Stride, ...
// up to and including Last. An empty Range has First > Last.
type Range struct {
	First  int
	Last   int
	Stride int
}

// Len returns the number of indices in r.
func (r Range) Len() int {
	if r.First > r.Last || r.Stride < 1 {
		return 0
	}

	return (r.Last-r.First)/r.Stride + 1
}

// Each calls fn for every index of r in increasing order.
func (r Range) Each(fn func(i int)) {
	if r.Stride < 1 {
		return
	}
	for i := r.First; i <= r.Last; i += r.Stride {
		fn(i)
	}
}

// Partition splits [first, last] into at most threads ranges following
// policy. Every index appears in exactly one range; empty ranges are omitted.
//
// Block: sizes differ by at most one, the first (n mod threads) blocks take
// the extra index.
// Complexity: O(threads).
func Partition(first, last, threads int, policy Policy) []Range {
	n := last - first + 1
	if n <= 0 {
		return nil
	}
	if threads < 1 {
		threads = 1
	}
	if threads > n {
		threads = n
	}
	out := make([]Range, 0, threads)
	if policy == Equidistant {
		for k := 0; k < threads; k++ {
			out = append(out, Range{First: first + k, Last: last, Stride: threads})
		}

		return out
	}
	base, extra := n/threads, n%threads
	start := first
	for k := 0; k < threads; k++ {
		size := base
		if k < extra {
			size++
		}
		out = append(out, Range{First: start, Last: start + size - 1, Stride: 1})
		start += size
	}

	return out
}

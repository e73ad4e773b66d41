// SPDX-License-Identifier: MIT

package distance

import (
	"math"
	"strings"
)

// Metric is a named distance between two sequences.
type Metric struct {
	Name string
	Fn   func(a, b []float64) (float64, error)
}

var (
	// Euclidean is sqrt(Σ (a[i]-b[i])²).
	Euclidean = Metric{Name: "euclidean", Fn: pointwise(func(acc, d float64) float64 { return acc + d*d }, math.Sqrt)}
	// Manhattan is Σ |a[i]-b[i]|.
	Manhattan = Metric{Name: "manhattan", Fn: pointwise(func(acc, d float64) float64 { return acc + math.Abs(d) }, nil)}
	// Chebyshev is max |a[i]-b[i]|.
	Chebyshev = Metric{Name: "chebyshev", Fn: pointwise(func(acc, d float64) float64 { return math.Max(acc, math.Abs(d)) }, nil)}
	// Cosine is 1 - a·b / (|a||b|); zero vectors are at distance 1 from
	// everything but themselves.
	Cosine = Metric{Name: "cosine", Fn: cosine}
)

// DTWMetric wraps DTW with opts as a Metric.
func DTWMetric(opts ...Option) Metric {
	return Metric{Name: "dtw", Fn: func(a, b []float64) (float64, error) { return DTW(a, b, opts...) }}
}

// Metrics lists the metrics ParseMetric knows, DTW with default options.
func Metrics() []Metric {
	return []Metric{Euclidean, Manhattan, Chebyshev, Cosine, DTWMetric()}
}

// ParseMetric returns the metric called name (case-insensitive).
func ParseMetric(name string) (Metric, error) {
	for _, m := range Metrics() {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}

	return Metric{}, distanceErrorf("ParseMetric("+name+")", ErrUnknownMetric)
}

// pointwise builds a metric folding the differences a[i]-b[i] with step and
// finishing with post (nil: identity).
func pointwise(step func(acc, d float64) float64, post func(float64) float64) func(a, b []float64) (float64, error) {
	return func(a, b []float64) (float64, error) {
		if len(a) != len(b) {
			return 0, ErrLengthMismatch
		}
		var acc float64
		for i := range a {
			acc = step(acc, a[i]-b[i])
		}
		if post != nil {
			acc = post(acc)
		}
		return acc, nil
	}
}

func cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrLengthMismatch
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		if na == nb {
			return 0, nil
		}
		return 1, nil
	}

	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb)), nil
}

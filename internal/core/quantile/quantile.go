// Package quantile computes linearly interpolated order statistics.
package quantile

import (
	"math"
	"sort"
)

// At returns the τ-quantile of xs: the sample is sorted, the fractional index
// (n-1)·τ is taken and the two neighbouring order statistics are interpolated.
// An empty sample yields 0. τ is clamped into [0, 1] and NaN is read as 0.
// xs is not modified.
func At(xs []float64, tau float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	switch {
	case math.IsNaN(tau), tau < 0:
		tau = 0
	case tau > 1:
		tau = 1
	}

	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	pos := float64(n-1) * tau
	base := int(math.Floor(pos))
	frac := pos - float64(base)
	if base+1 < n {
		return sorted[base] + frac*(sorted[base+1]-sorted[base])
	}
	return sorted[base]
}

// AtInts is At over integer counts.
func AtInts(xs []int, tau float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	fs := make([]float64, len(xs))
	for i, x := range xs {
		fs[i] = float64(x)
	}
	return At(fs, tau)
}

// Package effect summarizes per-edge effect values and the network-level effect.
package effect

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/agenthands/cograph/internal/core/model"
	"github.com/agenthands/cograph/internal/core/quantile"
)

// Band thresholds. Fixed by design, not configurable.
const (
	PremiumAbove = 0.05
	PenaltyBelow = -0.05
)

// Summary holds the derived scalars of one edge.
type Summary struct {
	AvgBeta            float64
	AvgCitations       float64
	CitationAtQuantile float64
}

// Mean is the arithmetic mean, 0 for an empty sample.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// Summarize derives the edge scalars from its effect and citation lists.
func Summarize(effects, citations []float64, tau float64) Summary {
	return Summary{
		AvgBeta:            Mean(effects),
		AvgCitations:       Mean(citations),
		CitationAtQuantile: quantile.At(citations, tau),
	}
}

// Network is the mean of every edge's AvgBeta weighted by its citation
// quantile, each weight floored at 1. No edges yields 0.
func Network(edges []model.Edge) float64 {
	if len(edges) == 0 {
		return 0
	}
	betas := make([]float64, len(edges))
	weights := make([]float64, len(edges))
	for i, e := range edges {
		betas[i] = e.AvgBeta
		weights[i] = math.Max(e.CitationAtQuantile, 1)
	}
	return stat.Mean(betas, weights)
}

// Classify maps an effect onto its band.
func Classify(v float64) model.Band {
	switch {
	case v > PremiumAbove:
		return model.Premium
	case v < PenaltyBelow:
		return model.Penalty
	}
	return model.Neutral
}

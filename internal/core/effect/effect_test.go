package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/cograph/internal/core/model"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{0.5, -0.1}, []float64{40, 25}, 0.5)

	assert.InDelta(t, 0.2, s.AvgBeta, 1e-12)
	assert.InDelta(t, 32.5, s.AvgCitations, 1e-12)
	assert.InDelta(t, 32.5, s.CitationAtQuantile, 1e-12)

	empty := Summarize(nil, nil, 0.5)
	assert.Equal(t, Summary{}, empty)
}

func TestNetwork_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Network(nil))
}

func TestNetwork_WeightFloor(t *testing.T) {
	// zero-citation edges still weigh 1
	edges := []model.Edge{
		{AvgBeta: 0.4, CitationAtQuantile: 0},
		{AvgBeta: -0.2, CitationAtQuantile: 0},
	}
	assert.InDelta(t, 0.1, Network(edges), 1e-12)
}

func TestNetwork_CitationWeighted(t *testing.T) {
	edges := []model.Edge{
		{AvgBeta: 0.5, CitationAtQuantile: 9},
		{AvgBeta: -0.5, CitationAtQuantile: 1},
	}
	// (0.5*9 - 0.5*1) / 10
	assert.InDelta(t, 0.4, Network(edges), 1e-12)
}

func TestNetwork_Bounded(t *testing.T) {
	edges := []model.Edge{
		{AvgBeta: -0.3, CitationAtQuantile: 12.5},
		{AvgBeta: 0.1, CitationAtQuantile: 0.2},
		{AvgBeta: 0.8, CitationAtQuantile: 3},
		{AvgBeta: 0.0, CitationAtQuantile: 100},
	}
	v := Network(edges)
	assert.GreaterOrEqual(t, v, -0.3)
	assert.LessOrEqual(t, v, 0.8)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, model.Premium, Classify(0.051))
	assert.Equal(t, model.Neutral, Classify(0.05))
	assert.Equal(t, model.Neutral, Classify(0))
	assert.Equal(t, model.Neutral, Classify(-0.05))
	assert.Equal(t, model.Penalty, Classify(-0.06))
}

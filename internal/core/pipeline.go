// Package core composes the aggregation stages into a single pure transform:
// records and a parameter bundle in, graph, itemsets and network effect out.
// Nothing is retained between invocations.
package core

import (
	"context"

	"github.com/agenthands/cograph/internal/core/aggregate"
	"github.com/agenthands/cograph/internal/core/community"
	"github.com/agenthands/cograph/internal/core/effect"
	"github.com/agenthands/cograph/internal/core/filter"
	"github.com/agenthands/cograph/internal/core/itemset"
	"github.com/agenthands/cograph/internal/core/model"
)

// Run executes the pipeline synchronously.
func Run(records []model.Record, p model.Params) model.Result {
	sel := filter.Select(records, p)
	g := aggregate.Build(sel, p)
	return assemble(records, sel, g, p)
}

// RunParallel executes the pipeline with the per-category aggregation fanned
// out over at most limit goroutines. Its result equals Run's.
func RunParallel(ctx context.Context, records []model.Record, p model.Params, limit int) (model.Result, error) {
	sel := filter.Select(records, p)
	g, err := aggregate.BuildParallel(ctx, sel, p, limit)
	if err != nil {
		return model.Result{}, err
	}
	return assemble(records, sel, g, p), nil
}

func assemble(records []model.Record, sel filter.Selection, g aggregate.Graph, p model.Params) model.Result {
	tau := p.ClampedTau()

	var communities []model.Community
	if d := community.NewDetector(p.Communities); d != nil {
		communities = d.Detect(g.Nodes, g.Edges)
	}
	community.Assign(g.Nodes, communities)

	network := effect.Network(g.Edges)

	stats := model.Stats{Records: len(records), Selected: make(map[string]int, model.NumCategories)}
	for _, c := range model.Categories {
		if p.Active(c) {
			stats.Selected[c.String()] = len(sel[c])
		}
	}

	return model.Result{
		Nodes:         g.Nodes,
		Edges:         g.Edges,
		Combinations:  itemset.TopEdges(g.Edges, orDefault(p.CombinationK, model.DefaultCombinationK)),
		Clusters:      itemset.Clusters(itemset.Combinations(sel, p.Window), orDefault(p.ClusterK, model.DefaultClusterK), tau),
		NetworkEffect: network,
		Band:          effect.Classify(network),
		Communities:   communities,
		Stats:         stats,
	}
}

func orDefault(k, def int) int {
	if k <= 0 {
		return def
	}
	return k
}

// Package aggregate builds the code co-occurrence graph from selected records.
//
// Theoretical and methodological records densify their own code list: every
// unordered pair of distinct codes becomes an edge. Cross records contribute
// exactly one edge per (methodological, theoretical) pair. Edge count therefore
// grows quadratically with list size for the former and linearly for the latter.
package aggregate

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/agenthands/cograph/internal/core/codes"
	"github.com/agenthands/cograph/internal/core/effect"
	"github.com/agenthands/cograph/internal/core/filter"
	"github.com/agenthands/cograph/internal/core/model"
	"github.com/agenthands/cograph/internal/core/quantile"
)

type rsStat struct {
	sum   float64
	count int
}

func (s *rsStat) add(v float64) {
	s.sum += v
	s.count++
}

func (s *rsStat) merge(o rsStat) {
	s.sum += o.sum
	s.count += o.count
}

func (s rsStat) mean() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

type nodeAcc struct {
	category  model.Category
	total     rsStat
	byCat     [model.NumCategories]rsStat
	years     map[int]struct{}
	citations []float64
}

type edgeAcc struct {
	source, target string
	typ            model.Category
	weight         float64
	count          int
	effects        []float64
	citations      []float64
}

// Builder accumulates nodes and edges for a single pipeline run. It is not
// safe for concurrent use; parallel builds use one Builder per category.
type Builder struct {
	window string
	nodes  map[string]*nodeAcc
	edges  map[string]*edgeAcc
}

func NewBuilder(window string) *Builder {
	return &Builder{
		window: window,
		nodes:  make(map[string]*nodeAcc),
		edges:  make(map[string]*edgeAcc),
	}
}

// Graph is an immutable snapshot of a Builder. Nodes are sorted by id and
// edges by canonical key.
type Graph struct {
	Nodes []model.Node
	Edges []model.Edge
}

// Add folds one record selected under category c into the builder.
func (b *Builder) Add(c model.Category, r model.Record) {
	rs := r.RSFor(c)
	citation := float64(r.Citation(b.window))

	if c == model.Cross {
		for _, p := range r.Cross {
			meth := codes.Normalize(p.Methodological)
			theo := codes.Normalize(p.Theoretical)
			if meth == "" || theo == "" {
				continue
			}
			b.addNode(meth, model.Methodological, c, rs, r.Year, citation)
			b.addNode(theo, model.Theoretical, c, rs, r.Year, citation)
			if meth != theo {
				b.addEdge(meth, theo, c, rs, citation)
			}
		}
		return
	}

	list := codes.Dedupe(r.Codes(c))
	for _, code := range list {
		b.addNode(code, c, c, rs, r.Year, citation)
	}
	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			b.addEdge(list[i], list[j], c, rs, citation)
		}
	}
}

// AddAll folds every record of recs under category c.
func (b *Builder) AddAll(c model.Category, recs []model.Record) {
	for _, r := range recs {
		b.Add(c, r)
	}
}

func (b *Builder) addNode(code string, category, slot model.Category, rs float64, year int, citation float64) {
	n, ok := b.nodes[code]
	if !ok {
		// first category seen wins
		n = &nodeAcc{category: category, years: make(map[int]struct{})}
		b.nodes[code] = n
	}
	n.total.add(rs)
	n.byCat[slot].add(rs)
	n.years[year] = struct{}{}
	n.citations = append(n.citations, citation)
}

func (b *Builder) addEdge(x, y string, typ model.Category, rs, citation float64) {
	source, target, key := codes.EdgeKey(x, y)
	e, ok := b.edges[key]
	if !ok {
		e = &edgeAcc{source: source, target: target, typ: typ}
		b.edges[key] = e
	}
	e.weight += rs
	e.count++
	e.effects = append(e.effects, rs)
	e.citations = append(e.citations, citation)
}

// Merge adds every accumulator of o into b by key. Entries new to b keep the
// category o assigned them, so merging in canonical category order reproduces
// first-write-wins.
func (b *Builder) Merge(o *Builder) {
	for code, on := range o.nodes {
		n, ok := b.nodes[code]
		if !ok {
			n = &nodeAcc{category: on.category, years: make(map[int]struct{}, len(on.years))}
			b.nodes[code] = n
		}
		n.total.merge(on.total)
		for i := range n.byCat {
			n.byCat[i].merge(on.byCat[i])
		}
		for y := range on.years {
			n.years[y] = struct{}{}
		}
		n.citations = append(n.citations, on.citations...)
	}
	for key, oe := range o.edges {
		e, ok := b.edges[key]
		if !ok {
			e = &edgeAcc{source: oe.source, target: oe.target, typ: oe.typ}
			b.edges[key] = e
		}
		e.weight += oe.weight
		e.count += oe.count
		e.effects = append(e.effects, oe.effects...)
		e.citations = append(e.citations, oe.citations...)
	}
}

// Snapshot derives the read-side view at quantile tau.
func (b *Builder) Snapshot(tau float64) Graph {
	g := Graph{
		Nodes: make([]model.Node, 0, len(b.nodes)),
		Edges: make([]model.Edge, 0, len(b.edges)),
	}

	for code, n := range b.nodes {
		years := make([]int, 0, len(n.years))
		for y := range n.years {
			years = append(years, y)
		}
		sort.Ints(years)

		g.Nodes = append(g.Nodes, model.Node{
			ID:                  code,
			Category:            n.category,
			Count:               n.total.count,
			AvgRS:               n.total.mean(),
			AvgRSTheoretical:    n.byCat[model.Theoretical].mean(),
			AvgRSMethodological: n.byCat[model.Methodological].mean(),
			AvgRSCross:          n.byCat[model.Cross].mean(),
			CitationAtQuantile:  quantile.At(n.citations, tau),
			Years:               years,
			Community:           -1,
		})
	}
	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].ID < g.Nodes[j].ID })

	for _, e := range b.edges {
		s := effect.Summarize(e.effects, e.citations, tau)
		g.Edges = append(g.Edges, model.Edge{
			Source:             e.source,
			Target:             e.target,
			Type:               e.typ,
			Weight:             e.weight,
			Count:              e.count,
			AvgBeta:            s.AvgBeta,
			AvgCitations:       s.AvgCitations,
			CitationAtQuantile: s.CitationAtQuantile,
		})
	}
	sort.Slice(g.Edges, func(i, j int) bool { return g.Edges[i].Key() < g.Edges[j].Key() })

	return g
}

// Build aggregates a selection. Each category is accumulated in its own
// builder and merged in canonical order, the same arithmetic BuildParallel uses,
// so both produce bit-identical graphs.
func Build(sel filter.Selection, p model.Params) Graph {
	out := NewBuilder(p.Window)
	for _, c := range model.Categories {
		if len(sel[c]) == 0 {
			continue
		}
		part := NewBuilder(p.Window)
		part.AddAll(c, sel[c])
		out.Merge(part)
	}
	return out.Snapshot(p.ClampedTau())
}

// BuildParallel is Build with one goroutine per category, at most limit at a
// time (limit <= 0 means no limit).
func BuildParallel(ctx context.Context, sel filter.Selection, p model.Params, limit int) (Graph, error) {
	var parts [model.NumCategories]*Builder

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, c := range model.Categories {
		if len(sel[c]) == 0 {
			continue
		}
		c := c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			part := NewBuilder(p.Window)
			part.AddAll(c, sel[c])
			parts[c] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Graph{}, err
	}

	out := NewBuilder(p.Window)
	for _, part := range parts {
		if part != nil {
			out.Merge(part)
		}
	}
	return out.Snapshot(p.ClampedTau()), nil
}

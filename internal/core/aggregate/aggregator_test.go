package aggregate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/cograph/internal/core/filter"
	"github.com/agenthands/cograph/internal/core/model"
)

func theo(rs float64, year, cites int, codes ...string) model.Record {
	r := model.Record{Theoretical: codes, Year: year, Citations: map[string]int{"5years": cites}}
	r.RS[model.Theoretical] = rs
	return r
}

func cross(rs float64, year, cites int, pairs ...model.CodePair) model.Record {
	r := model.Record{Cross: pairs, Year: year, Citations: map[string]int{"5years": cites}}
	r.RS[model.Cross] = rs
	return r
}

func nodeByID(g Graph, id string) (model.Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return model.Node{}, false
}

func edgeByKey(g Graph, key string) (model.Edge, bool) {
	for _, e := range g.Edges {
		if e.Key() == key {
			return e, true
		}
	}
	return model.Edge{}, false
}

func TestBuild_TwoRecordGraph(t *testing.T) {
	var sel filter.Selection
	sel[model.Theoretical] = []model.Record{
		theo(0.5, 2009, 40, "G13", "G12"),
		theo(0.36, 2010, 25, "E44", "G12"),
	}
	p := model.DefaultParams()

	g := Build(sel, p)

	require.Len(t, g.Nodes, 3)
	g12, ok := nodeByID(g, "G12")
	require.True(t, ok)
	assert.Equal(t, 2, g12.Count)
	assert.InDelta(t, 32.5, g12.CitationAtQuantile, 1e-12)
	assert.InDelta(t, 0.43, g12.AvgRS, 1e-12)
	assert.InDelta(t, 0.43, g12.AvgRSTheoretical, 1e-12)
	assert.Equal(t, 0.0, g12.AvgRSCross)
	assert.Equal(t, []int{2009, 2010}, g12.Years)
	assert.Equal(t, model.Theoretical, g12.Category)

	require.Len(t, g.Edges, 2)
	for _, key := range []string{"G12-G13", "E44-G12"} {
		e, ok := edgeByKey(g, key)
		require.True(t, ok, key)
		assert.Equal(t, 1, e.Count)
		assert.Equal(t, model.Theoretical, e.Type)
	}
}

func TestBuilder_CliqueExpansion(t *testing.T) {
	b := NewBuilder("5years")
	b.Add(model.Theoretical, theo(0.2, 2012, 3, "A10", "B10", "C10"))

	g := b.Snapshot(0.5)

	require.Len(t, g.Edges, 3)
	assert.Equal(t, "A10-B10", g.Edges[0].Key())
	assert.Equal(t, "A10-C10", g.Edges[1].Key())
	assert.Equal(t, "B10-C10", g.Edges[2].Key())
	for _, e := range g.Edges {
		assert.Equal(t, 1, e.Count)
		assert.InDelta(t, 0.2, e.Weight, 1e-12)
	}
}

func TestBuilder_CrossIsNotAClique(t *testing.T) {
	b := NewBuilder("5years")
	b.Add(model.Cross, cross(-0.4, 2012, 10,
		model.CodePair{Methodological: "C21", Theoretical: "G12"},
		model.CodePair{Methodological: "C23", Theoretical: "E44"},
	))

	g := b.Snapshot(0.5)

	require.Len(t, g.Edges, 2)
	assert.Len(t, g.Nodes, 4)
	for _, e := range g.Edges {
		assert.Equal(t, model.Cross, e.Type)
		assert.InDelta(t, -0.4, e.Weight, 1e-12)
		assert.InDelta(t, -0.4, e.AvgBeta, 1e-12)
	}

	c21, _ := nodeByID(g, "C21")
	assert.Equal(t, model.Methodological, c21.Category)
	assert.InDelta(t, -0.4, c21.AvgRSCross, 1e-12)
	assert.Equal(t, 0.0, c21.AvgRSMethodological)

	g12, _ := nodeByID(g, "G12")
	assert.Equal(t, model.Theoretical, g12.Category)
}

func TestBuilder_EdgeKeysSymmetric(t *testing.T) {
	b1 := NewBuilder("5years")
	b1.Add(model.Theoretical, theo(0.3, 2012, 1, "A10", "B10"))
	b2 := NewBuilder("5years")
	b2.Add(model.Theoretical, theo(0.3, 2012, 1, "B10", "A10"))

	assert.Equal(t, b1.Snapshot(0.5).Edges, b2.Snapshot(0.5).Edges)

	b1.Add(model.Theoretical, theo(0.3, 2012, 1, "B10", "A10"))
	g := b1.Snapshot(0.5)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, 2, g.Edges[0].Count)
}

func TestBuilder_NormalizesBeforeKeying(t *testing.T) {
	b := NewBuilder("5years")
	b.Add(model.Theoretical, theo(0.3, 2012, 1, "G1", "E44"))
	b.Add(model.Theoretical, theo(0.3, 2013, 1, "G10", "E44"))

	g := b.Snapshot(0.5)

	require.Len(t, g.Nodes, 2)
	g10, ok := nodeByID(g, "G10")
	require.True(t, ok)
	assert.Equal(t, 2, g10.Count)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "E44-G10", g.Edges[0].Key())
}

func TestBuilder_FirstCategoryWins(t *testing.T) {
	b := NewBuilder("5years")
	m := model.Record{Methodological: []string{"C21", "C23"}, Year: 2012}
	m.RS[model.Methodological] = 0.1
	b.Add(model.Methodological, m)
	b.Add(model.Theoretical, theo(0.2, 2012, 0, "C21", "G12"))

	c21, _ := nodeByID(b.Snapshot(0.5), "C21")
	assert.Equal(t, model.Methodological, c21.Category)
	assert.Equal(t, 2, c21.Count)
	assert.InDelta(t, 0.15, c21.AvgRS, 1e-12)
	assert.InDelta(t, 0.1, c21.AvgRSMethodological, 1e-12)
	assert.InDelta(t, 0.2, c21.AvgRSTheoretical, 1e-12)
}

func TestBuilder_MissingWindowCountsAsZero(t *testing.T) {
	b := NewBuilder("1years")
	b.Add(model.Theoretical, theo(0.3, 2012, 99, "A10", "B10"))

	g := b.Snapshot(0.5)
	assert.Equal(t, 0.0, g.Edges[0].AvgCitations)
	assert.Equal(t, 0.0, g.Nodes[0].CitationAtQuantile)
}

func TestBuild_EmptySelection(t *testing.T) {
	g := Build(filter.Selection{}, model.DefaultParams())
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
}

func TestBuildParallel_MatchesBuild(t *testing.T) {
	var sel filter.Selection
	sel[model.Theoretical] = []model.Record{
		theo(0.5, 2009, 40, "G13", "G12", "E44"),
		theo(0.36, 2010, 25, "E44", "G12"),
	}
	m := model.Record{Methodological: []string{"C21", "G12"}, Year: 2011, Citations: map[string]int{"5years": 7}}
	m.RS[model.Methodological] = 0.17
	sel[model.Methodological] = []model.Record{m}
	sel[model.Cross] = []model.Record{
		cross(-0.8, 2012, 3, model.CodePair{Methodological: "C21", Theoretical: "G13"}),
		cross(0.3, 2013, 11, model.CodePair{Methodological: "C23", Theoretical: "G12"}),
	}
	p := model.DefaultParams()

	seq := Build(sel, p)
	par, err := BuildParallel(context.Background(), sel, p, 2)

	require.NoError(t, err)
	assert.Equal(t, seq, par)
}

func TestBuildParallel_Cancelled(t *testing.T) {
	var sel filter.Selection
	sel[model.Theoretical] = []model.Record{theo(0.5, 2009, 40, "G13", "G12")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildParallel(ctx, sel, model.DefaultParams(), 0)
	assert.ErrorIs(t, err, context.Canceled)
}

package community

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/cograph/internal/core/model"
)

func nodes(ids ...string) []model.Node {
	out := make([]model.Node, len(ids))
	for i, id := range ids {
		out[i] = model.Node{ID: id, Community: -1}
	}
	return out
}

func edge(a, b string) model.Edge {
	return model.Edge{Source: a, Target: b, Count: 1}
}

func TestComponents_Detect(t *testing.T) {
	ns := nodes("A10", "B10", "C10", "D10")
	es := []model.Edge{
		edge("A10", "B10"),
		edge("B10", "C10"),
		// D10 is isolated
	}

	communities := NewComponentsDetector().Detect(ns, es)

	// A-B-C is one community; D is a singleton and dropped
	require.Len(t, communities, 1)
	assert.Equal(t, []string{"A10", "B10", "C10"}, communities[0].Members)
	assert.Equal(t, 0, communities[0].ID)
}

func TestComponents_MultipleCommunities(t *testing.T) {
	ns := nodes("A10", "B10", "C10", "D10", "E10")
	es := []model.Edge{
		edge("A10", "B10"),
		edge("C10", "D10"),
		edge("D10", "E10"),
	}

	communities := NewComponentsDetector().Detect(ns, es)

	require.Len(t, communities, 2)
	// larger first
	assert.Equal(t, []string{"C10", "D10", "E10"}, communities[0].Members)
	assert.Equal(t, []string{"A10", "B10"}, communities[1].Members)
}

func TestComponents_IgnoresUnknownEndpoints(t *testing.T) {
	communities := NewComponentsDetector().Detect(nodes("A10"), []model.Edge{edge("A10", "Z99")})
	assert.Empty(t, communities)
}

func TestAssign(t *testing.T) {
	ns := nodes("A10", "B10", "C10")
	Assign(ns, []model.Community{{ID: 3, Members: []string{"A10", "C10"}}})

	assert.Equal(t, 3, ns[0].Community)
	assert.Equal(t, -1, ns[1].Community)
	assert.Equal(t, 3, ns[2].Community)
}

func TestNewDetector(t *testing.T) {
	assert.Nil(t, NewDetector(model.CommunityNone))
	assert.IsType(t, &ComponentsDetector{}, NewDetector(model.CommunityComponents))
	assert.IsType(t, &LabelPropagationDetector{}, NewDetector(model.CommunityLPA))
	assert.IsType(t, &LabelPropagationDetector{}, NewDetector(""))
}

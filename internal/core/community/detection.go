package community

import (
	"sort"

	"github.com/agenthands/cograph/internal/core/model"
)

// Detector groups the codes of a co-occurrence graph into communities.
type Detector interface {
	Detect(nodes []model.Node, edges []model.Edge) []model.Community
}

// NewDetector returns the detector for a model.Community* method name, or nil
// for "none". Unknown names fall back to label propagation.
func NewDetector(method string) Detector {
	switch method {
	case model.CommunityNone:
		return nil
	case model.CommunityComponents:
		return NewComponentsDetector()
	}
	return NewLabelPropagationDetector()
}

// ComponentsDetector treats every connected component as a community.
type ComponentsDetector struct{}

func NewComponentsDetector() *ComponentsDetector {
	return &ComponentsDetector{}
}

func (d *ComponentsDetector) Detect(nodes []model.Node, edges []model.Edge) []model.Community {
	known := make(map[string]bool, len(nodes))
	adj := make(map[string][]string)

	for _, n := range nodes {
		known[n.ID] = true
	}
	for _, e := range edges {
		// Only edges whose endpoints are both in the node list count
		if !known[e.Source] || !known[e.Target] {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}

	visited := make(map[string]bool)
	var groups [][]string
	for _, n := range nodes {
		if visited[n.ID] {
			continue
		}
		var component []string
		d.dfs(n.ID, adj, visited, &component)
		if len(component) >= 2 {
			groups = append(groups, component)
		}
	}
	return number(groups)
}

func (d *ComponentsDetector) dfs(u string, adj map[string][]string, visited map[string]bool, component *[]string) {
	visited[u] = true
	*component = append(*component, u)
	for _, v := range adj[u] {
		if !visited[v] {
			d.dfs(v, adj, visited, component)
		}
	}
}

// Assign writes each node's community id, -1 for nodes outside every community.
func Assign(nodes []model.Node, communities []model.Community) {
	index := make(map[string]int)
	for _, c := range communities {
		for _, m := range c.Members {
			index[m] = c.ID
		}
	}
	for i := range nodes {
		if id, ok := index[nodes[i].ID]; ok {
			nodes[i].Community = id
		} else {
			nodes[i].Community = -1
		}
	}
}

// number sorts members, orders groups by size (then first member) and assigns ids.
func number(groups [][]string) []model.Community {
	for _, g := range groups {
		sort.Strings(g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i]) != len(groups[j]) {
			return len(groups[i]) > len(groups[j])
		}
		return groups[i][0] < groups[j][0]
	})
	out := make([]model.Community, len(groups))
	for i, g := range groups {
		out[i] = model.Community{ID: i, Members: g}
	}
	return out
}

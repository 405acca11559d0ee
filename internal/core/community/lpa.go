package community

import (
	"sort"

	"github.com/agenthands/cograph/internal/core/model"
)

// LabelPropagationDetector implements community detection using the Label
// Propagation Algorithm, weighting neighbours by edge contribution count.
type LabelPropagationDetector struct {
	MaxIterations int
}

func NewLabelPropagationDetector() *LabelPropagationDetector {
	return &LabelPropagationDetector{
		MaxIterations: 20,
	}
}

func (d *LabelPropagationDetector) Detect(nodes []model.Node, edges []model.Edge) []model.Community {
	if len(nodes) == 0 {
		return nil
	}

	adj := make(map[string]map[string]int) // node -> neighbour -> weight
	for _, n := range nodes {
		adj[n.ID] = make(map[string]int)
	}
	for _, e := range edges {
		if _, ok := adj[e.Source]; !ok {
			continue
		}
		if _, ok := adj[e.Target]; !ok {
			continue
		}
		w := e.Count
		if w < 1 {
			w = 1
		}
		adj[e.Source][e.Target] += w
		adj[e.Target][e.Source] += w
	}

	// Each node starts with its own label. Processing order is the sorted id
	// list so runs are reproducible.
	ids := make([]string, len(nodes))
	labels := make(map[string]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
		labels[n.ID] = n.ID
	}
	sort.Strings(ids)

	for iter := 0; iter < d.MaxIterations; iter++ {
		changed := 0

		for _, u := range ids {
			neighbours := adj[u]
			if len(neighbours) == 0 {
				continue
			}

			counts := make(map[string]int)
			maxCount := 0
			for v, w := range neighbours {
				label := labels[v]
				counts[label] += w
				if counts[label] > maxCount {
					maxCount = counts[label]
				}
			}

			var candidates []string
			for label, count := range counts {
				if count == maxCount {
					candidates = append(candidates, label)
				}
			}
			// lexicographically largest wins ties
			sort.Strings(candidates)
			best := candidates[len(candidates)-1]

			if labels[u] != best {
				labels[u] = best
				changed++
			}
		}

		if changed == 0 {
			break
		}
	}

	byLabel := make(map[string][]string)
	for _, id := range ids {
		byLabel[labels[id]] = append(byLabel[labels[id]], id)
	}

	var groups [][]string
	for _, members := range byLabel {
		if len(members) >= 2 {
			groups = append(groups, members)
		}
	}
	return number(groups)
}

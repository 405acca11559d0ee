package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agenthands/cograph/internal/core/model"
)

// Catalog resolves a code to its human-readable description.
type Catalog interface {
	Describe(code string) (string, bool)
}

// CodeCount is one of the most frequent codes of a community.
type CodeCount struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Count       int    `json:"count"`
}

// CommunitySummary is a statistical description of one community.
type CommunitySummary struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Size          int            `json:"size"`
	TopCodes      []CodeCount    `json:"top_codes"`
	MeanRS        float64        `json:"mean_rs"`
	InternalEdges int            `json:"internal_edges"`
	Dominant      model.Category `json:"dominant_category"`
	Summary       string         `json:"summary"`
}

type Summarizer struct {
	Catalog  Catalog // may be nil
	TopCodes int
}

func NewSummarizer(catalog Catalog) *Summarizer {
	return &Summarizer{
		Catalog:  catalog,
		TopCodes: 5,
	}
}

// SummarizeCommunities describes every community of a built graph.
func (s *Summarizer) SummarizeCommunities(communities []model.Community, nodes []model.Node, edges []model.Edge) []CommunitySummary {
	byID := make(map[string]model.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	out := make([]CommunitySummary, 0, len(communities))
	for _, c := range communities {
		members := make([]model.Node, 0, len(c.Members))
		for _, id := range c.Members {
			if n, ok := byID[id]; ok {
				members = append(members, n)
			}
		}
		out = append(out, s.SummarizeCommunity(c.ID, members, edges))
	}
	return out
}

// SummarizeCommunity describes one community from its member nodes.
func (s *Summarizer) SummarizeCommunity(id int, members []model.Node, edges []model.Edge) CommunitySummary {
	cs := CommunitySummary{ID: id, Size: len(members)}
	if len(members) == 0 {
		cs.Summary = "No significant information."
		return cs
	}

	inside := make(map[string]bool, len(members))
	var perCategory [model.NumCategories]int
	var rsSum float64
	var rsCount int
	ranked := make([]model.Node, len(members))
	copy(ranked, members)
	for _, n := range members {
		inside[n.ID] = true
		if n.Category.Valid() {
			perCategory[n.Category]++
		}
		rsSum += n.AvgRS * float64(n.Count)
		rsCount += n.Count
	}
	if rsCount > 0 {
		cs.MeanRS = rsSum / float64(rsCount)
	}
	for c, count := range perCategory {
		if count > perCategory[cs.Dominant] {
			cs.Dominant = model.Category(c)
		}
	}
	for _, e := range edges {
		if inside[e.Source] && inside[e.Target] {
			cs.InternalEdges++
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].ID < ranked[j].ID
	})
	limit := s.TopCodes
	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}
	for _, n := range ranked[:limit] {
		cc := CodeCount{Code: n.ID, Count: n.Count}
		if s.Catalog != nil {
			cc.Description, _ = s.Catalog.Describe(n.ID)
		}
		cs.TopCodes = append(cs.TopCodes, cc)
	}

	cs.Name = s.GenerateCommunityName(cs.TopCodes)
	cs.Summary = fmt.Sprintf("%d codes, %d internal edges, mostly %s; mean RS %.3f; led by %s",
		cs.Size, cs.InternalEdges, cs.Dominant, cs.MeanRS, cs.Name)
	return cs
}

// GenerateCommunityName labels a community by its two leading codes,
// preferring catalog descriptions when available.
func (s *Summarizer) GenerateCommunityName(top []CodeCount) string {
	var parts []string
	for i, cc := range top {
		if i == 2 {
			break
		}
		if cc.Description != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", cc.Code, cc.Description))
		} else {
			parts = append(parts, cc.Code)
		}
	}
	return strings.Join(parts, " / ")
}

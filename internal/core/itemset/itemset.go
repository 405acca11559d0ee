// Package itemset derives multi-code combinations from selected records and
// ranks them by citation outcome.
package itemset

import (
	"sort"

	"github.com/agenthands/cograph/internal/core/codes"
	"github.com/agenthands/cograph/internal/core/effect"
	"github.com/agenthands/cograph/internal/core/filter"
	"github.com/agenthands/cograph/internal/core/model"
	"github.com/agenthands/cograph/internal/core/quantile"
)

// Combination is the code set one record contributes to one category.
type Combination struct {
	Codes    []string
	Category model.Category
	Citation int
	Year     int
}

// Combinations builds one Combination per (record, active category) holding
// at least two distinct codes. Records are visited category by category in
// canonical order.
func Combinations(sel filter.Selection, window string) []Combination {
	var out []Combination
	for _, c := range model.Categories {
		for _, r := range sel[c] {
			set := codes.Set(r.Codes(c))
			if len(set) < 2 {
				continue
			}
			out = append(out, Combination{
				Codes:    set,
				Category: c,
				Citation: r.Citation(window),
				Year:     r.Year,
			})
		}
	}
	return out
}

type cluster struct {
	codes     []string
	category  model.Category
	citations []float64
	years     map[int]struct{}
}

// Clusters groups combinations sharing a code set, regardless of category
// (the first category seen is kept), and returns the top k by mean citation.
// k <= 0 returns every cluster.
func Clusters(combos []Combination, k int, tau float64) []model.Itemset {
	byKey := make(map[string]*cluster)
	var order []string
	for _, c := range combos {
		key := codes.SetKey(c.Codes)
		cl, ok := byKey[key]
		if !ok {
			cl = &cluster{codes: c.Codes, category: c.Category, years: make(map[int]struct{})}
			byKey[key] = cl
			order = append(order, key)
		}
		cl.citations = append(cl.citations, float64(c.Citation))
		cl.years[c.Year] = struct{}{}
	}

	out := make([]model.Itemset, 0, len(order))
	for _, key := range order {
		cl := byKey[key]
		years := make([]int, 0, len(cl.years))
		for y := range cl.years {
			years = append(years, y)
		}
		sort.Ints(years)
		out = append(out, model.Itemset{
			Codes:              append([]string(nil), cl.codes...),
			Type:               cl.category,
			Count:              len(cl.citations),
			AvgCitations:       effect.Mean(cl.citations),
			CitationAtQuantile: quantile.At(cl.citations, tau),
			Years:              years,
		})
	}
	rank(out)
	return top(out, k)
}

// TopEdges ranks graph edges as two-code itemsets by mean citation and
// returns the top k. k <= 0 returns every edge.
func TopEdges(edges []model.Edge, k int) []model.Itemset {
	out := make([]model.Itemset, 0, len(edges))
	for _, e := range edges {
		out = append(out, model.Itemset{
			Codes:              []string{e.Source, e.Target},
			Type:               e.Type,
			Count:              e.Count,
			AvgCitations:       e.AvgCitations,
			CitationAtQuantile: e.CitationAtQuantile,
		})
	}
	rank(out)
	return top(out, k)
}

// rank orders by mean citation, then frequency, then code set.
func rank(items []model.Itemset) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.AvgCitations != b.AvgCitations {
			return a.AvgCitations > b.AvgCitations
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return codes.SetKey(a.Codes) < codes.SetKey(b.Codes)
	})
}

func top(items []model.Itemset, k int) []model.Itemset {
	if k > 0 && len(items) > k {
		return items[:k]
	}
	return items
}

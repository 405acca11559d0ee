// Package filter selects, per category, the records that feed aggregation.
package filter

import (
	"math"
	"sort"

	"github.com/agenthands/cograph/internal/core/model"
)

// Selection holds the chosen records of each category, indexed by model.Category.
// Inactive categories hold nil.
type Selection [model.NumCategories][]model.Record

// Count returns the number of records selected across all categories.
func (s Selection) Count() int {
	n := 0
	for _, recs := range s {
		n += len(recs)
	}
	return n
}

// Select applies the year range, the per-category magnitude threshold and the
// shared top-N cap independently for every active category.
func Select(records []model.Record, p model.Params) Selection {
	var sel Selection
	for _, c := range model.Categories {
		if !p.Active(c) {
			continue
		}
		sel[c] = Category(records, c, p)
	}
	return sel
}

// Category runs the selection for a single category. The input is never reordered.
func Category(records []model.Record, c model.Category, p model.Params) []model.Record {
	threshold := p.MinRS[c]

	var kept []model.Record
	for _, r := range records {
		if r.Year < p.YearMin || r.Year > p.YearMax {
			continue
		}
		if r.Len(c) == 0 {
			continue
		}
		if math.Abs(r.RSFor(c)) < threshold {
			continue
		}
		kept = append(kept, r)
	}

	// magnitude, not sign: strong penalties rank alongside strong premiums
	sort.SliceStable(kept, func(i, j int) bool {
		return math.Abs(kept[i].RSFor(c)) > math.Abs(kept[j].RSFor(c))
	})

	if p.TopN > 0 && len(kept) > p.TopN {
		kept = kept[:p.TopN]
	}
	return kept
}

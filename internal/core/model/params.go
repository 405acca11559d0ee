package model

import (
	"fmt"
	"math"
	"strings"
)

// Community detection methods accepted by Params.Communities.
const (
	CommunityLPA        = "lpa"
	CommunityComponents = "components"
	CommunityNone       = "none"
)

const (
	DefaultClusterK     = 10
	DefaultCombinationK = 5
)

// Params is the parameter bundle of one pipeline invocation.
type Params struct {
	YearMin      int                    `json:"year_min"`
	YearMax      int                    `json:"year_max"`
	MinRS        [NumCategories]float64 `json:"min_rs"` // magnitude threshold per category
	TopN         int                    `json:"top_n"`  // <= 0 disables the cap
	Categories   []Category             `json:"categories"`
	Window       string                 `json:"window"`
	Tau          float64                `json:"tau"`
	ClusterK     int                    `json:"cluster_k"`
	CombinationK int                    `json:"combination_k"`
	Communities  string                 `json:"communities"`
}

func DefaultParams() Params {
	return Params{
		YearMin:      2009,
		YearMax:      2019,
		TopN:         50,
		Categories:   []Category{Theoretical, Methodological, Cross},
		Window:       "5years",
		Tau:          0.5,
		ClusterK:     DefaultClusterK,
		CombinationK: DefaultCombinationK,
		Communities:  CommunityLPA,
	}
}

// Active reports whether c is one of the selected categories.
func (p Params) Active(c Category) bool {
	for _, a := range p.Categories {
		if a == c {
			return true
		}
	}
	return false
}

// ClampedTau returns Tau forced into [0, 1]; NaN becomes 0.
func (p Params) ClampedTau() float64 {
	switch {
	case math.IsNaN(p.Tau), p.Tau < 0:
		return 0
	case p.Tau > 1:
		return 1
	}
	return p.Tau
}

// Key renders the bundle canonically, so equal parameter sets share a key
// regardless of category order.
func (p Params) Key() string {
	var active []string
	for _, c := range Categories {
		if p.Active(c) {
			active = append(active, c.String())
		}
	}
	return fmt.Sprintf("y=%d:%d|rs=%g,%g,%g|n=%d|c=%s|w=%s|t=%g|k=%d,%d|m=%s",
		p.YearMin, p.YearMax,
		p.MinRS[Theoretical], p.MinRS[Methodological], p.MinRS[Cross],
		p.TopN, strings.Join(active, ","), p.Window, p.Tau,
		p.ClusterK, p.CombinationK, p.Communities)
}

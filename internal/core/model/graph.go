package model

// Node is a classification code in the co-occurrence graph.
type Node struct {
	ID                  string   `json:"id"`
	Label               string   `json:"label,omitempty"` // catalog description, filled by callers
	Category            Category `json:"category"`
	Count               int      `json:"count"`
	AvgRS               float64  `json:"avg_rs"`
	AvgRSTheoretical    float64  `json:"avg_rs_theoretical"`
	AvgRSMethodological float64  `json:"avg_rs_methodological"`
	AvgRSCross          float64  `json:"avg_rs_cross"`
	CitationAtQuantile  float64  `json:"citation_at_quantile"`
	Years               []int    `json:"years"`
	Community           int      `json:"community"` // -1 when not part of any community
}

// AvgRSFor returns the per-category mean RS of the node.
func (n Node) AvgRSFor(c Category) float64 {
	switch c {
	case Theoretical:
		return n.AvgRSTheoretical
	case Methodological:
		return n.AvgRSMethodological
	case Cross:
		return n.AvgRSCross
	}
	return 0
}

// Edge is an undirected co-occurrence between two codes. Source sorts before Target.
type Edge struct {
	Source             string   `json:"source"`
	Target             string   `json:"target"`
	Type               Category `json:"type"`
	Weight             float64  `json:"weight"`
	Count              int      `json:"count"`
	AvgBeta            float64  `json:"avg_beta"`
	AvgCitations       float64  `json:"avg_citations"`
	CitationAtQuantile float64  `json:"citation_at_quantile"`
}

// Key is the canonical edge identifier.
func (e Edge) Key() string {
	return e.Source + "-" + e.Target
}

// Itemset is one ranked entry of either the cluster view or the top-combinations view.
type Itemset struct {
	Codes              []string `json:"codes"`
	Type               Category `json:"type"`
	Count              int      `json:"count"`
	AvgCitations       float64  `json:"avg_citations"`
	CitationAtQuantile float64  `json:"citation_at_quantile"`
	Years              []int    `json:"years,omitempty"`
}

// Band classifies the network effect.
type Band string

const (
	Premium Band = "PREMIUM"
	Neutral Band = "NEUTRAL"
	Penalty Band = "PENALTY"
)

// Community is a group of codes found by community detection.
type Community struct {
	ID      int      `json:"id"`
	Members []string `json:"members"`
}

// Stats reports how many records fed each category.
type Stats struct {
	Records  int            `json:"records"`
	Selected map[string]int `json:"selected"`
}

// Result is everything one pipeline invocation produces.
type Result struct {
	Nodes         []Node      `json:"nodes"`
	Edges         []Edge      `json:"edges"`
	Combinations  []Itemset   `json:"combinations"`
	Clusters      []Itemset   `json:"clusters"`
	NetworkEffect float64     `json:"network_effect"`
	Band          Band        `json:"band"`
	Communities   []Community `json:"communities"`
	Stats         Stats       `json:"stats"`
}

package model

// CodePair links one methodological code to one theoretical code.
type CodePair struct {
	Methodological string `json:"methodological"`
	Theoretical    string `json:"theoretical"`
}

// Record is one publication row. Records are treated as immutable once loaded.
type Record struct {
	Theoretical    []string               `json:"theoretical"`
	Methodological []string               `json:"methodological"`
	Cross          []CodePair             `json:"cross"`
	RS             [NumCategories]float64 `json:"rs"` // Rao-Stirling index per category, signed
	Year           int                    `json:"publication_year"`
	Citations      map[string]int         `json:"citations"` // citation window -> count
}

// RSFor returns the signed diversity index of the record for c.
func (r Record) RSFor(c Category) float64 {
	if !c.Valid() {
		return 0
	}
	return r.RS[c]
}

// Citation returns the count for window, or 0 when the window is missing.
func (r Record) Citation(window string) int {
	return r.Citations[window]
}

// Len reports how many entries the record carries for c: codes for the
// single-family lists, pairs for Cross.
func (r Record) Len(c Category) int {
	switch c {
	case Theoretical:
		return len(r.Theoretical)
	case Methodological:
		return len(r.Methodological)
	case Cross:
		return len(r.Cross)
	}
	return 0
}

// Codes returns the raw codes the record contributes to c. Cross pairs are
// flattened methodological first.
func (r Record) Codes(c Category) []string {
	switch c {
	case Theoretical:
		return r.Theoretical
	case Methodological:
		return r.Methodological
	case Cross:
		out := make([]string, 0, 2*len(r.Cross))
		for _, p := range r.Cross {
			out = append(out, p.Methodological, p.Theoretical)
		}
		return out
	}
	return nil
}

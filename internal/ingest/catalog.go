package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/agenthands/cograph/internal/core/codes"
	"github.com/agenthands/cograph/internal/errors"
)

// Catalog maps normalized codes to their descriptions.
type Catalog map[string]string

// Describe looks up a code, normalizing it first.
func (c Catalog) Describe(code string) (string, bool) {
	d, ok := c[codes.Normalize(code)]
	return d, ok
}

// Codes returns every catalogued code, sorted.
func (c Catalog) Codes() []string {
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LoadCatalog reads a code,description CSV from path.
func LoadCatalog(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening catalog %s", path)
	}
	defer f.Close()

	cat, err := ReadCatalog(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing catalog %s", path)
	}
	return cat, nil
}

// ReadCatalog reads "code" and "description" columns. Without a recognisable
// header the first two columns are used and the first row is data.
func ReadCatalog(r io.Reader) (Catalog, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	cat := make(Catalog, len(rows))
	if len(rows) == 0 {
		return cat, nil
	}

	codeCol, descCol := 0, 1
	start := 0
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "code":
			codeCol, start = i, 1
		case "description", "desc", "name":
			descCol = i
		}
	}

	for _, row := range rows[start:] {
		if codeCol >= len(row) || descCol >= len(row) {
			continue
		}
		code := codes.Normalize(row[codeCol])
		if code == "" {
			continue
		}
		cat[code] = strings.TrimSpace(row[descCol])
	}
	return cat, nil
}

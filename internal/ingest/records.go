// Package ingest loads publication records and the code catalog from CSV,
// and keeps the loaded dataset current as the source file changes.
package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agenthands/cograph/internal/core/model"
	"github.com/agenthands/cograph/internal/errors"
)

// Column names of the records table.
const (
	ColTheoretical      = "theoretical"
	ColMethodological   = "methodological"
	ColCross            = "cross"
	ColRSTheoretical    = "rao_stirling_theoretical"
	ColRSMethodological = "rao_stirling_methodological"
	ColRSCross          = "rao_stirling_cross"
	ColYear             = "publication_year"
	CitationPrefix      = "citation_"
)

// LoadStats describes one load. Malformed cells were replaced by their
// default (empty list or zero) and did not drop the row.
type LoadStats struct {
	Rows           int      `json:"rows"`
	MalformedCells int      `json:"malformed_cells"`
	MalformedRows  int      `json:"malformed_rows"`
	Windows        []string `json:"windows"`
}

// LoadRecords reads a records CSV (or TSV, by extension) from path.
func LoadRecords(path string) ([]model.Record, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, errors.Wrapf(err, "opening records %s", path)
	}
	defer f.Close()

	comma := ','
	if strings.ToLower(filepath.Ext(path)) == ".tsv" {
		comma = '\t'
	}
	recs, stats, err := readRecords(f, comma)
	if err != nil {
		return nil, stats, errors.Wrapf(err, "parsing records %s", path)
	}
	return recs, stats, nil
}

// ReadRecords reads a comma-separated records table. The first row is the header.
func ReadRecords(r io.Reader) ([]model.Record, LoadStats, error) {
	return readRecords(r, ',')
}

func readRecords(r io.Reader, comma rune) ([]model.Record, LoadStats, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var stats LoadStats

	header, err := reader.Read()
	if err == io.EOF {
		return nil, stats, nil
	}
	if err != nil {
		return nil, stats, errors.Wrap(err, "reading header")
	}

	cols := make(map[string]int, len(header))
	windows := make(map[string]int)
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		cols[name] = i
		if w, ok := strings.CutPrefix(name, CitationPrefix); ok && w != "" {
			windows[w] = i
		}
	}
	for w := range windows {
		stats.Windows = append(stats.Windows, w)
	}
	sort.Strings(stats.Windows)

	var records []model.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, errors.Wrapf(err, "reading row %d", stats.Rows+2)
		}
		stats.Rows++

		rec, bad := parseRow(row, cols, windows)
		if bad > 0 {
			stats.MalformedCells += bad
			stats.MalformedRows++
		}
		records = append(records, rec)
	}
	return records, stats, nil
}

// parseRow never fails; it returns how many cells were replaced by defaults.
func parseRow(row []string, cols, windows map[string]int) (model.Record, int) {
	bad := 0
	cell := func(name string) string {
		if i, ok := cols[name]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}
	list := func(name string) []string {
		v, ok := ParseList(cell(name))
		if !ok {
			bad++
		}
		return v
	}
	num := func(name string) float64 {
		v, ok := ParseFloat(cell(name))
		if !ok {
			bad++
		}
		return v
	}

	var rec model.Record
	rec.Theoretical = list(ColTheoretical)
	rec.Methodological = list(ColMethodological)
	pairs, ok := ParsePairs(cell(ColCross))
	if !ok {
		bad++
	}
	rec.Cross = pairs

	rec.RS[model.Theoretical] = num(ColRSTheoretical)
	rec.RS[model.Methodological] = num(ColRSMethodological)
	rec.RS[model.Cross] = num(ColRSCross)

	year, ok := ParseInt(cell(ColYear))
	if !ok {
		bad++
	}
	rec.Year = year

	rec.Citations = make(map[string]int, len(windows))
	for w, i := range windows {
		if i >= len(row) {
			continue
		}
		v, ok := ParseInt(row[i])
		if !ok || v < 0 {
			bad++
			v = 0
		}
		rec.Citations[w] = v
	}
	return rec, bad
}

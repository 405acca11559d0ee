package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/agenthands/cograph/internal/core/model"
)

// tuplePattern matches one ("M", "T") or ['M', 'T'] pair inside a bracketed list.
var tuplePattern = regexp.MustCompile(`[(\[]\s*([^()\[\],]+?)\s*,\s*([^()\[\],]+?)\s*[)\]]`)

// ParseList parses a bracketed list cell such as "['G13', 'G12']". An empty
// cell or "[]" is a valid empty list; anything else unparseable reports ok=false.
func ParseList(cell string) (codes []string, ok bool) {
	inner, ok := unbracket(cell)
	if !ok {
		return nil, false
	}
	if inner == "" {
		return nil, true
	}
	if strings.ContainsAny(inner, "()[]") {
		return nil, false
	}
	for _, part := range strings.Split(inner, ",") {
		if code := unquote(part); code != "" {
			codes = append(codes, code)
		}
	}
	return codes, true
}

// ParsePairs parses a bracketed list of 2-tuples such as
// "[('C21', 'G12'), ('C23', 'E44')]". The first element of each tuple is the
// methodological code, the second the theoretical one.
func ParsePairs(cell string) (pairs []model.CodePair, ok bool) {
	inner, ok := unbracket(cell)
	if !ok {
		return nil, false
	}
	if inner == "" {
		return nil, true
	}
	matches := tuplePattern.FindAllStringSubmatch(inner, -1)
	rest := strings.Trim(tuplePattern.ReplaceAllString(inner, ""), ", \t")
	if len(matches) == 0 || rest != "" {
		return nil, false
	}
	for _, m := range matches {
		meth, theo := unquote(m[1]), unquote(m[2])
		if meth == "" || theo == "" {
			continue
		}
		pairs = append(pairs, model.CodePair{Methodological: meth, Theoretical: theo})
	}
	return pairs, true
}

// ParseFloat reads a numeric cell. Empty cells and NaN read as 0 with ok=true.
// Infinities and out-of-range values are malformed.
func ParseFloat(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ParseInt reads an integer cell, accepting float spellings like "2009.0".
func ParseInt(cell string) (int, bool) {
	s := strings.TrimSpace(cell)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, true
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func unbracket(cell string) (string, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return "", true
	}
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return "", false
	}
	return strings.TrimSpace(s[1 : len(s)-1]), true
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `'"`)
}

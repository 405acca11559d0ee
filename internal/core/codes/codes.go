// Package codes normalizes classification codes and builds canonical edge keys.
package codes

import (
	"sort"
	"strings"
	"unicode"
)

// Normalize trims and upper-cases a code. A bare top-level code (one letter
// followed by one digit) is expanded to its general sub-code: "G1" -> "G10".
func Normalize(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	r := []rune(c)
	if len(r) == 2 && unicode.IsLetter(r[0]) && unicode.IsDigit(r[1]) {
		return c + "0"
	}
	return c
}

// Dedupe normalizes codes and drops empties and repeats, keeping first-seen order.
func Dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		c := Normalize(raw)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Set returns the sorted, deduplicated, normalized form of in.
func Set(in []string) []string {
	out := Dedupe(in)
	sort.Strings(out)
	return out
}

// SetKey joins a code set into a single grouping key.
func SetKey(set []string) string {
	return strings.Join(set, ",")
}

// EdgeKey orders two normalized codes and returns them with their joined key.
func EdgeKey(a, b string) (source, target, key string) {
	if b < a {
		a, b = b, a
	}
	return a, b, a + "-" + b
}

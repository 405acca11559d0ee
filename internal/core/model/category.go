package model

import (
	"fmt"
	"strings"
)

// Category is one of the three code-list families carried by a record.
type Category int

const (
	Theoretical Category = iota
	Methodological
	Cross
)

// NumCategories sizes the per-category arrays used throughout the core.
const NumCategories = 3

// Categories lists every category in canonical processing order.
var Categories = [NumCategories]Category{Theoretical, Methodological, Cross}

var categoryNames = [NumCategories]string{"theoretical", "methodological", "cross"}

func (c Category) String() string {
	if c.Valid() {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", int(c))
}

func (c Category) Valid() bool {
	return c >= Theoretical && c <= Cross
}

// ParseCategory accepts the lower-case category names, ignoring surrounding space and case.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

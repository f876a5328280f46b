// Package curriculum reconstructs (unit, category, subcategory, hours) facts
// from the hand-authored curriculum plan grid.
//
// The grid has units across the top and a mix of category headers,
// subcategory rows, totals and free-text notes down the side. Extract walks
// it once, carrying the current category from header rows down to the
// subcategory rows beneath them.
package curriculum

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fact is one resolved hours cell: unit Unit spends Hours hours on
// Subcategory within Category in curriculum year Year.
type Fact struct {
	Year        int     `json:"year"`
	Unit        string  `json:"unit"`
	Category    *string `json:"category"` // nil when no category header preceded the row
	Subcategory string  `json:"subcategory"`
	Hours       float64 `json:"hours"`
}

// CategoryName returns the category or "" when it is undefined.
func (f Fact) CategoryName() string {
	if f.Category == nil {
		return ""
	}
	return *f.Category
}

// CategoryTable maps each known category label to whether the category
// carries its own hours (no child subcategory rows).
type CategoryTable map[string]bool

// DefaultCategoryTable returns the categories of the Gather Round plan.
func DefaultCategoryTable() CategoryTable {
	return CategoryTable{
		"Physical Science":         false,
		"Earth Science":            false,
		"Life Science":             false,
		"Language Arts":            false,
		"History":                  false,
		"Bible":                    true,
		"Physical Education":       true,
		"Fine Arts":                false,
		"Electives":                false,
		"Social Science Electives": false,
		"Language Arts Electives":  false,
		"Science Electives":        false,
		"Math Electives":           false,
	}
}

// Names returns the category labels in sorted order.
func (t CategoryTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	ErrEmptyCategoryTable = errors.New("category table has no categories")
	ErrDuplicateCategory  = errors.New("duplicate category")
)

type categoryFile struct {
	Categories []struct {
		Name     string `yaml:"name"`
		OwnHours bool   `yaml:"own_hours"`
	} `yaml:"categories"`
}

// ParseCategoryTable reads a YAML category table:
//
//	categories:
//	  - name: Physical Science
//	  - name: Bible
//	    own_hours: true
func ParseCategoryTable(data []byte) (CategoryTable, error) {
	var f categoryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse category table: %w", err)
	}

	table := make(CategoryTable, len(f.Categories))
	for i, c := range f.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("category %d: empty name", i+1)
		}
		if _, dup := table[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCategory, name)
		}
		table[name] = c.OwnHours
	}

	if len(table) == 0 {
		return nil, ErrEmptyCategoryTable
	}
	return table, nil
}

// LoadCategoryTable reads a YAML category table from path. An empty path
// yields DefaultCategoryTable.
func LoadCategoryTable(path string) (CategoryTable, error) {
	if path == "" {
		return DefaultCategoryTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category table: %w", err)
	}
	return ParseCategoryTable(data)
}

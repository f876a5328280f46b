// Package hours reads and writes the flat unit_subcategory_hours table that
// sits between extraction and the seed generators, and derives the unit to
// year plan the app ships with.
package hours

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/JonMunkholm/curriculum/internal/curriculum"
)

// Columns is the header of unit_subcategory_hours.csv.
var Columns = []string{"year", "unit", "category", "subcategory", "hours"}

// Row is one line of the hours table. An undefined category is "".
type Row struct {
	Year        int     `json:"year"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Hours       float64 `json:"hours"`
}

// Key identifies a row for seeding: (unit, category, subcategory).
type Key struct {
	Unit, Category, Subcategory string
}

// Key returns the seed key of r.
func (r Row) Key() Key {
	return Key{Unit: r.Unit, Category: r.Category, Subcategory: r.Subcategory}
}

// FromFacts converts extracted facts to rows, preserving order.
func FromFacts(facts []curriculum.Fact) []Row {
	rows := make([]Row, len(facts))
	for i, f := range facts {
		rows[i] = Row{
			Year:        f.Year,
			Unit:        f.Unit,
			Category:    f.CategoryName(),
			Subcategory: f.Subcategory,
			Hours:       f.Hours,
		}
	}
	return rows
}

// Dedupe keeps the first row for each (unit, category, subcategory).
// No hours are summed.
func Dedupe(rows []Row) []Row {
	seen := make(map[Key]bool, len(rows))
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		k := r.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

// FormatHours renders hours the way the table has always stored them:
// whole numbers keep one decimal ("10.0"), fractions use the shortest form.
func FormatHours(h float64) string {
	if h == math.Trunc(h) && math.Abs(h) < 1e16 {
		return strconv.FormatFloat(h, 'f', 1, 64)
	}
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// RowError reports an unreadable line of the hours table.
type RowError struct {
	Line    int
	Field   string
	Value   string
	Message string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %s %q: %s", e.Line, e.Field, e.Value, e.Message)
}

// Summary renders the first n rows as "Year N | unit | subcategory | hours"
// lines, unit padded and cut to 25 runes.
func Summary(rows []Row, n int) []string {
	if n > len(rows) {
		n = len(rows)
	}
	lines := make([]string, 0, n)
	for _, r := range rows[:n] {
		unit := []rune(r.Unit)
		if len(unit) > 25 {
			unit = unit[:25]
		}
		lines = append(lines, fmt.Sprintf("Year %d | %-25s | %-25s | %s hrs",
			r.Year, string(unit), r.Subcategory, FormatHours(r.Hours)))
	}
	return lines
}

// normalizeHeader lowercases and trims a header cell for matching.
func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
}

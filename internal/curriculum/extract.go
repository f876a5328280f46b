package curriculum

import (
	"math"
	"strconv"
	"strings"

	"github.com/JonMunkholm/curriculum/internal/grid"
)

// hoursPlaceholder is the label some exports put in value cells of header rows.
const hoursPlaceholder = "Hours"

// Extract turns a curriculum grid into facts for the given year.
//
// Row 0 names the units (columns 1..n). Every later row is a category header,
// a subcategory row with hours, or noise; see classifyRow. Cells that do not
// parse as positive hours are skipped and never reported. Extract has no
// failure mode: an empty grid yields no facts.
func Extract(g grid.Grid, year int, table CategoryTable) []Fact {
	if len(g) == 0 {
		return nil
	}

	units := unitNames(g[0])

	var (
		facts   []Fact
		current *string
	)

	for _, row := range g[1:] {
		label, kind := classifyRow(row, table)

		switch kind {
		case rowSkip:
			continue
		case rowCategoryHeader:
			current = &label
			continue
		case rowCategoryWithHours:
			current = &label
		}

		values := row[1:]
		if !hasNumericCell(values) {
			continue
		}

		for col, cell := range values {
			if col >= len(units) {
				break
			}
			if strings.EqualFold(units[col], "TOTALS") {
				continue
			}
			hours, ok := parseHours(cell)
			if !ok {
				continue
			}
			var category *string
			if current != nil {
				c := *current
				category = &c
			}
			facts = append(facts, Fact{
				Year:        year,
				Unit:        units[col],
				Category:    category,
				Subcategory: label,
				Hours:       hours,
			})
		}
	}

	return facts
}

type rowKind int

const (
	rowSkip rowKind = iota
	rowCategoryHeader
	rowCategoryWithHours
	rowSubcategory
)

// classifyRow applies the row rules in order: blank label, noise label,
// known category, otherwise subcategory.
func classifyRow(row []string, table CategoryTable) (string, rowKind) {
	if len(row) == 0 {
		return "", rowSkip
	}
	label := strings.ReplaceAll(strings.TrimSpace(row[0]), "\n", " ")
	if label == "" {
		return "", rowSkip
	}
	if isNoiseLabel(label) {
		return label, rowSkip
	}
	if ownHours, ok := table[label]; ok {
		if ownHours {
			return label, rowCategoryWithHours
		}
		return label, rowCategoryHeader
	}
	return label, rowSubcategory
}

// isNoiseLabel reports totals rows, required-reading rows and parenthetical notes.
func isNoiseLabel(label string) bool {
	upper := strings.ToUpper(label)
	return strings.HasPrefix(upper, "TOTALS") ||
		strings.HasPrefix(upper, "REQUIRED") ||
		strings.HasPrefix(label, "(")
}

func unitNames(header []string) []string {
	if len(header) <= 1 {
		return nil
	}
	units := make([]string, len(header)-1)
	for i, cell := range header[1:] {
		units[i] = grid.NormalizeName(cell)
	}
	return units
}

// hasNumericCell reports whether any value cell parses as a number, zero
// included. Rows of "Hours" placeholders or free text fail.
func hasNumericCell(values []string) bool {
	for _, v := range values {
		if _, ok := parseNumber(v); ok {
			return true
		}
	}
	return false
}

// parseHours returns the cell as hours when it is a finite number > 0.
func parseHours(cell string) (float64, bool) {
	n, ok := parseNumber(cell)
	if !ok || n <= 0 || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func parseNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" || s == hoursPlaceholder || isHexLiteral(s) {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// isHexLiteral reports whether s is a hex float such as 0x1p-2.
func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

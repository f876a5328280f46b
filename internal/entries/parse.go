package entries

import (
	"strings"

	"github.com/JonMunkholm/curriculum/internal/grid"
)

// typePatterns are the labels that open an optional entry. A cell is a label
// when it contains one of these or is contained in one.
var typePatterns = []string{
	"Required Reading",
	"Optional Lab Addition",
	"Optional LA Addition",
	"Optional PE Addition",
	"Optional Chemistry Lab",
	"Optional Biology Lab",
	"Optional Physics Lab",
	"Optional Physics Labs",
	"Optional Labs",
	"Optional Life Science Lab",
	"Optional Physical Science Lab",
	"Optional Physics/Earth Science Labs",
	"Optional Chemistry/Physics Lab",
	"Optional Chemistry/\nPhysics Lab",
	"Required PE Add-on:",
}

// IsTypeLabel reports whether a cell opens an optional entry.
func IsTypeLabel(cell string) bool {
	t := strings.TrimSpace(cell)
	if t == "" {
		return false
	}
	for _, p := range typePatterns {
		if strings.Contains(t, p) || strings.Contains(p, t) {
			return true
		}
	}
	if strings.HasPrefix(t, "Optional ") &&
		(strings.Contains(t, "Lab") || strings.Contains(t, "LA Addition") || strings.Contains(t, "PE ")) {
		return true
	}
	return strings.HasPrefix(t, "Required PE")
}

// NormalizeType cleans a label cell: trimmed, newlines to spaces, double
// spaces halved once.
func NormalizeType(cell string) string {
	t := strings.TrimSpace(cell)
	t = strings.ReplaceAll(t, "\n", " ")
	return strings.ReplaceAll(t, "  ", " ")
}

// ParseGrid collects the optional entries of one year's export.
//
// Unit columns are the header cells of row 0 other than blank and TOTALS.
// Scanning starts at the first row holding a label in a unit column; from
// there every label cell becomes an entry whose body is the cell directly
// below it, unless that cell is itself a label.
func ParseGrid(g grid.Grid, year int) []Entry {
	if len(g) == 0 {
		return nil
	}

	type unitColumn struct {
		col  int
		name string
	}
	var units []unitColumn
	for j := 1; j < len(g[0]); j++ {
		u := grid.NormalizeName(g[0][j])
		if u != "" && strings.ToUpper(u) != "TOTALS" {
			units = append(units, unitColumn{col: j, name: u})
		}
	}

	start := -1
	for i := range g {
		for _, u := range units {
			if IsTypeLabel(g.Cell(i, u.col)) {
				start = i
				break
			}
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return nil
	}

	var out []Entry
	for i := start; i < len(g); i++ {
		for _, u := range units {
			raw := g.Cell(i, u.col)
			if !IsTypeLabel(raw) {
				continue
			}

			body := ""
			if next := strings.TrimSpace(g.Cell(i+1, u.col)); next != "" && !IsTypeLabel(next) {
				body = next
			}

			out = append(out, Entry{
				Year: year,
				Unit: u.name,
				Type: NormalizeType(raw),
				Body: body,
			})
		}
	}
	return out
}

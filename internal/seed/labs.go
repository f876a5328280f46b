package seed

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JonMunkholm/curriculum/internal/entries"
	"github.com/JonMunkholm/curriculum/internal/hours"
)

// LabType is the type written for optional lab items.
const LabType = "Optional Lab"

var (
	whitespace = regexp.MustCompile(`\s+`)
	blankLine  = regexp.MustCompile(`\n\s*\n`)
)

// normalize collapses whitespace and lowercases, for loose name matching.
func normalize(s string) string {
	return strings.ToLower(whitespace.ReplaceAllString(strings.TrimSpace(s), " "))
}

type subRef struct {
	category, subcategory string
}

type unitRef struct {
	canonical  string
	subs       map[string]subRef
	categories map[string]string
}

// unitIndex maps normalised unit names to their subcategories and
// categories as the hours table spells them. Later rows win.
func unitIndex(rows []hours.Row) map[string]*unitRef {
	idx := make(map[string]*unitRef)
	for _, r := range rows {
		key := normalize(r.Unit)
		u, ok := idx[key]
		if !ok {
			u = &unitRef{canonical: r.Unit, subs: map[string]subRef{}, categories: map[string]string{}}
			idx[key] = u
		}
		u.subs[normalize(r.Subcategory)] = subRef{category: r.Category, subcategory: r.Subcategory}
		u.categories[normalize(r.Category)] = r.Category
	}
	return idx
}

// splitBlocks splits a body into paragraphs separated by blank lines.
func splitBlocks(body string) []string {
	body = strings.ReplaceAll(strings.TrimSpace(body), "\r\n", "\n")
	if body == "" {
		return nil
	}
	var out []string
	for _, b := range blankLine.Split(body, -1) {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// pickBlock chooses the paragraph describing an option: the first that
// mentions its label, else the only one, else the one at its index, else the
// label itself.
func pickBlock(blocks []string, label string, index int) string {
	if len(blocks) == 0 {
		return label
	}
	want := normalize(label)
	for _, b := range blocks {
		if strings.Contains(normalize(b), want) {
			return b
		}
	}
	if len(blocks) == 1 {
		return blocks[0]
	}
	if index < len(blocks) {
		return blocks[index]
	}
	return label
}

// OptionalLabsSQL renders unit_optional_items rows for the labs bucket.
// Each [label, subcategory] option is resolved against the hours table;
// options that cannot be resolved are skipped and reported in warnings,
// which are also listed in the SQL header.
func OptionalLabsSQL(list []entries.Entry, rows []hours.Row, curriculumID string) (sql string, warnings []string) {
	idx := unitIndex(rows)
	var lines []string

	for _, e := range list {
		skip := func(reason string) {
			warnings = append(warnings, fmt.Sprintf("Skip %s (%s): %s", e.Unit, e.Type, reason))
		}

		if len(e.Options) == 0 {
			skip("no options")
			continue
		}
		unit, ok := idx[normalize(e.Unit)]
		if !ok {
			skip("unit not found")
			continue
		}
		blocks := splitBlocks(e.Body)

		for i := range e.Options {
			label, sub, ok := e.Option(i)
			if !ok {
				skip("invalid option")
				continue
			}

			var category, subcategory string
			if ref, found := unit.subs[normalize(sub)]; found {
				category, subcategory = ref.category, ref.subcategory
			} else if c, found := unit.categories[normalize(sub)]; found && c != "" {
				category, subcategory = c, c
			} else {
				skip(fmt.Sprintf("subcategory '%s' not found", sub))
				continue
			}

			h, ok := e.HoursValue()
			if !ok {
				skip("invalid hours")
				continue
			}

			block := pickBlock(blocks, label, i)
			desc := block
			if label != "" && !strings.Contains(normalize(block), normalize(label)) {
				desc = label + ": " + block
			}

			lines = append(lines, fmt.Sprintf(
				"INSERT INTO unit_optional_items (unit, category, subcategory, hours, description, curriculum_id, type)\n"+
					"VALUES ('%s', '%s', '%s', %s, '%s', '%s', '%s');",
				EscapeLiteralBackslash(unit.canonical), EscapeLiteralBackslash(category),
				EscapeLiteralBackslash(subcategory), hours.FormatHours(h),
				EscapeLiteralBackslash(escapeNewlines(desc)), EscapeLiteralBackslash(curriculumID), LabType))
		}
	}

	header := []string{
		"-- Generated from optional-entries-by-type/labs.json",
		"-- Uses unit_subcategory_hours.csv for category lookup",
	}
	if len(warnings) > 0 {
		header = append(header, "-- Skipped entries:")
		for _, w := range warnings {
			header = append(header, "-- - "+w)
		}
	}
	header = append(header, "")

	return strings.TrimSpace(strings.Join(append(header, lines...), "\n")), warnings
}

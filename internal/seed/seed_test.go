package seed

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/curriculum/internal/entries"
	"github.com/JonMunkholm/curriculum/internal/hours"
)

func TestEscape(t *testing.T) {
	assert.Equal(t, "Noah''s Ark", EscapeLiteral("Noah's Ark"))
	assert.Equal(t, `a\b`, EscapeLiteral(`a\b`))
	assert.Equal(t, `it''s a\\b`, EscapeLiteralBackslash(`it's a\b`))
}

// ============================================================================
// Hours inserts
// ============================================================================

func TestHoursInserts(t *testing.T) {
	rows := []hours.Row{
		{Year: 1, Unit: "Noah's Ark", Category: "Bible", Subcategory: "Bible", Hours: 10},
		{Year: 1, Unit: "Egypt", Category: "History", Subcategory: "Egypt", Hours: 2.5},
		{Year: 2, Unit: "Noah's Ark", Category: "Bible", Subcategory: "Bible", Hours: 99},
	}

	got := HoursInserts(rows, 50)

	require.Len(t, got, 1)
	assert.Equal(t,
		"INSERT INTO unit_subcategory_hours (unit, category, subcategory, hours) VALUES "+
			"('Noah''s Ark', 'Bible', 'Bible', 10.0), ('Egypt', 'History', 'Egypt', 2.5);",
		got[0])
}

func TestHoursInserts_Batches(t *testing.T) {
	var rows []hours.Row
	for i := 0; i < 7; i++ {
		rows = append(rows, hours.Row{Unit: fmt.Sprintf("U%d", i), Category: "C", Subcategory: "S", Hours: 1})
	}

	got := HoursInserts(rows, 3)

	require.Len(t, got, 3)
	assert.Equal(t, 3, strings.Count(got[0], "('U"))
	assert.Equal(t, 1, strings.Count(got[2], "('U"))
	assert.Len(t, HoursInserts(rows, 0), 1, "non-positive batch falls back to the default")
	assert.Empty(t, HoursInserts(nil, 50))
}

// ============================================================================
// Required reading
// ============================================================================

func TestRequiredReadingSQL(t *testing.T) {
	list := []entries.Entry{
		{
			Unit:  "Noah's Ark",
			Type:  "Required Reading",
			Body:  "Pick one:\nThe Ark",
			Hours: 4.0,
			Options: []any{
				[]any{"Literature", "The Ark <illustrated>\nby O'Neil"},
			},
		},
		{Unit: "Egypt", Type: "Required Reading", Body: "none"},
	}

	got, err := RequiredReadingSQL(list)
	require.NoError(t, err)

	want := "INSERT INTO unit_option_groups (unit, category, label, note)\n" +
		"VALUES ('Noah''s Ark', 'Language Arts', 'Required Reading', 'Pick one:\\\\nThe Ark');\n" +
		"INSERT INTO unit_option_choices (option_group_id, subcategory, hours, recommended_books)\n" +
		"SELECT id, 'Literature', 4.0, '[{\"description\": \"The Ark <illustrated>\\\\nby O''Neil\"}]'::jsonb\n" +
		"FROM unit_option_groups WHERE unit = 'Noah''s Ark' AND label = 'Required Reading';\n" +
		"\n" +
		"INSERT INTO unit_option_groups (unit, category, label, note)\n" +
		"VALUES ('Egypt', 'Language Arts', 'Required Reading', 'none');"
	assert.Equal(t, want, got)
}

func TestRequiredReadingSQL_NullHours(t *testing.T) {
	list := []entries.Entry{{
		Unit:    "Egypt",
		Options: []any{[]any{"Literature", "A book"}},
	}}

	got, err := RequiredReadingSQL(list)
	require.NoError(t, err)
	assert.Contains(t, got, "SELECT id, 'Literature', NULL, ")
}

func TestRequiredReadingSQL_Errors(t *testing.T) {
	_, err := RequiredReadingSQL([]entries.Entry{{Unit: "A", Hours: "lots"}})
	assert.Error(t, err)

	_, err = RequiredReadingSQL([]entries.Entry{{Unit: "A", Options: []any{"just a string"}}})
	assert.Error(t, err)
}

// ============================================================================
// Optional labs
// ============================================================================

func labRows() []hours.Row {
	return []hours.Row{
		{Year: 1, Unit: "Ancient  Egypt", Category: "Physical Science", Subcategory: "Chemistry", Hours: 3},
		{Year: 1, Unit: "Ancient  Egypt", Category: "Life Science", Subcategory: "Biology", Hours: 2},
		{Year: 1, Unit: "Rome", Category: "Art", Subcategory: "Sculpture", Hours: 1},
	}
}

func TestOptionalLabsSQL(t *testing.T) {
	list := []entries.Entry{{
		Unit:  "ancient egypt",
		Type:  "Optional Lab Addition",
		Body:  "Mummify an apple.\nTakes a week.\n\nGrow crystals",
		Hours: "2",
		Options: []any{
			[]any{"Mummify", "chemistry"},
			[]any{"Geodes", "Life Science"},
		},
	}}

	sql, warnings := OptionalLabsSQL(list, labRows(), "gatherround")

	assert.Empty(t, warnings)
	want := "-- Generated from optional-entries-by-type/labs.json\n" +
		"-- Uses unit_subcategory_hours.csv for category lookup\n" +
		"\n" +
		"INSERT INTO unit_optional_items (unit, category, subcategory, hours, description, curriculum_id, type)\n" +
		"VALUES ('Ancient  Egypt', 'Physical Science', 'Chemistry', 2.0, 'Mummify an apple.\\\\nTakes a week.', 'gatherround', 'Optional Lab');\n" +
		"INSERT INTO unit_optional_items (unit, category, subcategory, hours, description, curriculum_id, type)\n" +
		"VALUES ('Ancient  Egypt', 'Life Science', 'Life Science', 2.0, 'Geodes: Grow crystals', 'gatherround', 'Optional Lab');"
	assert.Equal(t, want, sql)
}

func TestOptionalLabsSQL_Warnings(t *testing.T) {
	list := []entries.Entry{
		{Unit: "Rome", Type: "Optional Labs"},
		{Unit: "Atlantis", Type: "Optional Labs", Hours: 1.0, Options: []any{[]any{"x", "Art"}}},
		{Unit: "Rome", Type: "Optional Labs", Hours: 1.0, Options: []any{[]any{"x"}}},
		{Unit: "Rome", Type: "Optional Labs", Hours: 1.0, Options: []any{[]any{"x", "Dance"}}},
		{Unit: "Rome", Type: "Optional Labs", Hours: "a while", Options: []any{[]any{"x", "Art"}}},
	}

	sql, warnings := OptionalLabsSQL(list, labRows(), "gatherround")

	assert.Equal(t, []string{
		"Skip Rome (Optional Labs): no options",
		"Skip Atlantis (Optional Labs): unit not found",
		"Skip Rome (Optional Labs): invalid option",
		"Skip Rome (Optional Labs): subcategory 'Dance' not found",
		"Skip Rome (Optional Labs): invalid hours",
	}, warnings)
	assert.Contains(t, sql, "-- Skipped entries:\n-- - Skip Rome (Optional Labs): no options")
	assert.NotContains(t, sql, "INSERT")
}

func TestOptionalLabsSQL_BlankSubcategory(t *testing.T) {
	rows := append(labRows(), hours.Row{Year: 1, Unit: "Rome", Category: "", Subcategory: "Orphan", Hours: 1})
	list := []entries.Entry{
		{Unit: "Rome", Type: "Optional Labs", Hours: 1.0, Options: []any{[]any{"x", ""}}},
	}

	sql, warnings := OptionalLabsSQL(list, rows, "gatherround")

	assert.Equal(t, []string{"Skip Rome (Optional Labs): subcategory '' not found"}, warnings)
	assert.NotContains(t, sql, "INSERT")
}

func TestPickBlock(t *testing.T) {
	blocks := []string{"First lab", "Second lab", "Third"}

	tests := []struct {
		name  string
		label string
		index int
		want  string
	}{
		{"by label", "second  LAB", 0, "Second lab"},
		{"by index", "Unrelated", 2, "Third"},
		{"index out of range", "Unrelated", 5, "Unrelated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pickBlock(blocks, tt.label, tt.index))
		})
	}

	assert.Equal(t, "Only", pickBlock([]string{"Only"}, "Unrelated", 3))
	assert.Equal(t, "Label", pickBlock(nil, "Label", 0))
}

func TestSplitBlocks(t *testing.T) {
	got := splitBlocks("  one\r\nline\r\n \r\n\ntwo \n")
	assert.Equal(t, []string{"one\nline", "two"}, got)
	assert.Nil(t, splitBlocks("   "))
}

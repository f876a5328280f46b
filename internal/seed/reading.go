package seed

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/curriculum/internal/entries"
	"github.com/JonMunkholm/curriculum/internal/hours"
)

// RequiredReadingSQL renders option groups and choices for the
// required-reading bucket. Each entry becomes one unit_option_groups row and
// each of its [subcategory, books] options one unit_option_choices row.
func RequiredReadingSQL(list []entries.Entry) (string, error) {
	var lines []string
	for _, e := range list {
		unit := EscapeLiteralBackslash(e.Unit)
		note := EscapeLiteralBackslash(escapeNewlines(e.Body))

		lines = append(lines, fmt.Sprintf(
			"INSERT INTO unit_option_groups (unit, category, label, note)\n"+
				"VALUES ('%s', 'Language Arts', 'Required Reading', '%s');", unit, note))

		hoursSQL := "NULL"
		if e.Hours != nil {
			h, ok := e.HoursValue()
			if !ok {
				return "", fmt.Errorf("%s (%s): invalid hours %v", e.Unit, e.Type, e.Hours)
			}
			hoursSQL = hours.FormatHours(h)
		}

		for i := range e.Options {
			subcat, books, ok := e.Option(i)
			if !ok {
				return "", fmt.Errorf("%s (%s): option %d is not a [subcategory, books] pair", e.Unit, e.Type, i)
			}
			rb, err := booksJSONB(books)
			if err != nil {
				return "", err
			}
			lines = append(lines, fmt.Sprintf(
				"INSERT INTO unit_option_choices (option_group_id, subcategory, hours, recommended_books)\n"+
					"SELECT id, '%s', %s, %s\n"+
					"FROM unit_option_groups WHERE unit = '%s' AND label = 'Required Reading';",
				EscapeLiteralBackslash(subcat), hoursSQL, rb, unit))
		}
		lines = append(lines, "")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

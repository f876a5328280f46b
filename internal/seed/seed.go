// Package seed renders SQL seed statements for the curriculum tables.
package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JonMunkholm/curriculum/internal/hours"
)

// DefaultBatchSize is the number of rows per hours INSERT.
const DefaultBatchSize = 50

// EscapeLiteral escapes s for a single-quoted SQL literal.
func EscapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// EscapeLiteralBackslash escapes backslashes and quotes, for literals whose
// text carries escaped newlines.
func EscapeLiteralBackslash(s string) string {
	return EscapeLiteral(strings.ReplaceAll(s, `\`, `\\`))
}

// escapeNewlines writes newlines as the two characters \n.
func escapeNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}

// HoursInserts returns one INSERT per batch of deduplicated rows.
func HoursInserts(rows []hours.Row, batch int) []string {
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	rows = hours.Dedupe(rows)

	var stmts []string
	for i := 0; i < len(rows); i += batch {
		end := min(i+batch, len(rows))
		values := make([]string, 0, end-i)
		for _, r := range rows[i:end] {
			values = append(values, fmt.Sprintf("('%s', '%s', '%s', %s)",
				EscapeLiteral(r.Unit), EscapeLiteral(r.Category), EscapeLiteral(r.Subcategory),
				hours.FormatHours(r.Hours)))
		}
		stmts = append(stmts, "INSERT INTO unit_subcategory_hours (unit, category, subcategory, hours) VALUES "+
			strings.Join(values, ", ")+";")
	}
	return stmts
}

// booksJSONB renders books text as a recommended_books jsonb literal.
func booksJSONB(text string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(text); err != nil {
		return "", err
	}
	doc := `[{"description": ` + strings.TrimSuffix(buf.String(), "\n") + `}]`
	return "'" + EscapeLiteralBackslash(doc) + "'::jsonb", nil
}

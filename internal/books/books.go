// Package books converts recommended_books values from the seeded
// [{"description": "..."}] form to a plain list of titles.
package books

import "strings"

// Transform returns the titles held by a decoded recommended_books value.
// A list of strings is returned unchanged. A list whose first element is a
// {"description": text} object yields the trimmed non-empty lines of text;
// escaped "\n" sequences count as line breaks. Anything else yields an empty
// list.
func Transform(raw any) []any {
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return []any{}
	}

	switch first := list[0].(type) {
	case string:
		return list
	case map[string]any:
		desc, ok := first["description"].(string)
		if !ok {
			return []any{}
		}
		desc = strings.ReplaceAll(desc, `\n`, "\n")
		out := []any{}
		for _, line := range strings.Split(desc, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
		return out
	default:
		return []any{}
	}
}

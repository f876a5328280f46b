// Package entries handles the optional and configurable items of the plan
// (required reading, optional labs, language-arts additions, PE add-ons) that
// sit in free-text cells below the hours table of each year's export.
package entries

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Entry is one optional item attached to a unit. Hours and Options are filled
// in by hand after parsing, so they are loosely typed: Hours may be a number or
// a numeric string, Options a list of [label, value] pairs.
type Entry struct {
	Year    int    `json:"year"`
	Unit    string `json:"unit"`
	Type    string `json:"type"`
	Body    string `json:"body"`
	Hours   any    `json:"hours,omitempty"`
	Options []any  `json:"options,omitempty"`
}

// HoursValue returns Hours as a number. ok is false when Hours is absent or
// not numeric.
func (e Entry) HoursValue() (float64, bool) {
	switch h := e.Hours.(type) {
	case float64:
		return h, true
	case json.Number:
		f, err := h.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
		return f, err == nil
	case int:
		return float64(h), true
	default:
		return 0, false
	}
}

// Option returns option i as a pair of strings. ok is false when the option
// is not a list of at least two values.
func (e Entry) Option(i int) (label, value string, ok bool) {
	if i < 0 || i >= len(e.Options) {
		return "", "", false
	}
	list, isList := e.Options[i].([]any)
	if !isList || len(list) < 2 {
		return "", "", false
	}
	return optionText(list[0]), optionText(list[1]), true
}

func optionText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// ReadFile decodes a JSON array of entries.
func ReadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []Entry
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return list, nil
}

// WriteFile writes v as two-space indented JSON, creating parent directories.
// Non-ASCII text and HTML characters are written as-is.
func WriteFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

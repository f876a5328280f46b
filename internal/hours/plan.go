package hours

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

// Plan maps each unit to the year of its first row. Rows with a year outside
// 1..4 do not claim a unit.
func Plan(rows []Row) map[string]int {
	plan := make(map[string]int)
	for _, r := range rows {
		if _, ok := plan[r.Unit]; ok {
			continue
		}
		if r.Year >= 1 && r.Year <= 4 {
			plan[r.Unit] = r.Year
		}
	}
	return plan
}

// WritePlanJSON encodes plan as an indented JSON object with sorted keys.
func WritePlanJSON(w io.Writer, plan map[string]int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(plan)
}

// WritePlanFile writes plan to path, creating parent directories.
func WritePlanFile(path string, plan map[string]int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePlanJSON(f, plan); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

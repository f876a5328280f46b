package hours

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned when the hours table lacks a required header.
var ErrMissingColumn = errors.New("missing required column")

// WriteCSV writes rows under the standard header.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Year),
			r.Unit,
			r.Category,
			r.Subcategory,
			FormatHours(r.Hours),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads an hours table. Columns are matched by header name, case
// insensitively, so extra or reordered columns are fine.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[normalizeHeader(h)] = i
	}
	for _, col := range Columns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	field := func(rec []string, col string) string {
		if i := idx[col]; i < len(rec) {
			return rec[i]
		}
		return ""
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		yearText := strings.TrimSpace(field(rec, "year"))
		year, err := strconv.Atoi(yearText)
		if err != nil {
			return nil, &RowError{Line: line, Field: "year", Value: yearText, Message: "not an integer"}
		}
		hoursText := strings.TrimSpace(field(rec, "hours"))
		h, err := strconv.ParseFloat(hoursText, 64)
		if err != nil {
			return nil, &RowError{Line: line, Field: "hours", Value: hoursText, Message: "not a number"}
		}

		rows = append(rows, Row{
			Year:        year,
			Unit:        field(rec, "unit"),
			Category:    field(rec, "category"),
			Subcategory: field(rec, "subcategory"),
			Hours:       h,
		})
	}
	return rows, nil
}

// ReadFile reads the hours table at path.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// WriteFile writes rows to path, creating parent directories.
func WriteFile(path string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

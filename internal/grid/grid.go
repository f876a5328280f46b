// Package grid loads spreadsheet exports of the curriculum plan into a plain
// row/column grid of strings.
//
// A Grid is the caller-side half of extraction: opening files, choosing the
// year for a file, and rejecting inputs that cannot be extracted at all (no
// rows, no unit header) all happen here so that the extractor itself never
// fails.
package grid

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrEmptyGrid is returned when an input has no rows at all.
	ErrEmptyGrid = errors.New("grid has no rows")

	// ErrNoUnits is returned when row 0 carries no unit names in columns 1..n.
	ErrNoUnits = errors.New("header row has no unit columns")

	// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Grid is an ordered sequence of rows, each an ordered sequence of cells.
// Rows may be ragged.
type Grid [][]string

// Cell returns the cell at (row, col), or "" when either index is out of range.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return ""
	}
	return g[row][col]
}

// Check reports the precondition violations a caller must surface before
// extracting: ErrEmptyGrid and ErrNoUnits.
func (g Grid) Check() error {
	if len(g) == 0 {
		return ErrEmptyGrid
	}
	for _, c := range g[0][min(1, len(g[0])):] {
		if NormalizeName(c) != "" {
			return nil
		}
	}
	return ErrNoUnits
}

// NormalizeName collapses newlines and runs of whitespace to single spaces
// and trims the result. Unit names in the exports are often wrapped.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FileError records a failure to load one input file.
type FileError struct {
	Path string
	Op   string // "open", "read", "sheet"
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

var yearPattern = regexp.MustCompile(`(?i)year\s*(\d+)`)

// YearFromFilename extracts the curriculum year from names like
// "gather round year 3 - Sheet1.csv". Returns false if no year is present.
func YearFromFilename(name string) (int, bool) {
	m := yearPattern.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return year, true
}

// Source is one discovered per-year export.
type Source struct {
	Path string
	Year int // 0 when the file name carries no year
}

// Discover lists the "gather round year N" exports (.csv or .xlsx) in dir,
// sorted by path.
func Discover(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &FileError{Path: dir, Op: "read", Err: err}
	}

	var sources []Source
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(strings.ToLower(name), "gather round year") {
			continue
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".csv", ".xlsx":
		default:
			continue
		}
		year, _ := YearFromFilename(name)
		sources = append(sources, Source{Path: filepath.Join(dir, name), Year: year})
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Path < sources[j].Path
	})
	return sources, nil
}

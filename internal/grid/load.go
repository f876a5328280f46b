package grid

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load reads path as a Grid, dispatching on the file extension. sheet selects
// the worksheet of an .xlsx workbook; the first sheet is used when it is empty.
// The returned grid has passed Check.
func Load(path, sheet string) (Grid, error) {
	var (
		g   Grid
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		g, err = loadCSVFile(path)
	case ".xlsx":
		g, err = ReadXLSX(path, sheet)
	default:
		return nil, &FileError{Path: path, Op: "open", Err: ErrUnsupportedFormat}
	}
	if err != nil {
		return nil, err
	}

	if err := g.Check(); err != nil {
		return nil, &FileError{Path: path, Op: "read", Err: err}
	}
	return g, nil
}

func loadCSVFile(path string) (Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	g, err := ReadCSV(f)
	if err != nil {
		return nil, &FileError{Path: path, Op: "read", Err: err}
	}
	return g, nil
}

// ReadCSV parses a CSV export. A UTF-8 BOM is dropped and invalid UTF-8 is
// replaced before parsing; rows may have differing lengths and stray quotes
// are tolerated.
func ReadCSV(r io.Reader) (Grid, error) {
	cr := csv.NewReader(NewCleanReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return Grid(records), nil
}

// ReadXLSX reads one worksheet of an .xlsx workbook.
func ReadXLSX(path, sheet string) (Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &FileError{Path: path, Op: "sheet", Err: ErrEmptyGrid}
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &FileError{Path: path, Op: "sheet", Err: fmt.Errorf("%s: %w", sheet, err)}
	}
	return Grid(rows), nil
}

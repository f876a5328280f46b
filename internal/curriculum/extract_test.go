package curriculum

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JonMunkholm/curriculum/internal/grid"
)

func ptr(s string) *string { return &s }

// ============================================================================
// Extract
// ============================================================================

func TestExtract_WorkedExample(t *testing.T) {
	g := grid.Grid{
		{"UNIT", "Alpha", "Beta", "TOTALS"},
		{"Physical Science", "", "", ""},
		{"Biology", "10", "", "25"},
		{"Bible", "5", "3", "8"},
	}

	got := Extract(g, 2, DefaultCategoryTable())

	want := []Fact{
		{Year: 2, Unit: "Alpha", Category: ptr("Physical Science"), Subcategory: "Biology", Hours: 10},
		{Year: 2, Unit: "Alpha", Category: ptr("Bible"), Subcategory: "Bible", Hours: 5},
		{Year: 2, Unit: "Beta", Category: ptr("Bible"), Subcategory: "Bible", Hours: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_SkipsNoiseRows(t *testing.T) {
	g := grid.Grid{
		{"UNIT", "Alpha"},
		{"History", ""},
		{"(see notes)", "7"},
		{"TOTALS ROW", "40"},
		{"Totals", "40"},
		{"Required Reading", "2"},
		{"REQUIRED PE", "2"},
		{"", "9"},
		{},
		{"World History", "6"},
	}

	got := Extract(g, 1, DefaultCategoryTable())

	want := []Fact{
		{Year: 1, Unit: "Alpha", Category: ptr("History"), Subcategory: "World History", Hours: 6},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_HoursPlaceholderIsNotNumeric(t *testing.T) {
	g := grid.Grid{
		{"UNIT", "Alpha", "Beta"},
		{"Physical Science", "Hours", "Hours"},
		{"Chemistry", "Hours", "4"},
		{"Physics", "Hours", "Hours"},
	}

	got := Extract(g, 3, DefaultCategoryTable())

	want := []Fact{
		{Year: 3, Unit: "Beta", Category: ptr("Physical Science"), Subcategory: "Chemistry", Hours: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_SubcategoryBeforeAnyHeader(t *testing.T) {
	g := grid.Grid{
		{"UNIT", "Alpha"},
		{"Orphan Topic", "3"},
		{"Life Science", ""},
		{"Botany", "2"},
	}

	got := Extract(g, 1, DefaultCategoryTable())

	if len(got) != 2 {
		t.Fatalf("got %d facts, want 2", len(got))
	}
	if got[0].Category != nil {
		t.Errorf("orphan fact category = %q, want nil", *got[0].Category)
	}
	if got[0].CategoryName() != "" {
		t.Errorf("CategoryName() = %q, want empty", got[0].CategoryName())
	}
	if got[1].CategoryName() != "Life Science" {
		t.Errorf("second fact category = %q, want %q", got[1].CategoryName(), "Life Science")
	}
}

func TestExtract_Cells(t *testing.T) {
	tests := []struct {
		name  string
		cell  string
		hours float64
		ok    bool
	}{
		{"integer", "10", 10, true},
		{"decimal", "2.5", 2.5, true},
		{"padded", "  4 ", 4, true},
		{"exponent", "1e1", 10, true},
		{"zero", "0", 0, false},
		{"negative", "-3", 0, false},
		{"text", "n/a", 0, false},
		{"placeholder", "Hours", 0, false},
		{"nan", "NaN", 0, false},
		{"infinite", "inf", 0, false},
		{"empty", "", 0, false},
		{"hex float", "0x1p-2", 0, false},
		{"signed hex", "+0X10", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grid.Grid{
				{"UNIT", "Alpha", "Beta"},
				{"Topic", tt.cell, "1"},
			}
			got := Extract(g, 1, CategoryTable{})

			var alpha []Fact
			for _, f := range got {
				if f.Unit == "Alpha" {
					alpha = append(alpha, f)
				}
			}

			if !tt.ok {
				if len(alpha) != 0 {
					t.Errorf("cell %q produced %v, want nothing", tt.cell, alpha)
				}
				return
			}
			if len(alpha) != 1 || alpha[0].Hours != tt.hours {
				t.Errorf("cell %q produced %v, want hours %v", tt.cell, alpha, tt.hours)
			}
		})
	}
}

func TestExtract_ZeroOnlyRowEmitsNothing(t *testing.T) {
	g := grid.Grid{
		{"UNIT", "Alpha", "Beta"},
		{"Geology", "0", "0"},
	}
	if got := Extract(g, 1, DefaultCategoryTable()); len(got) != 0 {
		t.Errorf("Extract() = %v, want no facts", got)
	}
}

func TestExtract_RaggedAndExtraColumns(t *testing.T) {
	g := grid.Grid{
		{"UNIT", "Alpha", "Beta"},
		{"Art", "1"},
		{"Music", "2", "3", "4", "5"},
	}

	got := Extract(g, 4, CategoryTable{})

	want := []Fact{
		{Year: 4, Unit: "Alpha", Subcategory: "Art", Hours: 1},
		{Year: 4, Unit: "Alpha", Subcategory: "Music", Hours: 2},
		{Year: 4, Unit: "Beta", Subcategory: "Music", Hours: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_TrailingNumbersOnlyCountForRowDetection(t *testing.T) {
	// The only number sits past the last unit: the row is kept but emits nothing.
	g := grid.Grid{
		{"UNIT", "Alpha"},
		{"Drama", "", "7"},
	}
	if got := Extract(g, 1, CategoryTable{}); len(got) != 0 {
		t.Errorf("Extract() = %v, want no facts", got)
	}
}

func TestExtract_NormalizesUnitAndLabelNames(t *testing.T) {
	g := grid.Grid{
		{"UNIT", " Ancient\n  Egypt ", "totals"},
		{"Language\nArts", ""},
		{" Grammar ", "3", "9"},
	}

	got := Extract(g, 1, DefaultCategoryTable())

	want := []Fact{
		{Year: 1, Unit: "Ancient Egypt", Category: ptr("Language Arts"), Subcategory: "Grammar", Hours: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_SkipPatternWinsOverCategory(t *testing.T) {
	table := CategoryTable{"(Bible)": true, "Required Bible": true}
	g := grid.Grid{
		{"UNIT", "Alpha"},
		{"(Bible)", "5"},
		{"Required Bible", "5"},
	}
	if got := Extract(g, 1, table); len(got) != 0 {
		t.Errorf("Extract() = %v, want no facts", got)
	}
}

func TestExtract_EmptyGrid(t *testing.T) {
	if got := Extract(nil, 1, DefaultCategoryTable()); got != nil {
		t.Errorf("Extract(nil) = %v, want nil", got)
	}
	if got := Extract(grid.Grid{{"UNIT"}}, 1, DefaultCategoryTable()); got != nil {
		t.Errorf("Extract(header only) = %v, want nil", got)
	}
}

// ============================================================================
// Properties over generated grids
// ============================================================================

func randomGrid(r *rand.Rand) grid.Grid {
	labels := []string{
		"Physical Science", "Bible", "History", "Physical Education",
		"Biology", "Chemistry", "TOTALS", "(note)", "Required Reading", "Essay", "",
	}
	cells := []string{"", "0", "-1", "2", "3.5", "Hours", "abc", "10", " 7 "}

	cols := 1 + r.Intn(5)
	header := []string{"UNIT"}
	for c := 0; c < cols; c++ {
		if r.Intn(6) == 0 {
			header = append(header, "TOTALS")
		} else {
			header = append(header, "Unit "+strconv.Itoa(c))
		}
	}

	g := grid.Grid{header}
	rows := 3 + r.Intn(12)
	for i := 0; i < rows; i++ {
		row := []string{labels[r.Intn(len(labels))]}
		width := r.Intn(cols + 3)
		for c := 0; c < width; c++ {
			row = append(row, cells[r.Intn(len(cells))])
		}
		g = append(g, row)
	}
	return g
}

func TestExtract_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	table := DefaultCategoryTable()

	for i := 0; i < 500; i++ {
		g := randomGrid(r)
		facts := Extract(g, 1, table)

		// Idempotent.
		if diff := cmp.Diff(facts, Extract(g, 1, table)); diff != "" {
			t.Fatalf("grid %d: second run differs:\n%s", i, diff)
		}

		units := unitNames(g[0])
		for _, f := range facts {
			if f.Hours <= 0 {
				t.Fatalf("grid %d: fact with hours %v", i, f.Hours)
			}
			if f.Unit == "TOTALS" {
				t.Fatalf("grid %d: fact for TOTALS column", i)
			}
			found := false
			for _, u := range units {
				if u == f.Unit {
					found = true
				}
			}
			if !found {
				t.Fatalf("grid %d: unit %q not in header", i, f.Unit)
			}
			if isNoiseLabel(f.Subcategory) {
				t.Fatalf("grid %d: noise row %q emitted", i, f.Subcategory)
			}
		}
	}
}

func TestExtract_RowFactsShareNearestHeader(t *testing.T) {
	g := grid.Grid{
		{"UNIT", "A", "B", "C"},
		{"Earth Science", "", "", ""},
		{"Geology", "1", "2", "3"},
		{"Fine Arts", "", "", ""},
		{"Painting", "4", "", "5"},
	}

	for _, f := range Extract(g, 1, DefaultCategoryTable()) {
		want := map[string]string{"Geology": "Earth Science", "Painting": "Fine Arts"}[f.Subcategory]
		if f.CategoryName() != want {
			t.Errorf("%s/%s category = %q, want %q", f.Unit, f.Subcategory, f.CategoryName(), want)
		}
	}
}

func TestExtract_CategoriesAreIndependent(t *testing.T) {
	g := grid.Grid{
		{"UNIT", "A", "B"},
		{"Earth Science", "", ""},
		{"Geology", "1", "2"},
	}

	facts := Extract(g, 1, DefaultCategoryTable())
	if len(facts) != 2 {
		t.Fatalf("got %d facts, want 2", len(facts))
	}
	*facts[0].Category = "Changed"
	if got := facts[1].CategoryName(); got != "Earth Science" {
		t.Errorf("second fact category = %q after editing the first, want %q", got, "Earth Science")
	}
}

// ============================================================================
// Category table
// ============================================================================

func TestDefaultCategoryTable(t *testing.T) {
	table := DefaultCategoryTable()

	if len(table) != 13 {
		t.Errorf("len(DefaultCategoryTable()) = %d, want 13", len(table))
	}
	for _, name := range []string{"Bible", "Physical Education"} {
		if !table[name] {
			t.Errorf("%s should carry its own hours", name)
		}
	}
	if own, ok := table["Physical Science"]; !ok || own {
		t.Errorf("Physical Science = (%v, %v), want header without hours", own, ok)
	}

	names := table.Names()
	if names[0] != "Bible" {
		t.Errorf("Names()[0] = %q, want sorted order starting with Bible", names[0])
	}
}

func TestParseCategoryTable(t *testing.T) {
	data := []byte(`
categories:
  - name: Physical Science
  - name: " Bible "
    own_hours: true
`)

	got, err := ParseCategoryTable(data)
	if err != nil {
		t.Fatalf("ParseCategoryTable() error = %v", err)
	}

	want := CategoryTable{"Physical Science": false, "Bible": true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseCategoryTable() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCategoryTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "categories: [\n"},
		{"empty", "categories: []\n"},
		{"blank name", "categories:\n  - name: ' '\n"},
		{"duplicate", "categories:\n  - name: Bible\n  - name: Bible\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCategoryTable([]byte(tt.data)); err == nil {
				t.Error("ParseCategoryTable() expected error")
			}
		})
	}
}

func TestLoadCategoryTable(t *testing.T) {
	table, err := LoadCategoryTable("")
	if err != nil {
		t.Fatalf("LoadCategoryTable(\"\") error = %v", err)
	}
	if diff := cmp.Diff(DefaultCategoryTable(), table); diff != "" {
		t.Errorf("empty path should give the default table:\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "categories.yaml")
	if err := os.WriteFile(path, []byte("categories:\n  - name: Latin\n    own_hours: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err = LoadCategoryTable(path)
	if err != nil {
		t.Fatalf("LoadCategoryTable() error = %v", err)
	}
	if !table["Latin"] {
		t.Errorf("table = %v, want Latin with own hours", table)
	}

	if _, err := LoadCategoryTable(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadCategoryTable(missing) expected error")
	}
}

// ============================================================================
// ExtractSources
// ============================================================================

func TestExtractSources(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	y1 := write("gather round year 1.csv", "UNIT,Alpha\nBible,5\n")
	y2 := write("gather round year 2.csv", "UNIT,Beta,Gamma\nPhysical Education,1,2\n")
	stray := write("gather round year 7.csv", "UNIT,Zeta\nBible,1\n")

	sources := []grid.Source{{Path: y1, Year: 1}, {Path: y2, Year: 2}, {Path: stray, Year: 7}}
	facts, counts, err := ExtractSources(context.Background(), sources, "", DefaultCategoryTable())
	if err != nil {
		t.Fatalf("ExtractSources() error = %v", err)
	}

	if len(facts) != 3 {
		t.Errorf("got %d facts, want 3", len(facts))
	}
	wantCounts := []YearCount{{Path: y1, Year: 1, Facts: 1}, {Path: y2, Year: 2, Facts: 2}}
	if diff := cmp.Diff(wantCounts, counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractSources_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sources := []grid.Source{{Path: filepath.Join(t.TempDir(), "gather round year 1.csv"), Year: 1}}
	_, _, err := ExtractSources(ctx, sources, "", DefaultCategoryTable())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ExtractSources() error = %v, want context.Canceled", err)
	}
}

func TestExtractSources_LoadError(t *testing.T) {
	sources := []grid.Source{{Path: filepath.Join(t.TempDir(), "gather round year 1.csv"), Year: 1}}
	if _, _, err := ExtractSources(context.Background(), sources, "", DefaultCategoryTable()); err == nil {
		t.Error("ExtractSources() expected error for missing file")
	}
}

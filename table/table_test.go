package table

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestNew(t *testing.T) {
	tbl, err := New([]string{"x", "y"}, [][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if tbl.Len() != 3 {
		t.Errorf("Expected 3 rows, got %d", tbl.Len())
	}
	cols := tbl.Columns()
	if len(cols) != 2 || cols[0] != "x" || cols[1] != "y" {
		t.Errorf("Expected columns [x y], got %v", cols)
	}
	if !tbl.Has("x") || tbl.Has("z") {
		t.Error("Has misreports columns")
	}
}

func TestNewRejects(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		cols  [][]float64
	}{
		{"no columns", nil, nil},
		{"count mismatch", []string{"x"}, [][]float64{{1}, {2}}},
		{"duplicate names", []string{"x", "x"}, [][]float64{{1}, {2}}},
		{"empty name", []string{"x", ""}, [][]float64{{1}, {2}}},
		{"ragged columns", []string{"x", "y"}, [][]float64{{1, 2}, {3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.names, tt.cols)
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestColumn(t *testing.T) {
	tbl, err := New([]string{"x", "y"}, [][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	col, err := tbl.Column("y")
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	if len(col) != 2 || col[0] != 3 {
		t.Errorf("Unexpected column %v", col)
	}

	_, err = tbl.Column("z")
	if !errors.Is(err, ErrColumn) {
		t.Fatalf("Expected ErrColumn, got %v", err)
	}
	if !strings.Contains(err.Error(), "x, y") {
		t.Errorf("Error should list available columns, got %q", err.Error())
	}
}

func TestFromColumns(t *testing.T) {
	tbl, err := FromColumns(map[string][]float64{
		"y": {4, 5},
		"x": {1, 2},
	})
	if err != nil {
		t.Fatalf("FromColumns failed: %v", err)
	}
	cols := tbl.Columns()
	if cols[0] != "x" || cols[1] != "y" {
		t.Errorf("Expected alphabetical order [x y], got %v", cols)
	}
}

func TestReadCSV(t *testing.T) {
	src := "x,y\n1,2\n3,4\n5,6\n"
	tbl, err := ReadCSV(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if tbl.Len() != 3 {
		t.Errorf("Expected 3 rows, got %d", tbl.Len())
	}
	y, err := tbl.Column("y")
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	if y[2] != 6 {
		t.Errorf("Expected y[2] = 6, got %f", y[2])
	}
}

func TestReadCSVTrimsSpace(t *testing.T) {
	src := " x , y \n 1 , 2 \n"
	tbl, err := ReadCSV(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if !tbl.Has("x") || !tbl.Has("y") {
		t.Errorf("Header should be trimmed, got %v", tbl.Columns())
	}
}

func TestReadCSVRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty input", ""},
		{"header only", "x,y\n"},
		{"non-numeric cell", "x,y\n1,two\n"},
		{"scientific ok but text not", "x\n1e3\nx9\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.src))
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestReadCSVScientificNotation(t *testing.T) {
	src := "x\n1e-3\n2.5E2\n"
	tbl, err := ReadCSV(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	x, err := tbl.Column("x")
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	if x[0] != 0.001 || x[1] != 250 {
		t.Errorf("Unexpected values %v", x)
	}
}

func TestReadUnsupportedExtension(t *testing.T) {
	_, err := Read("data.parquet")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed, got %v", err)
	}
}

func TestReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("x,y\n1,2\n3,4\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	tbl, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if tbl.Len() != 2 || !tbl.Has("y") {
		t.Errorf("Unexpected table: %d rows, columns %v", tbl.Len(), tbl.Columns())
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	cells := map[string]any{
		"A1": "x", "B1": "y",
		"A2": 1.0, "B2": 2.5,
		"A3": 3.0, "B3": 4.0,
	}
	for cell, v := range cells {
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatalf("SetCellValue failed: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "data.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}

	tbl, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", tbl.Len())
	}
	y, err := tbl.Column("y")
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	if y[0] != 2.5 || y[1] != 4 {
		t.Errorf("Expected y = [2.5 4], got %v", y)
	}
}

func TestReadXLSXMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.xlsx"))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	tbl, err := New([]string{"x"}, [][]float64{{1, 2, 3, 4, 5}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	summaries := tbl.Describe()
	if len(summaries) != 1 {
		t.Fatalf("Expected 1 summary, got %d", len(summaries))
	}
	s := summaries[0]
	if s.Name != "x" || s.Count != 5 {
		t.Errorf("Unexpected summary header %+v", s)
	}
	if s.Mean != 3 || s.Median != 3 {
		t.Errorf("Expected mean and median 3, got %f and %f", s.Mean, s.Median)
	}
	if s.Min != 1 || s.Max != 5 {
		t.Errorf("Expected range [1, 5], got [%f, %f]", s.Min, s.Max)
	}
	if s.StdDev <= 0 {
		t.Errorf("Expected positive stddev, got %f", s.StdDev)
	}
}

package dataset_test

import (
	"os"
	"path/filepath"
	"testing"

	"vgsales-predictor/dataset"
	vgerrors "vgsales-predictor/pkg/errors"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vgsales.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeCSV(t, `Rank,Name,Platform,Year,Genre,Publisher,Global_Sales
1,Pong,Atari,1980,Action,Atari,5.0
2,Pac-Man,Atari,1981,Puzzle,Namco,7.0
`)

	records, err := dataset.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Name != "Pong" || first.Year != 1980 || first.Platform != "Atari" ||
		first.Genre != "Action" || first.Publisher != "Atari" || first.GlobalSales != 5.0 {
		t.Errorf("unexpected first record: %+v", first)
	}
}

func TestLoad_SkipsUnparseableRows(t *testing.T) {
	path := writeCSV(t, `Name,Platform,Year,Genre,Publisher,Global_Sales
Pong,Atari,1980,Action,Atari,5.0
Mystery,PS2,N/A,Action,Unknown,1.0
Broken,Wii,2006,Sports,Nintendo,not-a-number
`)

	records, err := dataset.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 usable record, got %d", len(records))
	}
	if records[0].Name != "Pong" {
		t.Errorf("expected Pong, got %q", records[0].Name)
	}
}

func TestLoad_EmptyTable(t *testing.T) {
	path := writeCSV(t, "Name,Platform,Year,Genre,Publisher,Global_Sales\n")

	_, err := dataset.Load(path)
	if err == nil {
		t.Fatal("expected error for table with no data rows")
	}
	if !vgerrors.Is(err, vgerrors.ErrEmptyData) {
		t.Errorf("expected ErrEmptyData in chain, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := dataset.Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	path := writeCSV(t, `Name,Platform,Year,Genre,Global_Sales
Pong,Atari,1980,Action,5.0
`)

	if _, err := dataset.Load(path); err == nil {
		t.Error("expected error when Publisher column is absent")
	}
}

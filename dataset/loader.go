// Package dataset loads the historical game-sales table the pipeline
// trains on.
package dataset

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	vgerrors "vgsales-predictor/pkg/errors"
	"vgsales-predictor/pkg/log"
)

// Record is one historical game sale. Records are immutable once loaded:
// the set is fit-only and never mutated afterwards.
type Record struct {
	Name        string
	Year        int
	Platform    string
	Genre       string
	Publisher   string
	GlobalSales float64 // Millions of units, non-negative
}

// Columns the CSV header must contain. Order is free; positions are
// resolved from the header row.
var requiredColumns = []string{"Name", "Year", "Platform", "Genre", "Publisher", "Global_Sales"}

// Load reads the training CSV at path. Rows whose Year or Global_Sales do
// not parse (the published dataset marks missing years as "N/A") are
// skipped. An error wrapping ErrEmptyData is returned when no usable
// records remain; startup must abort in that case.
func Load(path string) ([]Record, error) {
	logger := log.GetLoggerWithName("dataset")
	logger.Info("reading training data", "path", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, vgerrors.Wrapf(err, "opening training data %s", path)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, vgerrors.Wrapf(err, "parsing training data %s", path)
	}
	if len(rows) == 0 {
		return nil, vgerrors.NewModelError("dataset.Load", "no header row", vgerrors.ErrEmptyData)
	}

	idx, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows)-1)
	skipped := 0
	for _, row := range rows[1:] {
		rec, ok := parseRow(row, idx)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, vgerrors.NewModelError("dataset.Load", "no usable records", vgerrors.ErrEmptyData)
	}

	logger.Info("training data loaded", "records", len(records), "skipped", skipped)
	return records, nil
}

// columnIndex maps required column names to their positions in the header.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := idx[name]; !ok {
			return nil, vgerrors.NewValueError("dataset.Load", "missing required column "+name)
		}
	}
	return idx, nil
}

// parseRow converts one CSV row into a Record. Returns ok=false for rows
// that are too short or whose numeric fields do not parse.
func parseRow(row []string, idx map[string]int) (Record, bool) {
	for _, name := range requiredColumns {
		if idx[name] >= len(row) {
			return Record{}, false
		}
	}

	year, err := strconv.Atoi(strings.TrimSpace(row[idx["Year"]]))
	if err != nil {
		return Record{}, false
	}
	sales, err := strconv.ParseFloat(strings.TrimSpace(row[idx["Global_Sales"]]), 64)
	if err != nil {
		return Record{}, false
	}

	return Record{
		Name:        row[idx["Name"]],
		Year:        year,
		Platform:    row[idx["Platform"]],
		Genre:       row[idx["Genre"]],
		Publisher:   row[idx["Publisher"]],
		GlobalSales: sales,
	}, true
}

package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/plotgram/plotgram/pkg/dataframe"
)

// ReadCSV decodes a CSV table with a header row into a data frame.
//
// Column kinds are inferred from the cell values: when every non-empty
// cell in a column parses as a float the column becomes numeric,
// otherwise it stays a string column. Empty cells become NA.
//
// ReadCSV does not close r.
func ReadCSV(r io.Reader) (dataframe.DataFrame, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("read csv: missing header row")
	}

	header := records[0]
	rows := records[1:]
	b := dataframe.NewBuilder()
	for ci, name := range header {
		if name == "" {
			return dataframe.DataFrame{}, fmt.Errorf("read csv: empty column name at index %d", ci)
		}
		cells := make([]string, len(rows))
		for ri, row := range rows {
			cells[ri] = row[ci]
		}
		if numeric(cells) {
			b.AddFloats(name, toFloats(cells))
		} else {
			b.AddStrings(name, cells)
		}
	}
	return b.Done()
}

// ImportCSV reads a CSV file at path and returns the decoded data frame.
func ImportCSV(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// numeric reports whether every non-empty cell parses as a float. A
// column of only empty cells stays a string column.
func numeric(cells []string) bool {
	any := false
	for _, c := range cells {
		if c == "" {
			continue
		}
		if _, err := strconv.ParseFloat(c, 64); err != nil {
			return false
		}
		any = true
	}
	return any
}

func toFloats(cells []string) []float64 {
	out := make([]float64, len(cells))
	for i, c := range cells {
		if c == "" {
			out[i] = math.NaN()
			continue
		}
		out[i], _ = strconv.ParseFloat(c, 64)
	}
	return out
}

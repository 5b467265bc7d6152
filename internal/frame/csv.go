package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// FromCSV reads a Frame from CSV data. The first record is the header.
// Empty cells become missing values. Column dtypes are inferred: a column
// where every non-empty cell parses as an integer is int, then float,
// bool, RFC3339 time, and finally string.
func FromCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv input has no header row")
	}
	header := records[0]
	cells := make([][]string, len(header))
	for i := range cells {
		cells[i] = make([]string, 0, len(records)-1)
	}
	for _, record := range records[1:] {
		// encoding/csv already enforces a consistent field count.
		for i, cell := range record {
			cells[i] = append(cells[i], cell)
		}
	}
	columns := make([]*Column, len(header))
	for i, name := range header {
		dtype, values := inferColumn(cells[i])
		columns[i] = &Column{Name: name, Dtype: dtype, Values: values}
	}
	return NewFrame(columns...)
}

// LoadCSV reads a Frame from a CSV file on disk.
func LoadCSV(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()
	frame, err := FromCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frame, nil
}

// inferColumn picks the narrowest dtype that fits every non-empty cell
// and converts the cells accordingly.
func inferColumn(cells []string) (Dtype, []interface{}) {
	for _, dtype := range []Dtype{DtypeInt, DtypeFloat, DtypeBool, DtypeTime} {
		if values, ok := tryParseAll(dtype, cells); ok {
			return dtype, values
		}
	}
	values := make([]interface{}, len(cells))
	for i, cell := range cells {
		if cell == "" {
			continue
		}
		values[i] = cell
	}
	return DtypeString, values
}

func tryParseAll(dtype Dtype, cells []string) ([]interface{}, bool) {
	values := make([]interface{}, len(cells))
	nonEmpty := 0
	for i, cell := range cells {
		if cell == "" {
			continue
		}
		nonEmpty++
		switch dtype {
		case DtypeInt:
			n, err := strconv.ParseInt(cell, 10, 64)
			if err != nil {
				return nil, false
			}
			values[i] = n
		case DtypeFloat:
			f, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, false
			}
			values[i] = f
		case DtypeBool:
			b, err := strconv.ParseBool(cell)
			if err != nil {
				return nil, false
			}
			values[i] = b
		case DtypeTime:
			t, err := time.Parse(time.RFC3339, cell)
			if err != nil {
				return nil, false
			}
			values[i] = t
		}
	}
	if nonEmpty == 0 {
		return nil, false
	}
	return values, true
}

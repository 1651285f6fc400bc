package imports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Parse(data []byte) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	// Column-count problems are reported per row by the service, not as a
	// whole-file failure.
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if isEmptyRow(record) {
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

func isEmptyRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

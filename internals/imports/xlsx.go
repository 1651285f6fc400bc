package imports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

type XLSXParser struct{}

func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

func (p *XLSXParser) Parse(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	// Roster sheets are single-sheet exports; read the first one.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		records = append(records, row)
	}
	return records, nil
}

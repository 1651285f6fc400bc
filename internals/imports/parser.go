package imports

import (
	"fmt"
	"strings"
)

// Parser turns an uploaded roster file into raw sheet rows. Validation and
// player conversion are format-independent and live in the service.
type Parser interface {
	Parse(data []byte) ([][]string, error)
}

// Factory picks the parser from the file extension.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) GetParser(filename string) (Parser, error) {
	ext := strings.ToLower(getFileExtension(filename))

	switch ext {
	case ".csv":
		return NewCSVParser(), nil
	case ".xlsx", ".xls":
		return NewXLSXParser(), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

func getFileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx == -1 {
		return ""
	}
	return filename[idx:]
}

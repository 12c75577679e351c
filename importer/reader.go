package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Reader interface {
	Read(r io.Reader, name string) (*Table, error)
}

func ReaderForFormat(format string) (Reader, error) {
	switch NormalizeHeader(format) {
	case "csv":
		return &CSVReader{}, nil
	case "excel", "xlsx", "xlsm":
		return &ExcelReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

// InferFormat returns the explicit format when given, otherwise derives it from
// the file extension.
func InferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv":
		return "csv", nil
	case "xlsx", "xlsm":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", path)
	}
}

// ReadFile opens path and reads it as a table named name.
func ReadFile(path, format, name string) (*Table, error) {
	resolved, err := InferFormat(path, format)
	if err != nil {
		return nil, err
	}
	reader, err := ReaderForFormat(resolved)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s file %s: %w", name, path, err)
	}
	defer file.Close()

	table, err := reader.Read(file, name)
	if err != nil {
		return nil, fmt.Errorf("read %s file %s: %w", name, path, err)
	}
	return table, nil
}

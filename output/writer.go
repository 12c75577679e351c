package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"payprep/payroll"
)

type Writer interface {
	Write(w io.Writer, view payroll.View) error
	// Extension is the file extension the writer produces, without the dot.
	Extension() string
	ContentType() string
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "", "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// FileName returns the view's file name with the writer's extension.
func FileName(view payroll.View, writer Writer) string {
	base := strings.TrimSuffix(view.Name, filepath.Ext(view.Name))
	return base + "." + writer.Extension()
}

// WriteFile renders view into dir and returns the created path.
func WriteFile(dir string, view payroll.View, writer Writer) (string, error) {
	path := filepath.Join(dir, FileName(view, writer))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create output %s: %w", path, err)
	}
	defer file.Close()

	if err := writer.Write(file, view); err != nil {
		return "", fmt.Errorf("write output %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close output %s: %w", path, err)
	}
	return path, nil
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

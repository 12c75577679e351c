package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"payprep/payroll"
)

// CSVWriter writes comma-separated UTF-8 with a header row and no BOM.
type CSVWriter struct{}

func (w *CSVWriter) Extension() string   { return "csv" }
func (w *CSVWriter) ContentType() string { return "text/csv; charset=utf-8" }

func (w *CSVWriter) Write(out io.Writer, view payroll.View) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(view.Headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, row := range view.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"payprep/payroll"
)

type ExcelWriter struct{}

func (w *ExcelWriter) Extension() string { return "xlsx" }
func (w *ExcelWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Write stores every cell as text so values round-trip exactly as in the CSV
// rendering.
func (w *ExcelWriter) Write(out io.Writer, view payroll.View) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	if name := sheetName(view.Name); name != "" {
		if err := file.SetSheetName(sheet, name); err != nil {
			return fmt.Errorf("rename excel sheet: %w", err)
		}
		sheet = name
	}

	for col, header := range view.Headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellStr(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, values := range view.Rows {
		row := i + 2
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellStr(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.Write(out); err != nil {
		return fmt.Errorf("write excel output: %w", err)
	}

	return nil
}

// sheetName derives a sheet title from a view file name, within Excel's
// 31 character limit.
func sheetName(viewName string) string {
	name := strings.TrimSuffix(viewName, ".csv")
	name = strings.ReplaceAll(name, "_", " ")
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelReader reads the first sheet of an xlsx workbook.
type ExcelReader struct{}

func (r *ExcelReader) Read(source io.Reader, name string) (*Table, error) {
	file, err := excelize.OpenReader(source)
	if err != nil {
		return nil, fmt.Errorf("open excel workbook: %w", err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%s workbook has no sheets", name)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheetName)
	}

	headers := rows[0]
	records := make([]Row, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) > len(headers) {
			return nil, fmt.Errorf("sheet %s row %d has %d cells, header has %d", sheetName, i+2, len(row), len(headers))
		}
		records = append(records, Row{Line: i + 2, Values: padRow(row, len(headers))})
	}

	return newTable(name, headers, records), nil
}

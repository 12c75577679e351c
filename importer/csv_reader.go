package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVReader reads comma-separated UTF-8 tables. A leading byte-order mark is
// dropped before the header is parsed.
type CSVReader struct{}

func (r *CSVReader) Read(source io.Reader, name string) (*Table, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := csv.NewReader(transform.NewReader(source, decoder))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s csv is empty", name)
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	rows := make([]Row, 0, 128)
	rowNumber := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", rowNumber+1, err)
		}
		rowNumber++

		if len(record) > len(headers) {
			return nil, fmt.Errorf("csv row %d has %d fields, header has %d", rowNumber, len(record), len(headers))
		}
		rows = append(rows, Row{Line: rowNumber, Values: padRow(record, len(headers))})
	}

	return newTable(name, headers, rows), nil
}

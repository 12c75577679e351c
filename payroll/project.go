package payroll

import "github.com/shopspring/decimal"

const (
	CompleteViewFile = "complete_view.csv"
	UploadViewFile   = "data_ready_for_upload.csv"
)

// View is a rendered output table. Every cell is already formatted text;
// missing values are empty strings.
type View struct {
	Name    string
	Headers []string
	Rows    [][]string
}

var (
	joinedHeaders = []string{"Rate", "Team", "Pay Commodity", "Process Name", "Process ID", "Total"}
	uploadHeaders = []string{"Email", "Process ID", "Hours", "Rate", "Commodity Name"}
)

// CompleteView lists every time-entry column in input order, with the work
// email and time cells replaced by their normalized values, followed by the
// joined and derived columns.
func CompleteView(entryHeaders []string, cols columns, rows []JoinedRow) View {
	headers := make([]string, 0, len(entryHeaders)+len(joinedHeaders))
	headers = append(headers, entryHeaders...)
	headers = append(headers, joinedHeaders...)

	emailCol := cols.index(ColWorkEmail)
	timeCol := cols.index(ColTime)

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		record := make([]string, 0, len(headers))
		record = append(record, row.Entry.Values...)
		if emailCol >= 0 && emailCol < len(record) {
			record[emailCol] = row.Email
		}
		if timeCol >= 0 && timeCol < len(record) {
			record[timeCol] = row.Duration
		}

		var team, commodity, processName, processID string
		if row.Timer != nil {
			team = row.Timer.Team
			commodity = row.Timer.PayCommodity
			processName = row.Timer.ProcessName
			processID = row.Timer.ProcessID
		}
		record = append(record,
			formatRate(row.Rate),
			team,
			commodity,
			processName,
			processID,
			formatFixed(row.Total),
		)
		out = append(out, record)
	}

	return View{Name: CompleteViewFile, Headers: headers, Rows: out}
}

// UploadRows projects joined rows onto the five upload columns.
func UploadRows(rows []JoinedRow, mode HoursMode) []UploadRow {
	out := make([]UploadRow, 0, len(rows))
	for _, row := range rows {
		upload := UploadRow{
			Email: row.Email,
			Rate:  formatRate(row.Rate),
		}
		if mode == HoursRaw {
			upload.Hours = row.Duration
		} else {
			upload.Hours = formatFixed(row.Hours)
		}
		if row.Timer != nil {
			upload.ProcessID = row.Timer.ProcessID
			upload.CommodityName = row.Timer.PayCommodity
		}
		out = append(out, upload)
	}
	return out
}

func UploadView(rows []UploadRow) View {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, []string{row.Email, row.ProcessID, row.Hours, row.Rate, row.CommodityName})
	}
	return View{Name: UploadViewFile, Headers: append([]string(nil), uploadHeaders...), Rows: out}
}

// Head returns a copy of v limited to its first n rows.
func (v View) Head(n int) View {
	if n < 0 || n >= len(v.Rows) {
		n = len(v.Rows)
	}
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = append([]string(nil), v.Rows[i]...)
	}
	return View{Name: v.Name, Headers: append([]string(nil), v.Headers...), Rows: rows}
}

func formatRate(value decimal.NullDecimal) string {
	if !value.Valid {
		return ""
	}
	return value.Decimal.String()
}

func formatFixed(value decimal.NullDecimal) string {
	if !value.Valid {
		return ""
	}
	return value.Decimal.StringFixed(MoneyPlaces)
}

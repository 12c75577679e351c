package payroll

import (
	"payprep/importer"

	"github.com/shopspring/decimal"
)

// RosterRow is one agent roster line.
type RosterRow struct {
	Index    int
	Line     int
	RawEmail string
	Email    string
	RawRate  string
	Rate     decimal.NullDecimal
	Team     string
}

// TimerConfigRow maps a tracked project name to its pay commodity and process.
type TimerConfigRow struct {
	Index        int
	Line         int
	Team         string
	ProjectName  string
	PayCommodity string
	ProcessName  string
	ProcessID    string
}

// TimeEntryRow is one tracked work record. Values keeps every original cell in
// header order so the complete view can reproduce the export verbatim.
type TimeEntryRow struct {
	Index     int
	Line      int
	Client    string
	Project   string
	Date      string
	Member    string
	WorkEmail string
	Time      string
	Values    []string
}

// JoinedRow is a time entry augmented with roster and timer config matches.
// Agent and Timer are nil when no row matched; Rate, Hours and Total are
// invalid when they cannot be derived.
type JoinedRow struct {
	Entry    TimeEntryRow
	Email    string
	Duration string
	Agent    *RosterRow
	Timer    *TimerConfigRow
	Rate     decimal.NullDecimal
	Hours    decimal.NullDecimal
	Total    decimal.NullDecimal
}

// UploadRow is the minimal payment record.
type UploadRow struct {
	Email         string
	ProcessID     string
	Hours         string
	Rate          string
	CommodityName string
}

func (r RosterRow) RowIndex() int      { return r.Index }
func (r TimerConfigRow) RowIndex() int { return r.Index }
func (r TimeEntryRow) RowIndex() int   { return r.Index }
func (r JoinedRow) RowIndex() int      { return r.Entry.Index }

func loadRoster(table *importer.Table, cols columns) []RosterRow {
	rows := make([]RosterRow, 0, len(table.Rows))
	for i, row := range table.Rows {
		rawEmail := row.Get(cols[ColAgentEmail])
		rawRate := row.Get(cols[ColRate])
		rows = append(rows, RosterRow{
			Index:    i,
			Line:     row.Line,
			RawEmail: rawEmail,
			Email:    NormalizeEmail(rawEmail),
			RawRate:  rawRate,
			Rate:     NormalizeRate(rawRate),
			Team:     row.Get(cols.index(ColTeam)),
		})
	}
	return rows
}

func loadTimers(table *importer.Table, cols columns) []TimerConfigRow {
	rows := make([]TimerConfigRow, 0, len(table.Rows))
	for i, row := range table.Rows {
		rows = append(rows, TimerConfigRow{
			Index:        i,
			Line:         row.Line,
			Team:         row.Get(cols[ColTeam]),
			ProjectName:  row.Get(cols[ColProjectNames]),
			PayCommodity: row.Get(cols[ColPayCommodity]),
			ProcessName:  row.Get(cols[ColProcessName]),
			ProcessID:    row.Get(cols[ColProcessID]),
		})
	}
	return rows
}

func loadTimeEntries(table *importer.Table, cols columns) []TimeEntryRow {
	rows := make([]TimeEntryRow, 0, len(table.Rows))
	for i, row := range table.Rows {
		values := make([]string, len(row.Values))
		copy(values, row.Values)
		rows = append(rows, TimeEntryRow{
			Index:     i,
			Line:      row.Line,
			Client:    row.Get(cols[ColClient]),
			Project:   row.Get(cols[ColProject]),
			Date:      row.Get(cols[ColDate]),
			Member:    row.Get(cols[ColMember]),
			WorkEmail: row.Get(cols[ColWorkEmail]),
			Time:      row.Get(cols[ColTime]),
			Values:    values,
		})
	}
	return rows
}

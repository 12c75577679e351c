package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/mattn/go-runewidth"

	"payprep/payroll"
)

// Report is the serializable outcome of one run without the views.
type Report struct {
	RunID    string            `json:"runId,omitempty"`
	Cycle    CycleReport       `json:"cycle"`
	Rows     int               `json:"rows"`
	Warnings []payroll.Warning `json:"warnings"`
}

type CycleReport struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func NewCycleReport(cycle payroll.Cycle) CycleReport {
	return CycleReport{
		Start: cycle.Start.Format(time.DateOnly),
		End:   cycle.End.Format(time.DateOnly),
	}
}

func NewReport(runID string, result *payroll.Result) Report {
	warnings := result.Warnings
	if warnings == nil {
		warnings = []payroll.Warning{}
	}
	return Report{
		RunID:    runID,
		Cycle:    NewCycleReport(result.Cycle),
		Rows:     len(result.Rows),
		Warnings: warnings,
	}
}

func WriteReportJSON(w io.Writer, report Report) error {
	data, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

var warningHeaders = []string{"Source", "Rule", "Key", "Rows"}

// WriteWarningsTable prints warnings as an aligned text table. Nothing is
// written when there are no warnings.
func WriteWarningsTable(w io.Writer, warnings []payroll.Warning) error {
	if len(warnings) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(warnings))
	for _, warning := range warnings {
		rows = append(rows, []string{warning.Source, warning.Rule, warning.Key, formatRows(warning.Rows)})
	}

	widths := make([]int, len(warningHeaders))
	for i, header := range warningHeaders {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if width := runewidth.StringWidth(cell); width > widths[i] {
				widths[i] = width
			}
		}
	}

	var b strings.Builder
	writeTableRow(&b, warningHeaders, widths)
	separators := make([]string, len(widths))
	for i, width := range widths {
		separators[i] = strings.Repeat("-", width)
	}
	writeTableRow(&b, separators, widths)
	for _, row := range rows {
		writeTableRow(&b, row, widths)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write warnings: %w", err)
	}
	return nil
}

func writeTableRow(b *strings.Builder, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		if i == len(cells)-1 {
			b.WriteString(cell)
			continue
		}
		b.WriteString(runewidth.FillRight(cell, widths[i]))
	}
	b.WriteString("\n")
}

func formatRows(rows []int) string {
	parts := make([]string, len(rows))
	for i, row := range rows {
		parts[i] = strconv.Itoa(row)
	}
	return strings.Join(parts, ", ")
}

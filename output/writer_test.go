package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"payprep/importer"
	"payprep/payroll"
)

const (
	rosterCSV  = "\ufeffAgent Email,Rate,Team\nann@invisible.email,$12.50,Ops\n"
	timersCSV  = "Team,Hubstaff Project Names,Pay Commodity,Process Name (App),Process ID\nOps,Alpha,Operate,\"Labeling, Tier 1\",P-100\n"
	entriesCSV = "Client,Project,Date,Member,Work email,Time\nAcme,Alpha,2026-04-17,Ann,Ann@invisible.email,2:30\nAcme,Zeta,2026-04-18,Ann,ann@invisible.email,1:00\n"
)

func runEngine(t *testing.T) *payroll.Result {
	t.Helper()

	read := func(name, content string) *importer.Table {
		table, err := (&importer.CSVReader{}).Read(strings.NewReader(content), name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return table
	}

	engine, err := payroll.New(payroll.DefaultOptions(time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	result, err := engine.Run(payroll.Inputs{
		Roster:      read(payroll.SourceRoster, rosterCSV),
		Timers:      read(payroll.SourceTimers, timersCSV),
		TimeEntries: read(payroll.SourceTimeEntries, entriesCSV),
	})
	if err != nil {
		t.Fatalf("run engine: %v", err)
	}
	return result
}

func TestCSVWriter_WritesViews(t *testing.T) {
	t.Parallel()

	result := runEngine(t)

	var complete bytes.Buffer
	if err := (&CSVWriter{}).Write(&complete, result.Complete); err != nil {
		t.Fatalf("write complete view: %v", err)
	}
	wantComplete := "Client,Project,Date,Member,Work email,Time,Rate,Team,Pay Commodity,Process Name,Process ID,Total\n" +
		"Acme,Alpha,2026-04-17,Ann,ann@invisible.email,2:30:00,12.5,Ops,Operate,\"Labeling, Tier 1\",P-100,31.25\n" +
		"Acme,Zeta,2026-04-18,Ann,ann@invisible.email,1:00:00,12.5,,,,,\n"
	if complete.String() != wantComplete {
		t.Fatalf("unexpected complete view:\n%s", complete.String())
	}

	var upload bytes.Buffer
	if err := (&CSVWriter{}).Write(&upload, result.Upload); err != nil {
		t.Fatalf("write upload view: %v", err)
	}
	wantUpload := "Email,Process ID,Hours,Rate,Commodity Name\n" +
		"ann@invisible.email,P-100,2.50,12.5,Operate\n" +
		"ann@invisible.email,,1.00,12.5,\n"
	if upload.String() != wantUpload {
		t.Fatalf("unexpected upload view:\n%s", upload.String())
	}
}

func TestCSVWriter_ByteIdenticalAcrossRuns(t *testing.T) {
	t.Parallel()

	render := func() []byte {
		var buf bytes.Buffer
		result := runEngine(t)
		if err := (&CSVWriter{}).Write(&buf, result.Complete); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := (&CSVWriter{}).Write(&buf, result.Upload); err != nil {
			t.Fatalf("write: %v", err)
		}
		return buf.Bytes()
	}

	if first, second := render(), render(); !bytes.Equal(first, second) {
		t.Fatalf("expected identical output, got:\n%s\n---\n%s", first, second)
	}
}

func TestWriteFile_UsesViewNamesAndExtension(t *testing.T) {
	t.Parallel()

	result := runEngine(t)
	dir := t.TempDir()

	csvPath, err := WriteFile(dir, result.Upload, &CSVWriter{})
	if err != nil {
		t.Fatalf("write csv file: %v", err)
	}
	if filepath.Base(csvPath) != payroll.UploadViewFile {
		t.Fatalf("unexpected csv file name: %s", csvPath)
	}
	content, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasPrefix(string(content), "Email,Process ID,Hours,Rate,Commodity Name\n") {
		t.Fatalf("unexpected csv content: %s", content)
	}

	xlsxPath, err := WriteFile(dir, result.Complete, &ExcelWriter{})
	if err != nil {
		t.Fatalf("write excel file: %v", err)
	}
	if filepath.Base(xlsxPath) != "complete_view.xlsx" {
		t.Fatalf("unexpected excel file name: %s", xlsxPath)
	}

	workbook, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		t.Fatalf("open excel output: %v", err)
	}
	defer workbook.Close()

	rows, err := workbook.GetRows(workbook.GetSheetName(0))
	if err != nil {
		t.Fatalf("read excel rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[1][11] != "31.25" || rows[0][11] != "Total" {
		t.Fatalf("unexpected excel content: %v", rows)
	}
}

func TestWriterForFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{format: "", wantExt: "csv"},
		{format: "CSV", wantExt: "csv"},
		{format: "excel", wantExt: "xlsx"},
		{format: "xlsx", wantExt: "xlsx"},
		{format: "json", wantErr: true},
	}

	for _, tc := range tests {
		writer, err := WriterForFormat(tc.format)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tc.format)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.format, err)
		}
		if writer.Extension() != tc.wantExt {
			t.Fatalf("unexpected extension for %q: %s", tc.format, writer.Extension())
		}
	}
}

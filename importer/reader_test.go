package importer

import "testing"

func TestInferFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		format  string
		want    string
		wantErr bool
	}{
		{name: "csv extension", path: "roster.csv", want: "csv"},
		{name: "upper xlsx", path: "Timers.XLSX", want: "excel"},
		{name: "explicit wins", path: "export.txt", format: "csv", want: "csv"},
		{name: "unknown", path: "export.txt", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := InferFormat(tc.path, tc.format)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected format: want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestReaderForFormat_RejectsUnknown(t *testing.T) {
	t.Parallel()

	if _, err := ReaderForFormat("json"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if _, err := ReaderForFormat("CSV"); err != nil {
		t.Fatalf("expected csv reader: %v", err)
	}
}

func TestTable_ColumnIndexNormalizesHeaders(t *testing.T) {
	t.Parallel()

	table := &Table{Headers: []string{"Client", "Work email", "Process Name (App)", "work_email"}}

	if got := table.ColumnIndex("Work Email"); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
	if got := table.ColumnIndex("Process Name", "Process Name (App)"); got != 2 {
		t.Fatalf("expected alias match at 2, got %d", got)
	}
	if got := table.ColumnIndexes("Work email"); len(got) != 2 {
		t.Fatalf("expected duplicate normalized headers, got %v", got)
	}
	if got := table.ColumnIndex("Missing"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"payprep/config"
	"payprep/payroll"
)

var fixedNow = time.Date(2026, 4, 20, 9, 30, 0, 0, time.UTC)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	cfg, err := config.ValidateYAMLContent([]byte("cycle:\n  timezone: UTC\n"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return *cfg
}

func writeInputs(t *testing.T, roster string) runFlags {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"roster.csv": roster,
		"timers.csv": "Team,Hubstaff Project Names,Pay Commodity,Process Name,Process ID\nOps,Alpha,Operate,Labeling,P-100\n",
		"export.csv": "Client,Project,Date,Member,Work email,Time\n" +
			"Acme,Alpha,2026-04-17,Ann,ann@invisible.email,2:30\n" +
			"Acme,Alpha,2026-04-18,Bob,bob@invisible.email,1:15:00\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	return runFlags{
		roster: filepath.Join(dir, "roster.csv"),
		timers: filepath.Join(dir, "timers.csv"),
		export: filepath.Join(dir, "export.csv"),
	}
}

const cleanRoster = "Agent Email,Rate,Team\nann@invisible.email,$12.50,Ops\nbob@invisible.email,20,Ops\n"

func TestRunCombineWritesBothViews(t *testing.T) {
	t.Parallel()

	flags := writeInputs(t, cleanRoster)
	outDir := filepath.Join(t.TempDir(), "out")

	var out bytes.Buffer
	if err := runCombine(&out, testConfig(t), flags, outDir, "csv", fixedNow); err != nil {
		t.Fatalf("combine: %v", err)
	}

	if !strings.Contains(out.String(), "Combine completed. Cycle: 2026-04-16..2026-04-30, Rows: 2, Warnings: 0") {
		t.Fatalf("unexpected summary:\n%s", out.String())
	}

	upload, err := os.ReadFile(filepath.Join(outDir, payroll.UploadViewFile))
	if err != nil {
		t.Fatalf("read upload view: %v", err)
	}
	want := "Email,Process ID,Hours,Rate,Commodity Name\n" +
		"ann@invisible.email,P-100,2.50,12.5,Operate\n" +
		"bob@invisible.email,P-100,1.25,20,Operate\n"
	if string(upload) != want {
		t.Fatalf("unexpected upload view:\n%s", upload)
	}

	if _, err := os.Stat(filepath.Join(outDir, payroll.CompleteViewFile)); err != nil {
		t.Fatalf("expected complete view: %v", err)
	}
}

func TestRunCombineExcelAndRawHours(t *testing.T) {
	t.Parallel()

	flags := writeInputs(t, cleanRoster)
	flags.hoursMode = "raw"
	outDir := t.TempDir()

	var out bytes.Buffer
	if err := runCombine(&out, testConfig(t), flags, outDir, "excel", fixedNow); err != nil {
		t.Fatalf("combine: %v", err)
	}

	for _, name := range []string{"complete_view.xlsx", "data_ready_for_upload.xlsx"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestRunCombineMissingColumnWritesNothing(t *testing.T) {
	t.Parallel()

	flags := writeInputs(t, "Agent Email,Team\nann@invisible.email,Ops\n")
	outDir := filepath.Join(t.TempDir(), "out")

	var out bytes.Buffer
	err := runCombine(&out, testConfig(t), flags, outDir, "csv", fixedNow)

	var schemaErr *payroll.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if schemaErr.Table != payroll.SourceRoster {
		t.Fatalf("unexpected table: %s", schemaErr.Table)
	}
	if _, statErr := os.Stat(outDir); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output directory, got %v", statErr)
	}
}

func TestRunValidateStrictFailsOnWarnings(t *testing.T) {
	t.Parallel()

	// Ann has two different rates.
	flags := writeInputs(t, cleanRoster+"ANN@invisible.email,14,Ops\n")

	var out bytes.Buffer
	if err := runValidate(&out, testConfig(t), flags, false, fixedNow); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out.String(), "Roster: 1 warning(s)") || !strings.Contains(out.String(), "Multiple Rates for Agent") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}

	out.Reset()
	if err := runValidate(&out, testConfig(t), flags, true, fixedNow); err == nil {
		t.Fatalf("expected strict validation to fail")
	}
}

func TestRunValidateJSON(t *testing.T) {
	t.Parallel()

	flags := writeInputs(t, cleanRoster)
	flags.json = true

	var out bytes.Buffer
	if err := runValidate(&out, testConfig(t), flags, true, fixedNow); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out.String(), `"warnings": []`) || !strings.Contains(out.String(), `"start": "2026-04-16"`) {
		t.Fatalf("unexpected json output:\n%s", out.String())
	}
}

func TestEngineOptionsOverrides(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)

	tests := []struct {
		name    string
		flags   runFlags
		wantErr bool
		check   func(t *testing.T, opts payroll.Options)
	}{
		{
			name:  "config defaults",
			flags: runFlags{},
			check: func(t *testing.T, opts payroll.Options) {
				if opts.HoursMode != payroll.HoursDecimal || opts.RosterVariant != payroll.RosterFull {
					t.Fatalf("unexpected defaults: %+v", opts)
				}
				if !opts.Today.Equal(time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)) {
					t.Fatalf("unexpected today: %s", opts.Today)
				}
			},
		},
		{
			name:  "flag overrides",
			flags: runFlags{hoursMode: "raw", rosterVariant: "light", today: "2026-05-03"},
			check: func(t *testing.T, opts payroll.Options) {
				if opts.HoursMode != payroll.HoursRaw || opts.RosterVariant != payroll.RosterLight {
					t.Fatalf("overrides not applied: %+v", opts)
				}
				if opts.Today.Day() != 3 || opts.Today.Month() != time.May {
					t.Fatalf("unexpected today: %s", opts.Today)
				}
			},
		},
		{name: "bad hours mode", flags: runFlags{hoursMode: "minutes"}, wantErr: true},
		{name: "bad variant", flags: runFlags{rosterVariant: "partial"}, wantErr: true},
		{name: "bad today", flags: runFlags{today: "03.05.2026"}, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts, err := tc.flags.engineOptions(cfg, fixedNow)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tc.check(t, opts)
		})
	}
}

func TestPrintCycle(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)

	var out bytes.Buffer
	if err := printCycle(&out, cfg, "2026-02-20", fixedNow); err != nil {
		t.Fatalf("print cycle: %v", err)
	}
	if got := out.String(); got != "Pay cycle: 2026-02-16 to 2026-02-28\n" {
		t.Fatalf("unexpected output: %q", got)
	}

	out.Reset()
	if err := printCycle(&out, cfg, "", fixedNow); err != nil {
		t.Fatalf("print cycle: %v", err)
	}
	if got := out.String(); got != "Pay cycle: 2026-04-16 to 2026-04-30\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestDescribeConfigListsEveryKey(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	describeConfig(&out, testConfig(t))

	for _, key := range []string{
		config.KeyRosterVariant, config.KeyUploadHoursMode, config.KeyEmailDomain,
		config.KeyCommodityKeywords, config.KeyPostJoinChecks, config.KeyNormalizeProjectNames,
		config.KeyCycleTimezone, config.KeyServePort, config.KeyServeMaxUploadMB,
	} {
		if !strings.Contains(out.String(), key+": ") {
			t.Fatalf("expected %s in output:\n%s", key, out.String())
		}
	}
}

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"payprep/config"
	"payprep/importer"
	"payprep/output"
	"payprep/payroll"
)

// runFlags are the input selections shared by combine and validate.
type runFlags struct {
	roster        string
	timers        string
	export        string
	inputFormat   string
	today         string
	hoursMode     string
	rosterVariant string
	json          bool
}

const inputTemplates = `
Required input headers (matched case-insensitively, ignoring spaces, "-" and "_"):
- roster:  Agent Email, Rate, Team   (Team is optional with --roster-variant light)
- timers:  Team, Hubstaff Project Names, Pay Commodity, Process Name, Process ID
- export:  Client, Project, Date, Member, Work email, Time
Extra columns are kept and passed through to complete_view.`

func bindRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().StringVar(&flags.roster, "roster", "", "Agent roster file (CSV or Excel)")
	cmd.Flags().StringVar(&flags.timers, "timers", "", "Project timer configuration file (CSV or Excel)")
	cmd.Flags().StringVar(&flags.export, "export", "", "Time-tracking export file (CSV or Excel)")
	cmd.Flags().StringVar(&flags.inputFormat, "input-format", "", "Force input format for all files: csv|excel (default: inferred from extension)")
	cmd.Flags().StringVar(&flags.today, "today", "", "Override today's date for pay cycle resolution, format YYYY-MM-DD")
	cmd.Flags().StringVar(&flags.hoursMode, "hours-mode", "", "Upload Hours column: decimal|raw (default from config)")
	cmd.Flags().StringVar(&flags.rosterVariant, "roster-variant", "", "Roster columns: full|light (default from config)")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Print warnings as JSON instead of a table")

	_ = cmd.MarkFlagRequired("roster")
	_ = cmd.MarkFlagRequired("timers")
	_ = cmd.MarkFlagRequired("export")
}

// engineOptions layers command-line overrides on top of the configuration.
func (f runFlags) engineOptions(cfg config.Config, now time.Time) (payroll.Options, error) {
	var (
		today time.Time
		err   error
	)
	if strings.TrimSpace(f.today) != "" {
		today, err = cfg.ParseToday(f.today)
	} else {
		today, err = cfg.Today(now)
	}
	if err != nil {
		return payroll.Options{}, fmt.Errorf("invalid --today value: %w", err)
	}

	opts, err := cfg.EngineOptions(today)
	if err != nil {
		return payroll.Options{}, err
	}
	if strings.TrimSpace(f.hoursMode) != "" {
		if opts.HoursMode, err = payroll.ParseHoursMode(f.hoursMode); err != nil {
			return payroll.Options{}, err
		}
	}
	if strings.TrimSpace(f.rosterVariant) != "" {
		if opts.RosterVariant, err = payroll.ParseRosterVariant(f.rosterVariant); err != nil {
			return payroll.Options{}, err
		}
	}
	return opts, nil
}

func (f runFlags) inputs() (payroll.Inputs, error) {
	roster, err := importer.ReadFile(f.roster, f.inputFormat, payroll.SourceRoster)
	if err != nil {
		return payroll.Inputs{}, err
	}
	timers, err := importer.ReadFile(f.timers, f.inputFormat, payroll.SourceTimers)
	if err != nil {
		return payroll.Inputs{}, err
	}
	entries, err := importer.ReadFile(f.export, f.inputFormat, payroll.SourceTimeEntries)
	if err != nil {
		return payroll.Inputs{}, err
	}
	return payroll.Inputs{Roster: roster, Timers: timers, TimeEntries: entries}, nil
}

// executeRun reads the three inputs and runs one engine pass.
func executeRun(cfg config.Config, flags runFlags, now time.Time) (*payroll.Result, error) {
	opts, err := flags.engineOptions(cfg, now)
	if err != nil {
		return nil, err
	}
	engine, err := payroll.New(opts)
	if err != nil {
		return nil, err
	}

	in, err := flags.inputs()
	if err != nil {
		return nil, err
	}
	slog.Debug("inputs read",
		"roster_rows", len(in.Roster.Rows),
		"timer_rows", len(in.Timers.Rows),
		"entry_rows", len(in.TimeEntries.Rows),
		"roster_variant", engine.Options().RosterVariant,
		"hours_mode", engine.Options().HoursMode,
	)

	return engine.Run(in)
}

// printWarnings writes the warning report as JSON, or as per-source counts
// followed by one aligned table.
func printWarnings(out io.Writer, result *payroll.Result, asJSON bool) error {
	if asJSON {
		return output.WriteReportJSON(out, output.NewReport(uuid.NewString(), result))
	}
	if len(result.Warnings) == 0 {
		_, err := fmt.Fprintln(out, "No warnings.")
		return err
	}

	grouped := payroll.WarningsBySource(result.Warnings)
	for _, source := range []string{payroll.SourceRoster, payroll.SourceTimers, payroll.SourceTimeEntries, payroll.SourceComplete} {
		if count := len(grouped[source]); count > 0 {
			if _, err := fmt.Fprintf(out, "%s: %d warning(s)\n", source, count); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	return output.WriteWarningsTable(out, result.Warnings)
}

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"payprep/config"
	"payprep/output"
)

var (
	combineFlags     runFlags
	combineOutputDir string
	combineFormat    string
)

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Validate inputs, join entries to rates and processes, and write both output views",
	Long: `Read the roster, timer configuration and time-tracking export, validate each,
join every time entry to its agent rate and project process, compute hours and totals,
and write complete_view and data_ready_for_upload to the output directory.

Validation findings never stop the run; they are printed as warnings. Missing
required columns or unreadable files abort the run before anything is written.
` + inputTemplates,
	Example: `
  # Combine CSV inputs into ./out
  payprep combine --roster roster.csv --timers timers.csv --export export.csv --output-dir ./out

  # Write Excel outputs and keep raw HH:MM:SS durations in the upload view
  payprep combine --roster roster.xlsx --timers timers.xlsx --export export.csv --format excel --hours-mode raw

  # Resolve the pay cycle for a fixed date and print warnings as JSON
  payprep combine --roster roster.csv --timers timers.csv --export export.csv --today 2026-04-20 --json
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		return runCombine(cmd.OutOrStdout(), *cfg, combineFlags, combineOutputDir, combineFormat, time.Now())
	},
}

func runCombine(out io.Writer, cfg config.Config, flags runFlags, outputDir, format string, now time.Time) error {
	writer, err := output.WriterForFormat(format)
	if err != nil {
		return err
	}

	result, err := executeRun(cfg, flags, now)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	completePath, err := output.WriteFile(outputDir, result.Complete, writer)
	if err != nil {
		return err
	}
	uploadPath, err := output.WriteFile(outputDir, result.Upload, writer)
	if err != nil {
		return err
	}

	if err := printWarnings(out, result, flags.json); err != nil {
		return err
	}
	if flags.json {
		return nil
	}

	fmt.Fprintf(out, "\nCombine completed. Cycle: %s, Rows: %d, Warnings: %d\n", result.Cycle, len(result.Rows), len(result.Warnings))
	fmt.Fprintf(out, "Complete view: %s\n", completePath)
	fmt.Fprintf(out, "Upload view:   %s\n", uploadPath)
	return nil
}

func init() {
	rootCmd.AddCommand(combineCmd)

	bindRunFlags(combineCmd, &combineFlags)
	combineCmd.Flags().StringVarP(&combineOutputDir, "output-dir", "o", ".", "Directory for complete_view and data_ready_for_upload")
	combineCmd.Flags().StringVarP(&combineFormat, "format", "f", "csv", "Output format: csv|excel")
}

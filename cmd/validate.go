package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"payprep/config"
)

var (
	validateFlags  runFlags
	validateStrict bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the three inputs and print warnings without writing outputs",
	Long: `Run schema and row validation, the join and the post-join checks, and print
every warning. No output files are written.

The command fails on missing required columns or unreadable files. With --strict
it also fails when any warning is reported.
` + inputTemplates,
	Example: `
  # Validate inputs for the current pay cycle
  payprep validate --roster roster.csv --timers timers.csv --export export.csv

  # Fail the run when any warning is found (e.g. in CI)
  payprep validate --roster roster.csv --timers timers.csv --export export.csv --strict
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		return runValidate(cmd.OutOrStdout(), *cfg, validateFlags, validateStrict, time.Now())
	},
}

func runValidate(out io.Writer, cfg config.Config, flags runFlags, strict bool, now time.Time) error {
	result, err := executeRun(cfg, flags, now)
	if err != nil {
		return err
	}

	if err := printWarnings(out, result, flags.json); err != nil {
		return err
	}
	if !flags.json {
		fmt.Fprintf(out, "\nValidation completed. Cycle: %s, Rows: %d, Warnings: %d\n", result.Cycle, len(result.Rows), len(result.Warnings))
	}

	if strict && len(result.Warnings) > 0 {
		return fmt.Errorf("validation reported %d warning(s)", len(result.Warnings))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(validateCmd)

	bindRunFlags(validateCmd, &validateFlags)
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Exit non-zero when any warning is reported")
}

package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"payprep/config"
	"payprep/payroll"
)

var cycleToday string

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Print the pay cycle for today or a given date",
	Long: `Print the semi-monthly pay cycle that contains today, in the configured
cycle.timezone. Cycles run from the 1st to the 15th and from the 16th to the
last day of the month.`,
	Example: `
  # Current cycle
  payprep cycle

  # Cycle containing a specific date
  payprep cycle --today 2026-02-20
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		return printCycle(cmd.OutOrStdout(), *cfg, cycleToday, time.Now())
	},
}

func printCycle(out io.Writer, cfg config.Config, todayValue string, now time.Time) error {
	var (
		today time.Time
		err   error
	)
	if strings.TrimSpace(todayValue) != "" {
		today, err = cfg.ParseToday(todayValue)
	} else {
		today, err = cfg.Today(now)
	}
	if err != nil {
		return err
	}

	cycle := payroll.ResolveCycle(today)
	_, err = fmt.Fprintf(out, "Pay cycle: %s to %s\n", cycle.Start.Format(time.DateOnly), cycle.End.Format(time.DateOnly))
	return err
}

func init() {
	rootCmd.AddCommand(cycleCmd)

	cycleCmd.Flags().StringVar(&cycleToday, "today", "", "Date inside the cycle, format YYYY-MM-DD (default: today)")
}

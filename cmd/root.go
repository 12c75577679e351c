/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"payprep/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "payprep",
	Short: "Validate, combine, and price pay-cycle time entries for upload.",
	Long: `
**********************************************
*                PAY PREP                    *
**********************************************

This CLI reads three inputs for one pay run: the agent roster (email, rate, team),
the project timer configuration (project, pay commodity, process) and the
time-tracking export. It validates each input, joins entries to agent rates and
project processes, computes hours and totals, and writes two outputs:
- complete_view: every export column plus rate, team, commodity, process and total
- data_ready_for_upload: Email, Process ID, Hours, Rate, Commodity Name

Supported input formats:
- Excel: .xlsx, .xlsm
- CSV: .csv
`,
	Example: `
  # Create configuration file
  payprep config create

  # Show the active pay cycle
  payprep cycle

  # Validate inputs without writing outputs
  payprep validate --roster roster.csv --timers timers.xlsx --export export.csv

  # Combine inputs and write both views to ./out
  payprep combine --roster roster.csv --timers timers.xlsx --export export.csv --output-dir ./out

  # Start the upload/download web surface
  payprep serve --port 9090
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.payprep.yaml, then ./.payprep.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug diagnostics to stderr")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setupLogger(verbose)

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".payprep" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".payprep")
	}

	viper.SetEnvPrefix("PAYPREP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// Defaults apply when no file is found; an explicit file must exist.
	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Could not read config file %s: %v\n", cfgFile, err)
			return
		}
		slog.Debug("no config file found, using defaults", "hint", "payprep config create")
		return
	}
	slog.Debug("config loaded", "file", viper.ConfigFileUsed())
}

func setupLogger(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"payprep/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. Defaults are
shown when no config file is found.`,
	Example: `
  # Show active configuration
  payprep config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded; using defaults.")
		}
		describeConfig(cmd.OutOrStdout(), *cfg)
	},
}

type configSetting struct {
	key   string
	value string
}

// configValues renders every effective setting in a fixed order.
func configValues(cfg config.Config) []configSetting {
	return []configSetting{
		{config.KeyRosterVariant, cfg.Roster.Variant},
		{config.KeyUploadHoursMode, cfg.Upload.HoursMode},
		{config.KeyEmailDomain, cfg.Validation.EmailDomain},
		{config.KeyCommodityKeywords, strings.Join(cfg.Validation.CommodityKeywords, ", ")},
		{config.KeyPostJoinChecks, strconv.FormatBool(cfg.Validation.PostJoinChecks)},
		{config.KeyNormalizeProjectNames, strconv.FormatBool(cfg.Join.NormalizeProjectNames)},
		{config.KeyCycleTimezone, cfg.Cycle.Timezone},
		{config.KeyServePort, strconv.Itoa(cfg.Serve.Port)},
		{config.KeyServeMaxUploadMB, strconv.FormatInt(cfg.Serve.MaxUploadMB, 10)},
	}
}

func describeConfig(out io.Writer, cfg config.Config) {
	fmt.Fprintln(out, "Configuration:")
	for _, setting := range configValues(cfg) {
		fmt.Fprintf(out, "%s: %s\n", setting.key, setting.value)
	}
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

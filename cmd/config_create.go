package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"payprep/config"
)

var (
	configCreateForce bool
	configCreatePrint bool
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Create a new configuration file from the same example template used by "config edit".

If a configuration file is already in use, no new file is written unless --force is set.
With --print the template is written to stdout instead.`,
	Example: `
  # Create default config at $HOME/.payprep.yaml
  payprep config create

  # Reset an existing config to the template
  payprep --configFile ./payprep.yaml config create --force

  # Print the template
  payprep config create --print > ./.payprep.yaml
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configCreatePrint {
			_, err := io.WriteString(cmd.OutOrStdout(), config.ExampleYAML())
			return err
		}
		return saveDefaultConfig(configCreateForce)
	},
}

func saveDefaultConfig(force bool) error {
	configPath, err := resolveConfigPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	if force {
		if err := os.Remove(configPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("replacing config file failed: %w", err)
		}
	}

	created, err := writeTemplateIfMissing(configPath)
	if err != nil {
		return err
	}

	if created {
		fmt.Printf("New config file created at: %s\n", configPath)
		return nil
	}

	fmt.Printf("Config file already exists at: %s (use --force to replace it)\n", configPath)
	return nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)

	configCreateCmd.Flags().BoolVar(&configCreateForce, "force", false, "Replace an existing config file with the template")
	configCreateCmd.Flags().BoolVar(&configCreatePrint, "print", false, "Print the template to stdout instead of writing a file")
}

package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage payprep configuration file values.",
	Long: `Create, edit, display, and delete the payprep configuration file.

The configuration stores application-wide values:
- roster.variant / upload.hours_mode
- validation.email_domain / validation.commodity_keywords / validation.post_join_checks
- join.normalize_project_names
- cycle.timezone
- serve.port / serve.max_upload_mb

Every key can also be set from the environment with the PAYPREP_ prefix,
e.g. PAYPREP_UPLOAD_HOURS_MODE=raw.`,
	Example: `
  # Create default config in $HOME/.payprep.yaml
  payprep config create

  # Show active config and source file
  payprep config show

  # Open active config in editor (creates example if missing)
  payprep config edit

  # Delete active config file
  payprep config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"payprep/config"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config in an editor and report what changed.",
	Long: `Open the active payprep config file in $VISUAL, $EDITOR or vi.

A missing config file is created from the example template first. After the editor
exits the file is validated, and every setting whose effective value changed is
listed. Changes to serve.* only apply to a restarted "payprep serve".`,
	Example: `
  # Edit active config
  payprep config edit

  # Edit a project-local config with a specific editor
  EDITOR="code --wait" payprep --configFile ./.payprep.yaml config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := resolveConfigPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		created, err := writeTemplateIfMissing(configPath)
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("No config file found. Created example config at: %s\n", configPath)
		}

		// An invalid file before editing compares against the defaults.
		before, err := readConfigFile(configPath)
		if err != nil {
			if before, err = config.ValidateYAMLContent([]byte("{}")); err != nil {
				return err
			}
		}

		editor := editorCommand(os.Getenv("VISUAL"), os.Getenv("EDITOR"), configPath)
		editor.Stdin = os.Stdin
		editor.Stdout = os.Stdout
		editor.Stderr = os.Stderr
		if err := editor.Run(); err != nil {
			return fmt.Errorf("opening editor failed: %w", err)
		}

		after, err := readConfigFile(configPath)
		if err != nil {
			return err
		}

		fmt.Printf("Configuration saved and validated: %s\n", configPath)
		printConfigChanges(cmd.OutOrStdout(), configChanges(*before, *after))
		return nil
	},
}

type configChange struct {
	Key    string
	Before string
	After  string
}

// configChanges lists the settings whose effective value differs, in the
// order config show prints them.
func configChanges(before, after config.Config) []configChange {
	old := configValues(before)
	changes := make([]configChange, 0)
	for i, setting := range configValues(after) {
		if setting.value != old[i].value {
			changes = append(changes, configChange{Key: setting.key, Before: old[i].value, After: setting.value})
		}
	}
	return changes
}

func printConfigChanges(out io.Writer, changes []configChange) {
	if len(changes) == 0 {
		fmt.Fprintln(out, "No settings changed.")
		return
	}

	fmt.Fprintln(out, "Changed settings:")
	restart := false
	for _, change := range changes {
		fmt.Fprintf(out, "%s: %s -> %s\n", change.Key, change.Before, change.After)
		if strings.HasPrefix(change.Key, "serve.") {
			restart = true
		}
	}
	if restart {
		fmt.Fprintln(out, "Restart payprep serve to apply serve.* changes.")
	}
}

// editorCommand builds the editor invocation for path. $VISUAL wins over
// $EDITOR; vi is the fallback. The editor value may carry arguments.
func editorCommand(visual, editor, path string) *exec.Cmd {
	value := "vi"
	switch {
	case strings.TrimSpace(visual) != "":
		value = visual
	case strings.TrimSpace(editor) != "":
		value = editor
	}

	fields := strings.Fields(value)
	return exec.Command(fields[0], append(fields[1:], path)...)
}

func init() {
	configCmd.AddCommand(configEditCmd)
}

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/startupmentor/internal/config"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Print the configuration after applying the config file, the
MENTOR_ENDPOINT environment variable and command-line flags.

With --save the resolved configuration is written back to the config file,
which is the easiest way to create one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(deps, save)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Write the resolved configuration to the config file")

	return cmd
}

func runConfig(deps *Dependencies, save bool) error {
	stdout, stderr := deps.out(), deps.errOut()

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	pathStyle := lipgloss.NewStyle().Foreground(colorTextDim).Italic(true)
	fmt.Fprintln(stderr, pathStyle.Render("# "+path))
	fmt.Fprintln(stdout, string(data))

	if !save {
		return nil
	}

	if err := config.SaveConfig(cfg); err != nil {
		return err
	}
	fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Configuration saved"))
	return nil
}

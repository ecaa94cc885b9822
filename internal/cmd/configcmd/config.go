// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"

	"github.com/Miitto/gpx-separator/internal/config"
)

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gpxsep configuration",
		Long:  `Commands for viewing and clearing gpxsep configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

// configPath returns the --config flag value or the default path.
func configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.DefaultConfigPath()
}

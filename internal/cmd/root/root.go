// Package root provides the root command for the gpxsep CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/Miitto/gpx-separator/internal/cmd/completion"
	"github.com/Miitto/gpx-separator/internal/cmd/configcmd"
	initcmd "github.com/Miitto/gpx-separator/internal/cmd/init"
	"github.com/Miitto/gpx-separator/internal/cmd/split"
	"github.com/Miitto/gpx-separator/internal/cmd/tokens"
	"github.com/Miitto/gpx-separator/internal/cmd/verifycmd"
	"github.com/Miitto/gpx-separator/internal/logging"
	"github.com/Miitto/gpx-separator/internal/version"
)

// NewCmdRoot creates the root command for gpxsep.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gpxsep",
		Short: "Split GPX files into waypoint, route and track files",
		Long: `gpxsep separates the waypoints, routes and tracks of a GPX file into
three files that each keep the original header and metadata.

Get started by running: gpxsep split <file.gpx>`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/gpxsep/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().String("log-level", logging.DefaultLevel, "log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log at debug level")

	// Set version template
	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(split.NewCmdSplit())
	cmd.AddCommand(tokens.NewCmdTokens())
	cmd.AddCommand(verifycmd.NewCmdVerify())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}

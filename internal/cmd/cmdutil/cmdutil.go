// Package cmdutil holds helpers shared by gpxsep commands.
package cmdutil

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Miitto/gpx-separator/internal/config"
	"github.com/Miitto/gpx-separator/internal/logging"
	"github.com/Miitto/gpx-separator/internal/view"
)

// Settings is the configuration a command runs with after flags, the config
// file and environment variables have been merged.
type Settings struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Output  string
	NoColor bool
}

// Load resolves Settings from the persistent flags of cmd.
func Load(cmd *cobra.Command) (*Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, err
	}

	output, _ := cmd.Flags().GetString("output")
	if !cmd.Flags().Changed("output") && cfg.OutputFormat != "" {
		output = cfg.OutputFormat
	}
	if err := view.ValidateFormat(output); err != nil {
		return nil, err
	}

	if lvl, _ := cmd.Flags().GetString("log-level"); cmd.Flags().Changed("log-level") {
		cfg.LogLevel = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, err := logging.New(cfg.LogLevel, verbose, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	noColor, _ := cmd.Flags().GetBool("no-color")

	return &Settings{
		Config:  cfg,
		Logger:  logger,
		Output:  output,
		NoColor: noColor,
	}, nil
}

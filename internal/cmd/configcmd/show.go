package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Miitto/gpx-separator/internal/config"
	"github.com/Miitto/gpx-separator/internal/view"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current gpxsep configuration with the source of every value.`,
		Example: `  # Show current config
  gpxsep config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			output, _ := cmd.Flags().GetString("output")
			if err := view.ValidateFormat(output); err != nil {
				return err
			}
			return runShow(configPath(cmd), view.Format(output), noColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runShow(path string, format view.Format, noColor bool, w io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(path)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(format, noColor)
	renderer.SetWriter(w)
	if renderer.Format() != view.FormatTable {
		renderFields(renderer, cfg)
		return nil
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, envVar string) {
		_, _ = bold.Fprintf(w, "%-14s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}

		fmt.Fprint(w, value)

		source := "config"
		if fileValue != value {
			source = "-"
		}
		if os.Getenv(envVar) != "" && fileValue != value {
			source = envVar
		}

		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	printField("Output dir", cfg.OutputDir, fileCfg.OutputDir, config.EnvOutputDir)
	printField("Force", formatBool(cfg.Force), formatBool(fileCfg.Force), config.EnvForce)
	printField("Verify", formatBool(cfg.Verify), formatBool(fileCfg.Verify), config.EnvVerify)
	printField("Workers", formatInt(cfg.Workers), formatInt(fileCfg.Workers), config.EnvWorkers)
	printField("Log level", cfg.LogLevel, fileCfg.LogLevel, config.EnvLogLevel)
	printField("Output format", cfg.OutputFormat, fileCfg.OutputFormat, "")

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", path)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}

// renderFields writes every value under its config file key.
func renderFields(r *view.Renderer, cfg *config.Config) {
	r.RenderKeyValue("output_dir", cfg.OutputDir)
	r.RenderKeyValue("force", strconv.FormatBool(cfg.Force))
	r.RenderKeyValue("verify", strconv.FormatBool(cfg.Verify))
	r.RenderKeyValue("workers", strconv.Itoa(cfg.Workers))
	r.RenderKeyValue("log_level", cfg.LogLevel)
	r.RenderKeyValue("output_format", cfg.OutputFormat)
}

func formatBool(v bool) string {
	if !v {
		return ""
	}
	return strconv.FormatBool(v)
}

func formatInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

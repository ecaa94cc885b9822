// Package init provides the init command for gpxsep.
package init

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Miitto/gpx-separator/internal/config"
	"github.com/Miitto/gpx-separator/internal/logging"
)

// answers holds the form values before they are converted into a Config.
type answers struct {
	outputDir string
	workers   string
	logLevel  string
	verify    bool
	force     bool
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var prefillDir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize gpxsep configuration",
		Long: `Initialize gpxsep with default settings for split.

This command will guide you through choosing an output directory, the number
of files split in parallel, the log level and whether outputs are verified or
overwritten without asking. The configuration will be saved to
~/.config/gpxsep/config.yml.`,
		Example: `  # Interactive setup
  gpxsep init

  # Pre-populate the output directory
  gpxsep init --output-dir ~/gpx/split`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return runInit(path, prefillDir, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&prefillDir, "output-dir", "", "Directory split writes to (empty: next to each source)")

	return cmd
}

func runInit(configPath, prefillDir string, w io.Writer) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(w, "Initialization cancelled.")
			return nil
		}
	}

	a := answers{outputDir: prefillDir, logLevel: logging.DefaultLevel}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory (optional)").
				Description("Where split writes its files; empty keeps them next to the source").
				Placeholder("~/gpx/split").
				Value(&a.outputDir).
				Validate(validateDir),

			huh.NewInput().
				Title("Parallel files (optional)").
				Description("How many files split processes at once; empty uses every CPU").
				Placeholder("4").
				Value(&a.workers).
				Validate(validateWorkers),

			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions(logging.Levels()...)...).
				Value(&a.logLevel),

			huh.NewConfirm().
				Title("Verify outputs after splitting?").
				Value(&a.verify),

			huh.NewConfirm().
				Title("Overwrite existing outputs without asking?").
				Value(&a.force),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg, err := a.config()
	if err != nil {
		return err
	}

	return save(cfg, configPath, w)
}

// config converts the answers, expanding a leading ~ in the output directory.
func (a answers) config() (*config.Config, error) {
	cfg := &config.Config{
		OutputDir: expandHome(strings.TrimSpace(a.outputDir)),
		LogLevel:  a.logLevel,
		Verify:    a.verify,
		Force:     a.force,
	}

	if s := strings.TrimSpace(a.workers); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid workers %q: %w", s, err)
		}
		cfg.Workers = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func save(cfg *config.Config, configPath string, w io.Writer) error {
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(w, "\nYou're all set! Try running:")
	fmt.Fprintln(w, "  gpxsep split <file.gpx>")
	fmt.Fprintln(w, "  gpxsep tokens <file.gpx>")

	return nil
}

func validateDir(s string) error {
	s = expandHome(strings.TrimSpace(s))
	if s == "" {
		return nil
	}
	info, err := os.Stat(s)
	if err != nil {
		if os.IsNotExist(err) {
			// split creates it on first use
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s)
	}
	return nil
}

func validateWorkers(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("workers must be a non-negative number")
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Package split provides the split command for gpxsep.
package split

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Miitto/gpx-separator/internal/cmd/cmdutil"
	"github.com/Miitto/gpx-separator/internal/reveal"
	"github.com/Miitto/gpx-separator/internal/separate"
	"github.com/Miitto/gpx-separator/internal/verify"
	"github.com/Miitto/gpx-separator/internal/view"
	"github.com/Miitto/gpx-separator/pkg/gpx"
)

type splitOptions struct {
	dir     string
	force   bool
	verify  bool
	reveal  bool
	workers int
	output  string
	noColor bool
	logger  logrus.FieldLogger
	stdin   io.Reader // injectable for testing; nil prompts with huh
	stdout  io.Writer
}

type fileSummary struct {
	Source    string         `json:"source"`
	Path      string         `json:"path"`
	Files     []string       `json:"files,omitempty"`
	Tokens    int            `json:"tokens"`
	Captures  map[string]int `json:"captures,omitempty"`
	Cancelled bool           `json:"cancelled,omitempty"`
}

// NewCmdSplit creates the split command.
func NewCmdSplit() *cobra.Command {
	opts := &splitOptions{}

	cmd := &cobra.Command{
		Use:   "split <file.gpx>...",
		Short: "Split GPX files into waypoint, route and track files",
		Long: `Split each GPX file into three documents that share its header, metadata
and closing tags but keep only waypoints, routes or tracks.

For walk.gpx the outputs are walk_wpt.gpx, walk_rte.gpx and walk_trk.gpx,
plus walk_tokens.txt listing every token read from the source. Existing
outputs are only replaced after confirmation unless --force is given.`,
		Example: `  # Split next to the source
  gpxsep split walk.gpx

  # Split several files into one directory without prompting
  gpxsep split *.gpx -d split/ --force

  # Check the outputs and open the folder afterwards
  gpxsep split walk.gpx --verify --reveal`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := cmdutil.Load(cmd)
			if err != nil {
				return err
			}
			applyConfig(cmd, opts, settings)

			opts.stdout = cmd.OutOrStdout()
			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				opts.stdin = os.Stdin
			}
			return runSplit(args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "Output directory (default: next to each source)")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite existing outputs without asking")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "Check that every output is tag-balanced")
	cmd.Flags().BoolVar(&opts.reveal, "reveal", false, "Show the outputs in the file manager")
	cmd.Flags().IntVarP(&opts.workers, "jobs", "j", 0, "Files split in parallel (default: number of CPUs)")

	return cmd
}

// applyConfig fills options whose flags were not given from the config.
func applyConfig(cmd *cobra.Command, opts *splitOptions, settings *cmdutil.Settings) {
	cfg := settings.Config
	if !cmd.Flags().Changed("dir") && cfg.OutputDir != "" {
		opts.dir = cfg.OutputDir
	}
	if !cmd.Flags().Changed("force") {
		opts.force = opts.force || cfg.Force
	}
	if !cmd.Flags().Changed("verify") {
		opts.verify = opts.verify || cfg.Verify
	}
	if !cmd.Flags().Changed("jobs") && cfg.Workers > 0 {
		opts.workers = cfg.Workers
	}
	opts.output = settings.Output
	opts.noColor = settings.NoColor
	opts.logger = settings.Logger
}

func runSplit(srcs []string, opts *splitOptions) error {
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}
	if opts.logger == nil {
		opts.logger = logrus.StandardLogger()
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(opts.stdout)
	quiet := renderer.Format() == view.FormatJSON

	results, runErr := separate.RunAll(srcs, separate.Options{
		Dir:     opts.dir,
		Force:   opts.force,
		Confirm: confirmer(opts),
		Logger:  opts.logger,
		Notifier: separate.NotifierFunc(func(r separate.Result) {
			if !quiet {
				renderer.Success(fmt.Sprintf("Split %s into %s_{wpt,rte,trk}.gpx", r.Source, r.Path))
			}
		}),
	}, opts.workers)

	var (
		errs      = []error{runErr}
		summaries []fileSummary
	)
	for _, res := range results {
		if res.Source == "" {
			continue
		}
		summaries = append(summaries, summarize(res))

		if res.Cancelled && !quiet {
			renderer.Warning(fmt.Sprintf("Split cancelled: %s", res.Source))
		}
		if !res.Written {
			continue
		}

		if opts.verify {
			errs = append(errs, verifyOutputs(res, renderer, quiet))
		}
		if opts.reveal {
			if err := reveal.Reveal(res.Outputs.Path(gpx.Waypoints)); err != nil {
				opts.logger.WithError(err).WithField("file", res.Source).Warn("reveal failed")
			}
		}
	}

	if quiet {
		if err := renderer.RenderJSON(summaries); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func summarize(res separate.Result) fileSummary {
	s := fileSummary{
		Source:    res.Source,
		Path:      res.Path,
		Tokens:    res.Stats.Tokens,
		Cancelled: res.Cancelled,
	}
	if res.Written {
		s.Files = res.Outputs.Paths()
		s.Captures = make(map[string]int)
		for _, c := range gpx.Categories() {
			s.Captures[c.String()] = res.Stats.Captures[c]
		}
	}
	return s
}

func verifyOutputs(res separate.Result, renderer *view.Renderer, quiet bool) error {
	var errs []error
	for _, p := range res.Outputs.Paths() {
		if _, err := verify.Check(p); err != nil {
			errs = append(errs, err)
			if !quiet {
				renderer.Error(err.Error())
			}
		}
	}
	return errors.Join(errs...)
}

// confirmer picks the overwrite prompt: a [y/N] question on injected input,
// or a huh confirmation on a terminal.
func confirmer(opts *splitOptions) separate.Confirmer {
	if opts.stdin != nil {
		scanner := bufio.NewScanner(opts.stdin)
		return func(existing []string) (bool, error) {
			fmt.Fprintf(opts.stdout, "Files already exist:\n  %s\n", strings.Join(existing, "\n  "))
			fmt.Fprint(opts.stdout, "Overwrite? [y/N]: ")

			var answer string
			if scanner.Scan() {
				answer = strings.TrimSpace(scanner.Text())
			}
			return answer == "y" || answer == "Y", nil
		}
	}

	return func(existing []string) (bool, error) {
		names := make([]string, len(existing))
		for i, p := range existing {
			names[i] = filepath.Base(p)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Files already exist").
			Description(fmt.Sprintf("Overwrite %s?", strings.Join(names, ", "))).
			Value(&overwrite).
			Run()
		if err != nil {
			return false, err
		}
		return overwrite, nil
	}
}

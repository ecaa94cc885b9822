// Package verifycmd provides the verify command for gpxsep.
package verifycmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Miitto/gpx-separator/internal/cmd/cmdutil"
	"github.com/Miitto/gpx-separator/internal/verify"
	"github.com/Miitto/gpx-separator/internal/view"
)

type verifyOptions struct {
	output  string
	noColor bool
	stdout  io.Writer
}

type fileReport struct {
	File       string   `json:"file"`
	Balanced   bool     `json:"balanced"`
	MaxDepth   int      `json:"max_depth"`
	Elements   []string `json:"elements"`
	Unbalanced []string `json:"unbalanced,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// NewCmdVerify creates the verify command.
func NewCmdVerify() *cobra.Command {
	opts := &verifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify <file.gpx>...",
		Short: "Check that GPX files are tag-balanced",
		Long: `Read each file with an XML tokenizer and check that every element that
opens also closes. Exits non-zero when any file is unbalanced or unreadable.`,
		Example: `  # Check the outputs of a split
  gpxsep verify walk_wpt.gpx walk_rte.gpx walk_trk.gpx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := cmdutil.Load(cmd)
			if err != nil {
				return err
			}
			opts.output = settings.Output
			opts.noColor = settings.NoColor
			opts.stdout = cmd.OutOrStdout()
			return runVerify(args, opts)
		},
	}

	return cmd
}

func runVerify(paths []string, opts *verifyOptions) error {
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(opts.stdout)

	var (
		errs    []error
		reports []fileReport
	)
	for _, p := range paths {
		report, err := verify.Check(p)
		fr := fileReport{
			File:       p,
			Balanced:   err == nil,
			MaxDepth:   report.MaxDepth,
			Elements:   report.Elements(),
			Unbalanced: report.Unbalanced(),
		}
		if err != nil {
			fr.Error = err.Error()
			errs = append(errs, err)
		}
		reports = append(reports, fr)
	}

	switch renderer.Format() {
	case view.FormatJSON:
		if err := renderer.RenderJSON(reports); err != nil {
			return err
		}
	case view.FormatPlain:
		for _, r := range reports {
			renderer.RenderText(fmt.Sprintf("%s\t%t\t%d", r.File, r.Balanced, r.MaxDepth))
		}
	default:
		headers := []string{"FILE", "BALANCED", "DEPTH", "ELEMENTS"}
		var rows [][]string
		for _, r := range reports {
			rows = append(rows, []string{r.File, strconv.FormatBool(r.Balanced), strconv.Itoa(r.MaxDepth), strings.Join(r.Elements, ",")})
		}
		renderer.RenderTable(headers, rows)

		for _, r := range reports {
			if r.Error != "" {
				renderer.Error(r.Error)
			}
		}
	}

	return errors.Join(errs...)
}

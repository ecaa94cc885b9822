// Package tokens provides the tokens command for gpxsep.
package tokens

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Miitto/gpx-separator/internal/cmd/cmdutil"
	"github.com/Miitto/gpx-separator/internal/view"
	"github.com/Miitto/gpx-separator/pkg/gpx"
)

type tokensOptions struct {
	width   int
	output  string
	noColor bool
	stdout  io.Writer
}

type tokenRow struct {
	Pos   int    `json:"pos"`
	Kind  string `json:"kind"`
	Dest  string `json:"dest"`
	Depth int    `json:"depth"`
	Token string `json:"token"`
}

// NewCmdTokens creates the tokens command.
func NewCmdTokens() *cobra.Command {
	opts := &tokensOptions{}

	cmd := &cobra.Command{
		Use:   "tokens <file.gpx>",
		Short: "Show how a GPX file is tokenized and routed",
		Long: `List every token read from a GPX file with its kind, the output it is
routed to and the depth it is written at. Nothing is written to disk.`,
		Example: `  # Inspect a file
  gpxsep tokens walk.gpx

  # Show full tokens as JSON
  gpxsep tokens walk.gpx -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := cmdutil.Load(cmd)
			if err != nil {
				return err
			}
			opts.output = settings.Output
			opts.noColor = settings.NoColor
			opts.stdout = cmd.OutOrStdout()
			return runTokens(args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.width, "width", "w", 60, "Truncate tokens to this many bytes in table output (0 for no limit)")

	return cmd
}

func runTokens(path string, opts *tokensOptions) error {
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}

	toks, err := gpx.TokenizeFile(path)
	if err != nil {
		return err
	}

	var rows []tokenRow
	_, err = gpx.Split(toks, gpx.Writers{}, gpx.WithTrace(func(t gpx.Trace) {
		rows = append(rows, tokenRow{
			Pos:   t.Pos,
			Kind:  t.Token.Kind().String(),
			Dest:  t.Dest.String(),
			Depth: t.Level,
			Token: string(t.Token),
		})
	}))
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(opts.stdout)

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(rows)
	}

	headers := []string{"#", "KIND", "DEST", "DEPTH", "TOKEN"}
	var table [][]string
	for _, r := range rows {
		// Text tokens may span lines; keep one row per token.
		tok := strings.ReplaceAll(r.Token, "\n", `\n`)
		if opts.width > 0 {
			tok = view.Truncate(tok, opts.width)
		}
		table = append(table, []string{
			strconv.Itoa(r.Pos),
			r.Kind,
			r.Dest,
			strconv.Itoa(r.Depth),
			tok,
		})
	}
	renderer.RenderTable(headers, table)

	return nil
}

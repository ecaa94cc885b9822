// Package completion provides shell completion generation commands.
package completion

import (
	"io"

	"github.com/spf13/cobra"
)

type shell struct {
	name    string
	install string
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name:    "bash",
		install: "gpxsep completion bash > /etc/bash_completion.d/gpxsep",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletion(w) },
	},
	{
		name:    "zsh",
		install: `gpxsep completion zsh > "${fpath[1]}/_gpxsep"`,
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	},
	{
		name:    "fish",
		install: "gpxsep completion fish > ~/.config/fish/completions/gpxsep.fish",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	},
	{
		name:    "powershell",
		install: "gpxsep completion powershell >> $PROFILE",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for gpxsep.

These scripts enable tab-completion for commands, flags, and arguments.
See each sub-command's help for installation instructions.`,
	}

	for _, sh := range shells {
		cmd.AddCommand(newCmdShell(sh))
	}

	return cmd
}

func newCmdShell(sh shell) *cobra.Command {
	return &cobra.Command{
		Use:   sh.name,
		Short: "Generate " + sh.name + " completion script",
		Long: `Generate ` + sh.name + ` completion script for gpxsep.

To load completions for every new session:

  ` + sh.install,
		Example:               "  " + sh.install,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return sh.gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// Package cli implements the inspect command-line interface.
//
// The render command reads YAML or JSON documents, merges them into one
// inspector and prints the result as HTML, a text outline, YAML or JSON.
// All commands support --verbose (-v) for debug-level logging on stderr.
package cli

import (
	"context"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version reported by --version.
func SetVersion(v string) { version = v }

// Execute runs the inspect CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "inspect",
		Short:         "Render nested data as HTML tables or a text outline",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newFormatsCmd())
	return root
}

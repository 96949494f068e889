//Package cli implements the gosdg command-line interface.
//
//The layout command reads molecules in the chemjson line format and writes
//them back with 2D coordinates. The reaction command does the same for a
//reaction, and templates lists the ring templates known to the generator.
//All commands take --verbose (-v) for debug-level logging; the logger is
//passed to the commands through their context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const appName = "gosdg"

var (
	version = "devel"
	commit  string
	date    string
)

//SetVersion sets the version information displayed by --version, usually from
//values injected with -ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

//NewRootCommand returns the gosdg command tree. Logs go to stderr, results to
//the command's output stream (stdout unless changed with SetOut).
func NewRootCommand(stderr io.Writer) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          appName,
		Short:        "gosdg computes 2D depictions of molecules",
		Long:         `gosdg assigns 2D coordinates to molecular graphs and reactions, producing structure diagrams with regular rings, zig-zag chains and bracketed substructure groups.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, newLogger(stderr, level)))
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newLayoutCmd())
	root.AddCommand(newReactionCmd())
	root.AddCommand(newTemplatesCmd())
	return root
}

//Execute runs the gosdg CLI with the given context.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stderr).ExecuteContext(ctx)
}

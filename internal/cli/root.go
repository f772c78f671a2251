// Package cli provides the command-line interface for m3uparse.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mogiioin/m3u-parser/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	commands.ExitCode = 0

	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors keeps cobra from printing it
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "m3uparse",
		Short: "Parse and check M3U/M3U8 playlists",
		Long: `m3uparse reads M3U and M3U8 playlists the tolerant way: every line is
classified, directives are attached to the entry that follows them, and
anything malformed is reported as a warning or error instead of aborting.

It understands plain M3U, extended M3U (Winamp, IPTV) and the HLS
#EXT-X- directives.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}

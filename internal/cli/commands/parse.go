package commands

import "github.com/spf13/cobra"

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &PlaylistOptions{}

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse playlists and print their entries",
		Long: `Parse M3U and M3U8 playlists and print the header, the entries and every
problem found while reading them.

Malformed content never stops the parse. It is reported as a problem and
the rest of the playlist is still read.

Exit codes:
  0 - No problems at or above --fail-on
  1 - Problems at or above --fail-on
  2 - Configuration or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlaylists(cmd, args, opts, false)
		},
	}
	addPlaylistFlags(cmd, opts)

	return cmd
}

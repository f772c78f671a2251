package commands

import "github.com/spf13/cobra"

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &PlaylistOptions{}

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Report playlist problems only",
		Long: `Check M3U and M3U8 playlists and report the problems found, without the
parsed entries. Useful in scripts and CI.

Exit codes:
  0 - No problems at or above --fail-on
  1 - Problems at or above --fail-on
  2 - Configuration or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlaylists(cmd, args, opts, true)
		},
	}
	addPlaylistFlags(cmd, opts)

	return cmd
}

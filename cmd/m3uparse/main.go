// m3uparse - tolerant M3U/M3U8 playlist parser
//
// m3uparse parses playlists and reports every problem met on the way,
// without giving up on malformed input.
package main

import (
	"os"

	"github.com/mogiioin/m3u-parser/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

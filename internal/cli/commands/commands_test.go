package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/spf13/cobra"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func runCommand(cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	if args == nil {
		args = []string{} // nil would make cobra read os.Args
	}
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestNewParseCommand(t *testing.T) {
	is := is.New(t)
	cmd := NewParseCommand()
	is.Equal(cmd.Use, "parse <file>...")

	for _, flag := range []string{"config", "charset", "output", "fail-on", "strict", "resolve", "verbose", "quiet"} {
		is.True(cmd.Flags().Lookup(flag) != nil) // flag must exist
	}
}

func TestNewCheckCommand(t *testing.T) {
	is := is.New(t)
	cmd := NewCheckCommand()
	is.Equal(cmd.Use, "check <file>...")
	is.True(strings.Contains(cmd.Long, "Exit codes"))
}

func TestNewVersionCommand(t *testing.T) {
	is := is.New(t)
	out, _, err := runCommand(NewVersionCommand())
	is.NoErr(err)
	is.Equal(out, "m3uparse dev\n")
}

func TestRunParse_Clean(t *testing.T) {
	is := is.New(t)
	path := writeFile(t, t.TempDir(), "clean.m3u8", "#EXTM3U\n#EXTINF:10,One\none.mp3\n")

	out, _, err := runCommand(NewParseCommand(), path)
	is.NoErr(err)
	is.True(strings.Contains(out, `1. one.mp3 "One"`))
	is.True(strings.Contains(out, "No problems detected"))
	is.True(strings.Contains(out, "Summary: 1 files, 1 entries, 0 warnings, 0 errors"))
	is.Equal(ExitCode, 0)
}

func TestRunParse_FailOn(t *testing.T) {
	is := is.New(t)
	path := writeFile(t, t.TempDir(), "list.m3u", "one.mp3\n")

	out, _, err := runCommand(NewParseCommand(), path)
	is.NoErr(err)
	is.True(strings.Contains(out, "File name encoding does not match UTF-8"))
	is.Equal(ExitCode, 0) // warnings do not fail by default

	_, _, err = runCommand(NewParseCommand(), "--fail-on", "warning", path)
	is.NoErr(err)
	is.Equal(ExitCode, 1)

	_, _, err = runCommand(NewParseCommand(), "--fail-on", "sometimes", path)
	is.True(err != nil) // invalid threshold
}

func TestRunParse_MissingFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "absent.m3u8")

	out, stderr, err := runCommand(NewParseCommand(), path)
	is.NoErr(err) // a missing playlist is a reported problem
	is.True(strings.Contains(out, "No playlist read"))
	is.True(strings.Contains(out, "- ERROR: File reading error"))
	is.True(strings.Contains(stderr, "playlist read failed")) // logged at error level
	is.Equal(ExitCode, 1)
}

func TestRunParse_JSON(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	a := writeFile(t, dir, "a.m3u8", "#EXTM3U\n#\none.mp3\n")
	b := writeFile(t, dir, "b.m3u8", "two.mp3\nthree.mp3\n")

	out, _, err := runCommand(NewParseCommand(), "-o", "json", a, b)
	is.NoErr(err)

	var report struct {
		Summary struct {
			Files    int `json:"files"`
			Entries  int `json:"entries"`
			Warnings int `json:"warnings"`
		} `json:"summary"`
		Files []struct {
			Source string `json:"source"`
		} `json:"files"`
	}
	is.NoErr(json.Unmarshal([]byte(out), &report))
	is.Equal(report.Summary.Files, 2)
	is.Equal(report.Summary.Entries, 3)
	is.Equal(report.Summary.Warnings, 1) // empty directive
	is.Equal(report.Files[1].Source, b)
}

func TestRunParse_Strict(t *testing.T) {
	is := is.New(t)
	path := writeFile(t, t.TempDir(), "bad.m3u8", "#EXTBYT:lots\none.mp3\n")

	out, _, err := runCommand(NewParseCommand(), path)
	is.NoErr(err)
	is.True(strings.Contains(out, `Invalid integer value "lots" for EXTBYT on line 1`))

	_, _, err = runCommand(NewParseCommand(), "--strict", path)
	is.True(err != nil) // strict mode aborts
	is.True(strings.Contains(err.Error(), "line 1: EXTBYT"))
}

func TestRunParse_ConfigFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	cfg := writeFile(t, dir, "m3uparse.yaml", "output: yaml\nfail_on: never\n")
	path := writeFile(t, dir, "list.m3u", "one.mp3\n")

	out, _, err := runCommand(NewParseCommand(), "--config", cfg, path)
	is.NoErr(err)
	is.True(strings.Contains(out, "severity: WARNING")) // yaml from the config file
	is.Equal(ExitCode, 0)

	out, _, err = runCommand(NewParseCommand(), "--config", cfg, "-o", "text", path)
	is.NoErr(err)
	is.True(strings.Contains(out, "=== ")) // flag wins over config
}

func TestRunParse_Charset(t *testing.T) {
	is := is.New(t)
	path := writeFile(t, t.TempDir(), "latin1.m3u", "#EXTM3U\n#EXTENC:ISO-8859-1\ncaf\xe9.mp3\n")

	out, _, err := runCommand(NewParseCommand(), "--charset", "latin1", path)
	is.NoErr(err)
	is.True(strings.Contains(out, "(ISO-8859-1)"))
	is.True(strings.Contains(out, "1. café.mp3"))
	is.True(strings.Contains(out, "No problems detected"))

	_, _, err = runCommand(NewParseCommand(), "--charset", "klingon", path)
	is.True(err != nil) // unknown charset
}

func TestRunParse_Resolve(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	top := writeFile(t, dir, "top.m3u8", "#EXTM3U\nsub/list.m3u8\nmissing.m3u8\n")
	writeFile(t, dir, "sub/list.m3u8", "#EXTM3U\nx.ts\n")

	out, _, err := runCommand(NewParseCommand(), "--resolve", "-o", "json", top)
	is.NoErr(err)
	is.True(strings.Contains(out, `"nestedFile"`))
	is.True(strings.Contains(out, "Nested playlist missing.m3u8 not found"))

	out, _, err = runCommand(NewParseCommand(), "-o", "json", top)
	is.NoErr(err)
	is.True(!strings.Contains(out, `"nestedFile"`)) // not resolved without the flag
}

func TestRunParse_Verbose(t *testing.T) {
	is := is.New(t)
	path := writeFile(t, t.TempDir(), "one.m3u8", "#EXTGRP:News\none.ts\n")

	out, stderr, err := runCommand(NewParseCommand(), "-v", path)
	is.NoErr(err)
	is.True(strings.Contains(out, "EXTGRP=News"))
	is.True(strings.Contains(stderr, "playlist parsed")) // debug logs

	out, stderr, err = runCommand(NewParseCommand(), "-q", path)
	is.NoErr(err)
	is.Equal(out, "Summary: 1 files, 1 entries, 0 warnings, 0 errors\n")
	is.Equal(stderr, "")
}

func TestRunCheck(t *testing.T) {
	is := is.New(t)
	path := writeFile(t, t.TempDir(), "list.m3u", "one.mp3\n#EXTM3U\n")

	out, _, err := runCommand(NewCheckCommand(), path)
	is.NoErr(err)
	is.True(!strings.Contains(out, "Entries:")) // problems only
	is.True(strings.Contains(out, "line 2: Directive EXTM3U not on first line"))
	is.Equal(ExitCode, 0)

	_, _, err = runCommand(NewCheckCommand(), "--fail-on", "warning", path)
	is.NoErr(err)
	is.Equal(ExitCode, 1)
}

func TestRunParse_NoArgs(t *testing.T) {
	is := is.New(t)
	_, _, err := runCommand(NewParseCommand())
	is.True(err != nil) // at least one file is required
}

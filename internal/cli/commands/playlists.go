package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mogiioin/m3u-parser/internal/config"
	"github.com/mogiioin/m3u-parser/internal/output"
	"github.com/mogiioin/m3u-parser/m3u"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// PlaylistOptions holds command-line options shared by parse and check.
type PlaylistOptions struct {
	ConfigFile string
	Charset    string
	Output     string
	FailOn     string
	Strict     bool
	Resolve    bool
	Verbose    bool
	Quiet      bool
}

func addPlaylistFlags(cmd *cobra.Command, opts *PlaylistOptions) {
	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Configuration file (YAML)")
	cmd.Flags().StringVar(&opts.Charset, "charset", m3u.DefaultCharset, "Charset the playlists are read with")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", config.DefaultOutput, "Output format (text|json|yaml)")
	cmd.Flags().StringVar(&opts.FailOn, "fail-on", string(config.DefaultFailOn), "Lowest severity that fails the run (warning|error|never)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail on malformed integer and timestamp values")
	cmd.Flags().BoolVar(&opts.Resolve, "resolve", false, "Follow references to local nested playlists")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show every directive and debug logs")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")
}

// loadConfig reads the configuration file, if any, and lets explicitly set
// flags take precedence over it.
func loadConfig(ctx context.Context, cmd *cobra.Command, opts *PlaylistOptions) (*config.Config, error) {
	cfg, err := config.Load(ctx, opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("charset") {
		cfg.Charset = opts.Charset
	}
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if flags.Changed("fail-on") {
		cfg.FailOn = config.FailOn(opts.FailOn)
	}
	if flags.Changed("strict") {
		cfg.Strict = opts.Strict
	}
	if flags.Changed("resolve") {
		cfg.ResolveNested = opts.Resolve
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, opts *PlaylistOptions) *slog.Logger {
	if opts.Quiet {
		return nil
	}
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runPlaylists(cmd *cobra.Command, args []string, opts *PlaylistOptions, problemsOnly bool) error {
	ExitCode = 0
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, cmd, opts)
	if err != nil {
		return err
	}

	formatter, err := output.New(cfg.Output, output.FormatOptions{
		Verbose:      opts.Verbose,
		Quiet:        opts.Quiet,
		ProblemsOnly: problemsOnly,
	})
	if err != nil {
		return err
	}

	_, charset, err := m3u.LookupCharset(cfg.Charset)
	if err != nil {
		return err
	}
	parseOpts := m3u.Options{Strict: cfg.Strict, Logger: newLogger(cmd.ErrOrStderr(), opts)}

	files := make([]*output.FileReport, 0, len(args))
	for _, path := range args {
		res, err := parsePlaylist(ctx, path, cfg, parseOpts)
		if err != nil {
			return err
		}
		files = append(files, &output.FileReport{Source: path, Charset: charset, Result: res})
	}

	report := output.NewReport(files)
	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if cfg.FailOn.Fails(report.Worst()) {
		ExitCode = 1
	}
	return nil
}

func parsePlaylist(ctx context.Context, path string, cfg *config.Config, opts m3u.Options) (*m3u.ParsingResult, error) {
	res, err := m3u.ParseFile(path, cfg.Charset, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if !cfg.ResolveNested {
		return res, nil
	}

	r := &m3u.Resolver{
		FS:       os.DirFS(filepath.Dir(path)),
		Charset:  cfg.Charset,
		MaxDepth: cfg.MaxDepth,
		Options:  opts,
	}
	res, err = r.Resolve(ctx, filepath.Base(path), res)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	return res, nil
}

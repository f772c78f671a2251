package output

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mogiioin/m3u-parser/m3u"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if !f.opts.Quiet {
		for _, file := range report.Files {
			f.formatFile(file, w)
		}
		fmt.Fprintln(w, "---")
	}
	_, err := fmt.Fprintf(w, "Summary: %d files, %d entries, %d warnings, %d errors\n",
		report.Summary.Files,
		report.Summary.Entries,
		report.Summary.Warnings,
		report.Summary.Errors)
	return err
}

func (f *TextFormatter) formatFile(file *FileReport, w io.Writer) {
	fmt.Fprintf(w, "=== %s (%s) ===\n", file.Source, file.Charset)
	res := file.Result
	if res == nil {
		fmt.Fprintln(w)
		return
	}

	if !f.opts.ProblemsOnly {
		if res.File == nil {
			fmt.Fprintln(w, "  No playlist read")
		} else {
			f.formatPlaylist(res.File, w, "  ")
		}
	}

	if len(res.Problems) == 0 {
		fmt.Fprintln(w, "  No problems detected")
	} else {
		fmt.Fprintf(w, "  Problems: %d\n", len(res.Problems))
		for _, p := range res.Problems {
			formatProblem(p, w)
		}
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) formatPlaylist(file *m3u.PlaylistFile, w io.Writer, indent string) {
	header := []string{"EXTM3U=" + strconv.FormatBool(file.ExtM3U)}
	if file.ExtEnc != "" {
		header = append(header, "EXTENC="+file.ExtEnc)
	}
	if file.ExtXVersion != "" {
		header = append(header, "EXT-X-VERSION="+file.ExtXVersion)
	}
	fmt.Fprintf(w, "%sHeader: %s\n", indent, strings.Join(header, " "))
	fmt.Fprintf(w, "%sEntries: %d\n", indent, len(file.Entries))

	for i, e := range file.Entries {
		title := ""
		if inf, err := e.Inf(); err == nil && inf.Title != "" {
			title = " " + strconv.Quote(inf.Title)
		}
		fmt.Fprintf(w, "%s  %d. %s%s\n", indent, i+1, e.Path, title)
		if f.opts.Verbose {
			for _, d := range directives(e) {
				fmt.Fprintf(w, "%s       %s\n", indent, d)
			}
		}
		if e.NestedFile != nil {
			f.formatPlaylist(e.NestedFile, w, indent+"     ")
		}
	}
}

func formatProblem(p m3u.Problem, w io.Writer) {
	if p.Line > 0 {
		fmt.Fprintf(w, "  - %s line %d: %s\n", p.Severity, p.Line, p.Message)
		return
	}
	fmt.Fprintf(w, "  - %s: %s\n", p.Severity, p.Message)
}

// directives lists the directives attached to an entry as NAME=value, in
// the order they are declared on m3u.Entry. Extras follow, sorted by name.
func directives(e *m3u.Entry) []string {
	var out []string
	str := func(name, v string) {
		if v != "" {
			out = append(out, name+"="+v)
		}
	}
	num := func(name string, v *int64) {
		if v != nil {
			out = append(out, name+"="+strconv.FormatInt(*v, 10))
		}
	}
	flag := func(name string, v bool) {
		if v {
			out = append(out, name)
		}
	}

	str("PLAYLIST", e.Playlist)
	str("EXTINF", e.ExtInf)
	str("EXTGRP", e.ExtGrp)
	str("EXTALB", e.ExtAlb)
	str("EXTART", e.ExtArt)
	str("EXTGENRE", e.ExtGenre)
	str("EXTM3A", e.ExtM3A)
	num("EXTBYT", e.ExtByt)
	str("EXTIMG", e.ExtImg)
	str("EXT-X-BYTERANGE", e.ByteRange)
	flag("EXT-X-DISCONTINUITY", e.Discontinuity)
	str("EXT-X-KEY", e.Key)
	str("EXT-X-MAP", e.Map)
	if e.ProgramDateTime != nil {
		out = append(out, "EXT-X-PROGRAM-DATE-TIME="+e.ProgramDateTime.Format(time.RFC3339Nano))
	}
	str("EXT-X-DATERANGE", e.DateRange)
	num("EXT-X-TARGETDURATION", e.TargetDuration)
	num("EXT-X-MEDIA-SEQUENCE", e.MediaSequence)
	num("EXT-X-DISCONTINUITY-SEQUENCE", e.DiscontinuitySequence)
	flag("EXT-X-ENDLIST", e.EndList)
	str("EXT-X-PLAYLIST-TYPE", e.PlaylistType)
	flag("EXT-X-I-FRAMES-ONLY", e.IFramesOnly)
	str("EXT-X-MEDIA", e.Media)
	str("EXT-X-STREAM-INF", e.StreamInf)
	str("EXT-X-I-FRAME-STREAM-INF", e.IFrameStreamInf)
	str("EXT-X-SESSION-DATA", e.SessionData)
	str("EXT-X-SESSION-KEY", e.SessionKey)
	flag("EXT-X-INDEPENDENT-SEGMENTS", e.IndependentSegments)
	str("EXT-X-START", e.Start)

	names := make([]string, 0, len(e.Extras))
	for name := range e.Extras {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if v := e.Extras[name]; v != "" {
			out = append(out, name+"="+v)
		} else {
			out = append(out, name)
		}
	}
	return out
}

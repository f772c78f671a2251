// Package output provides formatting for playlist parse results.
package output

import "github.com/mogiioin/m3u-parser/m3u"

// Report is the complete output of one run over a set of playlists.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary" yaml:"summary"`

	// Files holds one parse result per input, in argument order.
	Files []*FileReport `json:"files" yaml:"files"`
}

// FileReport is the parse result of a single playlist.
type FileReport struct {
	Source  string             `json:"source" yaml:"source"`
	Charset string             `json:"charset" yaml:"charset"`
	Result  *m3u.ParsingResult `json:"result" yaml:"result"`
}

// Summary provides aggregate statistics.
type Summary struct {
	Files    int `json:"files" yaml:"files"`
	Entries  int `json:"entries" yaml:"entries"`   // top-level entries only
	Warnings int `json:"warnings" yaml:"warnings"` // including nested playlists
	Errors   int `json:"errors" yaml:"errors"`
}

// NewReport creates a Report from per-file results.
func NewReport(files []*FileReport) *Report {
	report := &Report{Files: files}
	report.Summary.Files = len(files)
	for _, f := range files {
		if f.Result == nil {
			continue
		}
		if f.Result.File != nil {
			report.Summary.Entries += len(f.Result.File.Entries)
		}
		report.Summary.Warnings += f.Result.Count(m3u.WARNING)
		report.Summary.Errors += f.Result.Count(m3u.ERROR)
	}
	return report
}

// Worst returns the highest severity found in any file.
func (r *Report) Worst() m3u.Severity {
	var worst m3u.Severity
	for _, f := range r.Files {
		if f.Result == nil {
			continue
		}
		if s := f.Result.Worst(); s > worst {
			worst = s
		}
	}
	return worst
}

// problemsOnly returns a copy of the report without the parsed playlists.
func (r *Report) problemsOnly() *Report {
	out := &Report{Summary: r.Summary, Files: make([]*FileReport, len(r.Files))}
	for i, f := range r.Files {
		stripped := *f
		if f.Result != nil {
			stripped.Result = &m3u.ParsingResult{Problems: f.Result.Problems}
		}
		out.Files[i] = &stripped
	}
	return out
}

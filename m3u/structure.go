package m3u

/*
 This file defines data structures related to package.
*/

import (
	"fmt"
	"time"
)

// Severity of a parsing problem.
type Severity uint

const (
	// use 0 for undefined
	WARNING Severity = iota + 1
	ERROR
)

func (s Severity) String() string {
	switch s {
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	}
	return "Unknown"
}

// MarshalText lets json and yaml encoders print the severity name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name as printed by String.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "WARNING":
		*s = WARNING
	case "ERROR":
		*s = ERROR
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Problem is one diagnostic collected during parsing.
type Problem struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
	Line     int      `json:"line,omitempty" yaml:"line,omitempty"` // 1-based, 0 if not tied to a line
}

func (p Problem) String() string {
	return p.Severity.String() + ": " + p.Message
}

// ParsingResult is the outcome of a parse. File is nil if nothing was built.
// Problems are kept in detection order.
type ParsingResult struct {
	File     *PlaylistFile `json:"file,omitempty" yaml:"file,omitempty"`
	Problems []Problem     `json:"problems" yaml:"problems"`
}

// Count returns the number of problems with the given severity.
func (r *ParsingResult) Count(s Severity) int {
	n := 0
	for _, p := range r.Problems {
		if p.Severity == s {
			n++
		}
	}
	return n
}

// HasErrors reports whether any ERROR problem was recorded.
func (r *ParsingResult) HasErrors() bool {
	return r.Count(ERROR) > 0
}

// HasWarnings reports whether any WARNING problem was recorded.
func (r *ParsingResult) HasWarnings() bool {
	return r.Count(WARNING) > 0
}

// Worst returns the highest severity recorded, or 0 if there are no problems.
func (r *ParsingResult) Worst() Severity {
	var worst Severity
	for _, p := range r.Problems {
		if p.Severity > worst {
			worst = p.Severity
		}
	}
	return worst
}

// PlaylistFile represents the file-level header and the entries of an
// M3U playlist.
type PlaylistFile struct {
	ExtM3U      bool     `json:"extm3u" yaml:"extm3u"`                               // #EXTM3U on the first line
	ExtEnc      string   `json:"extEnc,omitempty" yaml:"extEnc,omitempty"`           // #EXTENC on the second line
	ExtXVersion string   `json:"extXVersion,omitempty" yaml:"extXVersion,omitempty"` // #EXT-X-VERSION
	Entries     []*Entry `json:"entries" yaml:"entries"`                             // in file order
}

// Entry is one playlist item together with every directive met since the
// previous content line.
type Entry struct {
	Path string `json:"path" yaml:"path"` // content line, trimmed

	// extended M3U
	Playlist string `json:"playlist,omitempty" yaml:"playlist,omitempty"` // #PLAYLIST
	ExtInf   string `json:"extInf,omitempty" yaml:"extInf,omitempty"`     // #EXTINF
	ExtGrp   string `json:"extGrp,omitempty" yaml:"extGrp,omitempty"`     // #EXTGRP
	ExtAlb   string `json:"extAlb,omitempty" yaml:"extAlb,omitempty"`     // #EXTALB
	ExtArt   string `json:"extArt,omitempty" yaml:"extArt,omitempty"`     // #EXTART
	ExtGenre string `json:"extGenre,omitempty" yaml:"extGenre,omitempty"` // #EXTGENRE
	ExtM3A   string `json:"extM3A,omitempty" yaml:"extM3A,omitempty"`     // #EXTM3A
	ExtByt   *int64 `json:"extByt,omitempty" yaml:"extByt,omitempty"`     // #EXTBYT
	ExtImg   string `json:"extImg,omitempty" yaml:"extImg,omitempty"`     // #EXTIMG

	// HLS
	ByteRange             string     `json:"extXByteRange,omitempty" yaml:"extXByteRange,omitempty"`
	Discontinuity         bool       `json:"extXDiscontinuity,omitempty" yaml:"extXDiscontinuity,omitempty"`
	Key                   string     `json:"extXKey,omitempty" yaml:"extXKey,omitempty"`
	Map                   string     `json:"extXMap,omitempty" yaml:"extXMap,omitempty"`
	ProgramDateTime       *time.Time `json:"extXProgramDateTime,omitempty" yaml:"extXProgramDateTime,omitempty"`
	DateRange             string     `json:"extXDateRange,omitempty" yaml:"extXDateRange,omitempty"`
	TargetDuration        *int64     `json:"extXTargetDuration,omitempty" yaml:"extXTargetDuration,omitempty"`
	MediaSequence         *int64     `json:"extXMediaSequence,omitempty" yaml:"extXMediaSequence,omitempty"`
	DiscontinuitySequence *int64     `json:"extXDiscontinuitySequence,omitempty" yaml:"extXDiscontinuitySequence,omitempty"`
	EndList               bool       `json:"extXEndList,omitempty" yaml:"extXEndList,omitempty"`
	PlaylistType          string     `json:"extXPlaylistType,omitempty" yaml:"extXPlaylistType,omitempty"`
	IFramesOnly           bool       `json:"extXIFramesOnly,omitempty" yaml:"extXIFramesOnly,omitempty"`
	Media                 string     `json:"extXMedia,omitempty" yaml:"extXMedia,omitempty"`
	StreamInf             string     `json:"extXStreamInf,omitempty" yaml:"extXStreamInf,omitempty"`
	IFrameStreamInf       string     `json:"extXIFrameStreamInf,omitempty" yaml:"extXIFrameStreamInf,omitempty"`
	SessionData           string     `json:"extXSessionData,omitempty" yaml:"extXSessionData,omitempty"`
	SessionKey            string     `json:"extXSessionKey,omitempty" yaml:"extXSessionKey,omitempty"`
	IndependentSegments   bool       `json:"extXIndependentSegments,omitempty" yaml:"extXIndependentSegments,omitempty"`
	Start                 string     `json:"extXStart,omitempty" yaml:"extXStart,omitempty"`

	// Extras holds unrecognized directives by name. Flag-like directives
	// map to an empty value.
	Extras map[string]string `json:"extras,omitempty" yaml:"extras,omitempty"`

	// Nested is set when Path looks like another playlist. NestedFile is
	// only filled in by a Resolver.
	Nested     *Reference    `json:"nested,omitempty" yaml:"nested,omitempty"`
	NestedFile *PlaylistFile `json:"nestedFile,omitempty" yaml:"nestedFile,omitempty"`
}

// Reference is an unresolved pointer from an entry to another playlist.
type Reference struct {
	Path   string `json:"path" yaml:"path"`     // Path as written in the content line
	Remote bool   `json:"remote" yaml:"remote"` // Path carries a URL scheme
}

// Attribute provides a raw key-value pair for an attribute. Quotes and 0x are included
type Attribute struct {
	Key string // Name of the attribute
	Val string // Value including quotes if a quoted string, and 0x if hexadecimal value
}

// ExtInf is a decoded #EXTINF payload.
type ExtInf struct {
	Duration   float64     // Duration in seconds, -1 for unknown length
	Attributes []Attribute // tvg-id="..." group-title="..." and similar, values dequoted
	Title      string      // text after the first comma outside quotes
}

// ByteRange is a decoded EXT-X-BYTERANGE payload.
type ByteRange struct {
	Length    int64 // <n> is length in bytes
	Offset    int64 // [@o] is offset from the start of the resource
	HasOffset bool  // the offset was present
}

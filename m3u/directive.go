package m3u

/*
 This file defines the directive grammar and the line classifier.
*/

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidInteger = errors.New("invalid integer value")
var ErrInvalidTimestamp = errors.New("invalid timestamp value")

// Directive tags as they appear at the start of a line. Tags ending in ':'
// are matched as prefixes, flag tags are matched exactly.
const (
	TagExtM3U                     = "#EXTM3U"
	TagExtEnc                     = "#EXTENC:"
	TagPlaylist                   = "#PLAYLIST:"
	TagExtAlb                     = "#EXTALB:"
	TagExtBin                     = "#EXTBIN:"
	TagExtByt                     = "#EXTBYT:"
	TagExtArt                     = "#EXTART:"
	TagExtGenre                   = "#EXTGENRE:"
	TagExtGrp                     = "#EXTGRP:"
	TagExtInf                     = "#EXTINF:"
	TagExtM3A                     = "#EXTM3A:"
	TagExtImg                     = "#EXTIMG:"
	TagExtXVersion                = "#EXT-X-VERSION:"
	TagExtXProgramDateTime        = "#EXT-X-PROGRAM-DATE-TIME:"
	TagExtXStart                  = "#EXT-X-START:"
	TagExtXByteRange              = "#EXT-X-BYTERANGE:"
	TagExtXDateRange              = "#EXT-X-DATERANGE:"
	TagExtXDiscontinuity          = "#EXT-X-DISCONTINUITY"
	TagExtXDiscontinuitySequence  = "#EXT-X-DISCONTINUITY-SEQUENCE:"
	TagExtXEndList                = "#EXT-X-ENDLIST"
	TagExtXIFramesOnly            = "#EXT-X-I-FRAMES-ONLY"
	TagExtXIFrameStreamInf        = "#EXT-X-I-FRAME-STREAM-INF:"
	TagExtXIndependentSegments    = "#EXT-X-INDEPENDENT-SEGMENTS"
	TagExtXKey                    = "#EXT-X-KEY:"
	TagExtXMap                    = "#EXT-X-MAP:"
	TagExtXMedia                  = "#EXT-X-MEDIA:"
	TagExtXMediaSequence          = "#EXT-X-MEDIA-SEQUENCE:"
	TagExtXPlaylistType           = "#EXT-X-PLAYLIST-TYPE:"
	TagExtXSessionData            = "#EXT-X-SESSION-DATA:"
	TagExtXSessionKey             = "#EXT-X-SESSION-KEY:"
	TagExtXStreamInf              = "#EXT-X-STREAM-INF:"
	TagExtXTargetDuration         = "#EXT-X-TARGETDURATION:"
	directivePrefix               = "#"
	directiveSeparator            = ":"
	tagExtXIndependentSegmentsAlt = TagExtXIndependentSegments + directiveSeparator
)

// DATETIME represents format for EXT-X-PROGRAM-DATE-TIME timestamps.
const DATETIME = time.RFC3339Nano

// TimeParse allows globally apply and/or override Time Parser function.
// Available variants:
//   - FullTimeParse - implements full featured ISO/IEC 8601:2004
//   - StrictTimeParse - implements only RFC3339 Nanoseconds format
var TimeParse func(value string) (time.Time, error) = FullTimeParse

type lineKind uint

const (
	lineContent lineKind = iota + 1
	lineDirective
	lineEmptyDirective
)

// classify expects a trimmed, non-empty line.
func classify(line string) lineKind {
	switch {
	case !strings.HasPrefix(line, directivePrefix):
		return lineContent
	case len(line) == 1:
		return lineEmptyDirective
	}
	return lineDirective
}

// directiveName returns the text between '#' and the first ':', or the whole
// remainder if there is no ':'.
func directiveName(line string) string {
	name := strings.TrimPrefix(line, directivePrefix)
	if i := strings.Index(name, directiveSeparator); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// directiveValue returns the trimmed text after the first ':', or "" if
// there is none.
func directiveValue(line string) string {
	i := strings.Index(line, directiveSeparator)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(line[i+1:])
}

func parseInt(value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidInteger, value)
	}
	return n, nil
}

func parseTimestamp(value string) (time.Time, error) {
	t, err := TimeParse(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidTimestamp, value)
	}
	return t, nil
}

// StrictTimeParse implements RFC3339 with Nanoseconds accuracy.
func StrictTimeParse(value string) (time.Time, error) {
	return time.Parse(DATETIME, value)
}

// FullTimeParse implements ISO/IEC 8601:2004 date-times carrying an offset.
func FullTimeParse(value string) (time.Time, error) {
	layouts := []string{
		"2006-01-02T15:04:05.999999999Z0700",
		"2006-01-02T15:04:05.999999999Z07:00",
		"2006-01-02T15:04:05.999999999Z07",
		"2006-01-02T15:04Z07:00",
	}
	var (
		err error
		t   time.Time
	)
	for _, layout := range layouts {
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return t, err
}

// LineError is returned in strict mode when a typed directive value can
// not be parsed.
type LineError struct {
	Line int    // 1-based line number
	Name string // directive name without '#'
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Name, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

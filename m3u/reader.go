package m3u

/*
 This file defines functions related to playlist parsing.
*/

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// maxLineSize bounds a single playlist line. Longer lines fail the read.
	maxLineSize = 1024 * 1024

	byteOrderMark = "\ufeff"
)

var errMalformedInput = errors.New("input is not valid UTF-8")

// Options control a single parse.
type Options struct {
	// Name of the source, used only for the file name encoding check.
	// Empty skips the check.
	Name string
	// Charset the text was decoded with. Defaults to UTF-8.
	Charset string
	// Strict makes malformed integer and timestamp values abort the parse
	// with a *LineError instead of being reported as a WARNING.
	Strict bool
	// Logger receives debug traces. Nil disables logging.
	Logger *slog.Logger
}

// Internal structure for decoding a playlist line by line.
type decodingState struct {
	name     string
	charset  string
	strict   bool
	utf8     bool
	logger   *slog.Logger
	lineNo   int
	file     *PlaylistFile
	entry    *Entry
	extras   map[string]string
	pending  bool // entry has collected at least one directive
	problems []Problem
}

func newDecodingState(opts Options) *decodingState {
	charset := opts.Charset
	if charset == "" {
		charset = DefaultCharset
	}
	state := &decodingState{
		name:    opts.Name,
		charset: charset,
		strict:  opts.Strict,
		utf8:    SameCharset(charset, DefaultCharset),
		logger:  opts.Logger,
		file:    &PlaylistFile{Entries: []*Entry{}},
		entry:   new(Entry),
		extras:  make(map[string]string),
	}
	if state.name != "" && state.utf8 && !hasUTF8Extension(state.name) {
		state.warn(0, "File name encoding does not match %s", charset)
	}
	return state
}

// Parse decodes a playlist from already decoded text. It only returns an
// error in strict mode. Every other anomaly, read failures included, is
// reported through ParsingResult.Problems.
func Parse(r io.Reader, opts Options) (*ParsingResult, error) {
	return newDecodingState(opts).decode(r)
}

func (s *decodingState) decode(r io.Reader) (*ParsingResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanLines)
	for scanner.Scan() {
		s.lineNo++
		line := scanner.Text()
		if s.utf8 && !utf8.ValidString(line) {
			s.readFailed(s.lineNo, fmt.Errorf("line %d: %w", s.lineNo, errMalformedInput))
			return s.result(), nil
		}
		if s.lineNo == 1 {
			line = strings.TrimPrefix(line, byteOrderMark)
		}
		line = strings.TrimFunc(line, isBlank)
		if line == "" {
			continue
		}
		if err := decodeLine(s, line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		// the line that could not be read
		s.readFailed(s.lineNo+1, err)
	}
	return s.result(), nil
}

// scanLines is bufio.ScanLines that also ends a line at a lone '\r'.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		switch {
		case data[i] == '\n':
			return i + 1, data[:i], nil
		case i+1 < len(data) && data[i+1] == '\n':
			return i + 2, data[:i], nil
		case i+1 < len(data) || atEOF:
			return i + 1, data[:i], nil
		}
		// '\r' at the end of the buffer, a '\n' may follow
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// isBlank matches what surrounds a line: spaces and control characters,
// NUL and the DOS end-of-file mark included.
func isBlank(r rune) bool {
	return r <= ' ' || unicode.IsSpace(r)
}

// Parse one line of a playlist.
func decodeLine(s *decodingState, line string) error {
	var err error

	switch classify(line) {
	case lineContent:
		s.seal(line)
		return nil
	case lineEmptyDirective:
		s.warn(s.lineNo, "Empty directive on line %d", s.lineNo)
		return nil
	}

	e := s.entry
	pending := true
	switch {
	case line == TagExtM3U:
		pending = false
		if s.lineNo == 1 {
			s.file.ExtM3U = true
		} else {
			s.warn(s.lineNo, "Directive EXTM3U not on first line")
		}
	case strings.HasPrefix(line, TagExtEnc):
		pending = false
		if s.lineNo != 2 {
			s.warn(s.lineNo, "Directive EXTENC not on second line")
			break
		}
		s.file.ExtEnc = directiveValue(line)
		if !SameCharset(s.file.ExtEnc, s.charset) {
			s.warn(s.lineNo, "File encoding does not match %s on line %d", s.charset, s.lineNo)
		}
	case strings.HasPrefix(line, TagExtXVersion):
		pending = false
		s.file.ExtXVersion = directiveValue(line)
	case strings.HasPrefix(line, TagPlaylist):
		e.Playlist = directiveValue(line)
	case strings.HasPrefix(line, TagExtAlb):
		e.ExtAlb = directiveValue(line)
	case strings.HasPrefix(line, TagExtBin):
		// binary payloads are not decoded
		pending = false
	case strings.HasPrefix(line, TagExtByt):
		err = s.setInt(&e.ExtByt, line)
	case strings.HasPrefix(line, TagExtArt):
		e.ExtArt = directiveValue(line)
	case strings.HasPrefix(line, TagExtGenre):
		e.ExtGenre = directiveValue(line)
	case strings.HasPrefix(line, TagExtGrp):
		e.ExtGrp = directiveValue(line)
	case strings.HasPrefix(line, TagExtInf):
		e.ExtInf = directiveValue(line)
	case strings.HasPrefix(line, TagExtM3A):
		e.ExtM3A = directiveValue(line)
	case strings.HasPrefix(line, TagExtImg):
		e.ExtImg = directiveValue(line)
	case strings.HasPrefix(line, TagExtXProgramDateTime):
		err = s.setTime(line)
	case strings.HasPrefix(line, TagExtXStart):
		e.Start = directiveValue(line)
	case strings.HasPrefix(line, TagExtXByteRange):
		e.ByteRange = directiveValue(line)
	case strings.HasPrefix(line, TagExtXDateRange):
		e.DateRange = directiveValue(line)
	case line == TagExtXDiscontinuity:
		e.Discontinuity = true
	case strings.HasPrefix(line, TagExtXDiscontinuitySequence):
		err = s.setInt(&e.DiscontinuitySequence, line)
	case line == TagExtXEndList:
		e.EndList = true
	case line == TagExtXIFramesOnly:
		e.IFramesOnly = true
	case strings.HasPrefix(line, TagExtXIFrameStreamInf):
		e.IFrameStreamInf = directiveValue(line)
	case line == TagExtXIndependentSegments, line == tagExtXIndependentSegmentsAlt:
		e.IndependentSegments = true
	case strings.HasPrefix(line, TagExtXKey):
		e.Key = directiveValue(line)
	case strings.HasPrefix(line, TagExtXMap):
		e.Map = directiveValue(line)
	case strings.HasPrefix(line, TagExtXMedia):
		e.Media = directiveValue(line)
	case strings.HasPrefix(line, TagExtXMediaSequence):
		err = s.setInt(&e.MediaSequence, line)
	case strings.HasPrefix(line, TagExtXPlaylistType):
		e.PlaylistType = directiveValue(line)
	case strings.HasPrefix(line, TagExtXSessionData):
		e.SessionData = directiveValue(line)
	case strings.HasPrefix(line, TagExtXSessionKey):
		e.SessionKey = directiveValue(line)
	case strings.HasPrefix(line, TagExtXStreamInf):
		e.StreamInf = directiveValue(line)
	case strings.HasPrefix(line, TagExtXTargetDuration):
		err = s.setInt(&e.TargetDuration, line)
	default:
		s.extras[directiveName(line)] = directiveValue(line)
	}
	if pending {
		s.pending = true
	}
	return err
}

// seal finishes the entry in progress with the content line as its path
// and starts a fresh one.
func (s *decodingState) seal(path string) {
	e := s.entry
	e.Path = path
	e.Nested = referenceTo(path)
	if len(s.extras) > 0 {
		e.Extras = s.extras
	}
	s.file.Entries = append(s.file.Entries, e)
	s.entry = new(Entry)
	s.extras = make(map[string]string)
	s.pending = false
}

func (s *decodingState) setInt(dst **int64, line string) error {
	n, err := parseInt(directiveValue(line))
	if err != nil {
		return s.invalid(line, err)
	}
	*dst = &n
	return nil
}

func (s *decodingState) setTime(line string) error {
	t, err := parseTimestamp(directiveValue(line))
	if err != nil {
		return s.invalid(line, err)
	}
	s.entry.ProgramDateTime = &t
	return nil
}

// invalid handles a typed value that failed to parse. The field keeps
// whatever it held before.
func (s *decodingState) invalid(line string, err error) error {
	name := directiveName(line)
	if s.strict {
		return &LineError{Line: s.lineNo, Name: name, Err: err}
	}
	kind := "integer"
	if errors.Is(err, ErrInvalidTimestamp) {
		kind = "timestamp"
	}
	s.warn(s.lineNo, "Invalid %s value %q for %s on line %d", kind, directiveValue(line), name, s.lineNo)
	return nil
}

func (s *decodingState) warn(line int, format string, args ...any) {
	s.add(Problem{Severity: WARNING, Message: fmt.Sprintf(format, args...), Line: line})
}

func (s *decodingState) readFailed(line int, err error) {
	if s.logger != nil {
		s.logger.Error("playlist read failed", "name", s.name, "line", line, "error", err)
	}
	s.add(Problem{Severity: ERROR, Message: "File reading error", Line: line})
}

func (s *decodingState) add(p Problem) {
	if s.logger != nil {
		s.logger.Debug("playlist problem", "name", s.name, "severity", p.Severity.String(), "line", p.Line, "message", p.Message)
	}
	s.problems = append(s.problems, p)
}

func (s *decodingState) result() *ParsingResult {
	if s.logger != nil {
		if s.pending || len(s.extras) > 0 {
			s.logger.Debug("discarding directives after last content line", "name", s.name)
		}
		s.logger.Debug("playlist parsed", "name", s.name, "lines", s.lineNo,
			"entries", len(s.file.Entries), "problems", len(s.problems))
	}
	return &ParsingResult{File: s.file, Problems: s.problems}
}

// referenceTo returns a Reference if path names another playlist.
func referenceTo(path string) *Reference {
	p := path
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	lower := strings.ToLower(p)
	if !strings.HasSuffix(lower, ".m3u") && !strings.HasSuffix(lower, ".m3u8") {
		return nil
	}
	return &Reference{Path: path, Remote: hasScheme(path)}
}

// hasScheme reports whether s starts with a URL scheme such as "http://".
func hasScheme(s string) bool {
	i := strings.Index(s, "://")
	if i <= 0 {
		return false
	}
	for j, c := range s[:i] {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case j > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

func hasUTF8Extension(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".m3u8")
}

package m3u

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

var ErrMissingPath = errors.New("missing playlist path")
var ErrMissingCharset = errors.New("missing charset")

// ParseFile reads and parses the playlist at filename, decoding it with the
// given charset label. opts.Name and opts.Charset are set from the
// arguments.
//
// An error is returned for an empty filename, an empty or unknown charset, and
// for malformed typed values in strict mode. A file that can not be opened
// or read yields a result with an ERROR problem instead.
func ParseFile(filename, charset string, opts Options) (*ParsingResult, error) {
	if filename == "" {
		return nil, ErrMissingPath
	}
	return parseOpened(func() (io.ReadCloser, error) {
		return os.Open(filename) // #nosec G304 -- user-provided paths are expected
	}, filepath.Base(filename), charset, opts)
}

// ParseFS is like ParseFile but opens name from fsys.
func ParseFS(fsys fs.FS, name, charset string, opts Options) (*ParsingResult, error) {
	if name == "" {
		return nil, ErrMissingPath
	}
	return parseOpened(func() (io.ReadCloser, error) {
		return fsys.Open(name)
	}, path.Base(name), charset, opts)
}

func parseOpened(open func() (io.ReadCloser, error), name, charset string, opts Options) (*ParsingResult, error) {
	if charset == "" {
		return nil, ErrMissingCharset
	}
	enc, canonical, err := LookupCharset(charset)
	if err != nil {
		return nil, err
	}
	opts.Name = name
	opts.Charset = canonical

	state := newDecodingState(opts)
	f, err := open()
	if err != nil {
		state.readFailed(0, err)
		return &ParsingResult{Problems: state.problems}, nil
	}
	defer f.Close()
	return state.decode(decodingReader(enc, canonical, f))
}

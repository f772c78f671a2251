package m3u

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultCharset is assumed when no charset is given.
const DefaultCharset = "UTF-8"

var ErrUnknownCharset = errors.New("unknown charset")

// LookupCharset resolves a charset label against the IANA registry, falling
// back to the WHATWG label set. It returns the encoding and its canonical
// name, as used in problem messages.
func LookupCharset(label string) (encoding.Encoding, string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, "", ErrMissingCharset
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		if enc, err = htmlindex.Get(label); err != nil {
			return nil, "", fmt.Errorf("%w %q", ErrUnknownCharset, label)
		}
	}
	return enc, charsetName(enc, label), nil
}

// charsetName prefers the MIME name ("ISO-8859-1", "UTF-8") over the
// registry name ("ISO_8859-1:1987").
func charsetName(enc encoding.Encoding, label string) string {
	for _, index := range []*ianaindex.Index{ianaindex.MIME, ianaindex.IANA} {
		if name, err := index.Name(enc); err == nil && name != "" {
			return name
		}
	}
	if name, err := htmlindex.Name(enc); err == nil {
		return name
	}
	return label
}

// SameCharset compares two charset names ignoring case and every character
// that is not a letter or digit, so "UTF-8", "utf8" and "Utf_8" match.
func SameCharset(a, b string) bool {
	return strings.EqualFold(stripCharset(a), stripCharset(b))
}

func stripCharset(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
			return r
		}
		return -1
	}, s)
}

// decodingReader wraps r so that it yields UTF-8 text. UTF-8 input is passed
// through untouched so that invalid sequences are still detected by Parse.
func decodingReader(enc encoding.Encoding, name string, r io.Reader) io.Reader {
	if SameCharset(name, DefaultCharset) {
		return r
	}
	return enc.NewDecoder().Reader(r)
}

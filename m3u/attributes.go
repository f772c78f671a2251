package m3u

/*
 This file defines helpers that decode the string payloads kept on an Entry.
*/

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrEmptyValue = errors.New("empty value")

var reKeyValue = regexp.MustCompile(`([a-zA-Z0-9_-]+)=("[^"]+"|[^",]+)`)

// reInfAttr matches IPTV style space separated attributes on #EXTINF lines.
var reInfAttr = regexp.MustCompile(`([\w-]+)=(?:"([^"]*)"|([^\s,]+))`)

// Attributes decodes an HLS attribute list such as the payload of
// EXT-X-STREAM-INF. The values are left as verbatim strings, including
// quotes if present.
func Attributes(value string) []Attribute {
	matches := reKeyValue.FindAllStringSubmatch(value, -1)
	attrs := make([]Attribute, 0, len(matches))
	for _, kv := range matches {
		attrs = append(attrs, Attribute{Key: kv[1], Val: kv[2]})
	}
	return attrs
}

// AttributeMap decodes an HLS attribute list into a map.
// It removes any quotes and spaces around the values.
func AttributeMap(value string) map[string]string {
	out := make(map[string]string)
	for _, kv := range reKeyValue.FindAllStringSubmatch(value, -1) {
		out[kv[1]] = strings.Trim(kv[2], ` "`)
	}
	return out
}

// DeQuote removes quotes from a string.
func DeQuote(s string) string {
	if len(s) < 2 {
		return s
	}
	if s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// ParseExtInf decodes an #EXTINF payload of the form
// <duration>[ key="value" ...],<title>.
func ParseExtInf(value string) (ExtInf, error) {
	var inf ExtInf
	value = strings.TrimSpace(value)
	if value == "" {
		return inf, ErrEmptyValue
	}

	head, title, found := cutOutsideQuotes(value, ',')
	if found {
		inf.Title = strings.TrimSpace(title)
	}
	head = strings.TrimSpace(head)

	duration, rest, _ := strings.Cut(head, " ")
	d, err := strconv.ParseFloat(duration, 64)
	if err != nil {
		return inf, fmt.Errorf("duration parsing error: %w", err)
	}
	inf.Duration = d

	for _, m := range reInfAttr.FindAllStringSubmatch(rest, -1) {
		val := m[2]
		if val == "" {
			val = m[3]
		}
		inf.Attributes = append(inf.Attributes, Attribute{Key: m[1], Val: val})
	}
	return inf, nil
}

// Attr returns the value of the named #EXTINF attribute.
func (i ExtInf) Attr(key string) (string, bool) {
	for _, a := range i.Attributes {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Inf decodes the entry's #EXTINF payload.
func (e *Entry) Inf() (ExtInf, error) {
	return ParseExtInf(e.ExtInf)
}

// ParseByteRange decodes an EXT-X-BYTERANGE payload <n>[@<o>].
func ParseByteRange(value string) (ByteRange, error) {
	var br ByteRange
	value = strings.TrimSpace(value)
	if value == "" {
		return br, ErrEmptyValue
	}
	length, offset, hasOffset := strings.Cut(value, "@")
	var err error
	if br.Length, err = strconv.ParseInt(length, 10, 64); err != nil {
		return br, fmt.Errorf("byterange sub-range length value parsing error: %w", err)
	}
	if hasOffset {
		if br.Offset, err = strconv.ParseInt(offset, 10, 64); err != nil {
			return br, fmt.Errorf("byterange sub-range offset value parsing error: %w", err)
		}
		br.HasOffset = true
	}
	return br, nil
}

// cutOutsideQuotes is strings.Cut that ignores sep inside double quotes.
func cutOutsideQuotes(s string, sep byte) (before, after string, found bool) {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case sep:
			if !quoted {
				return s[:i], s[i+1:], true
			}
		}
	}
	return s, "", false
}

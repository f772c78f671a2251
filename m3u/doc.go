/*
Package m3u implements tolerant parsing of M3U and M3U8 playlists,
including the HTTP Live Streaming (HLS) extensions.

Playlists found in the wild are often malformed: directives on the wrong
line, a declared encoding that differs from the real one, numbers that are
not numbers. Instead of stopping at the first such mistake, the parser keeps
going and records a Problem with a severity (WARNING or ERROR) for each one.
Callers decide from ParsingResult.Problems whether to trust the result.

## Structure and design of the code

A playlist is parsed into a PlaylistFile holding the header directives
(#EXTM3U, #EXTENC, #EXT-X-VERSION) and an ordered list of Entry values.
Every line that does not start with '#' is a content line and closes an
Entry; all directives met since the previous content line are attached to
it. Directives after the last content line are dropped.

Unknown directives are kept by name in Entry.Extras. Entries whose path is
itself a playlist carry a Reference in Entry.Nested. Following those
references is left to a Resolver, which calls the parser again for each
nested file.

There are three entry points:

  - Parse decodes already decoded text from an io.Reader.
  - ParseFile opens a file and decodes it from the given charset.
  - ParseFS does the same for a file inside an fs.FS.

Directive values are kept as verbatim strings unless the directive is an
integer (#EXTBYT, #EXT-X-TARGETDURATION, #EXT-X-MEDIA-SEQUENCE,
#EXT-X-DISCONTINUITY-SEQUENCE), a timestamp (#EXT-X-PROGRAM-DATE-TIME) or a
flag. Helpers such as ParseExtInf, ParseByteRange and Attributes decode the
string payloads on demand.

Example of usage (without error handling)

	res, _ := ParseFile("channels.m3u8", "UTF-8", Options{})
	for _, p := range res.Problems {
	  fmt.Println(p)
	}
	for _, e := range res.File.Entries {
	  inf, _ := e.Inf()
	  fmt.Println(inf.Title, e.Path)
	}

With Options.Strict set, a malformed integer or timestamp makes the parse
fail with a *LineError and no result.
*/
package m3u

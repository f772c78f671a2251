package m3u

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// DefaultMaxDepth is the nesting limit used when Resolver.MaxDepth is 0.
const DefaultMaxDepth = 4

// Resolver follows the nested playlist references produced by the parser,
// parsing each referenced playlist with the same parser.
//
// Relative references are looked up next to the referring playlist,
// references starting with '/' from the root of FS. Remote references are
// left unresolved.
type Resolver struct {
	FS       fs.FS   // where playlists are opened from
	Charset  string  // charset of nested playlists, DefaultCharset if empty
	MaxDepth int     // DefaultMaxDepth if 0
	Options  Options // passed to every nested parse
}

// Resolve returns a copy of result in which every resolvable entry has its
// NestedFile set. name is the location of the parsed playlist inside FS.
// Problems of nested playlists are appended, prefixed with their name.
// result itself is not modified.
func (r *Resolver) Resolve(ctx context.Context, name string, result *ParsingResult) (*ParsingResult, error) {
	if result == nil || result.File == nil {
		return result, nil
	}
	out := &ParsingResult{Problems: append([]Problem(nil), result.Problems...)}
	ancestors := map[string]bool{path.Clean(name): true}
	file, err := r.resolveFile(ctx, path.Clean(name), result.File, 0, ancestors, out)
	if err != nil {
		return nil, err
	}
	out.File = file
	return out, nil
}

func (r *Resolver) resolveFile(ctx context.Context, name string, f *PlaylistFile, depth int,
	ancestors map[string]bool, out *ParsingResult) (*PlaylistFile, error) {
	resolved := *f
	resolved.Entries = make([]*Entry, len(f.Entries))
	copy(resolved.Entries, f.Entries)

	for i, e := range f.Entries {
		if e.Nested == nil || e.Nested.Remote {
			continue
		}
		target, ok := referenceTarget(path.Dir(name), e.Nested.Path)
		switch {
		case !ok:
			out.warn("Nested playlist %s not found", e.Nested.Path)
			continue
		case depth+1 > r.maxDepth():
			out.warn("Nested playlist %s exceeds maximum depth %d", target, r.maxDepth())
			continue
		case ancestors[target]:
			out.warn("Nested playlist %s already visited", target)
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := fs.Stat(r.FS, target); errors.Is(err, fs.ErrNotExist) {
			out.warn("Nested playlist %s not found", target)
			continue
		}

		nested, err := ParseFS(r.FS, target, r.charset(), r.Options)
		if err != nil {
			return nil, fmt.Errorf("nested playlist %s: %w", target, err)
		}
		for _, p := range nested.Problems {
			p.Message = target + ": " + p.Message
			out.Problems = append(out.Problems, p)
		}
		if nested.File == nil {
			continue
		}

		ancestors[target] = true
		nf, err := r.resolveFile(ctx, target, nested.File, depth+1, ancestors, out)
		delete(ancestors, target)
		if err != nil {
			return nil, err
		}
		entry := *e
		entry.NestedFile = nf
		resolved.Entries[i] = &entry
	}
	return &resolved, nil
}

func (r *Resolver) maxDepth() int {
	if r.MaxDepth > 0 {
		return r.MaxDepth
	}
	return DefaultMaxDepth
}

func (r *Resolver) charset() string {
	if r.Charset != "" {
		return r.Charset
	}
	return DefaultCharset
}

// referenceTarget turns a reference into a name inside the resolver's FS.
func referenceTarget(dir, ref string) (string, bool) {
	ref = strings.ReplaceAll(ref, `\`, "/")
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	var target string
	if strings.HasPrefix(ref, "/") {
		target = path.Clean(strings.TrimLeft(ref, "/"))
	} else {
		target = path.Join(dir, ref)
	}
	return target, fs.ValidPath(target)
}

func (r *ParsingResult) warn(format string, args ...any) {
	r.Problems = append(r.Problems, Problem{Severity: WARNING, Message: fmt.Sprintf(format, args...)})
}

// Package resolver maps raw import targets to repository-relative files.
// Resolution is best-effort: every probe runs against the current file set
// only, in a fixed order, and a miss returns ok=false rather than an error.
package resolver

import (
	"path"
	"sort"
	"strings"

	"github.com/repolens-dev/repolens/internal/lang"
	"github.com/repolens-dev/repolens/internal/model"
)

// FileSet indexes the paths of one analysis run for membership and
// directory probes.
type FileSet struct {
	paths    map[string]struct{}
	byDir    map[string][]string
	topLevel map[string]struct{}
}

// NewFileSet builds the index. Paths must be repo-relative and slash
// separated.
func NewFileSet(paths []string) *FileSet {
	fs := &FileSet{
		paths:    make(map[string]struct{}, len(paths)),
		byDir:    make(map[string][]string),
		topLevel: make(map[string]struct{}),
	}
	for _, p := range paths {
		fs.paths[p] = struct{}{}
		dir := path.Dir(p)
		fs.byDir[dir] = append(fs.byDir[dir], p)

		top := p
		if idx := strings.IndexByte(p, '/'); idx >= 0 {
			top = p[:idx]
			fs.topLevel[top] = struct{}{}
		}
	}
	for dir := range fs.byDir {
		sort.Strings(fs.byDir[dir])
	}
	return fs
}

// Contains reports whether the exact path is part of the run.
func (fs *FileSet) Contains(p string) bool {
	_, ok := fs.paths[p]
	return ok
}

// HasTopLevel reports whether a top-level directory with that name exists.
func (fs *FileSet) HasTopLevel(segment string) bool {
	_, ok := fs.topLevel[segment]
	return ok
}

// Resolve maps one raw import of source to a repo file. The probe order is
// fixed: literal path, then each profile extension, then each directory
// anchor inside a same-named directory.
func Resolve(raw, source string, p lang.Profile, fs *FileSet) (string, bool) {
	switch p.Language {
	case model.LangRust:
		return resolveRust(raw, source, p, fs)
	case model.LangPython:
		return resolveDotted(raw, source, p, fs)
	case model.LangJava, model.LangCSharp, model.LangSwift:
		return resolveDotted(raw, source, p, fs)
	default:
		return resolvePathLike(raw, source, p, fs)
	}
}

// resolvePathLike handles slash-separated and relative targets (Go, the
// JS/TS family, Ruby).
func resolvePathLike(raw, source string, p lang.Profile, fs *FileSet) (string, bool) {
	if strings.HasPrefix(raw, "./") || strings.HasPrefix(raw, "../") {
		return probe(path.Join(path.Dir(source), raw), p, fs)
	}
	first := raw
	if idx := strings.IndexByte(raw, '/'); idx >= 0 {
		first = raw[:idx]
	}
	if !fs.HasTopLevel(first) {
		return "", false
	}
	if target, ok := probe(raw, p, fs); ok {
		return target, ok
	}
	// A bare directory target falls back to its package-named file, then to
	// the first profile file inside it.
	return probeDir(raw, p, fs)
}

// resolveDotted handles dotted module paths. Leading dots (Python relative
// imports) climb from the source directory; absolute paths require the
// first segment to match a top-level directory, otherwise the import is
// external.
func resolveDotted(raw, source string, p lang.Profile, fs *FileSet) (string, bool) {
	if strings.HasPrefix(raw, ".") {
		dots := 0
		for dots < len(raw) && raw[dots] == '.' {
			dots++
		}
		base := path.Dir(source)
		for i := 1; i < dots; i++ {
			base = path.Dir(base)
		}
		rel := strings.ReplaceAll(raw[dots:], ".", "/")
		if rel == "" {
			return probeAnchors(base, p, fs)
		}
		return probe(path.Join(base, rel), p, fs)
	}

	segments := strings.Split(raw, ".")
	if !fs.HasTopLevel(segments[0]) {
		return "", false
	}
	target := strings.Join(segments, "/")
	if resolved, ok := probe(target, p, fs); ok {
		return resolved, ok
	}
	// The last segment may name an item inside a module rather than the
	// module itself.
	if len(segments) > 1 {
		return probe(strings.Join(segments[:len(segments)-1], "/"), p, fs)
	}
	return "", false
}

func resolveRust(raw, source string, p lang.Profile, fs *FileSet) (string, bool) {
	if name, ok := strings.CutPrefix(raw, "mod "); ok {
		return probe(path.Join(path.Dir(source), name), p, fs)
	}

	segments := strings.Split(raw, "::")
	var base string
	switch segments[0] {
	case "crate":
		base = crateRoot(fs)
		segments = segments[1:]
	case "self":
		base = path.Dir(source)
		segments = segments[1:]
	case "super":
		base = path.Dir(source)
		for len(segments) > 0 && segments[0] == "super" {
			base = path.Dir(base)
			segments = segments[1:]
		}
	default:
		// External crates (std, third party) miss every probe below and
		// stay unresolved.
		base = crateRoot(fs)
	}
	if len(segments) == 0 {
		return "", false
	}

	target := path.Join(base, path.Join(segments...))
	if resolved, ok := probe(target, p, fs); ok {
		return resolved, ok
	}
	// Drop a trailing item name (Type, function) and retry the module path.
	if len(segments) > 1 {
		return probe(path.Join(base, path.Join(segments[:len(segments)-1]...)), p, fs)
	}
	return "", false
}

// crateRoot picks the conventional src/ layout when present, else the repo
// root.
func crateRoot(fs *FileSet) string {
	if fs.HasTopLevel("src") {
		return "src"
	}
	return "."
}

// probe tries the literal path, then each profile extension, then each
// directory anchor inside target treated as a directory.
func probe(target string, p lang.Profile, fs *FileSet) (string, bool) {
	target = path.Clean(target)
	if target == "." || strings.HasPrefix(target, "../") {
		return "", false
	}
	if fs.Contains(target) {
		return target, true
	}
	for _, ext := range p.ProbeExtensions {
		if cand := target + ext; fs.Contains(cand) {
			return cand, true
		}
	}
	return probeAnchors(target, p, fs)
}

func probeAnchors(dir string, p lang.Profile, fs *FileSet) (string, bool) {
	dir = path.Clean(dir)
	if strings.HasPrefix(dir, "../") {
		return "", false
	}
	for _, anchor := range p.DirAnchors {
		if cand := path.Join(dir, anchor); fs.Contains(cand) {
			return cand, true
		}
	}
	return "", false
}

// probeDir resolves a directory import to a representative file: the file
// named after the directory first, then the lexicographically first file
// with a profile extension.
func probeDir(dir string, p lang.Profile, fs *FileSet) (string, bool) {
	dir = path.Clean(dir)
	for _, ext := range p.ProbeExtensions {
		if cand := path.Join(dir, path.Base(dir)+ext); fs.Contains(cand) {
			return cand, true
		}
	}
	for _, f := range fs.byDir[dir] {
		for _, ext := range p.ProbeExtensions {
			if strings.HasSuffix(f, ext) {
				return f, true
			}
		}
	}
	return "", false
}

// Package modules groups files into module boundaries. A directory is
// promoted to a module when it carries a language anchor file or enough
// direct files; everything else merges upward into its nearest qualifying
// ancestor, with the repository root as the final catch-all.
package modules

import (
	"path"
	"sort"
	"strings"

	"github.com/repolens-dev/repolens/internal/lang"
	"github.com/repolens-dev/repolens/internal/model"
)

// minDirectFiles is the size heuristic: a plain directory needs this many
// direct (non-recursive) files to stand as its own module.
const minDirectFiles = 5

// Detect assigns every file to exactly one module. The result is sorted by
// module path and deterministic for a given file set regardless of input
// order.
func Detect(files []model.File) []model.Module {
	direct := make(map[string][]string)
	for _, f := range files {
		dir := path.Dir(f.Path)
		direct[dir] = append(direct[dir], f.Path)
	}

	anchored := make(map[string]bool, len(direct))
	for dir, paths := range direct {
		for _, p := range paths {
			if lang.IsAnchorPath(p) {
				anchored[dir] = true
				break
			}
		}
	}

	qualifies := func(dir string) bool {
		if dir == "." {
			return true
		}
		// Anchor presence wins even below the size threshold.
		return anchored[dir] || len(direct[dir]) >= minDirectFiles
	}

	// Each directory's files land in its nearest qualifying ancestor.
	members := make(map[string][]string)
	for dir, paths := range direct {
		home := dir
		for !qualifies(home) {
			home = parentDir(home)
		}
		members[home] = append(members[home], paths...)
	}

	modulePaths := make([]string, 0, len(members))
	for dir := range members {
		modulePaths = append(modulePaths, dir)
	}
	sort.Strings(modulePaths)

	isModule := make(map[string]bool, len(modulePaths))
	for _, dir := range modulePaths {
		isModule[dir] = true
	}

	out := make([]model.Module, 0, len(modulePaths))
	children := make(map[string][]string)
	for _, dir := range modulePaths {
		sort.Strings(members[dir])

		boundary := model.BoundarySize
		if dir == "." {
			boundary = model.BoundaryRoot
		}
		entry := ""
		if anchored[dir] {
			boundary = model.BoundaryAnchor
			entry = firstAnchor(direct[dir])
		}

		parent := parentModule(dir, isModule)
		if parent != "" {
			children[parent] = append(children[parent], slugOf(dir))
		}

		out = append(out, model.Module{
			Slug:       slugOf(dir),
			Path:       dir,
			Boundary:   boundary,
			EntryPoint: entry,
			Files:      members[dir],
			Parent:     slugOf(parent),
		})
	}

	for i := range out {
		if c := children[out[i].Path]; c != nil {
			sort.Strings(c)
			out[i].Children = c
		}
	}
	return out
}

// ByFile inverts a module list into a file path -> module slug lookup.
func ByFile(mods []model.Module) map[string]string {
	byFile := make(map[string]string)
	for _, m := range mods {
		for _, f := range m.Files {
			byFile[f] = m.Slug
		}
	}
	return byFile
}

func slugOf(dir string) string {
	if dir == "" {
		return ""
	}
	if dir == "." {
		return "root"
	}
	return strings.ReplaceAll(dir, "/", "-")
}

func parentDir(dir string) string {
	parent := path.Dir(dir)
	if parent == dir {
		return "."
	}
	return parent
}

// parentModule walks ancestors until it finds another module directory.
// The root module is the parent of every top-level module.
func parentModule(dir string, isModule map[string]bool) string {
	if dir == "." {
		return ""
	}
	for p := parentDir(dir); ; p = parentDir(p) {
		if isModule[p] {
			return p
		}
		if p == "." {
			return ""
		}
	}
}

func firstAnchor(paths []string) string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)
	for _, p := range sorted {
		if lang.IsAnchorPath(p) {
			return p
		}
	}
	return ""
}

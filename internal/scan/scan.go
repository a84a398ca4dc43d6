// Package scan enumerates the files one analysis run consumes. It applies
// ignore rules, include/exclude globs, and the depth limit, then reads each
// file's content so the core never touches the filesystem.
package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/repolens-dev/repolens/internal/analyzer"
	"github.com/repolens-dev/repolens/internal/config"
)

// skipDirs are pruned unconditionally, before ignore rules run.
var skipDirs = map[string]struct{}{
	".git":           {},
	config.OutputDir: {},
	"node_modules":   {},
	"vendor":         {},
	"dist":           {},
	"build":          {},
	"target":         {},
	"__pycache__":    {},
}

// Options configures one scan.
type Options struct {
	Root string

	// MaxDepth limits directory nesting below Root. 0 means unlimited;
	// 1 keeps only root-level files.
	MaxDepth int

	// Ignore holds extra rules in gitignore syntax, appended after
	// .gitignore and .repolensignore.
	Ignore []string

	Include []glob.Glob
	Exclude []glob.Glob
}

// Collect walks Root and returns the sorted file inputs. An unreadable file
// that was already enumerated aborts with a *analyzer.ContentError.
func Collect(opts Options) ([]analyzer.FileInput, error) {
	matcher := loadIgnoreRules(opts.Root, opts.Ignore)

	var inputs []analyzer.FileInput
	err := filepath.WalkDir(opts.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == opts.Root {
				return err
			}
			return nil
		}
		if path == opts.Root {
			return nil
		}

		rel, relErr := filepath.Rel(opts.Root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		name := d.Name()

		if d.IsDir() {
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 && depthOf(rel) >= opts.MaxDepth {
				return filepath.SkipDir
			}
			if matcher != nil && matcher.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") || d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		if !matchesGlobs(rel, opts.Include, true) || matchesGlobs(rel, opts.Exclude, false) {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return &analyzer.ContentError{Path: rel, Err: readErr}
		}
		inputs = append(inputs, analyzer.FileInput{Path: rel, Content: content})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Path < inputs[j].Path })
	return inputs, nil
}

// loadIgnoreRules merges .gitignore, .repolensignore, and configured rules
// into one matcher. Missing files contribute nothing.
func loadIgnoreRules(root string, extra []string) *ignore.GitIgnore {
	var lines []string
	for _, name := range []string{".gitignore", config.IgnoreFile} {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			continue
		}
		lines = append(lines, strings.Split(string(data), "\n")...)
	}
	lines = append(lines, extra...)
	if len(lines) == 0 {
		return nil
	}
	return ignore.CompileIgnoreLines(lines...)
}

// matchesGlobs applies a glob set; an empty set returns the default.
func matchesGlobs(rel string, globs []glob.Glob, whenEmpty bool) bool {
	if len(globs) == 0 {
		return whenEmpty
	}
	for _, g := range globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func depthOf(rel string) int {
	return strings.Count(rel, "/") + 1
}

// Package config loads .repolens.toml and validates it before the core
// runs. The core consumes the plain values; all file and flag merging stays
// out here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"

	"github.com/repolens-dev/repolens/internal/analyzer"
	"github.com/repolens-dev/repolens/internal/lang"
)

const (
	// FileName is the config file looked up at the repository root.
	FileName = ".repolens.toml"
	// OutputDir holds the snapshot and all rendered artifacts.
	OutputDir = ".repolens"
	// IgnoreFile carries extra ignore rules in gitignore syntax.
	IgnoreFile = ".repolensignore"
)

// Config is the persisted configuration. Zero values mean defaults.
type Config struct {
	LargeFileLineThreshold int      `toml:"large_file_line_threshold"`
	MaxDepth               int      `toml:"max_depth"`
	Languages              []string `toml:"languages"`
	Ignore                 []string `toml:"ignore"`
	Include                []string `toml:"include"`
	Exclude                []string `toml:"exclude"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LargeFileLineThreshold: analyzer.DefaultLargeFileLines,
	}
}

// Load reads root/.repolens.toml. A missing file yields defaults; a file
// that exists but cannot be parsed or validated is a fatal config error.
func Load(root string) (Config, error) {
	cfg := Default()

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, &analyzer.ConfigError{Field: "config", Value: path, Err: err}
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, &analyzer.ConfigError{Field: "config", Value: path, Err: err}
	}
	if cfg.LargeFileLineThreshold == 0 {
		cfg.LargeFileLineThreshold = analyzer.DefaultLargeFileLines
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects unknown languages, negative limits, and glob patterns
// that do not compile.
func (c Config) Validate() error {
	for _, name := range c.Languages {
		if !lang.Known(name) {
			return &analyzer.ConfigError{Field: "languages", Value: name, Err: errors.New("unknown language")}
		}
	}
	if c.MaxDepth < 0 {
		return &analyzer.ConfigError{Field: "max_depth", Value: fmt.Sprint(c.MaxDepth)}
	}
	if c.LargeFileLineThreshold < 0 {
		return &analyzer.ConfigError{Field: "large_file_line_threshold", Value: fmt.Sprint(c.LargeFileLineThreshold)}
	}
	if _, err := compileGlobs("include", c.Include); err != nil {
		return err
	}
	if _, err := compileGlobs("exclude", c.Exclude); err != nil {
		return err
	}
	return nil
}

// IncludeGlobs returns the compiled include patterns. Validate must have
// accepted the config first.
func (c Config) IncludeGlobs() []glob.Glob {
	globs, _ := compileGlobs("include", c.Include)
	return globs
}

// ExcludeGlobs returns the compiled exclude patterns.
func (c Config) ExcludeGlobs() []glob.Glob {
	globs, _ := compileGlobs("exclude", c.Exclude)
	return globs
}

func compileGlobs(field string, patterns []string) ([]glob.Glob, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, &analyzer.ConfigError{Field: field, Value: p, Err: err}
		}
		out = append(out, g)
	}
	return out, nil
}

// Starter is the annotated config written by `repolens init`.
const Starter = `# repolens configuration

# Flag files at or above this many lines in index.md.
large_file_line_threshold = 500

# Limit directory depth during scanning. 0 means unlimited.
max_depth = 0

# Restrict analysis to specific languages, e.g. ["go", "python"].
# Empty means all supported languages.
languages = []

# Extra ignore rules (gitignore syntax). .gitignore and .repolensignore
# are applied as well.
ignore = []

# Include/exclude globs applied to repo-relative paths.
include = []
exclude = []
`

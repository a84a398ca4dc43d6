// Package lang holds the language profiles: classification, comment syntax,
// anchor files, import-resolution probe tables, and the per-language symbol
// and import extractors.
//
// Languages are a closed set of profile values dispatched by file extension.
// Adding a language means adding one profile entry, not subclassing anything.
// The extractors are tolerant line scanners: they never fail on malformed
// input, they return the best partial result.
package lang

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/repolens-dev/repolens/internal/model"
)

// Profile describes how one language is scanned and resolved.
type Profile struct {
	Language   model.Language
	Extensions []string

	// Comment syntax, used by marker extraction.
	LineComments []string
	BlockOpen    string
	BlockClose   string

	// AnchorFiles mark their directory as an intentional module boundary
	// regardless of size. Empty for languages without the convention.
	AnchorFiles []string

	// ProbeExtensions is the fixed order of extensions appended to an
	// import target during resolution.
	ProbeExtensions []string

	// DirAnchors are filenames probed inside a same-named directory when
	// an import targets the directory itself (e.g. "./widgets" ->
	// "widgets/index.ts").
	DirAnchors []string

	ExtractSymbols func(content string) []model.Symbol
	ExtractImports func(content string) []string
}

var profiles = []Profile{
	goProfile,
	rustProfile,
	pythonProfile,
	javascriptProfile,
	typescriptProfile,
	rubyProfile,
	javaProfile,
	csharpProfile,
	swiftProfile,
}

var extToProfile = buildExtensionIndex()

func buildExtensionIndex() map[string]*Profile {
	index := make(map[string]*Profile)
	for i := range profiles {
		for _, ext := range profiles[i].Extensions {
			// First profile registering an extension wins; the table
			// order encodes each extension's primary mapping.
			if _, taken := index[ext]; !taken {
				index[ext] = &profiles[i]
			}
		}
	}
	return index
}

// Classify maps a file path to its language profile. It is a pure function
// of the extension; unsupported extensions return ok=false.
func Classify(path string) (Profile, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	p, ok := extToProfile[ext]
	if !ok {
		return Profile{}, false
	}
	return *p, true
}

// ByLanguage returns the profile for a known language.
func ByLanguage(language model.Language) (Profile, bool) {
	for i := range profiles {
		if profiles[i].Language == language {
			return profiles[i], true
		}
	}
	return Profile{}, false
}

// Profiles returns all language profiles in registration order.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// Known reports whether the name is a supported language identifier.
func Known(name string) bool {
	_, ok := ByLanguage(model.Language(name))
	return ok
}

// IsAnchorPath reports whether the repo-relative path names a module anchor
// (mod.rs, __init__.py, index.ts, ...). lib.rs only anchors the crate root:
// directly under src/ or at the repository root.
func IsAnchorPath(p string) bool {
	base := path.Base(p)
	if base == "lib.rs" {
		dir := path.Dir(p)
		return dir == "src" || dir == "."
	}
	for i := range profiles {
		for _, anchor := range profiles[i].AnchorFiles {
			if base == anchor {
				return true
			}
		}
	}
	return false
}

// GenericLineComments and the generic block delimiters drive marker
// extraction for files with no language profile.
var (
	GenericLineComments = []string{"//", "#"}
	GenericBlockOpen    = "/*"
	GenericBlockClose   = "*/"
)

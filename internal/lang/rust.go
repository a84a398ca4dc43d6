package lang

import (
	"regexp"
	"strings"

	"github.com/repolens-dev/repolens/internal/model"
)

var rustProfile = Profile{
	Language:        model.LangRust,
	Extensions:      []string{".rs"},
	LineComments:    []string{"//"},
	BlockOpen:       "/*",
	BlockClose:      "*/",
	AnchorFiles:     []string{"mod.rs", "lib.rs"},
	ProbeExtensions: []string{".rs"},
	DirAnchors:      []string{"mod.rs"},
	ExtractSymbols:  extractRustSymbols,
	ExtractImports:  extractRustImports,
}

var (
	rustFnRe   = regexp.MustCompile(`^\s*(pub(?:\([^)]*\))?\s+)?(?:const\s+)?(?:async\s+)?(?:unsafe\s+)?(?:extern\s+"[^"]*"\s+)?fn\s+([A-Za-z_][A-Za-z0-9_]*)`)
	rustTypeRe = regexp.MustCompile(`^\s*(pub(?:\([^)]*\))?\s+)?(struct|enum|trait|mod)\s+([A-Za-z_][A-Za-z0-9_]*)`)

	rustUseRe = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?use\s+([A-Za-z_][A-Za-z0-9_:]*(?:::\{)?)`)
	rustModRe = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?mod\s+([A-Za-z_][A-Za-z0-9_]*)\s*;`)
)

func rustVisibility(modifier string) model.Visibility {
	modifier = strings.TrimSpace(modifier)
	switch {
	case modifier == "pub":
		return model.VisPublic
	case strings.HasPrefix(modifier, "pub("):
		return model.VisInternal
	default:
		return model.VisPrivate
	}
}

func extractRustSymbols(content string) []model.Symbol {
	var symbols []model.Symbol

	forEachLine(content, func(lineNo int, line string) {
		if m := rustFnRe.FindStringSubmatch(line); m != nil {
			kind := model.KindFunction
			if indented(line) {
				kind = model.KindMethod
			}
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       kind,
				Name:       m[2],
				Visibility: rustVisibility(m[1]),
				Signature:  trimSignature(line),
			})
			return
		}
		if m := rustTypeRe.FindStringSubmatch(line); m != nil {
			var kind model.SymbolKind
			switch m[2] {
			case "struct":
				kind = model.KindStruct
			case "enum":
				kind = model.KindEnum
			case "trait":
				kind = model.KindTrait
			case "mod":
				kind = model.KindModule
			}
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       kind,
				Name:       m[3],
				Visibility: rustVisibility(m[1]),
				Signature:  trimSignature(line),
			})
		}
	})

	return finishSymbols(symbols)
}

// extractRustImports records `use` paths (grouped trees collapsed to their
// prefix) and sibling `mod name;` declarations.
func extractRustImports(content string) []string {
	var imports []string

	forEachLine(content, func(_ int, line string) {
		if m := rustUseRe.FindStringSubmatch(line); m != nil {
			target := strings.TrimSuffix(m[1], "::{")
			target = strings.TrimSuffix(target, "::")
			if target != "" {
				imports = append(imports, target)
			}
			return
		}
		if m := rustModRe.FindStringSubmatch(line); m != nil {
			imports = append(imports, "mod "+m[1])
		}
	})

	return imports
}

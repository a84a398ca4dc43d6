package lang

import (
	"regexp"

	"github.com/repolens-dev/repolens/internal/model"
)

var typescriptProfile = Profile{
	Language:        model.LangTypeScript,
	Extensions:      []string{".ts", ".tsx", ".mts", ".cts"},
	LineComments:    []string{"//"},
	BlockOpen:       "/*",
	BlockClose:      "*/",
	AnchorFiles:     []string{"index.ts", "index.tsx", "index.mts"},
	ProbeExtensions: []string{".ts", ".tsx", ".mts", ".js", ".jsx"},
	DirAnchors:      []string{"index.ts", "index.tsx", "index.mts"},
	ExtractSymbols:  extractTypeScriptSymbols,
	ExtractImports:  extractJavaScriptImports,
}

var (
	tsInterfaceRe = regexp.MustCompile(`^\s*(export\s+)?interface\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	tsEnumRe      = regexp.MustCompile(`^\s*(export\s+)?(?:const\s+)?enum\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	tsNamespaceRe = regexp.MustCompile(`^\s*(export\s+)?namespace\s+([A-Za-z_$][A-Za-z0-9_$.]*)`)
)

// TypeScript shares the JavaScript declaration forms and adds its own
// type-level constructs on top.
func extractTypeScriptSymbols(content string) []model.Symbol {
	symbols := extractJavaScriptSymbols(content)

	forEachLine(content, func(lineNo int, line string) {
		if m := tsInterfaceRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       model.KindInterface,
				Name:       m[2],
				Visibility: jsVisibility(m[1]),
				Signature:  trimSignature(line),
			})
			return
		}
		if m := tsEnumRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       model.KindEnum,
				Name:       m[2],
				Visibility: jsVisibility(m[1]),
				Signature:  trimSignature(line),
			})
			return
		}
		if m := tsNamespaceRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       model.KindModule,
				Name:       m[2],
				Visibility: jsVisibility(m[1]),
				Signature:  trimSignature(line),
			})
		}
	})

	return finishSymbols(symbols)
}

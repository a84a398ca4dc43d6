package lang

import (
	"regexp"
	"strings"

	"github.com/repolens-dev/repolens/internal/model"
)

var javascriptProfile = Profile{
	Language:        model.LangJavaScript,
	Extensions:      []string{".js", ".jsx", ".mjs", ".cjs"},
	LineComments:    []string{"//"},
	BlockOpen:       "/*",
	BlockClose:      "*/",
	AnchorFiles:     []string{"index.js", "index.jsx", "index.mjs"},
	ProbeExtensions: []string{".js", ".jsx", ".mjs", ".cjs"},
	DirAnchors:      []string{"index.js", "index.jsx", "index.mjs"},
	ExtractSymbols:  extractJavaScriptSymbols,
	ExtractImports:  extractJavaScriptImports,
}

var (
	jsFunctionRe = regexp.MustCompile(`^(\s*)(export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`)
	jsClassRe    = regexp.MustCompile(`^(\s*)(export\s+)?(?:default\s+)?class\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	// A return-type annotation between the parameter list and the arrow
	// covers the TypeScript form.
	jsArrowRe = regexp.MustCompile(`^(\s*)(export\s+)?(?:const|let|var)\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*(?:async\s+)?(?:\([^)]*\)|[A-Za-z_$][A-Za-z0-9_$]*)(?:\s*:\s*[^=]+?)?\s*=>`)

	jsImportRe  = regexp.MustCompile(`^\s*import\s+(?:[^'"]*\s+from\s+)?['"]([^'"]+)['"]`)
	jsExportRe  = regexp.MustCompile(`^\s*export\s+(?:\*|\{[^}]*\})\s+from\s+['"]([^'"]+)['"]`)
	jsRequireRe = regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`)
)

func jsVisibility(exported string) model.Visibility {
	if strings.TrimSpace(exported) == "export" {
		return model.VisPublic
	}
	return model.VisPrivate
}

func extractJavaScriptSymbols(content string) []model.Symbol {
	var symbols []model.Symbol

	forEachLine(content, func(lineNo int, line string) {
		if m := jsFunctionRe.FindStringSubmatch(line); m != nil {
			kind := model.KindFunction
			if m[1] != "" {
				kind = model.KindMethod
			}
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       kind,
				Name:       m[3],
				Visibility: jsVisibility(m[2]),
				Signature:  trimSignature(line),
			})
			return
		}
		if m := jsClassRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       model.KindClass,
				Name:       m[3],
				Visibility: jsVisibility(m[2]),
				Signature:  trimSignature(line),
			})
			return
		}
		if m := jsArrowRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       model.KindFunction,
				Name:       m[3],
				Visibility: jsVisibility(m[2]),
				Signature:  trimSignature(line),
			})
		}
	})

	return finishSymbols(symbols)
}

func extractJavaScriptImports(content string) []string {
	var imports []string

	forEachLine(content, func(_ int, line string) {
		if m := jsImportRe.FindStringSubmatch(line); m != nil {
			imports = append(imports, m[1])
			return
		}
		if m := jsExportRe.FindStringSubmatch(line); m != nil {
			imports = append(imports, m[1])
			return
		}
		for _, m := range jsRequireRe.FindAllStringSubmatch(line, -1) {
			imports = append(imports, m[1])
		}
	})

	return imports
}

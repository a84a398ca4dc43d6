package lang

import (
	"regexp"
	"strings"

	"github.com/repolens-dev/repolens/internal/model"
)

var pythonProfile = Profile{
	Language:        model.LangPython,
	Extensions:      []string{".py"},
	LineComments:    []string{"#"},
	AnchorFiles:     []string{"__init__.py"},
	ProbeExtensions: []string{".py"},
	DirAnchors:      []string{"__init__.py"},
	ExtractSymbols:  extractPythonSymbols,
	ExtractImports:  extractPythonImports,
}

var (
	pythonDefRe   = regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	pythonClassRe = regexp.MustCompile(`^(\s*)class\s+([A-Za-z_][A-Za-z0-9_]*)`)

	pythonImportRe = regexp.MustCompile(`^\s*import\s+([A-Za-z_][A-Za-z0-9_.]*(?:\s+as\s+\w+)?(?:\s*,\s*[A-Za-z_][A-Za-z0-9_.]*(?:\s+as\s+\w+)?)*)`)
	pythonFromRe   = regexp.MustCompile(`^\s*from\s+(\.*[A-Za-z_][A-Za-z0-9_.]*|\.+)\s+import\b`)
)

func extractPythonSymbols(content string) []model.Symbol {
	var symbols []model.Symbol

	forEachLine(content, func(lineNo int, line string) {
		if m := pythonDefRe.FindStringSubmatch(line); m != nil {
			kind := model.KindFunction
			if m[1] != "" {
				kind = model.KindMethod
			}
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       kind,
				Name:       m[2],
				Visibility: underscoreVisibility(m[2]),
				Signature:  trimSignature(strings.TrimSuffix(strings.TrimSpace(line), ":")),
			})
			return
		}
		if m := pythonClassRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       model.KindClass,
				Name:       m[2],
				Visibility: underscoreVisibility(m[2]),
				Signature:  trimSignature(strings.TrimSuffix(strings.TrimSpace(line), ":")),
			})
		}
	})

	return finishSymbols(symbols)
}

// extractPythonImports records dotted module paths. Relative imports keep
// their leading dots so the resolver can anchor them to the source directory.
func extractPythonImports(content string) []string {
	var imports []string

	forEachLine(content, func(_ int, line string) {
		if m := pythonFromRe.FindStringSubmatch(line); m != nil {
			imports = append(imports, m[1])
			return
		}
		if m := pythonImportRe.FindStringSubmatch(line); m != nil {
			for _, part := range strings.Split(m[1], ",") {
				target := strings.TrimSpace(part)
				// "import a.b as c" keeps only the module path.
				if idx := strings.Index(target, " as "); idx >= 0 {
					target = target[:idx]
				}
				if target != "" {
					imports = append(imports, target)
				}
			}
		}
	})

	return imports
}

package lang

import (
	"regexp"

	"github.com/repolens-dev/repolens/internal/model"
)

var swiftProfile = Profile{
	Language:        model.LangSwift,
	Extensions:      []string{".swift"},
	LineComments:    []string{"//"},
	BlockOpen:       "/*",
	BlockClose:      "*/",
	ProbeExtensions: []string{".swift"},
	ExtractSymbols:  extractSwiftSymbols,
	ExtractImports:  extractSwiftImports,
}

const swiftModifiers = `(?:@\w+(?:\([^)]*\))?\s+)*(public\s+|internal\s+|fileprivate\s+|private\s+|open\s+)?`

var (
	swiftTypeRe = regexp.MustCompile(`^` + swiftModifiers + `(?:final\s+)?(class|struct|enum|protocol|extension|actor)\s+(\w+)`)
	swiftFuncRe = regexp.MustCompile(`^(\s*)` + swiftModifiers + `(?:static\s+|class\s+)?(?:override\s+)?func\s+(\w+)\s*\(`)
	swiftInitRe = regexp.MustCompile(`^(\s*)` + swiftModifiers + `(?:convenience\s+|required\s+)?init\??\s*\(`)

	swiftImportRe = regexp.MustCompile(`^\s*(?:@\w+\s+)?import\s+(?:\w+\s+)?([\w.]+)`)
)

func extractSwiftSymbols(content string) []model.Symbol {
	var symbols []model.Symbol

	forEachLine(content, func(lineNo int, line string) {
		if m := swiftTypeRe.FindStringSubmatch(line); m != nil {
			var kind model.SymbolKind
			switch m[2] {
			case "struct":
				kind = model.KindStruct
			case "enum":
				kind = model.KindEnum
			case "protocol":
				kind = model.KindTrait
			case "extension":
				kind = model.KindExtension
			default:
				// actors share class semantics for outline purposes.
				kind = model.KindClass
			}
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       kind,
				Name:       m[3],
				Visibility: keywordVisibility(m[1], model.VisInternal),
				Signature:  trimSignature(line),
			})
			return
		}
		if m := swiftFuncRe.FindStringSubmatch(line); m != nil {
			kind := model.KindFunction
			if m[1] != "" {
				kind = model.KindMethod
			}
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       kind,
				Name:       m[3],
				Visibility: keywordVisibility(m[2], model.VisInternal),
				Signature:  trimSignature(line),
			})
			return
		}
		if m := swiftInitRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       model.KindMethod,
				Name:       "init",
				Visibility: keywordVisibility(m[2], model.VisInternal),
				Signature:  trimSignature(line),
			})
		}
	})

	return finishSymbols(symbols)
}

// Swift imports name frameworks, not files; they almost always stay
// unresolved and are kept for reporting only.
func extractSwiftImports(content string) []string {
	var imports []string

	forEachLine(content, func(_ int, line string) {
		if m := swiftImportRe.FindStringSubmatch(line); m != nil {
			imports = append(imports, m[1])
		}
	})

	return imports
}

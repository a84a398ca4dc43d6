package lang

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/repolens-dev/repolens/internal/model"
)

var goProfile = Profile{
	Language:        model.LangGo,
	Extensions:      []string{".go"},
	LineComments:    []string{"//"},
	BlockOpen:       "/*",
	BlockClose:      "*/",
	ProbeExtensions: []string{".go"},
	ExtractSymbols:  extractGoSymbols,
	ExtractImports:  extractGoImports,
}

var (
	goFuncRe   = regexp.MustCompile(`^func\s+(?:\((?:[^)]*)\)\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	goMethodRe = regexp.MustCompile(`^func\s+\([^)]*\)\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	goTypeRe   = regexp.MustCompile(`^type\s+([A-Za-z_][A-Za-z0-9_]*)(?:\[[^\]]*\])?\s+(struct|interface)\b`)

	goImportSingleRe = regexp.MustCompile(`^import\s+(?:[A-Za-z_.][A-Za-z0-9_]*\s+)?"([^"]+)"`)
	goImportSpecRe   = regexp.MustCompile(`^\s*(?:[A-Za-z_.][A-Za-z0-9_]*\s+)?"([^"]+)"`)
)

// goVisibility follows Go's case convention: exported identifiers are
// public, everything else is private to the package.
func goVisibility(name string) model.Visibility {
	r, _ := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(r) {
		return model.VisPublic
	}
	return model.VisPrivate
}

func extractGoSymbols(content string) []model.Symbol {
	var symbols []model.Symbol

	forEachLine(content, func(lineNo int, line string) {
		if m := goMethodRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       model.KindMethod,
				Name:       m[1],
				Visibility: goVisibility(m[1]),
				Signature:  trimSignature(line),
			})
			return
		}
		if m := goFuncRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       model.KindFunction,
				Name:       m[1],
				Visibility: goVisibility(m[1]),
				Signature:  trimSignature(line),
			})
			return
		}
		if m := goTypeRe.FindStringSubmatch(line); m != nil {
			kind := model.KindStruct
			if m[2] == "interface" {
				kind = model.KindInterface
			}
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       kind,
				Name:       m[1],
				Visibility: goVisibility(m[1]),
				Signature:  trimSignature(line),
			})
		}
	})

	return finishSymbols(symbols)
}

func extractGoImports(content string) []string {
	var imports []string
	inBlock := false

	forEachLine(content, func(_ int, line string) {
		trimmed := strings.TrimSpace(line)
		switch {
		case inBlock:
			if strings.HasPrefix(trimmed, ")") {
				inBlock = false
				return
			}
			if m := goImportSpecRe.FindStringSubmatch(line); m != nil {
				imports = append(imports, m[1])
			}
		case strings.HasPrefix(trimmed, "import ("):
			inBlock = true
		case strings.HasPrefix(trimmed, "import"):
			if m := goImportSingleRe.FindStringSubmatch(trimmed); m != nil {
				imports = append(imports, m[1])
			}
		}
	})

	return imports
}

package lang

import (
	"regexp"
	"strings"

	"github.com/repolens-dev/repolens/internal/model"
)

var csharpProfile = Profile{
	Language:        model.LangCSharp,
	Extensions:      []string{".cs"},
	LineComments:    []string{"//"},
	BlockOpen:       "/*",
	BlockClose:      "*/",
	ProbeExtensions: []string{".cs"},
	ExtractSymbols:  extractCSharpSymbols,
	ExtractImports:  extractCSharpImports,
}

var (
	csNamespaceRe = regexp.MustCompile(`^\s*namespace\s+([\w.]+)`)
	csTypeRe      = regexp.MustCompile(`^\s*(public|private|protected|internal)?\s*(?:abstract|sealed|static|partial)?\s*(class|interface|enum|struct|record)\s+(\w+)`)
	csMethodRe    = regexp.MustCompile(`^\s*(public|private|protected|internal)?\s*(?:static\s+|virtual\s+|override\s+|abstract\s+|async\s+)*(\w+(?:<[^>]+>)?(?:\[\])?\??)\s+(\w+)\s*\(`)

	csUsingRe = regexp.MustCompile(`^\s*(?:global\s+)?using\s+(?:static\s+)?([\w.]+)\s*;`)
)

func extractCSharpSymbols(content string) []model.Symbol {
	var symbols []model.Symbol

	forEachLine(content, func(lineNo int, line string) {
		if m := csNamespaceRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       model.KindModule,
				Name:       m[1],
				Visibility: model.VisPublic,
				Signature:  trimSignature(strings.TrimSuffix(strings.TrimSpace(line), ";")),
			})
			return
		}
		if m := csTypeRe.FindStringSubmatch(line); m != nil {
			var kind model.SymbolKind
			switch m[2] {
			case "interface":
				kind = model.KindInterface
			case "enum":
				kind = model.KindEnum
			case "struct", "record":
				kind = model.KindStruct
			default:
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
		if m := csMethodRe.FindStringSubmatch(line); m != nil {
			name := m[3]
			returnType := strings.TrimSpace(m[2])
			if controlKeywords[name] || javaTypeKeywords[returnType] || controlKeywords[returnType] {
				return
			}
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       model.KindMethod,
				Name:       name,
				Visibility: keywordVisibility(m[1], model.VisPrivate),
				Signature:  trimSignature(line),
			})
		}
	})

	return finishSymbols(symbols)
}

func extractCSharpImports(content string) []string {
	var imports []string

	forEachLine(content, func(_ int, line string) {
		if m := csUsingRe.FindStringSubmatch(line); m != nil {
			imports = append(imports, m[1])
		}
	})

	return imports
}

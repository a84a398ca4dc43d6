package lang

import (
	"regexp"
	"strings"

	"github.com/repolens-dev/repolens/internal/model"
)

var javaProfile = Profile{
	Language:        model.LangJava,
	Extensions:      []string{".java"},
	LineComments:    []string{"//"},
	BlockOpen:       "/*",
	BlockClose:      "*/",
	ProbeExtensions: []string{".java"},
	ExtractSymbols:  extractJavaSymbols,
	ExtractImports:  extractJavaImports,
}

var (
	javaTypeRe = regexp.MustCompile(`^\s*(public|private|protected)?\s*(?:abstract|final|static)?\s*(class|interface|enum)\s+(\w+)`)
	// Method lines look like "modifiers ReturnType name(" with an optional
	// generic return type.
	javaMethodRe     = regexp.MustCompile(`^\s*(public|private|protected)?\s*(?:static\s+)?(?:final\s+)?(?:abstract\s+)?(\w+(?:<[^>]+>)?(?:\[\])?)\s+(\w+)\s*\(`)
	javaAnnotationRe = regexp.MustCompile(`^\s*@interface\s+(\w+)`)

	javaImportRe = regexp.MustCompile(`^\s*import\s+(?:static\s+)?([\w.]+)\s*;`)
)

// javaTypeKeywords disqualify a method match whose "return type" is really a
// declaration keyword.
var javaTypeKeywords = map[string]bool{
	"class": true, "interface": true, "enum": true, "new": true,
	"namespace": true, "struct": true, "record": true,
}

func extractJavaSymbols(content string) []model.Symbol {
	var symbols []model.Symbol

	forEachLine(content, func(lineNo int, line string) {
		if m := javaAnnotationRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       model.KindInterface,
				Name:       m[1],
				Visibility: model.VisPublic,
				Signature:  trimSignature(line),
			})
			return
		}
		if m := javaTypeRe.FindStringSubmatch(line); m != nil {
			var kind model.SymbolKind
			switch m[2] {
			case "interface":
				kind = model.KindInterface
			case "enum":
				kind = model.KindEnum
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
		if m := javaMethodRe.FindStringSubmatch(line); m != nil {
			name := m[3]
			returnType := strings.TrimSpace(m[2])
			if controlKeywords[name] || javaTypeKeywords[returnType] || controlKeywords[returnType] {
				return
			}
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       model.KindMethod,
				Name:       name,
				Visibility: keywordVisibility(m[1], model.VisInternal),
				Signature:  trimSignature(line),
			})
		}
	})

	return finishSymbols(symbols)
}

func extractJavaImports(content string) []string {
	var imports []string

	forEachLine(content, func(_ int, line string) {
		if m := javaImportRe.FindStringSubmatch(line); m != nil {
			imports = append(imports, m[1])
		}
	})

	return imports
}

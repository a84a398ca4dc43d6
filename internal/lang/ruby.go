package lang

import (
	"regexp"
	"strings"

	"github.com/repolens-dev/repolens/internal/model"
)

var rubyProfile = Profile{
	Language:        model.LangRuby,
	Extensions:      []string{".rb", ".rake"},
	LineComments:    []string{"#"},
	BlockOpen:       "=begin",
	BlockClose:      "=end",
	ProbeExtensions: []string{".rb"},
	ExtractSymbols:  extractRubySymbols,
	ExtractImports:  extractRubyImports,
}

var (
	rubyDefRe    = regexp.MustCompile(`^(\s*)def\s+(?:self\.)?([A-Za-z_][A-Za-z0-9_]*[?!=]?)`)
	rubyClassRe  = regexp.MustCompile(`^\s*class\s+([A-Z][A-Za-z0-9_]*(?:::[A-Z][A-Za-z0-9_]*)*)`)
	rubyModuleRe = regexp.MustCompile(`^\s*module\s+([A-Z][A-Za-z0-9_]*(?:::[A-Z][A-Za-z0-9_]*)*)`)

	rubyRequireRe = regexp.MustCompile(`^\s*(require_relative|require)\s+['"]([^'"]+)['"]`)

	rubySectionRe = regexp.MustCompile(`^\s*(private|protected|public)\s*$`)
)

// extractRubySymbols tracks the bare private/protected/public section
// keywords so later defs inherit the section's visibility.
func extractRubySymbols(content string) []model.Symbol {
	var symbols []model.Symbol
	section := model.VisPublic

	forEachLine(content, func(lineNo int, line string) {
		if m := rubySectionRe.FindStringSubmatch(line); m != nil {
			switch m[1] {
			case "private":
				section = model.VisPrivate
			case "protected":
				section = model.VisInternal
			default:
				section = model.VisPublic
			}
			return
		}
		if m := rubyClassRe.FindStringSubmatch(line); m != nil {
			section = model.VisPublic
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       model.KindClass,
				Name:       m[1],
				Visibility: model.VisPublic,
				Signature:  trimSignature(line),
			})
			return
		}
		if m := rubyModuleRe.FindStringSubmatch(line); m != nil {
			section = model.VisPublic
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       model.KindModule,
				Name:       m[1],
				Visibility: model.VisPublic,
				Signature:  trimSignature(line),
			})
			return
		}
		if m := rubyDefRe.FindStringSubmatch(line); m != nil {
			kind := model.KindFunction
			if m[1] != "" {
				kind = model.KindMethod
			}
			vis := section
			if strings.HasPrefix(m[2], "_") {
				vis = model.VisPrivate
			}
			symbols = append(symbols, model.Symbol{
				Line:       lineNo,
				Kind:       kind,
				Name:       m[2],
				Visibility: vis,
				Signature:  trimSignature(line),
			})
		}
	})

	return finishSymbols(symbols)
}

// extractRubyImports keeps the require_relative prefix so the resolver can
// distinguish relative targets from load-path lookups.
func extractRubyImports(content string) []string {
	var imports []string

	forEachLine(content, func(_ int, line string) {
		if m := rubyRequireRe.FindStringSubmatch(line); m != nil {
			if m[1] == "require_relative" {
				imports = append(imports, "./"+strings.TrimPrefix(m[2], "./"))
			} else {
				imports = append(imports, m[2])
			}
		}
	})

	return imports
}

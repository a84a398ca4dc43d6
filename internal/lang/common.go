package lang

import (
	"fmt"
	"sort"
	"strings"

	"github.com/repolens-dev/repolens/internal/model"
)

// forEachLine calls fn with 1-based line numbers. Lines keep their leading
// whitespace so extractors can use indentation as a nesting hint.
func forEachLine(content string, fn func(lineNo int, line string)) {
	lineNo := 1
	for len(content) > 0 {
		idx := strings.IndexByte(content, '\n')
		if idx < 0 {
			fn(lineNo, content)
			return
		}
		fn(lineNo, strings.TrimSuffix(content[:idx], "\r"))
		content = content[idx+1:]
		lineNo++
	}
}

// trimSignature normalizes a declaration line into a one-line signature.
func trimSignature(line string) string {
	sig := strings.TrimSpace(line)
	sig = strings.TrimSuffix(sig, "{")
	return strings.TrimSpace(sig)
}

// underscoreVisibility implements the leading-underscore convention used by
// Python and Ruby.
func underscoreVisibility(name string) model.Visibility {
	if strings.HasPrefix(name, "_") {
		return model.VisPrivate
	}
	return model.VisPublic
}

// keywordVisibility maps an explicit modifier keyword onto the closed
// visibility set, with a per-language default for the empty modifier.
func keywordVisibility(modifier string, def model.Visibility) model.Visibility {
	switch strings.TrimSpace(modifier) {
	case "public", "open", "export":
		return model.VisPublic
	case "private", "fileprivate":
		return model.VisPrivate
	case "internal", "protected":
		return model.VisInternal
	default:
		return def
	}
}

// indented reports whether the declaration sits inside an enclosing block.
// Used as the nesting hint that turns functions into methods.
func indented(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}

// controlKeywords are identifiers that method-shaped regexes must not emit.
var controlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true,
	"catch": true, "foreach": true, "return": true, "new": true,
	"else": true, "do": true, "using": true, "lock": true,
}

// finishSymbols restores source order and drops duplicate matches produced
// by overlapping patterns.
func finishSymbols(symbols []model.Symbol) []model.Symbol {
	sort.SliceStable(symbols, func(i, j int) bool {
		return symbols[i].Line < symbols[j].Line
	})

	out := symbols[:0]
	seen := make(map[string]bool, len(symbols))
	for _, sym := range symbols {
		key := fmt.Sprintf("%s|%s|%d", sym.Name, sym.Kind, sym.Line)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, sym)
	}
	return out
}

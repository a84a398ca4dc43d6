// Package marker extracts knowledge markers (TODO, WARNING, SAFETY, ...)
// from source comments. Extraction is language-agnostic: it only needs the
// comment delimiters of the file's language, falling back to a generic
// heuristic for unsupported files so markers are never lost to
// classification.
package marker

import (
	"regexp"
	"strings"

	"github.com/repolens-dev/repolens/internal/lang"
	"github.com/repolens-dev/repolens/internal/model"
)

// CommentSyntax is the delimiter set marker scanning operates on.
type CommentSyntax struct {
	Line       []string
	BlockOpen  string
	BlockClose string
}

// Generic covers files with no language profile.
var Generic = CommentSyntax{
	Line:       lang.GenericLineComments,
	BlockOpen:  lang.GenericBlockOpen,
	BlockClose: lang.GenericBlockClose,
}

// SyntaxOf adapts a language profile's delimiters for scanning.
func SyntaxOf(p lang.Profile) CommentSyntax {
	return CommentSyntax{Line: p.LineComments, BlockOpen: p.BlockOpen, BlockClose: p.BlockClose}
}

type rule struct {
	category model.MarkerCategory
	priority model.MarkerPriority
}

// The pattern table is fixed; adding a pattern means adding a row here and
// extending markerRe.
var rules = map[string]rule{
	"TODO":       {model.CategoryTechDebt, model.PriorityMedium},
	"FIXME":      {model.CategoryTechDebt, model.PriorityMedium},
	"XXX":        {model.CategoryTechDebt, model.PriorityMedium},
	"BUG":        {model.CategoryTechDebt, model.PriorityMedium},
	"HACK":       {model.CategoryTechDebt, model.PriorityMedium},
	"DEPRECATED": {model.CategoryTechDebt, model.PriorityHigh},
	"WARNING":    {model.CategoryWarnings, model.PriorityHigh},
	"WARN":       {model.CategoryWarnings, model.PriorityHigh},
	"SAFETY":     {model.CategorySafety, model.PriorityHigh},
	"INVARIANT":  {model.CategorySafety, model.PriorityHigh},
	"RULE":       {model.CategoryBusinessRules, model.PriorityHigh},
	"POLICY":     {model.CategoryBusinessRules, model.PriorityHigh},
	"NOTE":       {model.CategoryNotes, model.PriorityLow},
}

// markerRe matches a pattern as a case-insensitive whole word near the start
// of a comment body. WARNING is listed before WARN so the longer form wins.
var markerRe = regexp.MustCompile(`(?i)^(TODO|FIXME|XXX|BUG|HACK|DEPRECATED|WARNING|WARN|SAFETY|INVARIANT|RULE|POLICY|NOTE)\b[:\s-]*(.*)$`)

// Extract scans content for markers using the given comment syntax. It
// returns markers in line order and never fails on malformed input.
func Extract(content string, syn CommentSyntax) []model.Marker {
	bodies := commentBodies(content, syn)

	var markers []model.Marker
	for i, b := range bodies {
		m := markerRe.FindStringSubmatch(b.text)
		if m == nil {
			continue
		}
		pattern := strings.ToUpper(m[1])
		r, ok := rules[pattern]
		if !ok {
			continue
		}
		text := strings.TrimSpace(m[2])
		// A bare marker borrows the next comment line as its text.
		if text == "" && i+1 < len(bodies) && bodies[i+1].line == b.line+1 {
			next := bodies[i+1].text
			if markerRe.FindStringSubmatch(next) == nil {
				text = strings.TrimSpace(next)
			}
		}
		markers = append(markers, model.Marker{
			Line:     b.line,
			Pattern:  pattern,
			Category: r.category,
			Priority: r.priority,
			Text:     text,
		})
	}
	return markers
}

type commentBody struct {
	line int
	text string
}

// commentBodies reduces each line to its comment text, tracking block
// comment state across lines. Lines without comments are skipped.
func commentBodies(content string, syn CommentSyntax) []commentBody {
	var bodies []commentBody
	inBlock := false

	appendBody := func(lineNo int, raw string) {
		body := strings.TrimSpace(raw)
		body = strings.TrimLeft(body, "*/!-")
		body = strings.TrimSpace(body)
		if body != "" {
			bodies = append(bodies, commentBody{line: lineNo, text: body})
		}
	}

	forEachLine(content, func(lineNo int, line string) {
		if inBlock {
			if syn.BlockClose != "" {
				if idx := strings.Index(line, syn.BlockClose); idx >= 0 {
					appendBody(lineNo, line[:idx])
					inBlock = false
					return
				}
			}
			appendBody(lineNo, line)
			return
		}

		blockIdx := -1
		if syn.BlockOpen != "" {
			blockIdx = strings.Index(line, syn.BlockOpen)
		}
		lineIdx, prefix := firstLineComment(line, syn.Line)

		switch {
		case lineIdx >= 0 && (blockIdx < 0 || lineIdx < blockIdx):
			appendBody(lineNo, line[lineIdx+len(prefix):])
		case blockIdx >= 0:
			rest := line[blockIdx+len(syn.BlockOpen):]
			if idx := strings.Index(rest, syn.BlockClose); idx >= 0 {
				appendBody(lineNo, rest[:idx])
			} else {
				appendBody(lineNo, rest)
				inBlock = true
			}
		}
	})

	return bodies
}

func firstLineComment(line string, prefixes []string) (int, string) {
	best, bestPrefix := -1, ""
	for _, p := range prefixes {
		if idx := strings.Index(line, p); idx >= 0 && (best < 0 || idx < best) {
			best, bestPrefix = idx, p
		}
	}
	return best, bestPrefix
}

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

// Package render turns an analysis result into the .repolens/ artifacts:
// index.md, imports.md, memory.md, one file per module, analysis.json and
// the search index. Files are only rewritten when their content changed, so
// untouched artifacts keep their mtimes across incremental runs.
package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/repolens-dev/repolens/internal/analyzer"
	"github.com/repolens-dev/repolens/internal/fileutil"
	"github.com/repolens-dev/repolens/internal/graph"
	"github.com/repolens-dev/repolens/internal/model"
	"github.com/repolens-dev/repolens/internal/search"
)

// WriteAll renders every artifact into dir and reports how many files were
// rewritten.
func WriteAll(dir string, res *analyzer.Result, largeFileLines int) (int, error) {
	if err := os.MkdirAll(filepath.Join(dir, "modules"), 0755); err != nil {
		return 0, err
	}

	written := 0
	write := func(name, content string) error {
		changed, err := fileutil.WriteIfChanged(filepath.Join(dir, name), []byte(content))
		if err != nil {
			return err
		}
		if changed {
			written++
		}
		return nil
	}

	if err := write("index.md", Index(res, largeFileLines)); err != nil {
		return written, err
	}
	if err := write("imports.md", Imports(res)); err != nil {
		return written, err
	}
	if err := write("memory.md", Memory(res)); err != nil {
		return written, err
	}
	for _, m := range res.Modules {
		name := filepath.Join("modules", m.Slug+".md")
		if err := write(name, Module(res, m)); err != nil {
			return written, err
		}
	}
	if err := pruneStaleModules(dir, res.Modules); err != nil {
		return written, err
	}

	payload, err := analysisJSON(res)
	if err != nil {
		return written, err
	}
	if err := write("analysis.json", payload); err != nil {
		return written, err
	}

	wrote, err := search.Write(dir, res)
	if err != nil {
		return written, err
	}
	if wrote {
		written++
	}
	return written, nil
}

// Index renders the per-file symbol outline.
func Index(res *analyzer.Result, largeFileLines int) string {
	var b strings.Builder
	b.WriteString("# Code Index\n")

	for _, m := range res.Modules {
		fmt.Fprintf(&b, "\n## %s\n\n", m.Slug)
		for _, path := range m.Files {
			f, ok := fileByPath(res, path)
			if !ok {
				continue
			}
			flag := ""
			if largeFileLines > 0 && f.Lines >= largeFileLines {
				flag = " [large file]"
			}
			fmt.Fprintf(&b, "### %s (%d lines)%s\n", f.Path, f.Lines, flag)
			if f.Language == model.LangUnsupported {
				b.WriteString("- no extraction (unsupported language)\n")
			}
			for _, s := range f.Symbols {
				sig := s.Signature
				if sig == "" {
					sig = s.Name
				}
				fmt.Fprintf(&b, "- L%d %s %s (%s): `%s`\n", s.Line, s.Visibility, s.Kind, s.Name, sig)
			}
			b.WriteString("\n")
		}
	}
	return fileutil.EnsureTrailingNewline(b.String())
}

// Imports renders per-file dependency lists, hubs, and unresolved imports.
func Imports(res *analyzer.Result) string {
	var b strings.Builder
	b.WriteString("# Import Graph\n")

	if hubs := res.Graph.Hubs(); len(hubs) > 0 {
		b.WriteString("\n## Hubs\n\n")
		for _, h := range hubs {
			fmt.Fprintf(&b, "- %s (imported by %d files)\n", h, res.Graph.InDegree(h))
		}
	}

	b.WriteString("\n## Files\n")
	for _, f := range res.Files {
		fmt.Fprintf(&b, "\n### %s\n", f.Path)
		if imports := res.Graph.Imports(f.Path); len(imports) > 0 {
			b.WriteString("imports:\n")
			for _, t := range imports {
				fmt.Fprintf(&b, "- %s\n", t)
			}
		}
		importers := res.Graph.Importers(f.Path)
		if len(importers) == 0 {
			b.WriteString("imported by: (none - entry point)\n")
		} else {
			b.WriteString("imported by:\n")
			for _, s := range importers {
				fmt.Fprintf(&b, "- %s\n", s)
			}
		}
	}

	if len(res.Graph.Unresolved) > 0 {
		b.WriteString("\n## Unresolved imports\n\n")
		for _, u := range res.Graph.Unresolved {
			fmt.Fprintf(&b, "- %s: `%s`\n", u.Source, u.Raw)
		}
	}
	return fileutil.EnsureTrailingNewline(b.String())
}

// Memory renders markers grouped category -> file -> line.
func Memory(res *analyzer.Result) string {
	type entry struct {
		path string
		m    model.Marker
	}
	byCategory := make(map[model.MarkerCategory][]entry)
	for _, f := range res.Files {
		for _, m := range f.Markers {
			byCategory[m.Category] = append(byCategory[m.Category], entry{path: f.Path, m: m})
		}
	}

	var b strings.Builder
	b.WriteString("# Memory Markers\n")

	order := []model.MarkerCategory{
		model.CategorySafety,
		model.CategoryWarnings,
		model.CategoryBusinessRules,
		model.CategoryTechDebt,
		model.CategoryNotes,
	}
	for _, cat := range order {
		entries := byCategory[cat]
		if len(entries) == 0 {
			continue
		}
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].path != entries[j].path {
				return entries[i].path < entries[j].path
			}
			return entries[i].m.Line < entries[j].m.Line
		})
		fmt.Fprintf(&b, "\n## %s\n\n", cat)
		for _, e := range entries {
			text := e.m.Text
			if text == "" {
				text = "(no description)"
			}
			fmt.Fprintf(&b, "- %s:%d [%s/%s] %s\n", e.path, e.m.Line, e.m.Pattern, e.m.Priority, text)
		}
	}
	return fileutil.EnsureTrailingNewline(b.String())
}

// Module renders one module page.
func Module(res *analyzer.Result, m model.Module) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Module %s\n\n", m.Slug)
	fmt.Fprintf(&b, "- path: %s\n", m.Path)
	fmt.Fprintf(&b, "- boundary: %s\n", m.Boundary)
	if m.EntryPoint != "" {
		fmt.Fprintf(&b, "- entry point: %s\n", m.EntryPoint)
	}
	if m.Parent != "" {
		fmt.Fprintf(&b, "- parent: %s\n", m.Parent)
	}
	if len(m.Children) > 0 {
		fmt.Fprintf(&b, "- children: %s\n", strings.Join(m.Children, ", "))
	}

	if stats := res.ModuleStats[m.Slug]; stats != nil {
		fmt.Fprintf(&b, "- internal edges: %d\n", stats.Internal)
		for _, slug := range sortedKeys(stats.OutTo) {
			fmt.Fprintf(&b, "- depends on %s (%d edges)\n", slug, stats.OutTo[slug])
		}
		for _, slug := range sortedKeys(stats.InFrom) {
			fmt.Fprintf(&b, "- depended on by %s (%d edges)\n", slug, stats.InFrom[slug])
		}
	}

	b.WriteString("\n## Files\n\n")
	for _, path := range m.Files {
		f, ok := fileByPath(res, path)
		if !ok {
			continue
		}
		hub := ""
		if res.Graph.IsHub(path) {
			hub = " [hub]"
		}
		fmt.Fprintf(&b, "- %s (%d lines, %d symbols)%s\n", path, f.Lines, len(f.Symbols), hub)
	}
	return fileutil.EnsureTrailingNewline(b.String())
}

// analysisPayload is deterministic for a given result so WriteIfChanged can
// skip rewrites on no-op runs.
type analysisPayload struct {
	Files       []model.File                  `json:"files"`
	Modules     []model.Module                `json:"modules"`
	Edges       []model.ImportEdge            `json:"edges"`
	Unresolved  []model.UnresolvedImport      `json:"unresolved,omitempty"`
	Hubs        []string                      `json:"hubs,omitempty"`
	ModuleStats map[string]*graph.ModuleStats `json:"module_stats,omitempty"`
}

func analysisJSON(res *analyzer.Result) (string, error) {
	payload := analysisPayload{
		Files:       res.Files,
		Modules:     res.Modules,
		Edges:       res.Graph.Edges,
		Unresolved:  res.Graph.Unresolved,
		Hubs:        res.Graph.Hubs(),
		ModuleStats: res.ModuleStats,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

func pruneStaleModules(dir string, mods []model.Module) error {
	current := make(map[string]bool, len(mods))
	for _, m := range mods {
		current[m.Slug+".md"] = true
	}
	entries, err := os.ReadDir(filepath.Join(dir, "modules"))
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() && !current[e.Name()] {
			if err := os.Remove(filepath.Join(dir, "modules", e.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

func fileByPath(res *analyzer.Result, path string) (model.File, bool) {
	for _, f := range res.Files {
		if f.Path == path {
			return f, true
		}
	}
	return model.File{}, false
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

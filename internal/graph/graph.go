// Package graph assembles the file-level dependency graph from resolved
// imports and aggregates it per module. Nodes are repo-relative paths and
// edges live in flat sorted slices, so identical inputs always produce
// identical graphs.
package graph

import (
	"sort"

	"github.com/repolens-dev/repolens/internal/lang"
	"github.com/repolens-dev/repolens/internal/model"
	"github.com/repolens-dev/repolens/internal/resolver"
)

// HubThreshold is the in-degree at which a file becomes a hub.
const HubThreshold = 3

// Graph holds the resolved dependency structure of one run.
type Graph struct {
	// Edges is the deduplicated resolved edge set, sorted by source then
	// target. Duplicate imports of the same target collapse to one edge.
	Edges []model.ImportEdge
	// Unresolved keeps the raw targets that matched no repo file, verbatim.
	Unresolved []model.UnresolvedImport

	imports   map[string][]string
	importers map[string][]string
}

// Build resolves every file's raw imports against the file set. Dangling
// and self edges are dropped; unresolvable targets are recorded.
func Build(files []model.File, fs *resolver.FileSet) *Graph {
	g := &Graph{
		imports:   make(map[string][]string),
		importers: make(map[string][]string),
	}

	ordered := make([]model.File, len(files))
	copy(ordered, files)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Path < ordered[j].Path })

	seenEdge := make(map[model.ImportEdge]bool)
	seenRaw := make(map[model.UnresolvedImport]bool)
	for _, f := range ordered {
		if len(f.RawImports) == 0 {
			continue
		}
		profile, ok := lang.ByLanguage(f.Language)
		if !ok {
			continue
		}
		for _, raw := range f.RawImports {
			target, resolved := resolver.Resolve(raw, f.Path, profile, fs)
			if !resolved || target == f.Path {
				u := model.UnresolvedImport{Source: f.Path, Raw: raw}
				if !seenRaw[u] {
					seenRaw[u] = true
					g.Unresolved = append(g.Unresolved, u)
				}
				continue
			}
			e := model.ImportEdge{Source: f.Path, Target: target}
			if seenEdge[e] {
				continue
			}
			seenEdge[e] = true
			g.Edges = append(g.Edges, e)
			g.imports[e.Source] = append(g.imports[e.Source], e.Target)
			g.importers[e.Target] = append(g.importers[e.Target], e.Source)
		}
	}

	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].Source != g.Edges[j].Source {
			return g.Edges[i].Source < g.Edges[j].Source
		}
		return g.Edges[i].Target < g.Edges[j].Target
	})
	for k := range g.imports {
		sort.Strings(g.imports[k])
	}
	for k := range g.importers {
		sort.Strings(g.importers[k])
	}
	return g
}

// Imports returns the files path imports, sorted.
func (g *Graph) Imports(path string) []string {
	return g.imports[path]
}

// Importers returns the distinct files importing path, sorted.
func (g *Graph) Importers(path string) []string {
	return g.importers[path]
}

// InDegree is the count of distinct importers.
func (g *Graph) InDegree(path string) int {
	return len(g.importers[path])
}

// OutDegree is the count of distinct resolved imports.
func (g *Graph) OutDegree(path string) int {
	return len(g.imports[path])
}

// IsHub reports whether at least HubThreshold distinct files import path.
func (g *Graph) IsHub(path string) bool {
	return g.InDegree(path) >= HubThreshold
}

// Hubs lists all hub files, sorted.
func (g *Graph) Hubs() []string {
	var hubs []string
	for p, in := range g.importers {
		if len(in) >= HubThreshold {
			hubs = append(hubs, p)
		}
	}
	sort.Strings(hubs)
	return hubs
}

// ModuleStats aggregates one module's edge counts in both directions.
type ModuleStats struct {
	Slug     string         `json:"slug"`
	Internal int            `json:"internal"`
	OutTo    map[string]int `json:"out_to,omitempty"`
	InFrom   map[string]int `json:"in_from,omitempty"`
}

// Aggregate classifies every edge as intra- or inter-module and counts
// them per module. byFile maps file paths to module slugs.
func Aggregate(g *Graph, byFile map[string]string) map[string]*ModuleStats {
	stats := make(map[string]*ModuleStats)
	get := func(slug string) *ModuleStats {
		s, ok := stats[slug]
		if !ok {
			s = &ModuleStats{Slug: slug, OutTo: map[string]int{}, InFrom: map[string]int{}}
			stats[slug] = s
		}
		return s
	}

	for _, e := range g.Edges {
		from, okFrom := byFile[e.Source]
		to, okTo := byFile[e.Target]
		if !okFrom || !okTo {
			continue
		}
		if from == to {
			get(from).Internal++
			continue
		}
		get(from).OutTo[to]++
		get(to).InFrom[from]++
	}
	return stats
}

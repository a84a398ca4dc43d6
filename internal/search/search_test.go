package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/repolens-dev/repolens/internal/analyzer"
)

func buildResult(t *testing.T) *analyzer.Result {
	t.Helper()
	inputs := []analyzer.FileInput{
		{Path: "src/parser.js", Content: []byte("// TODO: cache the parse tree\nexport function parseDirectory(root) {}\nexport function resolveImports(path) {}\n")},
		{Path: "src/render.js", Content: []byte("export function renderIndex() {}\n")},
	}
	res, err := analyzer.Run(inputs, analyzer.Config{}, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return res
}

func TestSearchRanksSymbolNameMatches(t *testing.T) {
	idx := Build(buildResult(t))
	matches := Search(idx, "parseDirectory", 5)
	if len(matches) == 0 {
		t.Fatalf("expected matches for symbol-name query")
	}
	if matches[0].Document.Name != "parseDirectory" {
		t.Fatalf("expected parseDirectory to rank first, got %#v", matches[0].Document)
	}
}

func TestSearchFindsMarkers(t *testing.T) {
	idx := Build(buildResult(t))
	matches := Search(idx, "todo cache", 5)
	if len(matches) == 0 {
		t.Fatalf("expected marker matches")
	}
	top := matches[0].Document
	if top.Kind != "marker" || top.File != "src/parser.js" {
		t.Fatalf("expected the parser TODO to rank first, got %#v", top)
	}
}

func TestSearchTypoFallback(t *testing.T) {
	idx := &Index{
		Version:       Version,
		DocumentCount: 1,
		AvgDocLength:  1,
		DocFreq:       map[string]int{},
		Documents: []Document{
			{ID: "src/p.js:1:parseDirectory", Name: "parseDirectory", Length: 1, Terms: map[string]int{"parsedirectory": 1}},
		},
	}

	matches := Search(idx, "parzeDirectory", 3)
	if len(matches) == 0 {
		t.Fatalf("expected typo fallback matches")
	}
	if matches[0].Document.Name != "parseDirectory" {
		t.Fatalf("expected typo fallback to pick parseDirectory, got %#v", matches)
	}
}

func TestSearchDeterministicOrdering(t *testing.T) {
	idx := &Index{
		Version:       Version,
		DocumentCount: 2,
		AvgDocLength:  1,
		DocFreq:       map[string]int{"alpha": 2},
		Documents: []Document{
			{ID: "b", Length: 1, Terms: map[string]int{"alpha": 1}},
			{ID: "a", Length: 1, Terms: map[string]int{"alpha": 1}},
		},
	}

	matches := Search(idx, "alpha", 2)
	if len(matches) != 2 {
		t.Fatalf("expected two matches, got %d", len(matches))
	}
	if matches[0].Document.ID != "a" || matches[1].Document.ID != "b" {
		t.Fatalf("expected stable tie-break by id, got %#v", matches)
	}
}

func TestWriteAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	res := buildResult(t)

	wrote, err := Write(dir, res)
	if err != nil || !wrote {
		t.Fatalf("first write: wrote=%v err=%v", wrote, err)
	}
	wrote, err = Write(dir, res)
	if err != nil || wrote {
		t.Fatalf("unchanged index must not be rewritten: wrote=%v err=%v", wrote, err)
	}

	idx, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if idx.Version != Version || idx.DocumentCount != len(idx.Documents) {
		t.Fatalf("unexpected index header: %+v", idx)
	}
	if len(Search(idx, "renderIndex", 3)) == 0 {
		t.Fatalf("expected loaded index to be searchable")
	}
}

func TestLoadMissingIndex(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatalf("expected an error for a missing index")
	}
}

func TestLoadCorruptIndex(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, IndexFile), []byte("{nope"), 0644); err != nil {
		t.Fatalf("failed to write corrupt index: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected an error for a corrupt index")
	}
}

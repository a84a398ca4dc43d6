package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens-dev/repolens/internal/model"
	"github.com/repolens-dev/repolens/internal/snapshot"
)

func input(path, content string) FileInput {
	return FileInput{Path: path, Content: []byte(content)}
}

func jsInputs() []FileInput {
	return []FileInput{
		input("src/index.js", "import { a } from './a';\nimport { b } from './b';\n"),
		input("src/a.js", "import { b } from './b';\nexport function a() {}\n"),
		input("src/b.js", "// TODO: split this up\nexport function b() {}\n"),
		input("src/c.js", "import { b } from './b';\nexport const c = () => 1;\n"),
	}
}

func TestRunFullAnalysis(t *testing.T) {
	res, err := Run(jsInputs(), Config{}, nil)
	require.NoError(t, err)

	require.Len(t, res.Files, 4)
	for _, f := range res.Files {
		assert.Equal(t, model.StateAnalyzed, res.States[f.Path], f.Path)
		assert.Equal(t, model.LangJavaScript, f.Language)
		assert.NotEmpty(t, f.Fingerprint)
	}

	// b.js is imported by index, a and c: a hub.
	assert.True(t, res.Graph.IsHub("src/b.js"))
	assert.Equal(t, []string{"src/b.js"}, res.Graph.Hubs())

	require.Len(t, res.Modules, 1)
	assert.Equal(t, "src", res.Modules[0].Slug)
	assert.Equal(t, model.BoundaryAnchor, res.Modules[0].Boundary)
	assert.Equal(t, model.ModuleRecomputed, res.ModuleStates["src"])

	var markers []model.Marker
	for _, f := range res.Files {
		markers = append(markers, f.Markers...)
	}
	require.Len(t, markers, 1)
	assert.Equal(t, "TODO", markers[0].Pattern)
}

func TestRunIsIdempotent(t *testing.T) {
	first, err := Run(jsInputs(), Config{}, nil)
	require.NoError(t, err)

	second, err := Run(jsInputs(), Config{}, first.Snapshot)
	require.NoError(t, err)

	for path, st := range second.States {
		assert.Equal(t, model.StateUnchanged, st, path)
	}
	assert.Equal(t, first.Files, second.Files)
	assert.Equal(t, first.Graph.Edges, second.Graph.Edges)
	assert.Equal(t, first.Modules, second.Modules)
	for slug, st := range second.ModuleStates {
		assert.Equal(t, model.ModuleReused, st, slug)
	}
}

func TestRunReanalyzesOnlyChangedContent(t *testing.T) {
	first, err := Run(jsInputs(), Config{}, nil)
	require.NoError(t, err)

	inputs := jsInputs()
	inputs[1] = input("src/a.js", "export function a() { return 2 }\n")
	second, err := Run(inputs, Config{}, first.Snapshot)
	require.NoError(t, err)

	assert.Equal(t, model.StateReanalyzed, second.States["src/a.js"])
	assert.Equal(t, model.StateUnchanged, second.States["src/index.js"])
	assert.Equal(t, model.StateUnchanged, second.States["src/b.js"])

	// a.js dropped its import of b.js: 3 -> 2 importers, hub flips off.
	assert.False(t, second.Graph.IsHub("src/b.js"))
}

func TestRunForceResetsEverything(t *testing.T) {
	first, err := Run(jsInputs(), Config{}, nil)
	require.NoError(t, err)

	second, err := Run(jsInputs(), Config{Force: true}, first.Snapshot)
	require.NoError(t, err)

	for path, st := range second.States {
		assert.Equal(t, model.StateAnalyzed, st, path)
	}
	assert.Equal(t, first.Files, second.Files)
}

func TestRunDeletedFilesDropFromGraph(t *testing.T) {
	first, err := Run(jsInputs(), Config{}, nil)
	require.NoError(t, err)

	second, err := Run(jsInputs()[:3], Config{}, first.Snapshot)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/c.js"}, second.Deleted)
	require.Len(t, second.Files, 3)
	// c.js's edge to b.js is gone with it.
	assert.False(t, second.Graph.IsHub("src/b.js"))
	// Membership changed, so module aggregates rebuild.
	assert.Equal(t, model.ModuleRecomputed, second.ModuleStates["src"])
}

func TestRunDiffModeCarriesUntouchedRecords(t *testing.T) {
	first, err := Run(jsInputs(), Config{}, nil)
	require.NoError(t, err)

	// Only a.js changed; content is supplied for it alone.
	diff := []FileInput{input("src/a.js", "export function a() { return 3 }\n")}
	second, err := Run(diff, Config{DiffFiles: []string{"src/a.js"}}, first.Snapshot)
	require.NoError(t, err)

	require.Len(t, second.Files, 4)
	assert.Equal(t, model.StateReanalyzed, second.States["src/a.js"])
	assert.Equal(t, model.StateUnchanged, second.States["src/b.js"])
	assert.False(t, second.Graph.IsHub("src/b.js"))
}

func TestRunDiffModeDeletion(t *testing.T) {
	first, err := Run(jsInputs(), Config{}, nil)
	require.NoError(t, err)

	// c.js appears in the diff but no content exists: it was deleted.
	second, err := Run(nil, Config{DiffFiles: []string{"src/c.js"}}, first.Snapshot)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/c.js"}, second.Deleted)
	require.Len(t, second.Files, 3)
	assert.False(t, second.Graph.IsHub("src/b.js"))
}

func TestRunRejectsForceCombinedWithDiff(t *testing.T) {
	first, err := Run(jsInputs(), Config{}, nil)
	require.NoError(t, err)

	diff := []FileInput{input("src/a.js", "export function a() { return 3 }\n")}
	_, err = Run(diff, Config{Force: true, DiffFiles: []string{"src/a.js"}}, first.Snapshot)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "diff", cfgErr.Field)
}

func TestRunUnsupportedFilesKeepMarkers(t *testing.T) {
	res, err := Run([]FileInput{
		input("Makefile.inc", "# WARNING: regenerated, do not edit\nall:\n"),
	}, Config{}, nil)
	require.NoError(t, err)

	require.Len(t, res.Files, 1)
	f := res.Files[0]
	assert.Equal(t, model.LangUnsupported, f.Language)
	assert.Empty(t, f.Symbols)
	require.Len(t, f.Markers, 1)
	assert.Equal(t, "WARNING", f.Markers[0].Pattern)
}

func TestRunLanguageFilter(t *testing.T) {
	res, err := Run([]FileInput{
		input("a.go", "package a\n\nfunc A() {}\n"),
		input("b.py", "def b():\n    pass\n"),
	}, Config{Languages: []string{"go"}}, nil)
	require.NoError(t, err)

	byPath := map[string]model.File{}
	for _, f := range res.Files {
		byPath[f.Path] = f
	}
	assert.NotEmpty(t, byPath["a.go"].Symbols)
	assert.Empty(t, byPath["b.py"].Symbols)
	assert.Equal(t, model.LangUnsupported, byPath["b.py"].Language)
}

func TestRunRejectsUnknownLanguage(t *testing.T) {
	_, err := Run(nil, Config{Languages: []string{"cobol"}}, nil)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "languages", cfgErr.Field)
	assert.Equal(t, "cobol", cfgErr.Value)
}

func TestRunToleratesGarbageContent(t *testing.T) {
	res, err := Run([]FileInput{
		input("weird.go", "\x00\x01\x02 func ((("),
		input("ok.go", "package ok\n\nfunc OK() {}\n"),
	}, Config{}, nil)
	require.NoError(t, err)
	require.Len(t, res.Files, 2)
}

func TestRunWithCorruptPriorSnapshotDegradesToFull(t *testing.T) {
	// A degraded load hands Run an empty snapshot; everything is analyzed.
	res, err := Run(jsInputs(), Config{}, snapshot.New())
	require.NoError(t, err)
	for _, st := range res.States {
		assert.Equal(t, model.StateAnalyzed, st)
	}
}

func TestUnchangedRecordsAreByteStable(t *testing.T) {
	first, err := Run(jsInputs(), Config{}, nil)
	require.NoError(t, err)

	// Adding an unrelated file must not rewrite unchanged records.
	inputs := append(jsInputs(), input("src/new.js", "export const d = () => 4;\n"))
	second, err := Run(inputs, Config{}, first.Snapshot)
	require.NoError(t, err)

	prevA, _ := first.Snapshot.Get("src/a.js")
	nextA, _ := second.Snapshot.Get("src/a.js")
	assert.Equal(t, prevA, nextA)
	assert.Equal(t, model.StateAnalyzed, second.States["src/new.js"])
}

func TestLargeFiles(t *testing.T) {
	long := ""
	for i := 0; i < 600; i++ {
		long += "// filler\n"
	}
	res, err := Run([]FileInput{
		input("big.go", "package big\n"+long),
		input("small.go", "package small\n"),
	}, Config{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"big.go"}, res.LargeFiles(DefaultLargeFileLines))
}

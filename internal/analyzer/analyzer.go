// Package analyzer runs the analysis pipeline: per-file extraction in
// parallel, a synchronization barrier, then module detection and graph
// aggregation over the full file set. It owns the incremental decision of
// which files bypass extraction by reusing snapshot records.
package analyzer

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/repolens-dev/repolens/internal/fileutil"
	"github.com/repolens-dev/repolens/internal/graph"
	"github.com/repolens-dev/repolens/internal/lang"
	"github.com/repolens-dev/repolens/internal/marker"
	"github.com/repolens-dev/repolens/internal/model"
	"github.com/repolens-dev/repolens/internal/modules"
	"github.com/repolens-dev/repolens/internal/resolver"
	"github.com/repolens-dev/repolens/internal/snapshot"
)

// DefaultLargeFileLines flags files whose outline is probably too big to
// read whole.
const DefaultLargeFileLines = 500

// Config controls one analysis run.
type Config struct {
	// LargeFileLines is the line count at which a file is reported large.
	// Zero means DefaultLargeFileLines.
	LargeFileLines int

	// Languages restricts extraction to the named languages. Empty means
	// all supported languages. Files outside the set still get generic
	// marker extraction.
	Languages []string

	// DiffFiles switches the run to diff mode: inputs carry content only
	// for these candidate paths, every other snapshot record is carried
	// over, and a DiffFiles path missing from inputs counts as deleted.
	// Nil means full mode.
	DiffFiles []string

	// Force discards all snapshot records up front so every file is
	// extracted fresh.
	Force bool

	// Workers sizes the extraction pool. Zero means GOMAXPROCS-style
	// NumCPU.
	Workers int
}

// FileInput is one enumerated file with its raw content.
type FileInput struct {
	Path    string
	Content []byte
}

// Result is the output of one run. Files, Modules and Edges are sorted;
// the snapshot inside is updated but not yet persisted.
type Result struct {
	Files        []model.File
	States       map[string]model.ChangeState
	Deleted      []string
	Modules      []model.Module
	ModuleStates map[string]model.ModuleState
	Graph        *graph.Graph
	ModuleStats  map[string]*graph.ModuleStats
	Snapshot     *snapshot.Snapshot
}

// LargeFiles lists files at or above the configured line threshold.
func (r *Result) LargeFiles(threshold int) []string {
	var out []string
	for _, f := range r.Files {
		if f.Lines >= threshold {
			out = append(out, f.Path)
		}
	}
	return out
}

// Run executes the pipeline. prev may be nil for a first run. The returned
// error is fatal (*ConfigError today; content errors surface from the scan
// boundary); extraction problems degrade instead of failing.
func Run(inputs []FileInput, cfg Config, prev *snapshot.Snapshot) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	if prev == nil || cfg.Force {
		prev = snapshot.New()
	}

	allowed := allowedLanguages(cfg.Languages)

	// Decide each candidate's fate by fingerprint.
	type task struct {
		input       FileInput
		fingerprint string
	}
	var tasks []task
	states := make(map[string]model.ChangeState, len(inputs))
	next := snapshot.New()

	inputPaths := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		inputPaths[in.Path] = true
	}

	for _, in := range inputs {
		fp := fileutil.Fingerprint(in.Content)
		old, seen := prev.Get(in.Path)
		if seen && old.Fingerprint == fp {
			states[in.Path] = model.StateUnchanged
			next.Files[in.Path] = old
			continue
		}
		if seen {
			states[in.Path] = model.StateReanalyzed
		} else {
			states[in.Path] = model.StateAnalyzed
		}
		tasks = append(tasks, task{input: in, fingerprint: fp})
	}

	// Diff mode carries over every record outside the candidate set and
	// treats candidates without content as deletions.
	var deleted []string
	if cfg.DiffFiles != nil {
		candidates := fileutil.ToSet(cfg.DiffFiles)
		for path, old := range prev.Files {
			if !candidates[path] && !inputPaths[path] {
				next.Files[path] = old
				states[path] = model.StateUnchanged
			}
		}
		for _, path := range cfg.DiffFiles {
			if _, seen := prev.Get(path); seen && !inputPaths[path] {
				deleted = append(deleted, path)
			}
		}
		deleted = fileutil.DedupeAndSort(deleted)
	} else {
		deleted = prev.DeletedFiles(inputPaths)
	}

	// Scatter: one record per task, workers share nothing but the indices.
	records := make([]model.File, len(tasks))
	if len(tasks) > 0 {
		workers := cfg.Workers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		if workers > len(tasks) {
			workers = len(tasks)
		}

		indexCh := make(chan int, len(tasks))
		for i := range tasks {
			indexCh <- i
		}
		close(indexCh)

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indexCh {
					records[i] = extractFile(tasks[i].input, tasks[i].fingerprint, allowed)
				}
			}()
		}
		wg.Wait()
	}

	// Barrier passed: publish the new records and drop deletions.
	for _, rec := range records {
		next.Set(rec)
	}
	for _, path := range deleted {
		next.Remove(path)
	}

	files := next.Records()
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	fs := resolver.NewFileSet(paths)

	mods := modules.Detect(files)
	g := graph.Build(files, fs)
	byFile := modules.ByFile(mods)

	res := &Result{
		Files:        files,
		States:       states,
		Deleted:      deleted,
		Modules:      mods,
		ModuleStates: moduleStates(mods, byFile, g, prev, states, deleted, fs),
		Graph:        g,
		ModuleStats:  graph.Aggregate(g, byFile),
		Snapshot:     next,
	}
	return res, nil
}

func validate(cfg Config) error {
	// Force discards the snapshot while diff mode carries most of it over;
	// combining them would silently shrink the model to the candidate set.
	if cfg.Force && cfg.DiffFiles != nil {
		return &ConfigError{Field: "diff", Value: strings.Join(cfg.DiffFiles, ","), Err: errors.New("diff candidates cannot be combined with a forced reanalysis")}
	}
	for _, name := range cfg.Languages {
		if !lang.Known(name) {
			return &ConfigError{Field: "languages", Value: name, Err: errors.New("unknown language")}
		}
	}
	if cfg.LargeFileLines < 0 {
		return &ConfigError{Field: "large_file_lines", Value: fmt.Sprint(cfg.LargeFileLines)}
	}
	return nil
}

func allowedLanguages(names []string) map[model.Language]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[model.Language]bool, len(names))
	for _, n := range names {
		set[model.Language(n)] = true
	}
	return set
}

// extractFile produces one file record. It never fails: unsupported or
// malformed content yields partial results.
func extractFile(in FileInput, fingerprint string, allowed map[model.Language]bool) model.File {
	rec := model.File{
		Path:        in.Path,
		Lines:       fileutil.CountLines(in.Content),
		Fingerprint: fingerprint,
	}

	content := string(in.Content)
	profile, supported := lang.Classify(in.Path)
	if supported && allowed != nil && !allowed[profile.Language] {
		supported = false
	}

	if supported {
		rec.Language = profile.Language
		rec.Symbols = profile.ExtractSymbols(content)
		rec.RawImports = profile.ExtractImports(content)
		rec.Markers = marker.Extract(content, marker.SyntaxOf(profile))
	} else {
		rec.Markers = marker.Extract(content, marker.Generic)
	}
	return rec
}

// moduleStates tags each module Recomputed or Reused. Membership changes
// (adds or deletes) invalidate every module; content-only edits invalidate
// the modules touched by changed files and by edges incident to them, on
// both the new and the previous import sets.
func moduleStates(mods []model.Module, byFile map[string]string, g *graph.Graph,
	prev *snapshot.Snapshot, states map[string]model.ChangeState, deleted []string,
	fs *resolver.FileSet) map[string]model.ModuleState {

	out := make(map[string]model.ModuleState, len(mods))

	added := false
	for _, st := range states {
		if st == model.StateAnalyzed {
			added = true
			break
		}
	}
	if added || len(deleted) > 0 || len(prev.Files) == 0 {
		for _, m := range mods {
			out[m.Slug] = model.ModuleRecomputed
		}
		return out
	}

	changed := make(map[string]bool)
	for path, st := range states {
		if st != model.StateUnchanged {
			changed[path] = true
		}
	}

	touched := make(map[string]bool)
	touch := func(path string) {
		if slug, ok := byFile[path]; ok {
			touched[slug] = true
		}
	}
	for path := range changed {
		touch(path)
	}
	for _, e := range g.Edges {
		if changed[e.Source] || changed[e.Target] {
			touch(e.Source)
			touch(e.Target)
		}
	}
	// A changed file may have dropped imports; its previous targets are
	// touched too.
	for path := range changed {
		old, ok := prev.Get(path)
		if !ok {
			continue
		}
		profile, ok := lang.ByLanguage(old.File.Language)
		if !ok {
			continue
		}
		for _, raw := range old.File.RawImports {
			if target, ok := resolver.Resolve(raw, path, profile, fs); ok {
				touch(target)
			}
		}
	}

	for _, m := range mods {
		if touched[m.Slug] {
			out[m.Slug] = model.ModuleRecomputed
		} else {
			out[m.Slug] = model.ModuleReused
		}
	}
	return out
}

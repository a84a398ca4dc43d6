package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/repolens-dev/repolens/internal/analyzer"
	"github.com/repolens-dev/repolens/internal/config"
	"github.com/repolens-dev/repolens/internal/model"
	"github.com/repolens-dev/repolens/internal/render"
	"github.com/repolens-dev/repolens/internal/scan"
	"github.com/repolens-dev/repolens/internal/snapshot"
)

// runOptions carries the knobs that differ between generate and update.
type runOptions struct {
	mode      string
	force     bool
	diffRef   string
	languages []string
	asJSON    bool
}

// runPipeline is the shared generate/update path: config, scan, analyze,
// render, persist snapshot, print summary.
func runPipeline(path string, opts runOptions) error {
	start := time.Now()

	rootPath, err := resolveWorkingDirectory(path)
	if err != nil {
		return err
	}
	cfg, err := config.Load(rootPath)
	if err != nil {
		return err
	}

	inputs, err := scan.Collect(scan.Options{
		Root:     rootPath,
		MaxDepth: cfg.MaxDepth,
		Ignore:   cfg.Ignore,
		Include:  cfg.IncludeGlobs(),
		Exclude:  cfg.ExcludeGlobs(),
	})
	if err != nil {
		return err
	}

	var warnings []string

	runCfg := analyzer.Config{
		LargeFileLines: cfg.LargeFileLineThreshold,
		Languages:      opts.languages,
		Force:          opts.force,
	}
	if len(runCfg.Languages) == 0 {
		runCfg.Languages = cfg.Languages
	}
	if opts.diffRef != "" {
		if opts.force {
			return &analyzer.ConfigError{Field: "diff", Value: opts.diffRef, Err: errors.New("cannot be combined with --force")}
		}
		diffFiles, err := scan.DiffFiles(rootPath, opts.diffRef)
		if err != nil {
			return err
		}
		runCfg.DiffFiles = diffFiles
		inputs = filterToDiff(inputs, diffFiles)
	}

	outputDir := filepath.Join(rootPath, config.OutputDir)
	prev, loadErr := snapshot.Load(outputDir)
	if loadErr != nil {
		warnings = append(warnings, loadErr.Error())
	}

	res, err := analyzer.Run(inputs, runCfg, prev)
	if err != nil {
		return err
	}

	rewritten, err := render.WriteAll(outputDir, res, cfg.LargeFileLineThreshold)
	if err != nil {
		return err
	}
	if err := res.Snapshot.Save(outputDir); err != nil {
		return err
	}

	summary := buildSummary(opts.mode, rootPath, outputDir, len(inputs), res)
	summary.Rewritten = rewritten
	summary.DurationMS = time.Since(start).Milliseconds()
	summary.Warnings = warnings
	return PrintRunSummary(summary, opts.asJSON)
}

func buildSummary(mode, rootPath, outputDir string, scanned int, res *analyzer.Result) RunSummary {
	summary := RunSummary{
		Mode:      mode,
		RootPath:  rootPath,
		OutputDir: outputDir,
		Scanned:   scanned,
		Deleted:   len(res.Deleted),
		Modules:   len(res.Modules),
		Hubs:      len(res.Graph.Hubs()),
	}
	for path, state := range res.States {
		switch state {
		case model.StateAnalyzed:
			summary.Analyzed++
			summary.ChangedFiles = append(summary.ChangedFiles, path)
		case model.StateReanalyzed:
			summary.Reanalyzed++
			summary.ChangedFiles = append(summary.ChangedFiles, path)
		case model.StateUnchanged:
			summary.Unchanged++
		}
	}
	for _, state := range res.ModuleStates {
		if state == model.ModuleRecomputed {
			summary.RecomputedModules++
		}
	}
	summary.DeletedFiles = res.Deleted
	sort.Strings(summary.ChangedFiles)
	return summary
}

// filterToDiff keeps only inputs named by the diff. Candidates that the
// scanner never saw (deleted, ignored) simply have no input, which counts
// them as deleted downstream.
func filterToDiff(inputs []analyzer.FileInput, diffFiles []string) []analyzer.FileInput {
	candidate := make(map[string]bool, len(diffFiles))
	for _, p := range diffFiles {
		candidate[p] = true
	}
	out := inputs[:0]
	for _, in := range inputs {
		if candidate[in.Path] {
			out = append(out, in)
		}
	}
	return out
}

// resolveWorkingDirectory turns an optional path argument into an absolute
// directory, defaulting to the current one.
func resolveWorkingDirectory(path string) (string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

package cli

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/repolens-dev/repolens/internal/config"
	"github.com/repolens-dev/repolens/internal/fileutil"
	"github.com/repolens-dev/repolens/internal/scan"
	"github.com/repolens-dev/repolens/internal/snapshot"
)

// RunStatus compares the tree against the snapshot by fingerprint and
// reports what a run would touch. Nothing is written.
func RunStatus(path string, asJSON bool) error {
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

	outputDir := filepath.Join(rootPath, config.OutputDir)
	prev, loadErr := snapshot.Load(outputDir)

	summary := RunSummary{
		Mode:     "status",
		RootPath: rootPath,
		Scanned:  len(inputs),
	}
	if loadErr != nil {
		summary.Warnings = append(summary.Warnings, loadErr.Error())
	}

	current := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		current[in.Path] = true
		fingerprint := fileutil.Fingerprint(in.Content)
		if _, seen := prev.Get(in.Path); !seen {
			summary.Analyzed++
			summary.ChangedFiles = append(summary.ChangedFiles, in.Path)
		} else if prev.HasChanged(in.Path, fingerprint) {
			summary.Reanalyzed++
			summary.ChangedFiles = append(summary.ChangedFiles, in.Path)
		} else {
			summary.Unchanged++
		}
	}
	summary.DeletedFiles = prev.DeletedFiles(current)
	summary.Deleted = len(summary.DeletedFiles)
	sort.Strings(summary.ChangedFiles)
	summary.DurationMS = time.Since(start).Milliseconds()

	return PrintRunSummary(summary, asJSON)
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// RunSummary is the machine-readable account of one run, printed as aligned
// text by default or JSON with --json.
type RunSummary struct {
	Mode              string   `json:"mode"`
	RootPath          string   `json:"root_path"`
	OutputDir         string   `json:"output_dir,omitempty"`
	Scanned           int      `json:"scanned"`
	Analyzed          int      `json:"analyzed"`
	Reanalyzed        int      `json:"reanalyzed"`
	Unchanged         int      `json:"unchanged"`
	Deleted           int      `json:"deleted"`
	Modules           int      `json:"modules"`
	RecomputedModules int      `json:"recomputed_modules"`
	Hubs              int      `json:"hubs"`
	Rewritten         int      `json:"rewritten"`
	DurationMS        int64    `json:"duration_ms"`
	ChangedFiles      []string `json:"changed_files,omitempty"`
	DeletedFiles      []string `json:"deleted_files,omitempty"`
	Warnings          []string `json:"warnings,omitempty"`
}

func PrintRunSummary(summary RunSummary, asJSON bool) error {
	for _, w := range summary.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	}

	fmt.Printf("%s complete in %dms\n", summary.Mode, summary.DurationMS)
	if summary.OutputDir != "" {
		fmt.Printf("output: %s\n", summary.OutputDir)
	}
	fmt.Printf("files: scanned=%d analyzed=%d reanalyzed=%d unchanged=%d deleted=%d\n",
		summary.Scanned, summary.Analyzed, summary.Reanalyzed, summary.Unchanged, summary.Deleted)
	fmt.Printf("modules: total=%d recomputed=%d hubs=%d rewritten=%d\n",
		summary.Modules, summary.RecomputedModules, summary.Hubs, summary.Rewritten)
	if len(summary.ChangedFiles) > 0 {
		fmt.Printf("changed files (%d): %s\n", len(summary.ChangedFiles), SummarizePaths(summary.ChangedFiles, 8))
	}
	if len(summary.DeletedFiles) > 0 {
		fmt.Printf("deleted files (%d): %s\n", len(summary.DeletedFiles), SummarizePaths(summary.DeletedFiles, 8))
	}
	return nil
}

func SummarizePaths(paths []string, max int) string {
	if len(paths) <= max {
		return strings.Join(paths, ", ")
	}
	return fmt.Sprintf("%s ... (+%d more)", strings.Join(paths[:max], ", "), len(paths)-max)
}

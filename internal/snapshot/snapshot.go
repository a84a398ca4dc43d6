// Package snapshot persists per-file analysis records between runs. The
// snapshot is the only shared resource of the pipeline: read once at run
// start, replaced atomically at run end.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/repolens-dev/repolens/internal/fileutil"
	"github.com/repolens-dev/repolens/internal/model"
)

const (
	SnapshotFile   = "snapshot.json"
	CurrentVersion = "1"

	// CurrentAnalyzerVersion gates record reuse across extractor changes:
	// bump it whenever extraction output for identical bytes can differ.
	CurrentAnalyzerVersion = "scan-v1"
)

// FileState is one persisted per-file record.
type FileState struct {
	Fingerprint string     `json:"fingerprint"`
	File        model.File `json:"file"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Snapshot is the persisted result of the previous run.
type Snapshot struct {
	Version         string               `json:"version"`
	AnalyzerVersion string               `json:"analyzer_version"`
	UpdatedAt       time.Time            `json:"updated_at"`
	Files           map[string]FileState `json:"files"`
}

// New returns an empty snapshot at the current versions.
func New() *Snapshot {
	return &Snapshot{
		Version:         CurrentVersion,
		AnalyzerVersion: CurrentAnalyzerVersion,
		Files:           make(map[string]FileState),
	}
}

// Load reads the snapshot from dir. A missing, corrupt, or incompatible
// snapshot never fails the run: it degrades to an empty snapshot so every
// file is treated as unseen. The returned warning, when non-nil, explains
// the degradation for caller-visible reporting.
func Load(dir string) (*Snapshot, error) {
	path := filepath.Join(dir, SnapshotFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return New(), fmt.Errorf("snapshot unreadable, reanalyzing from scratch: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return New(), fmt.Errorf("snapshot corrupt, reanalyzing from scratch: %w", err)
	}
	if s.Version != CurrentVersion || s.AnalyzerVersion != CurrentAnalyzerVersion {
		return New(), fmt.Errorf("snapshot version %q/%q incompatible with %q/%q, reanalyzing from scratch",
			s.Version, s.AnalyzerVersion, CurrentVersion, CurrentAnalyzerVersion)
	}
	if s.Files == nil {
		s.Files = make(map[string]FileState)
	}
	return &s, nil
}

// Save writes the snapshot atomically: a crash mid-write leaves the prior
// snapshot authoritative.
func (s *Snapshot) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	s.Version = CurrentVersion
	s.AnalyzerVersion = CurrentAnalyzerVersion
	s.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return fileutil.WriteAtomic(filepath.Join(dir, SnapshotFile), append(data, '\n'), 0644)
}

// Get returns the stored record for a path.
func (s *Snapshot) Get(path string) (FileState, bool) {
	fs, ok := s.Files[path]
	return fs, ok
}

// Set stores a file record under its path.
func (s *Snapshot) Set(f model.File) {
	s.Files[f.Path] = FileState{
		Fingerprint: f.Fingerprint,
		File:        f,
		UpdatedAt:   time.Now().UTC(),
	}
}

// Remove drops a path from the snapshot.
func (s *Snapshot) Remove(path string) {
	delete(s.Files, path)
}

// HasChanged reports whether the path is new or its fingerprint differs.
func (s *Snapshot) HasChanged(path, fingerprint string) bool {
	fs, ok := s.Files[path]
	if !ok {
		return true
	}
	return fs.Fingerprint != fingerprint
}

// DeletedFiles lists snapshot paths absent from the current file set,
// sorted.
func (s *Snapshot) DeletedFiles(current map[string]bool) []string {
	var deleted []string
	for path := range s.Files {
		if !current[path] {
			deleted = append(deleted, path)
		}
	}
	sort.Strings(deleted)
	return deleted
}

// Records returns the stored file records sorted by path.
func (s *Snapshot) Records() []model.File {
	out := make([]model.File, 0, len(s.Files))
	for _, fs := range s.Files {
		out = append(out, fs.File)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

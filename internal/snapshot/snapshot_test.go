package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens-dev/repolens/internal/model"
)

func TestLoadMissingReturnsEmpty(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, s.Files)
	assert.Equal(t, CurrentVersion, s.Version)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := New()
	s.Set(model.File{
		Path:        "src/a.go",
		Language:    model.LangGo,
		Lines:       10,
		Fingerprint: "abc123",
		RawImports:  []string{"fmt"},
	})
	require.NoError(t, s.Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	fs, ok := loaded.Get("src/a.go")
	require.True(t, ok)
	assert.Equal(t, "abc123", fs.Fingerprint)
	assert.Equal(t, []string{"fmt"}, fs.File.RawImports)
}

func TestLoadCorruptDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SnapshotFile), []byte("{not json"), 0644))

	s, err := Load(dir)
	assert.Error(t, err)
	require.NotNil(t, s)
	assert.Empty(t, s.Files)
}

func TestLoadVersionMismatchDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()

	s := New()
	s.Set(model.File{Path: "a.go", Fingerprint: "x"})
	require.NoError(t, s.Save(dir))

	stale := `{"version":"0","analyzer_version":"scan-v0","files":{"a.go":{"fingerprint":"x"}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, SnapshotFile), []byte(stale), 0644))

	loaded, err := Load(dir)
	assert.Error(t, err)
	require.NotNil(t, loaded)
	assert.Empty(t, loaded.Files)
}

func TestHasChanged(t *testing.T) {
	s := New()
	s.Set(model.File{Path: "a.go", Fingerprint: "f1"})

	assert.False(t, s.HasChanged("a.go", "f1"))
	assert.True(t, s.HasChanged("a.go", "f2"))
	assert.True(t, s.HasChanged("new.go", "f1"))
}

func TestDeletedFiles(t *testing.T) {
	s := New()
	s.Set(model.File{Path: "a.go", Fingerprint: "f1"})
	s.Set(model.File{Path: "b.go", Fingerprint: "f2"})

	deleted := s.DeletedFiles(map[string]bool{"a.go": true})
	assert.Equal(t, []string{"b.go"}, deleted)
}

package fileutil

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFingerprintIsContentDerived(t *testing.T) {
	a := Fingerprint([]byte("hello"))
	b := Fingerprint([]byte("hello"))
	c := Fingerprint([]byte("hello!"))

	if a != b {
		t.Fatalf("expected identical content to fingerprint identically: %q vs %q", a, b)
	}
	if a == c {
		t.Fatalf("expected different content to fingerprint differently")
	}
	if len(a) != 16 {
		t.Fatalf("expected 16-char fingerprint, got %q", a)
	}
}

func TestCountLines(t *testing.T) {
	cases := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"one line", 1},
		{"one line\n", 1},
		{"a\nb\nc", 3},
		{"a\nb\nc\n", 3},
		{"\n\n", 2},
	}
	for _, c := range cases {
		if got := CountLines([]byte(c.content)); got != c.want {
			t.Errorf("CountLines(%q) = %d, want %d", c.content, got, c.want)
		}
	}
}

func TestDedupeStringsKeepsFirstOccurrenceOrder(t *testing.T) {
	got := DedupeStrings([]string{"b", "a", "b", "c", "a"})
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DedupeStrings = %v, want %v", got, want)
	}
}

func TestDedupeAndSort(t *testing.T) {
	got := DedupeAndSort([]string{"b", "a", "b"})
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DedupeAndSort = %v, want %v", got, want)
	}
}

func TestWriteAtomicCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.json")
	if err := WriteAtomic(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("WriteAtomic failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if string(data) != "{}" {
		t.Fatalf("unexpected content: %q", data)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("failed to list directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no leftover temp files, got %d entries", len(entries))
	}
}

func TestWriteIfChangedSkipsIdenticalContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.md")

	wrote, err := WriteIfChanged(path, []byte("v1"))
	if err != nil || !wrote {
		t.Fatalf("first write: wrote=%v err=%v", wrote, err)
	}
	wrote, err = WriteIfChanged(path, []byte("v1"))
	if err != nil || wrote {
		t.Fatalf("identical write: wrote=%v err=%v", wrote, err)
	}
	wrote, err = WriteIfChanged(path, []byte("v2"))
	if err != nil || !wrote {
		t.Fatalf("changed write: wrote=%v err=%v", wrote, err)
	}
}

func TestWriteIfMissingLeavesExistingFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	created, err := WriteIfMissing(path, []byte("original"), 0644)
	if err != nil || !created {
		t.Fatalf("first write: created=%v err=%v", created, err)
	}
	created, err = WriteIfMissing(path, []byte("replacement"), 0644)
	if err != nil || created {
		t.Fatalf("second write: created=%v err=%v", created, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if string(data) != "original" {
		t.Fatalf("expected original content to survive, got %q", data)
	}
}

func TestEnsureTrailingNewline(t *testing.T) {
	if got := EnsureTrailingNewline("x"); got != "x\n" {
		t.Fatalf("got %q", got)
	}
	if got := EnsureTrailingNewline("x\n"); got != "x\n" {
		t.Fatalf("got %q", got)
	}
}

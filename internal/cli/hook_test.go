package cli

import (
	"strings"
	"testing"

	"github.com/repolens-dev/repolens/internal/config"
)

func TestBuildHookBlockGuardsOnOutputDir(t *testing.T) {
	block := BuildHookBlock("/repo/path")

	for _, expected := range []string{
		"repo_root=\"/repo/path\"",
		"command -v repolens",
		"$repo_root/" + config.OutputDir,
		"repolens update) || exit 1",
	} {
		if !strings.Contains(block, expected) {
			t.Fatalf("expected hook block to contain %q, got:\n%s", expected, block)
		}
	}
}

func TestUpsertHookCreatesFreshScript(t *testing.T) {
	updated := UpsertHook("", "/repo/path")

	if !strings.HasPrefix(updated, "#!/bin/sh\n") {
		t.Fatalf("expected fresh hook to start with a shebang, got:\n%s", updated)
	}
	if strings.Count(updated, HookStart) != 1 || strings.Count(updated, HookEnd) != 1 {
		t.Fatalf("expected exactly one hook block, got:\n%s", updated)
	}
}

func TestUpsertHookReplacesExistingBlock(t *testing.T) {
	existing := "#!/bin/sh\n\necho before\n" + HookStart + "\nold block\n" + HookEnd + "\n\necho after\n"
	updated := UpsertHook(existing, "/repo/path")

	if strings.Contains(updated, "old block") {
		t.Fatalf("expected old hook block to be replaced, got:\n%s", updated)
	}
	if strings.Count(updated, HookStart) != 1 || strings.Count(updated, HookEnd) != 1 {
		t.Fatalf("expected exactly one hook block after update, got:\n%s", updated)
	}
	if !strings.Contains(updated, "echo before") || !strings.Contains(updated, "echo after") {
		t.Fatalf("expected surrounding hook content to be preserved, got:\n%s", updated)
	}
}

func TestUpsertHookAppendsToForeignScript(t *testing.T) {
	existing := "echo lint\n"
	updated := UpsertHook(existing, "/repo/path")

	if !strings.HasPrefix(updated, "#!/bin/sh\n") {
		t.Fatalf("expected shebang to be prepended, got:\n%s", updated)
	}
	if !strings.Contains(updated, "echo lint") {
		t.Fatalf("expected existing content to survive, got:\n%s", updated)
	}
	if !strings.Contains(updated, HookStart) {
		t.Fatalf("expected hook block to be appended, got:\n%s", updated)
	}
}

package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/repolens-dev/repolens/internal/config"
	"github.com/repolens-dev/repolens/internal/fileutil"
)

const (
	HookStart = "# >>> repolens update hook >>>"
	HookEnd   = "# <<< repolens update hook <<<"
)

// RunInstallHook adds (or refreshes) a pre-commit hook that runs
// `repolens update` before every commit. Existing hook content outside the
// sentinel block is preserved.
func RunInstallHook(path string) error {
	rootPath, err := resolveWorkingDirectory(path)
	if err != nil {
		return err
	}

	repoRoot, gitDir, err := ResolveGitPaths(rootPath)
	if err != nil {
		return err
	}

	hookPath := filepath.Join(gitDir, "hooks", "pre-commit")
	if err := os.MkdirAll(filepath.Dir(hookPath), 0755); err != nil {
		return fmt.Errorf("failed to create hook directory: %w", err)
	}

	existing := ""
	if data, err := os.ReadFile(hookPath); err == nil {
		existing = string(data)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read existing hook: %w", err)
	}

	updated := UpsertHook(existing, repoRoot)
	if err := os.WriteFile(hookPath, []byte(updated), 0755); err != nil {
		return fmt.Errorf("failed to write hook: %w", err)
	}

	fmt.Printf("Installed pre-commit hook at %s\n", hookPath)
	return nil
}

// ResolveGitPaths returns the repository toplevel and its git directory for
// the given working directory.
func ResolveGitPaths(workingDir string) (repoRoot string, gitDir string, err error) {
	repoRootOut, err := exec.Command("git", "-C", workingDir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", "", fmt.Errorf("not inside a git repository")
	}

	gitDirOut, err := exec.Command("git", "-C", workingDir, "rev-parse", "--git-dir").Output()
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve git directory: %w", err)
	}

	repoRoot = strings.TrimSpace(string(repoRootOut))
	gitDir = strings.TrimSpace(string(gitDirOut))
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(repoRoot, gitDir)
	}
	return repoRoot, gitDir, nil
}

// UpsertHook splices the repolens block into an existing hook script,
// replacing a previous block when the sentinels are present.
func UpsertHook(existingHook, repoRoot string) string {
	block := BuildHookBlock(repoRoot)

	if existingHook == "" {
		return "#!/bin/sh\n\n" + block + "\n"
	}

	start := strings.Index(existingHook, HookStart)
	end := strings.Index(existingHook, HookEnd)
	if start >= 0 && end >= start {
		end += len(HookEnd)
		updated := existingHook[:start] + block + existingHook[end:]
		return fileutil.EnsureTrailingNewline(updated)
	}

	base := fileutil.EnsureTrailingNewline(existingHook)
	if !strings.HasPrefix(base, "#!") {
		base = "#!/bin/sh\n" + base
	}
	return base + "\n" + block + "\n"
}

// BuildHookBlock renders the sentinel-delimited hook body. The hook only
// runs when repolens is installed and the output directory exists, so a
// fresh clone without a prior `repolens init` commits normally.
func BuildHookBlock(repoRoot string) string {
	return fmt.Sprintf(
		"%s\nrepo_root=%q\nif command -v repolens >/dev/null 2>&1; then\n  if [ -d \"$repo_root/%s\" ]; then\n    (cd \"$repo_root\" && repolens update) || exit 1\n  fi\nfi\n%s",
		HookStart,
		repoRoot,
		config.OutputDir,
		HookEnd,
	)
}

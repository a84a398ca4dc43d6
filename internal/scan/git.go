package scan

import (
	"os/exec"
	"sort"
	"strings"

	"github.com/repolens-dev/repolens/internal/analyzer"
)

// DiffFiles resolves ref into the set of paths changed since it, including
// deletions. An unresolvable ref is a fatal configuration error naming the
// ref.
func DiffFiles(root, ref string) ([]string, error) {
	out, err := exec.Command("git", "-C", root, "diff", "--name-only", ref).Output()
	if err != nil {
		return nil, &analyzer.ConfigError{Field: "diff", Value: ref, Err: err}
	}

	var paths []string
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line != "" {
			paths = append(paths, line)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/repolens-dev/repolens/internal/config"
	"github.com/repolens-dev/repolens/internal/fileutil"
)

const starterIgnore = `# Paths repolens should skip, in gitignore syntax.
# node_modules, vendor and friends are skipped automatically.
`

// RunInit drops starter config files and, unless told otherwise, runs the
// first analysis. Existing files are left alone.
func RunInit(path string, skipGenerate bool) error {
	rootPath, err := resolveWorkingDirectory(path)
	if err != nil {
		return err
	}

	outputDir := filepath.Join(rootPath, config.OutputDir)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", outputDir, err)
	}

	configPath := filepath.Join(rootPath, config.FileName)
	created, err := fileutil.WriteIfMissing(configPath, []byte(config.Starter), 0644)
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("created %s\n", configPath)
	} else {
		fmt.Printf("kept existing %s\n", configPath)
	}

	ignorePath := filepath.Join(rootPath, config.IgnoreFile)
	created, err = fileutil.WriteIfMissing(ignorePath, []byte(starterIgnore), 0644)
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("created %s\n", ignorePath)
	}

	if skipGenerate {
		fmt.Println("skipping first analysis; run `repolens generate` when ready")
		return nil
	}
	return RunGenerate(rootPath, nil, false)
}

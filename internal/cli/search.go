package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/repolens-dev/repolens/internal/config"
	"github.com/repolens-dev/repolens/internal/search"
)

// RunSearch queries the persisted index for symbols and markers. It reads
// only the index, so the tree is never rescanned.
func RunSearch(path, query string, limit int, asJSON bool) error {
	rootPath, err := resolveWorkingDirectory(path)
	if err != nil {
		return err
	}

	idx, err := search.Load(filepath.Join(rootPath, config.OutputDir))
	if err != nil {
		return err
	}

	matches := search.Search(idx, query, limit)

	if asJSON {
		type hit struct {
			File      string  `json:"file"`
			Line      int     `json:"line"`
			Kind      string  `json:"kind"`
			Name      string  `json:"name"`
			Signature string  `json:"signature,omitempty"`
			Score     float64 `json:"score"`
		}
		hits := make([]hit, 0, len(matches))
		for _, m := range matches {
			hits = append(hits, hit{
				File:      m.Document.File,
				Line:      m.Document.Line,
				Kind:      m.Document.Kind,
				Name:      m.Document.Name,
				Signature: m.Document.Signature,
				Score:     m.Score,
			})
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(hits)
	}

	if len(matches) == 0 {
		fmt.Printf("no matches for %q\n", query)
		return nil
	}
	for _, m := range matches {
		doc := m.Document
		line := fmt.Sprintf("%s:%d  %s %s", doc.File, doc.Line, doc.Kind, doc.Name)
		if doc.Signature != "" {
			line += "  " + doc.Signature
		}
		fmt.Println(line)
	}
	return nil
}

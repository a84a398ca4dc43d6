package cli

// RunGenerate analyzes the whole tree from scratch, ignoring any existing
// snapshot, and rewrites the output directory.
func RunGenerate(path string, languages []string, asJSON bool) error {
	return runPipeline(path, runOptions{
		mode:      "generate",
		force:     true,
		languages: languages,
		asJSON:    asJSON,
	})
}

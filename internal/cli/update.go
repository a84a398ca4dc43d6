package cli

// RunUpdate reanalyzes only what changed since the snapshot. With --force
// every file is reanalyzed; with --diff the candidate set comes from git
// instead of fingerprint comparison.
func RunUpdate(path string, force bool, diffRef string, asJSON bool) error {
	return runPipeline(path, runOptions{
		mode:    "update",
		force:   force,
		diffRef: diffRef,
		asJSON:  asJSON,
	})
}

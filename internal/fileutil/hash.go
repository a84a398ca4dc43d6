package fileutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint hashes raw file content. The fingerprint is content-derived so
// a file whose bytes are unchanged keeps the same value regardless of mtime.
func Fingerprint(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])[:16] // short hash
}

// CountLines counts lines the way editors do: a trailing newline does not
// start an extra line, but a non-empty final fragment counts.
func CountLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte{'\n'})
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}

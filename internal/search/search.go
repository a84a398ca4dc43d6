// Package search maintains a BM25 token index over the extracted symbols
// and markers, persisted next to the other artifacts so queries never
// rescan the tree. Document IDs are path:line:name, stable across runs for
// unchanged files.
package search

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/repolens-dev/repolens/internal/analyzer"
	"github.com/repolens-dev/repolens/internal/fileutil"
)

const (
	IndexFile = "search-index.json"
	Version   = "search-index-v1"
)

var tokenPattern = regexp.MustCompile(`[a-z0-9_]+`)

// Document is one searchable entry: a symbol declaration or a marker.
type Document struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Kind      string         `json:"kind"`
	Signature string         `json:"signature,omitempty"`
	File      string         `json:"file"`
	Line      int            `json:"line"`
	Length    int            `json:"length"`
	Terms     map[string]int `json:"terms"`
}

// Index is the persisted search index.
type Index struct {
	Version       string         `json:"version"`
	DocumentCount int            `json:"document_count"`
	AvgDocLength  float64        `json:"avg_doc_length"`
	DocFreq       map[string]int `json:"doc_freq"`
	Documents     []Document     `json:"documents"`
}

// Match is one scored hit.
type Match struct {
	Document Document
	Score    float64
}

// Build indexes every symbol and marker in the result. Symbol names weigh
// heaviest, then signatures and file paths, then marker text.
func Build(res *analyzer.Result) *Index {
	idx := &Index{Version: Version, DocFreq: map[string]int{}}
	if res == nil {
		return idx
	}

	totalLength := 0
	add := func(doc Document) {
		if doc.Length == 0 {
			return
		}
		idx.Documents = append(idx.Documents, doc)
		totalLength += doc.Length
		for term := range doc.Terms {
			idx.DocFreq[term]++
		}
	}

	for _, f := range res.Files {
		for _, sym := range f.Symbols {
			terms := map[string]int{}
			addWeighted(terms, sym.Name, 4)
			addWeighted(terms, sym.Signature, 2)
			addWeighted(terms, f.Path, 2)
			add(Document{
				ID:        docID(f.Path, sym.Line, sym.Name),
				Name:      sym.Name,
				Kind:      string(sym.Kind),
				Signature: sym.Signature,
				File:      f.Path,
				Line:      sym.Line,
				Length:    termLength(terms),
				Terms:     terms,
			})
		}
		for _, m := range f.Markers {
			terms := map[string]int{}
			addWeighted(terms, m.Pattern, 4)
			addWeighted(terms, m.Text, 2)
			addWeighted(terms, f.Path, 1)
			add(Document{
				ID:        docID(f.Path, m.Line, m.Pattern),
				Name:      m.Pattern,
				Kind:      "marker",
				Signature: m.Text,
				File:      f.Path,
				Line:      m.Line,
				Length:    termLength(terms),
				Terms:     terms,
			})
		}
	}

	sort.Slice(idx.Documents, func(i, j int) bool {
		return idx.Documents[i].ID < idx.Documents[j].ID
	})
	idx.DocumentCount = len(idx.Documents)
	if idx.DocumentCount > 0 {
		idx.AvgDocLength = float64(totalLength) / float64(idx.DocumentCount)
	}
	return idx
}

// Write persists the index for the result into dir, skipping the write when
// nothing changed. It reports whether the file was rewritten.
func Write(dir string, res *analyzer.Result) (bool, error) {
	data, err := json.MarshalIndent(Build(res), "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to encode search index: %w", err)
	}
	data = append(data, '\n')
	return fileutil.WriteIfChanged(filepath.Join(dir, IndexFile), data)
}

// Load reads the persisted index from dir.
func Load(dir string) (*Index, error) {
	path := filepath.Join(dir, IndexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("search index missing at %s (run repolens update)", path)
		}
		return nil, fmt.Errorf("failed to read search index: %w", err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("failed to decode search index: %w", err)
	}
	if idx.DocFreq == nil {
		idx.DocFreq = map[string]int{}
	}
	return &idx, nil
}

// Search ranks documents against the query with BM25 and falls back to
// edit-distance name matching when no term overlaps (typos). Ties break by
// document ID so results are deterministic.
func Search(idx *Index, query string, limit int) []Match {
	if idx == nil || len(idx.Documents) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = 10
	}

	queryTerms := fileutil.DedupeStrings(tokenize(query))
	if len(queryTerms) == 0 {
		return nil
	}

	const k1, b = 1.2, 0.75
	n := float64(idx.DocumentCount)
	avgLen := idx.AvgDocLength
	if avgLen <= 0 {
		avgLen = 1
	}

	var matches []Match
	for _, doc := range idx.Documents {
		score := 0.0
		docLen := float64(doc.Length)
		for _, term := range queryTerms {
			tf := float64(doc.Terms[term])
			df := float64(idx.DocFreq[term])
			if tf <= 0 || df <= 0 {
				continue
			}
			idf := math.Log(1.0 + ((n - df + 0.5) / (df + 0.5)))
			score += idf * (tf * (k1 + 1.0)) / (tf + k1*(1.0-b+b*(docLen/avgLen)))
		}
		if score > 0 {
			matches = append(matches, Match{Document: doc, Score: score})
		}
	}

	sortMatches(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	if len(matches) == 0 {
		return fuzzyNameFallback(idx.Documents, query, limit)
	}
	return matches
}

func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Document.ID < matches[j].Document.ID
	})
}

func docID(path string, line int, name string) string {
	return fmt.Sprintf("%s:%d:%s", path, line, name)
}

func termLength(terms map[string]int) int {
	length := 0
	for _, count := range terms {
		length += count
	}
	return length
}

func addWeighted(terms map[string]int, value string, weight int) {
	for _, token := range tokenize(value) {
		terms[token] += weight
	}
}

func tokenize(value string) []string {
	return tokenPattern.FindAllString(strings.ToLower(value), -1)
}

// fuzzyNameFallback catches near-miss queries: a document name within a
// third of its length in edits (minimum 2) still matches.
func fuzzyNameFallback(documents []Document, query string, limit int) []Match {
	needle := strings.Join(tokenize(query), "")
	if needle == "" {
		return nil
	}

	var matches []Match
	for _, doc := range documents {
		candidate := strings.Join(tokenize(doc.Name), "")
		if candidate == "" {
			continue
		}
		distance := editDistance(needle, candidate)
		threshold := len(candidate) / 3
		if threshold < 2 {
			threshold = 2
		}
		if distance > threshold {
			continue
		}
		matches = append(matches, Match{Document: doc, Score: 1.0 / float64(1+distance)})
	}

	sortMatches(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		current := make([]int, len(b)+1)
		current[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			current[j] = min(current[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev = current
	}
	return prev[len(b)]
}

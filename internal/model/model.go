// Package model defines the core data structures of the analysis engine.
package model

// Language identifies one of the supported source languages.
type Language string

const (
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangRuby       Language = "ruby"
	LangJava       Language = "java"
	LangCSharp     Language = "csharp"
	LangSwift      Language = "swift"

	// LangUnsupported marks files that are skipped for symbol/import
	// extraction but still eligible for marker extraction.
	LangUnsupported Language = ""
)

// Supported returns true when the language has an extraction profile.
func (l Language) Supported() bool {
	return l != LangUnsupported
}

// SymbolKind is the closed set of declaration kinds the extractors emit.
type SymbolKind string

const (
	KindFunction  SymbolKind = "function"
	KindMethod    SymbolKind = "method"
	KindClass     SymbolKind = "class"
	KindStruct    SymbolKind = "struct"
	KindInterface SymbolKind = "interface"
	KindEnum      SymbolKind = "enum"
	KindTrait     SymbolKind = "trait"
	KindExtension SymbolKind = "extension"
	KindModule    SymbolKind = "module"
)

// Visibility is the language-mapped access level of a symbol.
type Visibility string

const (
	VisPublic   Visibility = "public"
	VisPrivate  Visibility = "private"
	VisInternal Visibility = "internal"
)

// Symbol is a single declaration found in a file, ordered by line.
// Symbols have no cross-file identity: two symbols with the same name in
// different files are unrelated.
type Symbol struct {
	Line       int        `json:"line"`
	Kind       SymbolKind `json:"kind"`
	Name       string     `json:"name"`
	Visibility Visibility `json:"visibility"`
	Signature  string     `json:"signature,omitempty"`
}

// MarkerCategory groups marker patterns for reporting.
type MarkerCategory string

const (
	CategoryTechDebt      MarkerCategory = "Technical Debt"
	CategoryWarnings      MarkerCategory = "Warnings"
	CategorySafety        MarkerCategory = "Safety"
	CategoryBusinessRules MarkerCategory = "Business Rules"
	CategoryNotes         MarkerCategory = "Notes"
)

// MarkerPriority ranks markers for reporting.
type MarkerPriority string

const (
	PriorityLow    MarkerPriority = "low"
	PriorityMedium MarkerPriority = "medium"
	PriorityHigh   MarkerPriority = "high"
)

// Marker is a knowledge marker (TODO/WARNING/SAFETY/...) extracted from a
// comment.
type Marker struct {
	Line     int            `json:"line"`
	Pattern  string         `json:"pattern"`
	Category MarkerCategory `json:"category"`
	Priority MarkerPriority `json:"priority"`
	Text     string         `json:"text,omitempty"`
}

// File is the per-file analysis record. It is immutable once produced for a
// given fingerprint: an unchanged file always reuses its prior record.
type File struct {
	Path        string   `json:"path"`
	Language    Language `json:"language,omitempty"`
	Lines       int      `json:"lines"`
	Fingerprint string   `json:"fingerprint"`
	Symbols     []Symbol `json:"symbols,omitempty"`
	// RawImports preserves import targets as written, in source order.
	// Resolution against the repo file set happens at graph-build time so
	// the record stays valid when unrelated files come and go.
	RawImports []string `json:"raw_imports,omitempty"`
	Markers    []Marker `json:"markers,omitempty"`
}

// ImportEdge is a resolved dependency: Source imports Target, both
// repo-relative paths present in the current file set.
type ImportEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// UnresolvedImport records a raw import target that could not be mapped to a
// repo file. Kept verbatim for reporting, excluded from graph algorithms.
type UnresolvedImport struct {
	Source string `json:"source"`
	Raw    string `json:"raw"`
}

// BoundaryType records how a module boundary was established.
type BoundaryType string

const (
	BoundaryAnchor BoundaryType = "anchor"
	BoundarySize   BoundaryType = "size"
	BoundaryRoot   BoundaryType = "root"
)

// Module is a directory promoted to an aggregation unit.
type Module struct {
	Slug       string       `json:"slug"`
	Path       string       `json:"path"`
	Boundary   BoundaryType `json:"boundary"`
	EntryPoint string       `json:"entry_point,omitempty"`
	Files      []string     `json:"files"`
	Parent     string       `json:"parent,omitempty"`
	Children   []string     `json:"children,omitempty"`
}

// ChangeState tags a file's fate in one analysis run.
type ChangeState string

const (
	StateAnalyzed   ChangeState = "analyzed"
	StateReanalyzed ChangeState = "reanalyzed"
	StateUnchanged  ChangeState = "unchanged"
)

// ModuleState tags whether a module's aggregates were rebuilt this run.
type ModuleState string

const (
	ModuleRecomputed ModuleState = "recomputed"
	ModuleReused     ModuleState = "reused"
)

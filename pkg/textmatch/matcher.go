// Package textmatch provides the full-text matching capability used by the
// search engine for residual free text.
//
// Matchers rebuild their internal state from the candidate documents on
// every call. That is intentionally wasteful of CPU relative to keeping an
// incremental index, but it guarantees structured filters always apply
// before lexical matching and no stale index can leak results from a
// previous, differently-filtered candidate set. The Matcher interface
// keeps the strategy replaceable if profiling ever demands a cached index.
//
// Two implementations ship with pkgdir: SQLiteMatcher (FTS5, prefix
// matching and bm25 field weighting) and FuzzyMatcher (pure in-memory
// fuzzy matching, tolerant of small typos).
package textmatch

import "context"

// Doc is one candidate document handed to a matcher. Fields maps field
// names to their searchable text; only fields configured on the matcher
// are consulted.
type Doc struct {
	ID     string
	Fields map[string]string
}

// FieldWeight names a searchable field and its relevance boost. Weights
// are relative; the primary field (typically name or author) carries the
// highest weight.
type FieldWeight struct {
	Name   string
	Weight float64
}

// Score is one matched document with its relevance score. Higher is
// better for every implementation.
type Score struct {
	ID    string
	Score float64
}

// Matcher scores candidate documents against residual free text. Multiple
// whitespace-separated terms combine with AND semantics: every term must
// match, possibly in different fields. Documents the matcher does not
// return are excluded from the result set. Implementations must not
// retain docs across calls.
type Matcher interface {
	Match(ctx context.Context, docs []Doc, text string) ([]Score, error)
}

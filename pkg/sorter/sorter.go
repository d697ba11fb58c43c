// Package sorter applies one of a fixed set of total orderings to a
// result set. Sorting is stable, works on a copy and never mutates its
// input, so relevance order from the matcher survives a later switch back
// to the "relevance" key.
package sorter

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pkgdir/pkgdir/pkg/registry"
)

// Supported sort keys. Any other key (including "relevance") preserves
// the input order.
const (
	ByName       = "name"
	ByNameDesc   = "name-desc"
	ByStars      = "stars"
	ByStarsDesc  = "stars-desc"
	ByAuthor     = "author"
	ByAuthorDesc = "author-desc"
	ByRelevance  = "relevance"
)

// Keys lists the recognized sort keys in display order.
func Keys() []string {
	return []string{ByRelevance, ByName, ByNameDesc, ByStars, ByStarsDesc, ByAuthor, ByAuthorDesc}
}

// Known reports whether key is a recognized sort key.
func Known(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Sort returns a new slice ordered by the given key. Lexicographic keys
// compare case-insensitively via the Unicode collator; star counts compare
// numerically with missing or malformed values counting as zero. The
// "stars" key orders high to low, "stars-desc" low to high, mirroring the
// site's sort selector.
func Sort(records []registry.Record, key string) []registry.Record {
	sorted := make([]registry.Record, len(records))
	copy(sorted, records)

	var less func(a, b registry.Record) bool
	switch key {
	case ByName:
		cmp := newCollator()
		less = func(a, b registry.Record) bool { return cmp.CompareString(a.Name, b.Name) < 0 }
	case ByNameDesc:
		cmp := newCollator()
		less = func(a, b registry.Record) bool { return cmp.CompareString(b.Name, a.Name) < 0 }
	case ByStars:
		less = func(a, b registry.Record) bool { return a.Stars.Int() > b.Stars.Int() }
	case ByStarsDesc:
		less = func(a, b registry.Record) bool { return a.Stars.Int() < b.Stars.Int() }
	case ByAuthor:
		cmp := newCollator()
		less = func(a, b registry.Record) bool { return cmp.CompareString(a.Author, b.Author) < 0 }
	case ByAuthorDesc:
		cmp := newCollator()
		less = func(a, b registry.Record) bool { return cmp.CompareString(b.Author, a.Author) < 0 }
	default:
		// Relevance and unrecognized keys keep the incoming order.
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}

// newCollator builds a case-insensitive collator per call; collators carry
// internal buffers and are not safe for concurrent use.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase)
}

package textmatch

import (
	"context"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// FuzzyMatcher matches residual text entirely in memory using fuzzy
// subsequence matching, which tolerates small typing deviations and
// matches partial words as prefixes by construction. It needs no database
// and is the matcher of choice for the CLI and for tests.
type FuzzyMatcher struct {
	fields []FieldWeight
}

// NewFuzzyMatcher creates a matcher over the given searchable fields.
func NewFuzzyMatcher(fields []FieldWeight) *FuzzyMatcher {
	return &FuzzyMatcher{fields: fields}
}

// fieldSource adapts one field of a doc slice to fuzzy.Source.
type fieldSource struct {
	docs  []Doc
	field string
}

func (s fieldSource) String(i int) string { return strings.ToLower(s.docs[i].Fields[s.field]) }
func (s fieldSource) Len() int            { return len(s.docs) }

// Match scores docs against text. Every whitespace-separated term must
// match at least one field of a doc for the doc to qualify; per-term
// scores take the best weighted field match and sum across terms.
func (m *FuzzyMatcher) Match(ctx context.Context, docs []Doc, text string) ([]Score, error) {
	terms := strings.Fields(strings.ToLower(text))
	if len(terms) == 0 || len(docs) == 0 {
		return nil, nil
	}

	totals := make(map[int]float64, len(docs))
	qualified := make(map[int]int, len(docs))

	for _, term := range terms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		best := make(map[int]float64)
		for _, f := range m.fields {
			matches := fuzzy.FindFrom(term, fieldSource{docs: docs, field: f.Name})
			for _, match := range matches {
				// Shift scores positive so a zero-score match still
				// counts as a hit.
				weighted := (float64(match.Score) + 1) * f.Weight
				if cur, ok := best[match.Index]; !ok || weighted > cur {
					best[match.Index] = weighted
				}
			}
		}
		for idx, score := range best {
			totals[idx] += score
			qualified[idx]++
		}
	}

	var scores []Score
	for idx := range docs {
		if qualified[idx] != len(terms) {
			continue
		}
		scores = append(scores, Score{ID: docs[idx].ID, Score: totals[idx]})
	}
	// Order by score descending, stable with respect to input order.
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	return scores, nil
}

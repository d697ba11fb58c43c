// Package filter narrows a record collection by structured filter tokens.
//
// Each recognized field carries a predicate policy: substring containment
// for display-string fields such as author, set membership for
// comma-joined set fields such as labels and platforms. Filters combine
// with logical AND and never reorder the input.
package filter

import (
	"strings"

	"github.com/pkgdir/pkgdir/pkg/query"
	"github.com/pkgdir/pkgdir/pkg/registry"
)

// Policy selects how a filter value is compared against a record field.
type Policy int

const (
	// PolicySubstring matches by case-insensitive substring containment.
	PolicySubstring Policy = iota
	// PolicySetMember splits the comma-joined field into tokens and
	// matches when any token contains the filter value.
	PolicySetMember
)

// Rule describes the predicate configuration for one filter field.
type Rule struct {
	Policy Policy

	// Value extracts the comparable field text from a record.
	Value func(registry.Record) string

	// EmptyPasses keeps records whose field is unset. Platform filters
	// use this: a record without platforms is assumed to support all of
	// them. Label-type filters leave it false so unset fields never
	// match.
	EmptyPasses bool
}

// Rules maps filter field names to their predicate configuration.
type Rules map[string]Rule

// Apply returns the subset of records satisfying every filter, in input
// order. Filters for fields without a configured rule are ignored. The
// input slice is never modified.
func Apply(records []registry.Record, filters []query.Filter, rules Rules) []registry.Record {
	if len(filters) == 0 {
		return records
	}

	out := make([]registry.Record, 0, len(records))
	for _, rec := range records {
		if matchesAll(rec, filters, rules) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesAll(rec registry.Record, filters []query.Filter, rules Rules) bool {
	for _, f := range filters {
		rule, ok := rules[f.Field]
		if !ok {
			continue
		}
		if !matches(rec, rule, f.Value) {
			return false
		}
	}
	return true
}

func matches(rec registry.Record, rule Rule, value string) bool {
	field := rule.Value(rec)
	if strings.TrimSpace(field) == "" {
		return rule.EmptyPasses
	}
	want := strings.ToLower(value)

	switch rule.Policy {
	case PolicySetMember:
		for _, token := range registry.SplitSet(strings.ToLower(field)) {
			if strings.Contains(token, want) {
				return true
			}
		}
		return false
	default:
		return strings.Contains(strings.ToLower(field), want)
	}
}

// Package query extracts structured filter tokens from raw search input.
//
// A query such as
//
//	author:"Jane Doe" platform:linux editor
//
// decomposes into the filters {author: "Jane Doe", platform: "linux"} and
// the residual free text "editor". Unrecognized field prefixes and
// malformed tokens (for example an unterminated quote) are left in the
// residual and searched as literal text.
package query

import (
	"regexp"
	"strings"
	"sync"
)

// Field names a recognized filter field. Quoted values (field:"a b") are
// always accepted; Unquoted additionally enables the bare field:value form
// for single-token values.
type Field struct {
	Name     string
	Unquoted bool
}

// Filter is one extracted field/value pair.
type Filter struct {
	Field string
	Value string
}

// Parsed is the result of decomposing a raw query string.
type Parsed struct {
	Filters  []Filter
	Residual string
}

var (
	patternMu sync.Mutex
	patterns  = make(map[string][2]*regexp.Regexp)
)

// fieldPatterns returns the quoted and unquoted matchers for a field name,
// compiled once per field.
func fieldPatterns(name string) (quoted, unquoted *regexp.Regexp) {
	patternMu.Lock()
	defer patternMu.Unlock()
	if pair, ok := patterns[name]; ok {
		return pair[0], pair[1]
	}
	escaped := regexp.QuoteMeta(name)
	quoted = regexp.MustCompile(`(?i)` + escaped + `:"([^"]+)"`)
	// The unquoted value must not start with a quote so that an
	// unterminated quoted token stays in the residual.
	unquoted = regexp.MustCompile(`(?i)` + escaped + `:([^"\s]\S*)`)
	patterns[name] = [2]*regexp.Regexp{quoted, unquoted}
	return quoted, unquoted
}

// Parse extracts at most one filter per recognized field from raw. For each
// field the quoted form is tried first, then the unquoted form when enabled.
// The matched substring is removed from the working string before the next
// field is tried, so matches never overlap; repeated occurrences of the
// same field stay in the residual as plain words.
func Parse(raw string, fields []Field) Parsed {
	working := raw
	var filters []Filter

	for _, field := range fields {
		quoted, unquoted := fieldPatterns(field.Name)

		if m := quoted.FindStringSubmatchIndex(working); m != nil {
			filters = append(filters, Filter{Field: field.Name, Value: working[m[2]:m[3]]})
			working = working[:m[0]] + working[m[1]:]
			continue
		}
		if !field.Unquoted {
			continue
		}
		if m := unquoted.FindStringSubmatchIndex(working); m != nil {
			filters = append(filters, Filter{Field: field.Name, Value: working[m[2]:m[3]]})
			working = working[:m[0]] + working[m[1]:]
		}
	}

	return Parsed{
		Filters:  filters,
		Residual: strings.TrimSpace(strings.Join(strings.Fields(working), " ")),
	}
}

// Package registry defines the directory record model shared by the build
// pipeline, the search engine and the web interface.
//
// A Record is one package or library entry as it appears in the flat
// search index. Records are immutable once loaded: every downstream
// operation (filter, match, sort, paginate) produces new slices and never
// modifies a Record in place.
package registry

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Stars is a popularity count that arrives from upstream projections as
// either a JSON number or a string. Missing or unparsable values count
// as zero when compared numerically.
type Stars string

// UnmarshalJSON accepts numbers, strings and null.
func (s *Stars) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*s = ""
		return nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Stars(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("stars must be a number or string: %w", err)
	}
	*s = Stars(num.String())
	return nil
}

// MarshalJSON emits the count as a number when it parses, otherwise as the
// original string.
func (s Stars) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(s)); err == nil {
		return json.Marshal(n)
	}
	return json.Marshal(string(s))
}

// Int returns the numeric value, treating missing or malformed counts as 0.
func (s Stars) Int() int {
	n, err := strconv.Atoi(strings.TrimSpace(string(s)))
	if err != nil {
		return 0
	}
	return n
}

// Record is one directory entry. Labels and Platforms are comma-joined
// sets, matching the wire format of the generated search index. Library
// entries additionally carry PythonVersions.
type Record struct {
	Name           string   `json:"name"`
	Author         string   `json:"author"`
	Description    string   `json:"description,omitempty"`
	Stars          Stars    `json:"stars,omitempty"`
	Labels         string   `json:"labels,omitempty"`
	Platforms      string   `json:"platforms,omitempty"`
	Permalink      string   `json:"permalink,omitempty"`
	PythonVersions []string `json:"python_versions,omitempty"`
}

// ID returns the unique identifier used for matching and deduplication.
func (r Record) ID() string {
	return r.Name
}

// LabelSet returns the labels as individual tokens.
func (r Record) LabelSet() []string {
	return SplitSet(r.Labels)
}

// PlatformSet returns the platforms as individual tokens. An empty result
// means the record is platform independent.
func (r Record) PlatformSet() []string {
	return SplitSet(r.Platforms)
}

// SplitSet splits a comma-joined set field into trimmed tokens, dropping
// empties.
func SplitSet(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

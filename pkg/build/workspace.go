// Package build turns a JSON workspace of raw package records into the
// static artifacts the directory serves: per-page minimal projections,
// the flat search index and the rendered landing page.
package build

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Workspace is the raw build input: every known package keyed by id,
// including entries that have since been removed upstream.
type Workspace struct {
	Packages map[string]Package `json:"packages"`
}

// Package is one raw workspace entry, prior to projection.
type Package struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Author       AuthorList `json:"author"`
	Homepage     string     `json:"homepage,omitempty"`
	Stars        int        `json:"stars,omitempty"`
	Labels       []string   `json:"labels,omitempty"`
	Releases     []Release  `json:"releases,omitempty"`
	LastModified string     `json:"last_modified,omitempty"`
	CreatedAt    string     `json:"created_at,omitempty"`
	Removed      bool       `json:"removed,omitempty"`
}

// Release is one published release of a package.
type Release struct {
	Date      string   `json:"date,omitempty"`
	Build     string   `json:"sublime_text,omitempty"`
	Version   string   `json:"version,omitempty"`
	Platforms []string `json:"platforms,omitempty"`
	URL       string   `json:"url,omitempty"`
}

// AuthorList tolerates the two upstream author encodings: a single string
// or an array of strings.
type AuthorList []string

func (a *AuthorList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = AuthorList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("author must be a string or array: %w", err)
	}
	*a = AuthorList(many)
	return nil
}

func (a AuthorList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(a))
}

// Display joins the authors into the single display string carried by
// search index records.
func (a AuthorList) Display() string {
	return strings.Join(a, ", ")
}

// LoadWorkspace reads and decodes a workspace file.
func LoadWorkspace(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workspace: %w", err)
	}
	var ws Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("decoding workspace: %w", err)
	}
	return &ws, nil
}

// Live returns the packages still present upstream, in deterministic
// name order.
func (w *Workspace) Live() []Package {
	live := make([]Package, 0, len(w.Packages))
	for id, pkg := range w.Packages {
		if pkg.Removed {
			continue
		}
		if pkg.Name == "" {
			pkg.Name = id
		}
		live = append(live, pkg)
	}
	sortPackagesByName(live)
	return live
}

// parseDate parses the loose timestamp formats found in workspace data.
// Unparsable or missing dates collapse to the epoch so they sort last in
// newest-first orderings.
func parseDate(value string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Unix(0, 0).UTC()
}

package engine

import (
	"net/url"
	"testing"
)

func TestParseParams(t *testing.T) {
	v := Packages()

	tests := []struct {
		name  string
		query string
		want  Params
	}{
		{"empty", "", Params{Query: "", Sort: "relevance", Page: 1}},
		{"query only", "q=git", Params{Query: "git", Sort: "relevance", Page: 1}},
		{"all set", "q=git&sort=stars&page=3", Params{Query: "git", Sort: "stars", Page: 3}},
		{"invalid page", "page=abc", Params{Sort: "relevance", Page: 1}},
		{"zero page", "page=0", Params{Sort: "relevance", Page: 1}},
		{"negative page", "page=-2", Params{Sort: "relevance", Page: 1}},
		{"unknown sort kept", "sort=bogus", Params{Sort: "bogus", Page: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			if got := ParseParams(values, v); got != tt.want {
				t.Errorf("ParseParams(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestParamsValuesOmitsDefaults(t *testing.T) {
	v := Packages()

	tests := []struct {
		name string
		p    Params
		want string
	}{
		{"home state", Params{Sort: "relevance", Page: 1}, ""},
		{"query only", Params{Query: "git", Sort: "relevance", Page: 1}, "q=git"},
		{"non-default sort", Params{Sort: "stars", Page: 1}, "sort=stars"},
		{"deep page", Params{Query: "git", Sort: "stars", Page: 3}, "page=3&q=git&sort=stars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Values(v).Encode(); got != tt.want {
				t.Errorf("Values() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParamsRoundTrip(t *testing.T) {
	v := Packages()
	states := []Params{
		{Sort: "relevance", Page: 1},
		{Query: `author:"jane" editor`, Sort: "relevance", Page: 1},
		{Query: "git", Sort: "stars", Page: 5},
		{Sort: "name-desc", Page: 2},
	}

	for _, p := range states {
		if got := ParseParams(p.Values(v), v); got != p {
			t.Errorf("round trip of %+v yielded %+v", p, got)
		}
	}
}

func TestIsHome(t *testing.T) {
	v := Packages()

	tests := []struct {
		name string
		p    Params
		want bool
	}{
		{"zero value", Params{}, true},
		{"defaults", Params{Sort: "relevance", Page: 1}, true},
		{"query set", Params{Query: "git"}, false},
		{"non-default sort", Params{Sort: "stars"}, false},
		{"deep page", Params{Page: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.IsHome(v); got != tt.want {
				t.Errorf("IsHome(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestVariantDefaults(t *testing.T) {
	p := Packages()
	if p.PageSize != 24 || p.DefaultSort != "relevance" {
		t.Errorf("packages: size=%d sort=%s", p.PageSize, p.DefaultSort)
	}
	l := Libraries()
	if l.PageSize != 30 || l.DefaultSort != "name" {
		t.Errorf("libraries: size=%d sort=%s", l.PageSize, l.DefaultSort)
	}
	if VariantByName("libraries").Name != "libraries" {
		t.Error("VariantByName(libraries) wrong variant")
	}
	if VariantByName("anything-else").Name != "packages" {
		t.Error("VariantByName default is not packages")
	}
}

package build

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAuthorListUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		want    AuthorList
		display string
	}{
		{"single string", `"jane"`, AuthorList{"jane"}, "jane"},
		{"array", `["jane", "bob"]`, AuthorList{"jane", "bob"}, "jane, bob"},
		{"empty array", `[]`, AuthorList{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got AuthorList
			if err := json.Unmarshal([]byte(tt.json), &got); err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if got.Display() != tt.display {
				t.Errorf("Display() = %q, want %q", got.Display(), tt.display)
			}
		})
	}

	var bad AuthorList
	if err := json.Unmarshal([]byte(`42`), &bad); err == nil {
		t.Error("expected error for numeric author")
	}
}

func TestCleanPlatforms(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"*"}, []string{}},
		{[]string{"osx"}, []string{"macos"}},
		{[]string{"windows", "osx", "linux"}, []string{"windows", "macos", "linux"}},
		{[]string{"*", "linux"}, []string{"linux"}},
		{nil, []string{}},
	}
	for _, tt := range tests {
		if got := CleanPlatforms(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("CleanPlatforms(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMinimalPackageReleaseOrder(t *testing.T) {
	pkg := Package{
		Name: "GitTools",
		Releases: []Release{
			{Date: "2020-01-01 10:00:00", Build: "*", Version: "1.0.0"},
			{Date: "2023-06-01 10:00:00", Build: ">=4107", Version: "3.0.0"},
			{Date: "2023-06-01 10:00:00", Build: ">=3000", Version: "2.5.0"},
		},
	}

	min := MinimalPackage(pkg)
	versions := make([]string, len(min.Releases))
	for i, rel := range min.Releases {
		versions[i] = rel.Version
	}
	// Newest date first; equal dates break by build number, highest first.
	want := []string{"3.0.0", "2.5.0", "1.0.0"}
	if !reflect.DeepEqual(versions, want) {
		t.Errorf("release order = %v, want %v", versions, want)
	}
}

func TestMinimalPackageDedupesReleases(t *testing.T) {
	pkg := Package{
		Name: "GitTools",
		Releases: []Release{
			{Date: "2023-06-01 10:00:00", Build: ">=4107", Version: "3.0.0", Platforms: []string{"linux", "osx"}},
			{Date: "2022-01-01 10:00:00", Build: ">=4107", Version: "2.0.0", Platforms: []string{"osx", "linux"}},
			{Date: "2021-01-01 10:00:00", Build: ">=3000", Version: "1.0.0", Platforms: []string{"windows"}},
		},
	}

	min := MinimalPackage(pkg)
	if len(min.Releases) != 2 {
		t.Fatalf("primary releases = %d, want 2", len(min.Releases))
	}
	// The newer of the duplicate pair wins the primary slot.
	if min.Releases[0].Version != "3.0.0" {
		t.Errorf("primary[0] = %s, want 3.0.0", min.Releases[0].Version)
	}
	if len(min.OtherReleases) != 1 || min.OtherReleases[0].Version != "2.0.0" {
		t.Errorf("other releases = %v, want [2.0.0]", min.OtherReleases)
	}
}

func TestMinimalPackagePlatforms(t *testing.T) {
	pkg := Package{
		Name: "GitTools",
		Releases: []Release{
			{Date: "2023-06-01", Platforms: []string{"linux", "osx"}},
			{Date: "2022-01-01", Platforms: []string{"*"}},
			{Date: "2021-01-01", Platforms: []string{"linux", "windows"}},
		},
	}

	min := MinimalPackage(pkg)
	want := []string{"linux", "macos", "windows"}
	if !reflect.DeepEqual(min.Platforms, want) {
		t.Errorf("platforms = %v, want %v", min.Platforms, want)
	}
}

func TestMinimalPackageDoesNotMutateInput(t *testing.T) {
	pkg := Package{
		Name: "GitTools",
		Releases: []Release{
			{Date: "2020-01-01", Version: "1.0.0", Platforms: []string{"osx"}},
			{Date: "2023-01-01", Version: "2.0.0"},
		},
	}

	MinimalPackage(pkg)

	if pkg.Releases[0].Version != "1.0.0" {
		t.Error("input releases were reordered")
	}
	if pkg.Releases[0].Platforms[0] != "osx" {
		t.Error("input platforms were rewritten")
	}
}

func TestStripBuildPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{">=4107", "4107"},
		{"<3000", "3000"},
		{"4107", "4107"},
		{"*", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := stripBuildPrefix(tt.in); got != tt.want {
			t.Errorf("stripBuildPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIndexRecord(t *testing.T) {
	pkg := Package{
		Name:        "GitTools",
		Description: "git helpers",
		Author:      AuthorList{"jane", "bob"},
		Stars:       42,
		Labels:      []string{"vcs", "git"},
		Releases: []Release{
			{Date: "2023-01-01", Platforms: []string{"linux", "osx"}},
		},
	}

	rec := IndexRecord(pkg)
	if rec.Name != "GitTools" || rec.Author != "jane, bob" {
		t.Errorf("record = %+v", rec)
	}
	if rec.Stars.Int() != 42 {
		t.Errorf("stars = %d, want 42", rec.Stars.Int())
	}
	if rec.Labels != "vcs,git" {
		t.Errorf("labels = %q", rec.Labels)
	}
	if rec.Platforms != "linux,macos" {
		t.Errorf("platforms = %q", rec.Platforms)
	}
	if rec.Permalink != "/packages/GitTools/" {
		t.Errorf("permalink = %q", rec.Permalink)
	}
}

func TestIndexRecordZeroStars(t *testing.T) {
	rec := IndexRecord(Package{Name: "Plain"})
	if rec.Stars != "" {
		t.Errorf("zero stars encoded as %q, want empty", rec.Stars)
	}
}

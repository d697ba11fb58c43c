package build

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkgdir/pkgdir/pkg/registry"
)

// Minimal is the per-page projection of a package: releases sorted and
// deduplicated, platforms cleaned and flattened, authors normalized.
type Minimal struct {
	Name          string     `json:"name"`
	Author        AuthorList `json:"author"`
	Stars         int        `json:"stars"`
	Releases      []Release  `json:"releases"`
	OtherReleases []Release  `json:"otherReleases,omitempty"`
	Labels        []string   `json:"labels,omitempty"`
	Platforms     []string   `json:"platforms,omitempty"`
}

// CleanPlatforms drops the universal "*" marker and renames the legacy
// osx identifier to macos.
func CleanPlatforms(platforms []string) []string {
	out := make([]string, 0, len(platforms))
	for _, p := range platforms {
		switch p {
		case "*":
			continue
		case "osx":
			out = append(out, "macos")
		default:
			out = append(out, p)
		}
	}
	return out
}

// MinimalPackage computes the projection for one package.
func MinimalPackage(pkg Package) Minimal {
	releases := make([]Release, len(pkg.Releases))
	copy(releases, pkg.Releases)
	for i := range releases {
		releases[i].Platforms = CleanPlatforms(releases[i].Platforms)
	}
	sortReleases(releases)

	// Releases sharing a build and platform set are near-duplicates;
	// sorted newest first, the first one seen wins.
	seen := make(map[string]bool, len(releases))
	var primary, other []Release
	for _, rel := range releases {
		key := releaseKey(rel)
		if seen[key] {
			other = append(other, rel)
			continue
		}
		seen[key] = true
		primary = append(primary, rel)
	}

	return Minimal{
		Name:          pkg.Name,
		Author:        pkg.Author,
		Stars:         pkg.Stars,
		Releases:      primary,
		OtherReleases: other,
		Labels:        pkg.Labels,
		Platforms:     uniquePlatforms(releases),
	}
}

// sortReleases orders newest first, breaking date ties by the supported
// build version (leading non-digits stripped), highest first.
func sortReleases(releases []Release) {
	sort.SliceStable(releases, func(i, j int) bool {
		di, dj := parseDate(releases[i].Date), parseDate(releases[j].Date)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return stripBuildPrefix(releases[i].Build) > stripBuildPrefix(releases[j].Build)
	})
}

// stripBuildPrefix removes the leading non-digit run from a build
// constraint such as ">=4107", leaving the comparable number text.
func stripBuildPrefix(build string) string {
	for i, r := range build {
		if r >= '0' && r <= '9' {
			return build[i:]
		}
	}
	return ""
}

func releaseKey(rel Release) string {
	platforms := make([]string, len(rel.Platforms))
	copy(platforms, rel.Platforms)
	sort.Strings(platforms)
	return rel.Build + "|" + strings.Join(platforms, "|")
}

func uniquePlatforms(releases []Release) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rel := range releases {
		for _, p := range rel.Platforms {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// IndexRecord flattens a package into the search index shape consumed by
// the browsing engine.
func IndexRecord(pkg Package) registry.Record {
	min := MinimalPackage(pkg)
	return registry.Record{
		Name:        min.Name,
		Author:      min.Author.Display(),
		Description: pkg.Description,
		Stars:       registry.Stars(itoaNonZero(min.Stars)),
		Labels:      strings.Join(min.Labels, ","),
		Platforms:   strings.Join(min.Platforms, ","),
		Permalink:   "/packages/" + min.Name + "/",
	}
}

// itoaNonZero keeps zero-star records falsy in the index, matching the
// display convention of hiding absent counts.
func itoaNonZero(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

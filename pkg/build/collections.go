package build

import "sort"

// homeSectionSize caps the newest and recently-updated landing sections.
const homeSectionSize = 9

func sortPackagesByName(pkgs []Package) {
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Name < pkgs[j].Name })
}

// ByStars returns the live packages ordered most-starred first.
func ByStars(pkgs []Package) []Package {
	out := make([]Package, len(pkgs))
	copy(out, pkgs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stars > out[j].Stars })
	return out
}

// Newest returns the most recently created packages, at most
// homeSectionSize of them.
func Newest(pkgs []Package) []Package {
	out := make([]Package, len(pkgs))
	copy(out, pkgs)
	sort.SliceStable(out, func(i, j int) bool {
		return parseDate(out[i].CreatedAt).After(parseDate(out[j].CreatedAt))
	})
	return clip(out)
}

// Updated returns the most recently modified packages, at most
// homeSectionSize of them.
func Updated(pkgs []Package) []Package {
	out := make([]Package, len(pkgs))
	copy(out, pkgs)
	sort.SliceStable(out, func(i, j int) bool {
		return parseDate(out[i].LastModified).After(parseDate(out[j].LastModified))
	})
	return clip(out)
}

func clip(pkgs []Package) []Package {
	if len(pkgs) > homeSectionSize {
		return pkgs[:homeSectionSize]
	}
	return pkgs
}

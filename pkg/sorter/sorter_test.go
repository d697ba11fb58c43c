package sorter

import (
	"reflect"
	"testing"

	"github.com/pkgdir/pkgdir/pkg/registry"
)

func names(records []registry.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestSort(t *testing.T) {
	records := []registry.Record{
		{Name: "zsh-helper", Author: "carol", Stars: "10"},
		{Name: "Autocomplete", Author: "alice", Stars: ""},
		{Name: "markdown", Author: "Bob", Stars: "3"},
	}

	tests := []struct {
		key  string
		want []string
	}{
		{ByName, []string{"Autocomplete", "markdown", "zsh-helper"}},
		{ByNameDesc, []string{"zsh-helper", "markdown", "Autocomplete"}},
		{ByStars, []string{"zsh-helper", "markdown", "Autocomplete"}},
		{ByStarsDesc, []string{"Autocomplete", "markdown", "zsh-helper"}},
		{ByAuthor, []string{"Autocomplete", "markdown", "zsh-helper"}},
		{ByAuthorDesc, []string{"zsh-helper", "markdown", "Autocomplete"}},
		{ByRelevance, []string{"zsh-helper", "Autocomplete", "markdown"}},
		{"bogus", []string{"zsh-helper", "Autocomplete", "markdown"}},
		{"", []string{"zsh-helper", "Autocomplete", "markdown"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := names(Sort(records, tt.key))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sort(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	records := []registry.Record{
		{Name: "b"}, {Name: "a"}, {Name: "c"},
	}
	before := names(records)

	Sort(records, ByName)

	if !reflect.DeepEqual(names(records), before) {
		t.Errorf("input slice was reordered: %v, want %v", names(records), before)
	}
}

func TestSortStableOnEqualKeys(t *testing.T) {
	// Records with equal star counts keep their incoming order.
	records := []registry.Record{
		{Name: "first", Stars: "5"},
		{Name: "second", Stars: "5"},
		{Name: "third", Stars: "5"},
	}

	got := names(Sort(records, ByStars))
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sort(stars) = %v, want %v", got, want)
	}
}

func TestSortMalformedStarsCountAsZero(t *testing.T) {
	records := []registry.Record{
		{Name: "a", Stars: "n/a"},
		{Name: "b", Stars: "7"},
	}

	got := names(Sort(records, ByStars))
	want := []string{"b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sort(stars) = %v, want %v", got, want)
	}
}

func TestKnown(t *testing.T) {
	for _, key := range Keys() {
		if !Known(key) {
			t.Errorf("Known(%q) = false, want true", key)
		}
	}
	if Known("bogus") {
		t.Error("Known(bogus) = true, want false")
	}
}

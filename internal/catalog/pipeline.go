package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// Options holds the environment-independent knobs of the pipeline.
type Options struct {
	// Locale drives the name collation order.
	Locale language.Tag
}

// DefaultOptions collates names with English rules.
func DefaultOptions() Options {
	return Options{Locale: language.English}
}

// ParseLocale returns the tag for s, falling back to English.
func ParseLocale(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return tag
}

// Recompute filters and sorts the snapshot's items for view.
// It is pure: the snapshot is not modified and the result is a fresh slice.
func Recompute(snap *Snapshot, view domain.ViewState, opts Options) []domain.Item {
	if snap == nil || snap.Failed() {
		return []domain.Item{}
	}
	out := Filter(snap.Items, view)
	Sort(out, view.Sort, opts)
	return out
}

// Filter returns the items matching the search text and category, in input order.
func Filter(items []domain.Item, view domain.ViewState) []domain.Item {
	fold := cases.Fold()
	needle := fold.String(view.Search)

	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if !view.AllCategories() && item.MainCategory != view.Category {
			continue
		}
		if !matchesSearch(fold, item, needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch(fold cases.Caser, item domain.Item, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(fold.String(item.Name), needle) ||
		strings.Contains(fold.String(item.Author), needle) ||
		strings.Contains(fold.String(item.Description), needle)
}

// Sort orders items in place, stably. Unknown keys leave the order unchanged.
func Sort(items []domain.Item, key domain.SortKey, opts Options) {
	switch key {
	case domain.SortNameAsc, domain.SortNameDesc:
		col := collate.New(opts.Locale)
		desc := key == domain.SortNameDesc
		slices.SortStableFunc(items, func(a, b domain.Item) int {
			if desc {
				return col.CompareString(b.Name, a.Name)
			}
			return col.CompareString(a.Name, b.Name)
		})
	case domain.SortDateDesc:
		slices.SortStableFunc(items, func(a, b domain.Item) int {
			return b.SubmittedOn.Compare(a.SubmittedOn)
		})
	case domain.SortDateAsc:
		slices.SortStableFunc(items, func(a, b domain.Item) int {
			return a.SubmittedOn.Compare(b.SubmittedOn)
		})
	}
}

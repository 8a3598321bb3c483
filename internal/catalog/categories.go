package catalog

import (
	"slices"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// Categories returns the distinct main categories of items, sorted lexicographically.
func Categories(items []domain.Item) []string {
	seen := make(map[string]struct{}, 16)
	out := make([]string, 0, 16)
	for _, item := range items {
		if item.MainCategory == "" {
			continue
		}
		if _, ok := seen[item.MainCategory]; ok {
			continue
		}
		seen[item.MainCategory] = struct{}{}
		out = append(out, item.MainCategory)
	}
	slices.Sort(out)
	return out
}

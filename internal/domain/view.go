package domain

import "strings"

// SortKey selects the ordering of the filtered view.
type SortKey string

const (
	SortNameAsc  SortKey = "name-asc"
	SortNameDesc SortKey = "name-desc"
	SortDateDesc SortKey = "date-desc"
	SortDateAsc  SortKey = "date-asc"

	DefaultSort = SortNameAsc
)

// SortOption is one entry of the sort selector.
type SortOption struct {
	Key   SortKey
	Label string
}

// SortOptions lists the fixed sort selector entries in display order.
var SortOptions = []SortOption{
	{Key: SortNameAsc, Label: "Name (A-Z)"},
	{Key: SortNameDesc, Label: "Name (Z-A)"},
	{Key: SortDateDesc, Label: "Newest first"},
	{Key: SortDateAsc, Label: "Oldest first"},
}

// Known reports whether k is one of the four supported keys.
func (k SortKey) Known() bool {
	switch k {
	case SortNameAsc, SortNameDesc, SortDateDesc, SortDateAsc:
		return true
	default:
		return false
	}
}

// ViewState is the transient user selection driving the displayed subset and order.
type ViewState struct {
	Search   string  `json:"search"`
	Category string  `json:"category"`
	Sort     SortKey `json:"sort"`
}

// NewViewState builds a view state from raw control values.
// An empty category selects the "all" sentinel and an empty sort selects def.
// Unknown sort keys are kept as-is: they disable reordering.
func NewViewState(search, category, sort string, def SortKey) ViewState {
	v := ViewState{
		Search:   search,
		Category: strings.TrimSpace(category),
		Sort:     SortKey(strings.TrimSpace(sort)),
	}
	if v.Category == "" {
		v.Category = CategoryAll
	}
	if v.Sort == "" {
		v.Sort = def
	}
	return v
}

// AllCategories reports whether the category filter is the "all" sentinel.
func (v ViewState) AllCategories() bool {
	return v.Category == CategoryAll
}

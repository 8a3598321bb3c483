package catalog

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/sources/assets"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func names(items []domain.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func view(search, category string, sort domain.SortKey) domain.ViewState {
	return domain.NewViewState(search, category, string(sort), domain.DefaultSort)
}

func fixtureItems() []domain.Item {
	return []domain.Item{
		{Name: "Fox Ears", Author: "Kitsune Works", Description: "Fluffy ears", MainCategory: "Accessories", SubmittedOn: day(2023, 5, 1)},
		{Name: "armor set", Author: "Smith", Description: "Heavy PLATE armor", MainCategory: "Clothing", SubmittedOn: day(2022, 1, 1)},
		{Name: "Beanie", Author: "Knitter", Description: "Warm hat", MainCategory: "Hats", SubmittedOn: domain.Epoch},
		{Name: "Ébène Chair", Author: "Atelier", Description: "Prop chair", MainCategory: "Props", SubmittedOn: day(2024, 2, 2)},
		{Name: "Cap", Author: "fox studio", Description: "Baseball cap", MainCategory: "hats", SubmittedOn: day(2021, 7, 7)},
	}
}

func TestRecomputeScenarioHatsDateDesc(t *testing.T) {
	records := []assets.Record{
		{"Name": "Hat A", "Category": "Hats", "Submitted on": "2023-01-01"},
		{"Name": "Hat B", "Category": "Hats", "Submitted on": "2024-01-01"},
		{"Name": "Prop C", "Category": "Props"},
	}
	snap := NewSnapshot("vrchat_assets.json", assets.Normalize(records), time.Now())

	got := Recompute(snap, view("", "Hats", domain.SortDateDesc), DefaultOptions())
	assert.Equal(t, []string{"Hat B", "Hat A"}, names(got))
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	items := fixtureItems()

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "empty matches all", search: "", want: []string{"Fox Ears", "armor set", "Beanie", "Ébène Chair", "Cap"}},
		{name: "name", search: "BEANIE", want: []string{"Beanie"}},
		{name: "author", search: "fox", want: []string{"Fox Ears", "Cap"}},
		{name: "description", search: "plate", want: []string{"armor set"}},
		{name: "accented", search: "ébène", want: []string{"Ébène Chair"}},
		{name: "no match", search: "zeppelin", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(items, view(tt.search, "", domain.DefaultSort))
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestFilterCategoryIsExact(t *testing.T) {
	items := fixtureItems()

	assert.Equal(t, []string{"Beanie"}, names(Filter(items, view("", "Hats", domain.DefaultSort))))
	assert.Equal(t, []string{"Cap"}, names(Filter(items, view("", "hats", domain.DefaultSort))))
	assert.Empty(t, Filter(items, view("", "HATS", domain.DefaultSort)))
	assert.Len(t, Filter(items, view("", domain.CategoryAll, domain.DefaultSort)), len(items))
}

func TestFilterCombinesSearchAndCategory(t *testing.T) {
	got := Filter(fixtureItems(), view("cap", "hats", domain.DefaultSort))
	assert.Equal(t, []string{"Cap"}, names(got))

	got = Filter(fixtureItems(), view("cap", "Hats", domain.DefaultSort))
	assert.Empty(t, got)
}

func TestSortByName(t *testing.T) {
	items := fixtureItems()

	Sort(items, domain.SortNameAsc, DefaultOptions())
	assert.Equal(t, []string{"armor set", "Beanie", "Cap", "Ébène Chair", "Fox Ears"}, names(items))

	Sort(items, domain.SortNameDesc, DefaultOptions())
	assert.Equal(t, []string{"Fox Ears", "Ébène Chair", "Cap", "Beanie", "armor set"}, names(items))
}

func TestSortDescReversesAsc(t *testing.T) {
	asc := fixtureItems()
	Sort(asc, domain.SortNameAsc, DefaultOptions())

	desc := fixtureItems()
	Sort(desc, domain.SortNameDesc, DefaultOptions())
	slices.Reverse(desc)

	assert.Equal(t, names(asc), names(desc))

	dateAsc := fixtureItems()
	Sort(dateAsc, domain.SortDateAsc, DefaultOptions())
	dateDesc := fixtureItems()
	Sort(dateDesc, domain.SortDateDesc, DefaultOptions())
	slices.Reverse(dateDesc)
	assert.Equal(t, names(dateAsc), names(dateDesc))
}

func TestSortByDateEpochFirst(t *testing.T) {
	items := fixtureItems()
	Sort(items, domain.SortDateAsc, DefaultOptions())

	require.NotEmpty(t, items)
	assert.Equal(t, "Beanie", items[0].Name)
	assert.Equal(t, []string{"Beanie", "Cap", "armor set", "Fox Ears", "Ébène Chair"}, names(items))
}

func TestSortIsStable(t *testing.T) {
	items := []domain.Item{
		{Name: "Same", Author: "first", SubmittedOn: day(2020, 1, 1)},
		{Name: "Other", Author: "x", SubmittedOn: day(2021, 1, 1)},
		{Name: "Same", Author: "second", SubmittedOn: day(2020, 1, 1)},
		{Name: "Same", Author: "third", SubmittedOn: day(2020, 1, 1)},
	}

	byName := slices.Clone(items)
	Sort(byName, domain.SortNameAsc, DefaultOptions())
	assert.Equal(t, []string{"x", "first", "second", "third"}, authors(byName))

	byDate := slices.Clone(items)
	Sort(byDate, domain.SortDateDesc, DefaultOptions())
	assert.Equal(t, []string{"x", "first", "second", "third"}, authors(byDate))
}

func TestSortUnknownKeyKeepsOrder(t *testing.T) {
	items := fixtureItems()
	want := names(items)

	Sort(items, domain.SortKey("popularity"), DefaultOptions())
	assert.Equal(t, want, names(items))
}

func TestRecomputeDoesNotMutateSnapshot(t *testing.T) {
	snap := NewSnapshot("a.json", fixtureItems(), time.Now())
	before := names(snap.Items)

	first := Recompute(snap, view("", "", domain.SortNameDesc), DefaultOptions())
	second := Recompute(snap, view("", "", domain.SortNameDesc), DefaultOptions())

	assert.Equal(t, before, names(snap.Items))
	assert.Equal(t, first, second)
}

func TestRecomputeFailedSnapshot(t *testing.T) {
	snap := FailedSnapshot("a.json", assert.AnError, time.Now())
	got := Recompute(snap, view("", "", domain.DefaultSort), DefaultOptions())
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, Recompute(nil, view("", "", domain.DefaultSort), DefaultOptions()))
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, "fr", ParseLocale("fr").String())
	assert.Equal(t, "en", ParseLocale("not a locale!").String())
}

func authors(items []domain.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Author)
	}
	return out
}

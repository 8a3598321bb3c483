package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/shelf/internal/catalog"
	"github.com/MrSnakeDoc/shelf/internal/sources/assets"
)

const fixture = `[
  {"Name": "Hat A", "Category": "Hats", "Submitted on": "2023-01-01"},
  {"Name": "Hat B", "Category": "Hats", "Submitted on": "2024-01-01"},
  {"Name": "Prop C", "Category": "Props"}
]`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vrchat_assets.json")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))
	return path
}

func testOpts(source string) Opts {
	return Opts{Source: source, Timeout: time.Second, MaxBytes: 1 << 20, Locale: "en"}
}

func TestLoadSnapshot(t *testing.T) {
	snap, err := loadSnapshot(context.Background(), testOpts(writeFixture(t)))
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Count())
	assert.Equal(t, []string{"Hats", "Props"}, snap.Categories)
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, err := loadSnapshot(context.Background(), testOpts(filepath.Join(t.TempDir(), "missing.json")))
	require.Error(t, err)
	var loadErr *assets.LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "missing.json", loadErr.File())
}

func snapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()
	snap, err := loadSnapshot(context.Background(), testOpts(writeFixture(t)))
	require.NoError(t, err)
	return snap
}

func TestListCmd(t *testing.T) {
	snap := snapshot(t)

	tests := []struct {
		name string
		cmd  ListCmd
		want string
	}{
		{name: "default order", cmd: ListCmd{ViewOpts: ViewOpts{Category: "all", Sort: "name-asc"}}, want: "Hat A\nHat B\nProp C\n"},
		{name: "hats newest first", cmd: ListCmd{ViewOpts: ViewOpts{Category: "Hats", Sort: "date-desc"}}, want: "Hat B\nHat A\n"},
		{name: "search", cmd: ListCmd{ViewOpts: ViewOpts{Query: "prop", Category: "all", Sort: "name-asc"}}, want: "Prop C\n"},
		{name: "dates", cmd: ListCmd{ViewOpts: ViewOpts{Category: "all", Sort: "date-asc"}, Dates: true}, want: "N/A\tProp C\n2023-01-01\tHat A\n2024-01-01\tHat B\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.cmd.run(snap, catalog.DefaultOptions(), &buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestCategoriesCmd(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CategoriesCmd{}).run(snapshot(t), &buf))
	assert.Equal(t, "Hats\nProps\n", buf.String())
}

func TestExportCmd(t *testing.T) {
	cmd := ExportCmd{ViewOpts: ViewOpts{Category: "Hats", Sort: "date-desc"}, Theme: "dark"}

	var buf bytes.Buffer
	require.NoError(t, cmd.run(snapshot(t), catalog.DefaultOptions(), &buf))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(buf.String()))
	require.NoError(t, err)

	theme, _ := doc.Find("html").Attr("data-theme")
	assert.Equal(t, "dark", theme)
	assert.Equal(t, 1, doc.Find("style").Length())
	assert.Equal(t, 0, doc.Find("script").Length())

	titles := []string{}
	doc.Find(".card-title").Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, s.Text())
	})
	assert.Equal(t, []string{"Hat B", "Hat A"}, titles)
}

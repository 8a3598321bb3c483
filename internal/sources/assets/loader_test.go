package assets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `[
  {"Name":"Hat A","Category":"Hats","Submitted on":"2023-01-01"},
  {"Name":"Hat B","Category":"Hats","Submitted on":"2024-01-01"},
  {"Name":"Prop C","Category":"Props"}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoaderLoadJSONFile(t *testing.T) {
	p := writeFile(t, "vrchat_assets.json", sampleJSON)

	records, err := NewLoader(p, LoaderOptions{}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Hat A", records[0][FieldName])
	assert.Nil(t, records[2][FieldSubmittedOn])
}

func TestLoaderLoadYAMLFile(t *testing.T) {
	content := `
- Name: Hat A
  Category: Hats
  Submitted on: "2023-01-01"
- Name: Prop C
  Download Link: https://example.com/prop
`
	p := writeFile(t, "assets.yaml", content)

	records, err := NewLoader(p, LoaderOptions{}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "https://example.com/prop", records[1][FieldLink])

	items := Normalize(records)
	assert.Equal(t, "Hats", items[0].MainCategory)
	assert.True(t, items[0].HasKnownDate())
}

func TestLoaderLoadYAMLDates(t *testing.T) {
	content := `
- Name: Plain
  Submitted on: 2023-01-01
- Name: Tagged
  Submitted on: !!timestamp 2022-06-01T12:00:00+01:00
- Name: Millis
  Submitted on: 1704067200000
`
	p := writeFile(t, "assets.yml", content)

	records, err := NewLoader(p, LoaderOptions{}).Load(context.Background())
	require.NoError(t, err)

	items := Normalize(records)
	require.Len(t, items, 3)
	assert.True(t, items[0].SubmittedOn.Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)), items[0].SubmittedOn)
	assert.True(t, items[1].SubmittedOn.Equal(time.Date(2022, 6, 1, 11, 0, 0, 0, time.UTC)), items[1].SubmittedOn)
	assert.True(t, items[2].SubmittedOn.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), items[2].SubmittedOn)
}

func TestLoaderLoadJSONWhitespaceAfterArray(t *testing.T) {
	p := writeFile(t, "a.json", "[{\"Name\":\"a\"}]\n\n  ")

	records, err := NewLoader(p, LoaderOptions{}).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLoaderLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "invalid json", file: "a.json", content: `[{"Name": }`},
		{name: "object instead of array", file: "a.json", content: `{"Name":"x"}`},
		{name: "null document", file: "a.json", content: `null`},
		{name: "empty document", file: "a.json", content: "  \n"},
		{name: "array of scalars", file: "a.json", content: `[1, 2]`},
		{name: "invalid yaml", file: "a.yml", content: "- Name: [unclosed"},
		{name: "trailing garbage", file: "a.json", content: `[{"Name":"a"}] trailing garbage`},
		{name: "second document", file: "a.json", content: `[{"Name":"a"}] [{"Name":"b"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, tt.file, tt.content)
			_, err := NewLoader(p, LoaderOptions{}).Load(context.Background())
			require.Error(t, err)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, p, loadErr.Source)
			assert.Equal(t, tt.file, loadErr.File())
		})
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	_, err := NewLoader("/nonexistent/path/vrchat_assets.json", LoaderOptions{}).Load(context.Background())

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, "vrchat_assets.json", loadErr.File())
}

func TestLoaderLoadTooLarge(t *testing.T) {
	p := writeFile(t, "big.json", sampleJSON)

	_, err := NewLoader(p, LoaderOptions{MaxBytes: 10}).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 10 bytes")
}

func TestLoaderLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/vrchat_assets.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	records, err := NewLoader(srv.URL+"/vrchat_assets.json", LoaderOptions{}).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = NewLoader(srv.URL+"/missing.json", LoaderOptions{}).Load(context.Background())
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "status: 404")
	assert.Equal(t, "missing.json", loadErr.File())
}

func TestLoaderLoadURLCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(srv.URL+"/a.json", LoaderOptions{}).Load(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSourceFile(t *testing.T) {
	tests := map[string]string{
		"vrchat_assets.json":                        "vrchat_assets.json",
		"/srv/data/vrchat_assets.json":              "vrchat_assets.json",
		"https://cdn.example.com/a/assets.yaml?v=2": "assets.yaml",
		`C:\data\assets.json`:                       "assets.json",
	}
	for in, want := range tests {
		assert.Equal(t, want, SourceFile(in), in)
	}
}

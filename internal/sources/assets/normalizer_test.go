package assets

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

func TestNormalizeRecordDefaults(t *testing.T) {
	item := NormalizeRecord(Record{})

	assert.Equal(t, domain.Item{
		Name:         domain.DefaultName,
		Author:       domain.DefaultAuthor,
		Description:  domain.DefaultDescription,
		Link:         "",
		MainCategory: domain.DefaultCategory,
		SubmittedOn:  domain.Epoch,
		SubmittedBy:  domain.DefaultSubmittedBy,
		Notes:        "",
		PreviewLink:  "",
	}, item)
	assert.False(t, item.HasKnownDate())
}

func TestNormalizeRecordNilRecord(t *testing.T) {
	var rec Record
	item := NormalizeRecord(rec)
	assert.Equal(t, domain.DefaultName, item.Name)
	assert.Equal(t, domain.Epoch, item.SubmittedOn)
}

func TestNormalizeRecordCoercion(t *testing.T) {
	rec := Record{
		FieldName:        "  Hat A  ",
		FieldAuthor:      42.0,
		FieldDescription: nil,
		FieldLink:        " https://example.com/hat ",
		FieldCategory:    "   ",
		FieldSubmittedOn: "2023-01-01",
		FieldSubmittedBy: true,
		FieldNotes:       []any{"not", "text"},
		FieldPreviewLink: map[string]any{"url": "x"},
	}

	item := NormalizeRecord(rec)

	assert.Equal(t, "Hat A", item.Name)
	assert.Equal(t, domain.DefaultAuthor, item.Author)
	assert.Equal(t, domain.DefaultDescription, item.Description)
	assert.Equal(t, "https://example.com/hat", item.Link)
	assert.Equal(t, domain.DefaultCategory, item.MainCategory)
	assert.True(t, item.SubmittedOn.Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, domain.DefaultSubmittedBy, item.SubmittedBy)
	assert.Empty(t, item.Notes)
	assert.Empty(t, item.PreviewLink)
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{name: "iso date", in: "2024-01-01", want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", in: "2024-03-05T10:20:30Z", want: time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)},
		{name: "with offset", in: "2024-03-05T10:20:30+02:00", want: time.Date(2024, 3, 5, 8, 20, 30, 0, time.UTC)},
		{name: "us style", in: "3/5/2024", want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "unparseable", in: "sometime last year", want: domain.Epoch},
		{name: "blank", in: "   ", want: domain.Epoch},
		{name: "missing", in: nil, want: domain.Epoch},
		{name: "bool", in: true, want: domain.Epoch},
		{name: "json millis", in: json.Number("1704067200000"), want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "float millis", in: 1704067200000.0, want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "yaml int millis", in: 0, want: domain.Epoch},
		{name: "millis beyond date range", in: json.Number("1e20"), want: domain.Epoch},
		{name: "negative millis beyond date range", in: -8.64e15 - 1, want: domain.Epoch},
		{name: "largest millis", in: 8.64e15, want: time.UnixMilli(8.64e15).UTC()},
		{name: "int64 overflow", in: int64(math.MaxInt64), want: domain.Epoch},
		{name: "infinite", in: math.Inf(1), want: domain.Epoch},
		{name: "yaml timestamp", in: time.Date(2022, 6, 1, 12, 0, 0, 0, time.FixedZone("x", 3600)), want: time.Date(2022, 6, 1, 11, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := timestamp(tt.in)
			assert.True(t, got.Equal(tt.want), "timestamp(%v) = %v, want %v", tt.in, got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestNormalizeKeepsOrderAndCount(t *testing.T) {
	records := []Record{
		{FieldName: "Hat A", FieldCategory: "Hats", FieldSubmittedOn: "2023-01-01"},
		{FieldName: "Hat B", FieldCategory: "Hats", FieldSubmittedOn: "2024-01-01"},
		{FieldName: "Prop C", FieldCategory: "Props"},
	}

	items := Normalize(records)
	require.Len(t, items, 3)
	assert.Equal(t, "Hat A", items[0].Name)
	assert.Equal(t, "Hat B", items[1].Name)
	assert.Equal(t, "Prop C", items[2].Name)
	assert.Equal(t, domain.Epoch, items[2].SubmittedOn)
}

func TestNormalizeEmpty(t *testing.T) {
	items := Normalize(nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

package assets

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// Normalize converts raw records to items. It never fails: any missing or
// malformed field is replaced by its documented default.
func Normalize(records []Record) []domain.Item {
	items := make([]domain.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, NormalizeRecord(rec))
	}
	return items
}

// NormalizeRecord maps one raw record to an item.
func NormalizeRecord(rec Record) domain.Item {
	return domain.Item{
		Name:         text(rec[FieldName], domain.DefaultName),
		Author:       text(rec[FieldAuthor], domain.DefaultAuthor),
		Description:  text(rec[FieldDescription], domain.DefaultDescription),
		Link:         text(rec[FieldLink], domain.DefaultLink),
		MainCategory: text(rec[FieldCategory], domain.DefaultCategory),
		SubmittedOn:  timestamp(rec[FieldSubmittedOn]),
		SubmittedBy:  text(rec[FieldSubmittedBy], domain.DefaultSubmittedBy),
		Notes:        text(rec[FieldNotes], domain.DefaultNotes),
		PreviewLink:  text(rec[FieldPreviewLink], domain.DefaultPreviewLink),
	}
}

// text trims string values; anything else, or a blank string, yields def.
func text(v any, def string) string {
	s, ok := v.(string)
	if !ok {
		return def
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}

// timestamp parses the submission date. Numbers are milliseconds since the
// epoch; strings go through dateparse in UTC. Failures yield domain.Epoch.
// yaml.v3 hands unquoted dates over as strings; time.Time only arrives for
// scalars explicitly tagged !!timestamp.
func timestamp(v any) time.Time {
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return domain.Epoch
		}
		t, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return domain.Epoch
		}
		return t.UTC()
	case time.Time:
		return val.UTC()
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return domain.Epoch
		}
		return fromMillis(f)
	case float64:
		return fromMillis(val)
	case int:
		return fromMillis(float64(val))
	case int64:
		return fromMillis(float64(val))
	default:
		return domain.Epoch
	}
}

// maxMillis is the widest instant a millisecond date may name, 100M days
// either side of the epoch. Anything beyond it is not a date.
const maxMillis = 8.64e15

func fromMillis(ms float64) time.Time {
	if math.IsNaN(ms) || math.Abs(ms) > maxMillis {
		return domain.Epoch
	}
	return time.UnixMilli(int64(ms)).UTC()
}

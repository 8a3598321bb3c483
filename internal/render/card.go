package render

import (
	"html/template"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/catalog"
	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/sources/assets"
)

// DateLayout is the card date format (YYYY-MM-DD, UTC).
const DateLayout = "2006-01-02"

// Card is the view model of one rendered item.
type Card struct {
	Name        string
	Author      string
	Category    string
	Description template.HTML
	Notes       template.HTML // empty hides the notes block
	SubmittedBy string
	Date        string
	Link        string // empty renders a disabled action
	PreviewLink string // empty hides the preview action
}

// NewCard builds the view model for item.
func NewCard(item domain.Item) Card {
	description := Linkify(item.Description)
	if description == "" {
		description = template.HTML(template.HTMLEscapeString(domain.DefaultDescription))
	}

	card := Card{
		Name:        item.Name,
		Author:      item.Author,
		Category:    item.MainCategory,
		Description: description,
		Notes:       Linkify(item.Notes),
		SubmittedBy: item.SubmittedBy,
		Date:        FormatDate(item),
		Link:        item.Link,
	}
	if IsWebURL(item.PreviewLink) {
		card.PreviewLink = item.PreviewLink
	}
	return card
}

// FormatDate renders the submission date, or "N/A" for the epoch default.
func FormatDate(item domain.Item) string {
	if !item.HasKnownDate() {
		return "N/A"
	}
	return item.SubmittedOn.In(time.UTC).Format(DateLayout)
}

// Grid is the content area: either cards, the empty placeholder, or the load failure panel.
type Grid struct {
	Cards      []Card
	LoadFailed bool
	DataFile   string
}

// Empty reports whether the placeholder should be shown.
func (g Grid) Empty() bool {
	return !g.LoadFailed && len(g.Cards) == 0
}

// NewGrid builds the content area for the recomputed items of snap.
func NewGrid(snap *catalog.Snapshot, items []domain.Item) Grid {
	if snap == nil {
		return Grid{Cards: []Card{}}
	}
	if snap.Failed() {
		return Grid{LoadFailed: true, DataFile: assets.SourceFile(snap.Source)}
	}
	cards := make([]Card, 0, len(items))
	for _, item := range items {
		cards = append(cards, NewCard(item))
	}
	return Grid{Cards: cards, DataFile: assets.SourceFile(snap.Source)}
}

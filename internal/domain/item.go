package domain

import "time"

// Defaults applied by normalization when a raw field is absent or invalid.
const (
	DefaultName        = "No Title"
	DefaultAuthor      = "Unknown Author"
	DefaultDescription = "No description available."
	DefaultCategory    = "Uncategorized"
	DefaultSubmittedBy = "Unknown"
	DefaultLink        = ""
	DefaultNotes       = ""
	DefaultPreviewLink = ""

	// CategoryAll is the category selector sentinel that disables category filtering.
	CategoryAll = "all"
)

// Epoch is the SubmittedOn value used when a record has no usable date.
// It always sorts before any real submission date.
var Epoch = time.Unix(0, 0).UTC()

// Item represents one normalized catalog entry.
//
// Every field is populated: normalization replaces missing or invalid
// values with the package defaults, so consumers never check for absence.
// Items are values and are never mutated once built.
type Item struct {
	// ─────────────────────────────
	// Display
	// ─────────────────────────────

	// Name is the asset title.
	Name string `json:"name"`

	// Author is the creator of the asset.
	Author string `json:"author"`

	// Description is free text; URLs and newlines are rendered as links and line breaks.
	Description string `json:"description"`

	// MainCategory drives the category filter (exact, case-sensitive match).
	MainCategory string `json:"mainCategory"`

	// Notes is optional free text, rendered only when non-empty.
	Notes string `json:"notes"`

	// ─────────────────────────────
	// Actions
	// ─────────────────────────────

	// Link is the download/view target. Empty means "not available".
	Link string `json:"link"`

	// PreviewLink is an optional preview target.
	PreviewLink string `json:"previewLink"`

	// ─────────────────────────────
	// Provenance
	// ─────────────────────────────

	// SubmittedOn is the submission time, Epoch when unknown.
	SubmittedOn time.Time `json:"submittedOn"`

	// SubmittedBy is who added the entry to the catalog.
	SubmittedBy string `json:"submittedBy"`
}

// HasKnownDate reports whether SubmittedOn came from the record rather than the Epoch default.
func (i Item) HasKnownDate() bool {
	return !i.SubmittedOn.Equal(Epoch)
}

package assets

// Record is one raw entry of the asset list. Values are whatever the
// document decoder produced: strings, numbers, booleans, nil, nested values.
type Record map[string]any

// Raw field names used by the asset list.
const (
	FieldName        = "Name"
	FieldAuthor      = "Author"
	FieldDescription = "Description"
	FieldLink        = "Download Link"
	FieldCategory    = "Category"
	FieldSubmittedOn = "Submitted on"
	FieldSubmittedBy = "Submitted by"
	FieldNotes       = "Notes"
	FieldPreviewLink = "Preview Link"
)

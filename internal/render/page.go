package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/MrSnakeDoc/shelf/internal/catalog"
	"github.com/MrSnakeDoc/shelf/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Template names.
const (
	templatePage = "page"
	templateGrid = "grid"
)

// Page is the view model of the full catalog page.
type Page struct {
	Title   string
	Version string
	Theme   domain.Theme
	View    domain.ViewState

	// Categories and SortOptions are nil when the catalog failed to load,
	// which leaves both selectors unpopulated.
	Categories  []string
	SortOptions []domain.SortOption

	Grid Grid

	// ReturnTo is where the theme toggle redirects after persisting the choice.
	ReturnTo string

	// Styles inlines the stylesheet for standalone exports. Empty links /static/app.css.
	Styles template.CSS

	// Standalone drops the server-backed theme toggle and script.
	Standalone bool
}

// NewPage assembles the page for a recomputed view of snap.
func NewPage(snap *catalog.Snapshot, view domain.ViewState, items []domain.Item, theme domain.Theme) Page {
	p := Page{
		Title: "Asset Catalog",
		Theme: theme,
		View:  view,
		Grid:  NewGrid(snap, items),
	}
	if snap != nil && !snap.Failed() {
		p.Categories = snap.Categories
		p.SortOptions = domain.SortOptions
	}
	return p
}

// Renderer executes the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("shelf").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustRenderer is NewRenderer for callers that cannot recover from broken templates.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Page writes the full document. Output is buffered so a failing template
// never leaves a half-written page behind.
func (r *Renderer) Page(w io.Writer, p Page) error {
	return r.execute(w, templatePage, p)
}

// Grid writes only the content area, replacing whatever was rendered before.
func (r *Renderer) Grid(w io.Writer, g Grid) error {
	return r.execute(w, templateGrid, g)
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Stylesheet returns the embedded stylesheet for inlining.
func Stylesheet() (template.CSS, error) {
	data, err := fs.ReadFile(staticFS, "static/app.css")
	if err != nil {
		return "", fmt.Errorf("failed to read stylesheet: %w", err)
	}
	return template.CSS(data), nil
}

// Static returns the embedded stylesheet and script, rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/shelf/internal/catalog"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/render"
)

// Index renders the full catalog page for the requested view state.
func Index(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := d.Catalog.Current()
		view := viewFromRequest(r, d.DefaultSort)
		items := catalog.Recompute(snap, view, d.Pipeline)

		page := render.NewPage(snap, view, items, resolveTheme(r, d))
		page.Version = d.Version
		page.ReturnTo = r.URL.RequestURI()

		writeHTMLHeaders(w)
		if err := d.Renderer.Page(w, page); err != nil {
			d.Logger.Error("failed to render page", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// Items renders only the content area, used by the page script to replace the grid.
func Items(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := d.Catalog.Current()
		view := viewFromRequest(r, d.DefaultSort)
		items := catalog.Recompute(snap, view, d.Pipeline)

		writeHTMLHeaders(w)
		if err := d.Renderer.Grid(w, render.NewGrid(snap, items)); err != nil {
			d.Logger.Error("failed to render items", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/shelf/internal/catalog"
	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/sources/assets"
)

type itemsResponse struct {
	Items      []domain.Item    `json:"items"`
	Total      int              `json:"total"`
	Categories []string         `json:"categories"`
	View       domain.ViewState `json:"view"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type errorResponse struct {
	Error string `json:"error"`
	File  string `json:"file,omitempty"`
}

// unavailable answers 503 when no usable snapshot exists and reports whether it did.
func unavailable(w http.ResponseWriter, snap *catalog.Snapshot, source string) bool {
	switch {
	case snap == nil:
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "catalog not loaded yet"})
		return true
	case snap.Failed():
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error: "failed to load assets",
			File:  assets.SourceFile(source),
		})
		return true
	default:
		return false
	}
}

// APIItems returns the filtered and sorted items as JSON.
func APIItems(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := d.Catalog.Current()
		if unavailable(w, snap, d.DataSource) {
			return
		}

		view := viewFromRequest(r, d.DefaultSort)
		items := catalog.Recompute(snap, view, d.Pipeline)

		writeJSON(w, http.StatusOK, itemsResponse{
			Items:      items,
			Total:      snap.Count(),
			Categories: snap.Categories,
			View:       view,
		})
	}
}

// APICategories returns the category set of the current snapshot.
func APICategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := d.Catalog.Current()
		if unavailable(w, snap, d.DataSource) {
			return
		}
		categories := snap.Categories
		if categories == nil {
			categories = []string{}
		}
		writeJSON(w, http.StatusOK, categoriesResponse{Categories: categories})
	}
}

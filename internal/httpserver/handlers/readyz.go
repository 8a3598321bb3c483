package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready      bool `json:"ready"`
	Items      int  `json:"items"`
	LoadFailed bool `json:"load_failed,omitempty"`
}

// Readyz reports ready once the first load attempt completed. A failed load
// is still ready: the page serves its fallback message.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := d.Catalog.Current()
		if snap == nil {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{
			Ready:      true,
			Items:      snap.Count(),
			LoadFailed: snap.Failed(),
		})
	}
}

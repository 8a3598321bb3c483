package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/theme"
)

// ToggleTheme flips the theme the visitor sees, stores the explicit choice
// and redirects back to the page it was posted from. When the page follows the
// browser's color scheme, the form reports the shown theme in the "shown" field.
func ToggleTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		next := theme.Shown(resolveTheme(r, d), r.PostFormValue("shown")).Toggle()

		visitor, ok := theme.VisitorFrom(r.Context())
		if !ok {
			id, err := d.Visitors.Issue(w)
			if err != nil {
				d.Logger.Error("failed to issue visitor cookie", logger.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			visitor = id
		}

		if err := d.Preferences.Set(r.Context(), visitor, next); err != nil {
			d.Logger.Error("failed to store theme preference",
				logger.String("visitor", visitor),
				logger.Error(err))
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		d.Logger.Debug("theme toggled",
			logger.String("visitor", visitor),
			logger.String("theme", string(next)))

		http.Redirect(w, r, safeRedirect(r.PostFormValue("redirect")), http.StatusSeeOther)
	}
}

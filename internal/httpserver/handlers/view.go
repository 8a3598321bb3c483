package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/theme"
)

// viewFromRequest maps the q, category and sort query parameters onto a view state.
func viewFromRequest(r *http.Request, def domain.SortKey) domain.ViewState {
	q := r.URL.Query()
	return domain.NewViewState(q.Get("q"), q.Get("category"), q.Get("sort"), def)
}

// resolveTheme returns the effective theme of the requesting visitor.
// Preference store failures degrade to the ambient preference.
func resolveTheme(r *http.Request, d deps.Deps) domain.Theme {
	ambient := ""
	if d.ClientHints {
		ambient = r.Header.Get(theme.ClientHintHeader)
	}

	visitor, ok := theme.VisitorFrom(r.Context())
	if !ok || d.Preferences == nil {
		return theme.Resolve("", false, ambient)
	}

	stored, found, err := d.Preferences.Get(r.Context(), visitor)
	if err != nil {
		d.Logger.Warn("failed to read theme preference",
			logger.String("visitor", visitor),
			logger.Error(err))
		return theme.Resolve("", false, ambient)
	}
	return theme.Resolve(stored, found, ambient)
}

// safeRedirect keeps only same-origin relative paths.
func safeRedirect(target string) string {
	target = strings.TrimSpace(target)
	if target == "" || !strings.HasPrefix(target, "/") {
		return "/"
	}
	if strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	if strings.ContainsAny(target, "\r\n") {
		return "/"
	}
	return target
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTMLHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
}

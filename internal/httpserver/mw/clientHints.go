package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/shelf/internal/theme"
)

// ClientHints asks browsers to send their preferred color scheme on
// subsequent requests. Responses vary on the hint since it changes the theme.
func ClientHints(enabled bool) func(http.Handler) http.Handler {
	if !enabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Accept-CH", theme.ClientHintHeader)
			h.Set("Critical-CH", theme.ClientHintHeader)
			h.Add("Vary", theme.ClientHintHeader)
			next.ServeHTTP(w, r)
		})
	}
}

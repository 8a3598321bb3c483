package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/shelf/internal/theme"
)

// Visitor attaches the verified visitor id from the signed cookie to the
// request context. Requests without a valid cookie pass through anonymous;
// ids are only minted when a visitor stores a preference.
func Visitor(visitors *theme.Visitors) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := visitors.Read(r); ok {
				r = r.WithContext(theme.WithVisitor(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// VisitorKey buckets rate limits by visitor id when one is known.
func VisitorKey(r *http.Request) string {
	id, _ := theme.VisitorFrom(r.Context())
	return id
}

package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/mw"
)

func init() { Register(registerPages) }

func registerPages(r chi.Router, d deps.Deps) {
	pages := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger), mw.ClientHints(d.ClientHints))
	pages.Get("/", handlers.Index(d))
	pages.Get("/items", handlers.Items(d))
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/sources/assets"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	ItemsLoaded *int   `json:"items_loaded,omitempty"`
	Categories  *int   `json:"categories,omitempty"`
	LastReload  string `json:"last_reload,omitempty"`
	File        string `json:"file,omitempty"`
	Stored      *int   `json:"stored,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Reloads    int                        `json:"reloads"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"catalog":     checkCatalog(d),
			"preferences": checkPreferences(r.Context(), d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     determineStatus(components),
			Reloads:    d.Catalog.Reloads(),
			Components: components,
		})
	}
}

func determineStatus(components map[string]componentStatus) string {
	if c, exists := components["catalog"]; exists && !c.OK {
		return "critical" // nothing to browse
	}
	if p, exists := components["preferences"]; exists && !p.OK {
		return "degraded" // theme choices not persisted
	}
	return "ok"
}

func checkCatalog(d deps.Deps) componentStatus {
	status := componentStatus{File: assets.SourceFile(d.DataSource), LastReload: "never"}

	snap := d.Catalog.Current()
	if snap == nil {
		status.Error = "not loaded yet"
		return status
	}

	items := snap.Count()
	categories := len(snap.Categories)
	status.ItemsLoaded = &items
	status.Categories = &categories
	status.LastReload = snap.LoadedAt.Format("2006-01-02 15:04:05")
	if snap.Failed() {
		status.Error = snap.Err.Error()
		return status
	}
	status.OK = true
	return status
}

// preferenceCounter is implemented by both preference stores.
type preferenceCounter interface {
	CountPreferences(ctx context.Context) (int, error)
}

// preferencePinger is implemented by remote preference stores.
type preferencePinger interface {
	Ping(ctx context.Context) error
}

func checkPreferences(ctx context.Context, d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var status componentStatus
	if p, remote := d.Preferences.(preferencePinger); remote {
		if err := p.Ping(ctx); err != nil {
			d.Logger.Warn("preference store ping failed", logger.Error(err))
			return componentStatus{
				OK:     false,
				Mode:   "redis",
				Impact: "theme-falls-back-to-client-hint",
				Error:  "unreachable",
			}
		}
		status = componentStatus{OK: true, Mode: "redis"}
	} else {
		status = componentStatus{
			OK:     true,
			Mode:   "memory",
			Impact: "preferences-lost-on-restart",
		}
	}

	if c, ok := d.Preferences.(preferenceCounter); ok {
		if n, err := c.CountPreferences(ctx); err == nil {
			status.Stored = &n
		}
	}
	return status
}

package deps

import (
	"time"

	"github.com/MrSnakeDoc/shelf/internal/catalog"
	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/render"
	"github.com/MrSnakeDoc/shelf/internal/theme"
)

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time // for testing, defaults to time.Now
	AllowedHosts    []string         // Host headers allowed to access the server
	AllowedCIDRS    []string         // IPs allowed to access reload/readyz/infra endpoints
	TrustProxy      bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateLimitBurst  int              // bucket size of rate limited endpoints
	RateLimitPerMin int              // bucket refill per minute
	DataSource      string           // Configured asset list path or URL
	Catalog         *catalog.Store   // Current catalog snapshot
	Pipeline        catalog.Options  // Filter/sort options (collation locale)
	DefaultSort     domain.SortKey   // Sort used when a request has none
	Renderer        *render.Renderer // Page and grid templates
	Preferences     theme.Store      // Theme preference store (redis or memory)
	Visitors        *theme.Visitors  // Signed visitor cookie codec
	ClientHints     bool             // advertise and honor Sec-CH-Prefers-Color-Scheme
	ReloadTrigger   chan struct{}    // Channel to trigger manual catalog reload
}

// Now returns the current time using TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}

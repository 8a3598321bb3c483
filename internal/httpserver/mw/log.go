package mw

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/theme"
	"github.com/MrSnakeDoc/shelf/internal/utils"
)

// viewParams are the query parameters that select a catalog view.
var viewParams = []string{"q", "category", "sort"}

// Log writes one http_request line per request. Catalog views carry their
// view state and the visitor id when known. Server errors log at error level,
// client errors at warn, static assets at debug.
func Log(loggerClient logger.Logger, trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			fields := []zap.Field{
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Int("status", status),
				logger.Int("bytes", ww.BytesWritten()),
				logger.Duration("duration", time.Since(start)),
				logger.String("client_ip", utils.ClientIP(r, trustProxy)),
				logger.String("request_id", middleware.GetReqID(r.Context())),
			}
			if visitor, ok := theme.VisitorFrom(r.Context()); ok {
				fields = append(fields, logger.String("visitor", visitor))
			}
			query := r.URL.Query()
			for _, p := range viewParams {
				if query.Has(p) {
					fields = append(fields, logger.String("view_"+p, query.Get(p)))
				}
			}

			switch {
			case status >= http.StatusInternalServerError:
				loggerClient.Error("http_request", fields...)
			case status >= http.StatusBadRequest:
				loggerClient.Warn("http_request", fields...)
			case strings.HasPrefix(r.URL.Path, "/static/"):
				loggerClient.Debug("http_request", fields...)
			default:
				loggerClient.Info("http_request", fields...)
			}
		})
	}
}

package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/utils"
)

// OperatorOnly guards the operator endpoints (/reload, /readyz, /infra) to the
// configured networks. An empty list leaves them open. Entries that are
// neither an address nor a CIDR are reported once and ignored.
func OperatorOnly(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	nets, rejected := utils.ParseNetworks(allowed)
	for _, entry := range rejected {
		log.Warn("ignoring invalid SHELF_ALLOWED_CIDRS entry", logger.String("entry", entry))
	}
	if len(nets) == 0 {
		if len(rejected) > 0 {
			// every entry was invalid: fail closed rather than open
			log.Warn("no valid operator networks, operator endpoints disabled")
			return func(http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				})
			}
		}
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr := utils.ClientAddr(r, trustProxy)
			if !nets.Contains(addr) {
				log.Warn("operator endpoint refused",
					logger.String("path", r.URL.Path),
					logger.String("client_ip", utils.ClientIP(r, trustProxy)))
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

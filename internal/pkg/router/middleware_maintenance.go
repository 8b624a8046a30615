package router

import (
	"net/http"

	"github.com/shandysiswandi/otpgate/internal/pkg/config"
)

// middlewareMaintenance answers 503 for routes listed in
// http.maintenance.endpoints. The list is re-read on every request so a
// config reload takes effect without a restart.
func middlewareMaintenance(cfg config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg != nil {
				route := matchedRoutePath(r)
				for _, endpoint := range cfg.GetArray("http.maintenance.endpoints") {
					if endpoint == route {
						writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
						return
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

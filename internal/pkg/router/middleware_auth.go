package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/otpgate/internal/pkg/jwt"
)

type tokenInspector interface {
	Inspect(token string) (jwt.Claims, error)
}

// Bearer requires an unexpired access token in the Authorization header and
// stores it for the handler. Signature checks happen at the identity
// provider, which is the only consumer of the token.
func (r *Router) Bearer() Middleware {
	inspector := r.inspector

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			scheme, token, ok := strings.Cut(strings.TrimSpace(req.Header.Get("Authorization")), " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				writeJSON(w, errorResponse{Message: "Authentication required"}, http.StatusUnauthorized)
				return
			}

			claims, err := inspector.Inspect(token)
			if err != nil || claims.TokenUse != "access" {
				writeJSON(w, errorResponse{Message: "Invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			ctx := jwt.SetAuth(req.Context(), jwt.Auth{Token: token, Claims: claims})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

package kit

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// MetricsAuth guards the scrape endpoint with a static bearer token. An empty
// token locks the endpoint entirely.
func MetricsAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if token == "" || !strings.HasPrefix(authz, bearerPrefix) {
				WriteError(w, http.StatusForbidden, "forbidden")
				return
			}

			got := strings.TrimPrefix(authz, bearerPrefix)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				WriteError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

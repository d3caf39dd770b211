package kit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ChiRoutePatternOrPath labels a request by its matched route ("/api/todos/{id}")
// and falls back to the raw path for unmatched requests.
func ChiRoutePatternOrPath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if rp := rctx.RoutePattern(); rp != "" {
			return rp
		}
	}
	return r.URL.Path
}

package todo

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"MiniTodo/pkg/kit"
)

// CORS is the browser allow-list for the bundled frontends.
var CORS = kit.CORSPolicy{
	Origins: []string{
		"http://localhost:5173",
		"http://localhost:3000",
		"http://127.0.0.1:5173",
		"http://localhost:8080",
		"http://127.0.0.1:8080",
	},
	Methods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	Headers:     []string{"Content-Type", "Authorization", "X-Requested-With"},
	Credentials: true,
}

const rateWindow = time.Minute

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	// WritesPerMinute caps POST/PUT/DELETE per client IP. Zero disables it.
	WritesPerMinute int
	// TrustProxy keys the limit on X-Forwarded-For instead of the peer address.
	TrustProxy bool
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, deps)

	r.Mount("/", s.Routes())
	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(kit.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
	r.Use(CORS.Middleware())

	limiter := kit.NewIPRateLimiter(deps.WritesPerMinute, rateWindow)
	limiter.TrustForwardedFor = deps.TrustProxy
	r.Use(limitWrites(limiter))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func limitWrites(l *kit.IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limited := l.Middleware(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
			default:
				limited.ServeHTTP(w, r)
			}
		})
	}
}

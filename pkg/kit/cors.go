package kit

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSPolicy is a fixed allow-list; it is not read from configuration.
type CORSPolicy struct {
	Origins     []string
	Methods     []string
	Headers     []string
	Credentials bool
}

func (p CORSPolicy) Middleware() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   p.Origins,
		AllowedMethods:   p.Methods,
		AllowedHeaders:   p.Headers,
		AllowCredentials: p.Credentials,
	})
}

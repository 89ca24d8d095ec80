package routes

import (
	"net/http"

	"github.com/rs/cors"

	"APEX_BACK-END/internal/config"
)

// CORSHandler wraps h with the CORS policy: credentials allowed, origins
// matched exactly against the configured allow-list. Requests without an
// Origin header (same-origin or non-browser clients) pass through
// untouched; disallowed origins get no CORS headers, so browsers block
// the response.
func CORSHandler(cfg *config.CORSConfig, h http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = struct{}{}
	}

	c := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			_, ok := allowed[origin]
			return ok
		},
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
	})

	return c.Handler(h)
}

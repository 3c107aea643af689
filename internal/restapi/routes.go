package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// SetRoutes registers the JSON endpoints on router.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/api/departures.json", api.departuresHandler)
	router.HandlerFunc(http.MethodGet, "/api/stops/:id", api.stopDeparturesHandler)
}

// WithMiddleware wraps handler with the middleware shared by every route:
// request logging, security headers, compression and per-client rate limiting.
func (api *RestAPI) WithMiddleware(handler http.Handler) http.Handler {
	if api.rateLimiter != nil {
		handler = api.rateLimiter.Handler(handler)
	}
	if api.compress != nil {
		handler = api.compress(handler)
	}
	handler = api.WithSecurityHeaders(handler)
	return NewRequestLoggingMiddleware(api.Logger)(handler)
}

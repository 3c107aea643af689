package restapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rue-joseph-bens/tramboard/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
	compress    func(http.Handler) http.HandlerFunc
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
// and response compression.
func NewRestAPI(app *app.Application) (*RestAPI, error) {
	compress, err := newCompressor(app.Config.Compression)
	if err != nil {
		return nil, fmt.Errorf("configuring compression: %w", err)
	}

	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
		compress:    compress,
	}, nil
}

// Shutdown stops background work owned by the API.
func (api *RestAPI) Shutdown() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}

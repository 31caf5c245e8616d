// Package sportsfeed provides clients for fetching live tournament game
// results from public scoreboard APIs and normalizing them into the
// application's result model.
package sportsfeed

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/akehoe/bracketlab/internal/models"
)

// Client defines the interface for a game result provider
type Client interface {
	// FetchResults retrieves the current state of every tournament game
	// the provider knows about, normalized to GameResult
	FetchResults(ctx context.Context) ([]models.GameResult, error)
	// Name identifies the provider in logs and errors
	Name() string
}

// newHTTPClient builds the http.Client shared by the real providers
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// newLimiter returns the outbound rate limiter shared by the real
// providers. The public scoreboard APIs are unauthenticated; one request
// per second with a small burst keeps the poller well under their limits.
func newLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Second), 3)
}

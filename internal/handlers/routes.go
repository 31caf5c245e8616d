package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger) // Custom conditional HTTP logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// Static files (served from embedded filesystem)
	r.Handle("/static/*", http.StripPrefix("/static/", h.staticServer))

	// Pages
	r.Get("/", h.handleIndex)
	r.Get("/login", h.handleLoginPage)
	r.Get("/brackets/{id}", h.handleBracketPage)

	// WebSocket
	r.Get("/ws", h.Hub.ServeWs)

	// Auth API (public)
	r.Post("/api/auth/register", h.handleRegister)
	r.Post("/api/auth/login", h.handleLogin)
	r.Post("/api/auth/logout", h.handleLogout)

	// Tournament and scores (public)
	r.Get("/api/tournament", h.handleTournament)
	r.Get("/api/scores/live", h.handleLiveScores)
	r.Get("/api/scores/leaderboard", h.handleLeaderboard)

	// Brackets are readable by anyone with the link, so share QR codes
	// work without an account
	r.Get("/api/brackets/{id}", h.handleGetBracket)
	r.Get("/api/brackets/{id}/score", h.handleBracketScore)
	r.Get("/api/brackets/{id}/qr", h.handleBracketQR)

	// Bracket API (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Sessions.RequireAuthAPI)

		r.Get("/api/auth/me", h.handleMe)

		r.Post("/api/brackets", h.handleCreateBracket)
		r.Get("/api/brackets", h.handleListBrackets)
		r.Delete("/api/brackets/{id}", h.handleDeleteBracket)
		r.Post("/api/brackets/{id}/submit", h.handleSubmitBracket)

		// Pick writes are rate limited per client IP
		pickLimiter := NewIPRateLimiter(rate.Limit(20), 40)
		r.With(RateLimitMiddleware(pickLimiter)).Post("/api/brackets/{id}/picks", h.handlePick)

		r.Post("/api/tournament/lock-time", h.handleSetLockTime)
	})

	return r
}

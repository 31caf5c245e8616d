package handlers

import (
	"net/http"

	"github.com/akehoe/bracketlab/internal/auth"
)

// handleRegister creates an account and starts a session
func (h *Handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.User.Register(r.Context(), req.Name, req.Passcode)
	if err != nil {
		respondError(w, err)
		return
	}

	token := h.Sessions.Create(user.ID)
	auth.SetSessionCookie(w, token)
	respondCreated(w, UserResponse{ID: user.ID, Name: user.Name})
}

// handleLogin verifies credentials and starts a session
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.User.Authenticate(r.Context(), req.Name, req.Passcode)
	if err != nil {
		respondError(w, err)
		return
	}

	token := h.Sessions.Create(user.ID)
	auth.SetSessionCookie(w, token)
	respondOK(w, UserResponse{ID: user.ID, Name: user.Name})
}

// handleLogout clears the session
func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		h.Sessions.Destroy(cookie.Value)
	}
	auth.ClearSessionCookie(w)
	respondOK(w, map[string]string{"message": "Logged out"})
}

// handleMe returns the authenticated account
func (h *Handlers) handleMe(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	user, err := h.User.GetUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, UserResponse{ID: user.ID, Name: user.Name})
}

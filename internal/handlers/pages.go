package handlers

import (
	"net/http"

	"github.com/akehoe/bracketlab/internal/models"
)

// IndexPageData holds data for the home page template
type IndexPageData struct {
	LoggedIn bool
}

// BracketPageData holds data for the bracket page template
type BracketPageData struct {
	BracketID string
	ReadOnly  bool
}

// LoginPageData holds data for the login template
type LoginPageData struct {
	Error string
}

// handleIndex renders the home page
func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	_, loggedIn := h.Sessions.UserFromRequest(r)
	h.templates.Index.Execute(w, IndexPageData{LoggedIn: loggedIn})
}

// handleLoginPage renders the login form
func (h *Handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Sessions.UserFromRequest(r); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.templates.Login.Execute(w, LoginPageData{})
}

// handleBracketPage renders a bracket. The owner of a draft gets the
// editable view; everyone else gets the read-only share view.
func (h *Handlers) handleBracketPage(w http.ResponseWriter, r *http.Request) {
	id, err := stringParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	b, err := h.Bracket.GetBracket(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	userID, _ := h.Sessions.UserFromRequest(r)
	readOnly := b.UserID != userID || b.Status != models.StatusDraft
	h.templates.Bracket.Execute(w, BracketPageData{BracketID: b.ID, ReadOnly: readOnly})
}

package handlers

import (
	"net/http"

	"github.com/akehoe/bracketlab/internal/auth"
)

// handleCreateBracket creates a new empty draft bracket
func (h *Handlers) handleCreateBracket(w http.ResponseWriter, r *http.Request) {
	var req BracketCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	b, err := h.Bracket.CreateBracket(r.Context(), auth.UserID(r.Context()), req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, toBracketResponse(b))
}

// handleListBrackets returns the caller's brackets
func (h *Handlers) handleListBrackets(w http.ResponseWriter, r *http.Request) {
	brackets, err := h.Bracket.ListMyBrackets(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]BracketResponse, 0, len(brackets))
	for i := range brackets {
		out = append(out, toBracketResponse(&brackets[i]))
	}
	respondOK(w, out)
}

// handleGetBracket returns one bracket; anyone with the link may view it,
// only the owner can edit a draft
func (h *Handlers) handleGetBracket(w http.ResponseWriter, r *http.Request) {
	id, err := stringParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	b, err := h.Bracket.GetBracket(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, toBracketResponse(b))
}

// handlePick records a winner prediction on a draft bracket
func (h *Handlers) handlePick(w http.ResponseWriter, r *http.Request) {
	id, err := stringParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req PickRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	b, err := h.Bracket.ApplyPick(r.Context(), auth.UserID(r.Context()), id, req.GameID, req.TeamID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, toBracketResponse(b))
}

// handleSubmitBracket submits a complete draft into the standings
func (h *Handlers) handleSubmitBracket(w http.ResponseWriter, r *http.Request) {
	id, err := stringParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	b, err := h.Bracket.SubmitBracket(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, toBracketResponse(b))
}

// handleDeleteBracket removes one of the caller's brackets
func (h *Handlers) handleDeleteBracket(w http.ResponseWriter, r *http.Request) {
	id, err := stringParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Bracket.DeleteBracket(r.Context(), auth.UserID(r.Context()), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// handleBracketQR serves a QR code PNG linking to the bracket share page
func (h *Handlers) handleBracketQR(w http.ResponseWriter, r *http.Request) {
	id, err := stringParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	png, err := h.Bracket.GenerateShareQR(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// handleBracketScore computes the bracket's score on demand
func (h *Handlers) handleBracketScore(w http.ResponseWriter, r *http.Request) {
	id, err := stringParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	score, err := h.Scores.ScoreBracket(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, ScoreResponse{BracketID: id, Current: score.Current, MaxPossible: score.MaxPossible})
}

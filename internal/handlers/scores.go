package handlers

import "net/http"

// handleTournament returns the full tournament structure
func (h *Handlers) handleTournament(w http.ResponseWriter, r *http.Request) {
	view, err := h.Tournament.View(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, view)
}

// handleLiveScores returns the latest normalized game results
func (h *Handlers) handleLiveScores(w http.ResponseWriter, r *http.Request) {
	live, err := h.Scores.LiveResults(r.Context())
	if err != nil {
		respondError(w, Unavailable("Live scores are temporarily unavailable"))
		return
	}
	respondOK(w, live)
}

// handleLeaderboard returns every submitted bracket, scored and ranked
func (h *Handlers) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Scores.Leaderboard(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, entries)
}

// handleSetLockTime sets the tournament start, after which brackets lock
func (h *Handlers) handleSetLockTime(w http.ResponseWriter, r *http.Request) {
	var req LockTimeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.LockTime <= 0 {
		respondError(w, BadRequest("lock_time must be a unix timestamp"))
		return
	}

	if err := h.Tournament.SetLockTime(r.Context(), req.LockTime); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]int64{"lock_time": req.LockTime})
}

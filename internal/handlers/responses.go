package handlers

import "github.com/akehoe/bracketlab/internal/models"

// UserResponse is the JSON response for account operations
type UserResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BracketResponse is the JSON response for bracket operations
type BracketResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	UserID      string            `json:"user_id"`
	Status      string            `json:"status"`
	Predictions map[string]string `json:"predictions"`
	UpdatedAt   int64             `json:"updated_at"`
}

// ScoreResponse is the JSON response for on-demand scoring
type ScoreResponse struct {
	BracketID   string `json:"bracket_id"`
	Current     int    `json:"current"`
	MaxPossible int    `json:"max_possible"`
}

func toBracketResponse(b *models.Bracket) BracketResponse {
	return BracketResponse{
		ID:          b.ID,
		Name:        b.Name,
		UserID:      b.UserID,
		Status:      string(b.Status),
		Predictions: b.Predictions,
		UpdatedAt:   b.UpdatedAt.Unix(),
	}
}

package models

import "time"

// Team is one entry in the seeded tournament field. Immutable once the
// season catalog is fixed; Seed is unique within a region.
type Team struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Seed   int    `json:"seed"`
	Region string `json:"region"`
}

// Slot identifies one of the two input positions of a game.
type Slot string

const (
	SlotTop    Slot = "top"
	SlotBottom Slot = "bottom"
)

// Game is a node in the tournament graph. TopTeamID/BottomTeamID are set
// from the catalog for round 1 and stay empty for later rounds; occupancy
// there is derived from a bracket's predictions. NextGameID is empty only
// for the championship game.
type Game struct {
	ID           string `json:"id"`
	Round        int    `json:"round"`
	Region       string `json:"region"`
	TopTeamID    string `json:"top_team_id,omitempty"`
	BottomTeamID string `json:"bottom_team_id,omitempty"`
	NextGameID   string `json:"next_game_id,omitempty"`
	FeederSlot   Slot   `json:"feeder_slot,omitempty"`
}

// BracketStatus is the lifecycle state of a bracket. Transitions are
// monotonic: Draft -> Submitted -> Locked -> Completed.
type BracketStatus string

const (
	StatusDraft     BracketStatus = "DRAFT"
	StatusSubmitted BracketStatus = "SUBMITTED"
	StatusLocked    BracketStatus = "LOCKED"
	StatusCompleted BracketStatus = "COMPLETED"
)

// Bracket is one user's set of predictions. Predictions maps game id to
// the predicted winning team id; absent keys mean no pick yet.
type Bracket struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Name        string            `json:"name"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Predictions map[string]string `json:"predictions"`
	Status      BracketStatus     `json:"status"`
}

// Clone returns a deep copy of the bracket. Pick application works on a
// copy so a failed call leaves the caller's value untouched.
func (b Bracket) Clone() Bracket {
	preds := make(map[string]string, len(b.Predictions))
	for k, v := range b.Predictions {
		preds[k] = v
	}
	b.Predictions = preds
	return b
}

// GameStatus is the normalized state of a real game from a score feed.
type GameStatus string

const (
	GameScheduled GameStatus = "SCHEDULED"
	GameLive      GameStatus = "LIVE"
	GameFinal     GameStatus = "FINAL"
)

// GameResult is one normalized feed entry. WinnerID is only meaningful
// when Status is FINAL.
type GameResult struct {
	GameID   string     `json:"game_id"`
	Status   GameStatus `json:"status"`
	WinnerID string     `json:"winner_id,omitempty"`
}

// Score is the derived score view for one bracket.
type Score struct {
	Current     int `json:"current"`
	MaxPossible int `json:"max_possible"`
}

// User is an account that owns brackets.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// WSMessage is the envelope for WebSocket broadcasts.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

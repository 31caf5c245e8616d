package handlers

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Name     string `json:"name"`
	Passcode string `json:"passcode"`
}

// LoginRequest represents a request to log in
type LoginRequest struct {
	Name     string `json:"name"`
	Passcode string `json:"passcode"`
}

// BracketCreateRequest represents a request to create a bracket
type BracketCreateRequest struct {
	Name string `json:"name"`
}

// PickRequest represents a request to record a winner prediction
type PickRequest struct {
	GameID string `json:"game_id"`
	TeamID string `json:"team_id"`
}

// LockTimeRequest represents a request to set the tournament start
type LockTimeRequest struct {
	LockTime int64 `json:"lock_time"`
}

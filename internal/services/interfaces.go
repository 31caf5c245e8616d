package services

import (
	"context"

	"github.com/akehoe/bracketlab/internal/models"
)

// UserServicer defines the interface for account operations
type UserServicer interface {
	Register(ctx context.Context, name, passcode string) (*models.User, error)
	Authenticate(ctx context.Context, name, passcode string) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// TournamentServicer defines the interface for tournament structure operations
type TournamentServicer interface {
	View(ctx context.Context) (*TournamentView, error)
	LockTime(ctx context.Context) (int64, error)
	SetLockTime(ctx context.Context, unix int64) error
}

// BracketServicer defines the interface for bracket operations
type BracketServicer interface {
	CreateBracket(ctx context.Context, userID, name string) (*models.Bracket, error)
	ListMyBrackets(ctx context.Context, userID string) ([]models.Bracket, error)
	GetBracket(ctx context.Context, id string) (*models.Bracket, error)
	ApplyPick(ctx context.Context, userID, bracketID, gameID, teamID string) (*models.Bracket, error)
	SubmitBracket(ctx context.Context, userID, bracketID string) (*models.Bracket, error)
	DeleteBracket(ctx context.Context, userID, bracketID string) error
	GenerateShareQR(ctx context.Context, bracketID string) ([]byte, error)
}

// ScoreServicer defines the interface for scoring operations
type ScoreServicer interface {
	LiveResults(ctx context.Context) (*LiveResults, error)
	ScoreBracket(ctx context.Context, bracketID string) (*models.Score, error)
	Leaderboard(ctx context.Context) ([]LeaderboardEntry, error)
	Refresh(ctx context.Context) (*LiveResults, error)
	SetBroadcaster(b Broadcaster)
}

// Ensure service implementations satisfy their interfaces
var (
	_ UserServicer       = (*UserService)(nil)
	_ TournamentServicer = (*TournamentService)(nil)
	_ BracketServicer    = (*BracketService)(nil)
	_ ScoreServicer      = (*ScoreService)(nil)
)

package repository

import (
	"context"
	"time"

	"github.com/akehoe/bracketlab/internal/models"
)

// UserRepository defines account data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User, passcodeHash string) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByName(ctx context.Context, name string) (*models.User, string, error)
}

// BracketRepository defines bracket data operations. PutBracket is a full
// replace of one row, which gives the single-bracket atomicity the pick
// path relies on.
type BracketRepository interface {
	GetBracket(ctx context.Context, id string) (*models.Bracket, error)
	PutBracket(ctx context.Context, b models.Bracket) error
	ListBracketsByUser(ctx context.Context, userID string) ([]models.Bracket, error)
	ListSubmittedBrackets(ctx context.Context) ([]models.Bracket, error)
	DeleteBracket(ctx context.Context, id string) error
}

// ResultRepository defines the cache of normalized feed results.
type ResultRepository interface {
	UpsertResults(ctx context.Context, results []models.GameResult, fetchedAt time.Time) error
	ListResults(ctx context.Context) (map[string]models.GameResult, error)
	ResultsFetchedAt(ctx context.Context) (time.Time, error)
}

// SettingsRepository defines settings data operations
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// FullRepository combines all repository interfaces
// Use this when a service needs access to multiple domains
type FullRepository interface {
	UserRepository
	BracketRepository
	ResultRepository
	SettingsRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)

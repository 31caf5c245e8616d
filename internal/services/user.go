package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akehoe/bracketlab/internal/logger"
	"github.com/akehoe/bracketlab/internal/models"
	"github.com/akehoe/bracketlab/internal/repository"
)

// UserService handles account registration and authentication
type UserService struct {
	log  logger.Logger
	repo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(log logger.Logger, repo repository.UserRepository) *UserService {
	return &UserService{log: log, repo: repo}
}

// Register creates a new account with a hashed passcode
func (s *UserService) Register(ctx context.Context, name, passcode string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(passcode) < 4 {
		return nil, ErrPasscodeTooShort
	}

	user := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	hash, err := hashPasscode(passcode)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateUser(ctx, user, hash); err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	s.log.Info("User registered", "user_id", user.ID, "name", name)
	return &user, nil
}

// Authenticate verifies a name/passcode pair and returns the account.
// Unknown names and wrong passcodes both return ErrInvalidCredentials so
// callers cannot probe for registered names.
func (s *UserService) Authenticate(ctx context.Context, name, passcode string) (*models.User, error) {
	user, hash, err := s.repo.GetUserByName(ctx, strings.TrimSpace(name))
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !verifyPasscode(passcode, hash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser retrieves an account by id
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetUser(ctx, id)
}

// hashPasscode returns "salt$digest" with a random per-account salt
func hashPasscode(passcode string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	digest := sha256.Sum256(append(salt, []byte(passcode)...))
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(digest[:]), nil
}

func verifyPasscode(passcode, stored string) bool {
	saltHex, digestHex, ok := strings.Cut(stored, "$")
	if !ok {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(digestHex)
	if err != nil {
		return false
	}
	got := sha256.Sum256(append(salt, []byte(passcode)...))
	return subtle.ConstantTimeCompare(got[:], want) == 1
}

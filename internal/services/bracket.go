package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/akehoe/bracketlab/internal/bracket"
	"github.com/akehoe/bracketlab/internal/logger"
	"github.com/akehoe/bracketlab/internal/models"
	"github.com/akehoe/bracketlab/internal/repository"
)

// BracketServiceRepository defines the repository methods needed by BracketService
type BracketServiceRepository interface {
	repository.BracketRepository
	repository.ResultRepository
	repository.SettingsRepository
}

// BracketService handles bracket lifecycle and pick business logic.
// Every mutation is a read-modify-write over the predictions JSON, so a
// per-bracket mutex serializes operations touching the same bracket.
type BracketService struct {
	log        logger.Logger
	repo       BracketServiceRepository
	tournament *TournamentService

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewBracketService creates a new BracketService
func NewBracketService(log logger.Logger, repo BracketServiceRepository, tournament *TournamentService) *BracketService {
	return &BracketService{
		log:        log,
		repo:       repo,
		tournament: tournament,
		locks:      make(map[string]*sync.Mutex),
	}
}

// bracketLock returns the mutex serializing access to one bracket
func (s *BracketService) bracketLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// CreateBracket creates a new empty draft bracket for a user
func (s *BracketService) CreateBracket(ctx context.Context, userID, name string) (*models.Bracket, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	now := time.Now().UTC()
	b := models.Bracket{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		CreatedAt:   now,
		UpdatedAt:   now,
		Predictions: map[string]string{},
		Status:      models.StatusDraft,
	}
	if err := s.repo.PutBracket(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info("Bracket created", "bracket_id", b.ID, "user_id", userID)
	return &b, nil
}

// ListMyBrackets returns all brackets owned by a user
func (s *BracketService) ListMyBrackets(ctx context.Context, userID string) ([]models.Bracket, error) {
	brackets, err := s.repo.ListBracketsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range brackets {
		if err := s.refreshStatusLocked(ctx, &brackets[i]); err != nil {
			return nil, err
		}
	}
	return brackets, nil
}

// GetBracket retrieves a bracket by id. Reads are not restricted to the
// owner; the share page shows anyone's bracket read-only.
func (s *BracketService) GetBracket(ctx context.Context, id string) (*models.Bracket, error) {
	lock := s.bracketLock(id)
	lock.Lock()
	defer lock.Unlock()
	return s.getBracket(ctx, id)
}

// getBracket loads and status-refreshes a bracket. The caller must hold
// the bracket's lock.
func (s *BracketService) getBracket(ctx context.Context, id string) (*models.Bracket, error) {
	b, err := s.repo.GetBracket(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, ErrBracketNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.refreshStatus(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ApplyPick records a winner prediction for one game, cascading away any
// downstream picks the change invalidates. Only draft brackets owned by
// the caller can be changed.
func (s *BracketService) ApplyPick(ctx context.Context, userID, bracketID, gameID, teamID string) (*models.Bracket, error) {
	lock := s.bracketLock(bracketID)
	lock.Lock()
	defer lock.Unlock()

	b, err := s.getBracket(ctx, bracketID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrNotOwner
	}
	if b.Status != models.StatusDraft {
		return nil, ErrBracketLocked
	}

	updated, err := bracket.ApplyPick(s.tournament.Structure(), *b, gameID, teamID)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.PutBracket(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SubmitBracket moves a complete draft bracket into the standings. A
// bracket cannot be submitted after the tournament has started.
func (s *BracketService) SubmitBracket(ctx context.Context, userID, bracketID string) (*models.Bracket, error) {
	lock := s.bracketLock(bracketID)
	lock.Lock()
	defer lock.Unlock()

	b, err := s.getBracket(ctx, bracketID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrNotOwner
	}
	if b.Status != models.StatusDraft {
		return nil, ErrAlreadySubmitted
	}
	if len(b.Predictions) != len(s.tournament.Structure().Games) {
		return nil, ErrBracketIncomplete
	}

	locked, err := s.pastLockTime(ctx)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, ErrBracketLocked
	}

	b.Status = models.StatusSubmitted
	b.UpdatedAt = time.Now().UTC()
	if err := s.repo.PutBracket(ctx, *b); err != nil {
		return nil, err
	}

	s.log.Info("Bracket submitted", "bracket_id", b.ID, "user_id", userID)
	return b, nil
}

// DeleteBracket removes a bracket owned by the caller
func (s *BracketService) DeleteBracket(ctx context.Context, userID, bracketID string) error {
	lock := s.bracketLock(bracketID)
	lock.Lock()
	defer lock.Unlock()

	b, err := s.getBracket(ctx, bracketID)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return ErrNotOwner
	}
	return s.repo.DeleteBracket(ctx, bracketID)
}

// GenerateShareQR renders a QR code PNG linking to the bracket's
// read-only share page.
func (s *BracketService) GenerateShareQR(ctx context.Context, bracketID string) ([]byte, error) {
	if _, err := s.GetBracket(ctx, bracketID); err != nil {
		return nil, err
	}

	baseURL, err := s.repo.GetSetting(ctx, "base_url")
	if err != nil || baseURL == "" {
		return nil, ErrBaseURLNotSet
	}

	shareURL := fmt.Sprintf("%s/brackets/%s", strings.TrimSuffix(baseURL, "/"), bracketID)
	return qrcode.Encode(shareURL, qrcode.Medium, 256)
}

// pastLockTime reports whether the tournament start has passed. An unset
// lock time means brackets never lock.
func (s *BracketService) pastLockTime(ctx context.Context) (bool, error) {
	lockTime, err := s.tournament.LockTime(ctx)
	if err != nil {
		return false, err
	}
	return lockTime > 0 && time.Now().Unix() >= lockTime, nil
}

// refreshStatusLocked runs refreshStatus under the bracket's lock, for
// callers that don't already hold it
func (s *BracketService) refreshStatusLocked(ctx context.Context, b *models.Bracket) error {
	lock := s.bracketLock(b.ID)
	lock.Lock()
	defer lock.Unlock()
	return s.refreshStatus(ctx, b)
}

// refreshStatus advances a bracket's status when external conditions have
// moved on: submitted brackets lock once the tournament starts, and
// locked brackets complete once the championship goes final. Transitions
// are monotonic and persisted on the spot. The caller must hold the
// bracket's lock.
func (s *BracketService) refreshStatus(ctx context.Context, b *models.Bracket) error {
	changed := false

	if b.Status == models.StatusSubmitted {
		locked, err := s.pastLockTime(ctx)
		if err != nil {
			return err
		}
		if locked {
			b.Status = models.StatusLocked
			changed = true
		}
	}

	if b.Status == models.StatusLocked {
		results, err := s.repo.ListResults(ctx)
		if err != nil {
			return err
		}
		champ := results[bracket.ChampionshipGameID()]
		if champ.Status == models.GameFinal && champ.WinnerID != "" {
			b.Status = models.StatusCompleted
			changed = true
		}
	}

	if changed {
		// Persist so list queries and the leaderboard see the new status
		// without recomputing it.
		if err := s.repo.PutBracket(ctx, *b); err != nil {
			return err
		}
	}
	return nil
}

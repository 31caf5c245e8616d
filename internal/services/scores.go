package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/akehoe/bracketlab/internal/bracket"
	"github.com/akehoe/bracketlab/internal/logger"
	"github.com/akehoe/bracketlab/internal/models"
	"github.com/akehoe/bracketlab/internal/repository"
	"github.com/akehoe/bracketlab/pkg/sportsfeed"
)

// DefaultResultsTTL is how long cached feed results stay fresh
const DefaultResultsTTL = 30 * time.Second

// Broadcaster defines the interface for pushing updates to clients
type Broadcaster interface {
	BroadcastScoreUpdate(results *LiveResults)
}

// ScoreServiceRepository defines the repository methods needed by ScoreService
type ScoreServiceRepository interface {
	repository.BracketRepository
	repository.ResultRepository
	repository.UserRepository
}

// ScoreService handles live results and bracket scoring. Providers are
// tried in order; the first one that answers wins.
type ScoreService struct {
	log        logger.Logger
	repo       ScoreServiceRepository
	tournament *TournamentService
	feeds      []sportsfeed.Client
	ttl        time.Duration

	mu          sync.Mutex
	broadcaster Broadcaster
}

// NewScoreService creates a new ScoreService
func NewScoreService(log logger.Logger, repo ScoreServiceRepository, tournament *TournamentService, feeds []sportsfeed.Client) *ScoreService {
	return &ScoreService{
		log:        log,
		repo:       repo,
		tournament: tournament,
		feeds:      feeds,
		ttl:        DefaultResultsTTL,
	}
}

// SetBroadcaster sets the broadcaster for pushing score updates
func (s *ScoreService) SetBroadcaster(b Broadcaster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcaster = b
}

// SetTTL overrides the freshness window for cached results
func (s *ScoreService) SetTTL(ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ttl = ttl
}

func (s *ScoreService) resultsTTL() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ttl
}

// LiveResults is the normalized snapshot served to clients
type LiveResults struct {
	Results   map[string]models.GameResult `json:"results"`
	FetchedAt time.Time                    `json:"fetched_at"`
}

// LiveResults returns the current game results, refreshing from the feed
// when the cache has gone stale. A feed outage degrades to the stale
// cache rather than an error as long as something has been cached.
func (s *ScoreService) LiveResults(ctx context.Context) (*LiveResults, error) {
	fetchedAt, err := s.repo.ResultsFetchedAt(ctx)
	if err != nil {
		return nil, err
	}

	if !fetchedAt.IsZero() && time.Since(fetchedAt) < s.resultsTTL() {
		return s.cached(ctx, fetchedAt)
	}

	fresh, refreshErr := s.Refresh(ctx)
	if refreshErr == nil {
		return fresh, nil
	}
	if fetchedAt.IsZero() {
		return nil, refreshErr
	}

	s.log.Warn("Feed refresh failed, serving stale results", "error", refreshErr, "fetched_at", fetchedAt)
	return s.cached(ctx, fetchedAt)
}

// Refresh fetches from the providers, stores the normalized results, and
// broadcasts the update. Results for games outside the tournament
// structure are dropped.
func (s *ScoreService) Refresh(ctx context.Context) (*LiveResults, error) {
	var errs []error
	for _, feed := range s.feeds {
		results, err := feed.FetchResults(ctx)
		if err != nil {
			s.log.Warn("Feed provider failed", "provider", feed.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", feed.Name(), err))
			continue
		}

		known := make([]models.GameResult, 0, len(results))
		for _, res := range results {
			if s.tournament.Structure().Game(res.GameID) != nil {
				known = append(known, res)
			}
		}

		now := time.Now().UTC()
		if err := s.repo.UpsertResults(ctx, known, now); err != nil {
			return nil, err
		}

		live, err := s.cached(ctx, now)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		b := s.broadcaster
		s.mu.Unlock()
		if b != nil {
			b.BroadcastScoreUpdate(live)
		}

		s.log.Debug("Results refreshed", "provider", feed.Name(), "games", len(known))
		return live, nil
	}
	return nil, fmt.Errorf("all feed providers failed: %w", stderrors.Join(errs...))
}

func (s *ScoreService) cached(ctx context.Context, fetchedAt time.Time) (*LiveResults, error) {
	results, err := s.repo.ListResults(ctx)
	if err != nil {
		return nil, err
	}
	return &LiveResults{Results: results, FetchedAt: fetchedAt}, nil
}

// ScoreBracket computes the current and maximum possible score for one
// bracket against the cached results. Scores are derived on demand and
// never persisted.
func (s *ScoreService) ScoreBracket(ctx context.Context, bracketID string) (*models.Score, error) {
	b, err := s.repo.GetBracket(ctx, bracketID)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, ErrBracketNotFound
	}
	if err != nil {
		return nil, err
	}

	results, err := s.repo.ListResults(ctx)
	if err != nil {
		return nil, err
	}

	score := bracket.Score(s.tournament.Structure(), *b, results)
	return &score, nil
}

// LeaderboardEntry is one ranked bracket in the standings
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	BracketID   string `json:"bracket_id"`
	BracketName string `json:"bracket_name"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	Current     int    `json:"current"`
	MaxPossible int    `json:"max_possible"`
}

// Leaderboard scores every submitted bracket and ranks by current score,
// breaking ties by maximum possible score then bracket name.
func (s *ScoreService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	brackets, err := s.repo.ListSubmittedBrackets(ctx)
	if err != nil {
		return nil, err
	}

	results, err := s.repo.ListResults(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	entries := make([]LeaderboardEntry, 0, len(brackets))
	for _, b := range brackets {
		name, ok := names[b.UserID]
		if !ok {
			user, err := s.repo.GetUser(ctx, b.UserID)
			if err != nil {
				return nil, err
			}
			name = user.Name
			names[b.UserID] = name
		}

		score := bracket.Score(s.tournament.Structure(), b, results)
		entries = append(entries, LeaderboardEntry{
			BracketID:   b.ID,
			BracketName: b.Name,
			UserID:      b.UserID,
			UserName:    name,
			Current:     score.Current,
			MaxPossible: score.MaxPossible,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Current != entries[j].Current {
			return entries[i].Current > entries[j].Current
		}
		if entries[i].MaxPossible != entries[j].MaxPossible {
			return entries[i].MaxPossible > entries[j].MaxPossible
		}
		return entries[i].BracketName < entries[j].BracketName
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

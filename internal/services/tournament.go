package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/akehoe/bracketlab/internal/bracket"
	"github.com/akehoe/bracketlab/internal/logger"
	"github.com/akehoe/bracketlab/internal/models"
	"github.com/akehoe/bracketlab/internal/repository"
)

const lockTimeKey = "lock_time"

// TournamentService owns the tournament structure: the team field and
// the generated game graph. Both are immutable after construction, so
// the service is safe for concurrent use.
type TournamentService struct {
	log     logger.Logger
	repo    repository.SettingsRepository
	regions []string
	catalog bracket.Catalog
	set     *bracket.GameSet
}

// NewTournamentService generates the game graph for the given field.
// Fails when the catalog is invalid, which is fatal at startup.
func NewTournamentService(log logger.Logger, repo repository.SettingsRepository, regions []string, catalog bracket.Catalog) (*TournamentService, error) {
	set, err := bracket.Generate(regions, catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tournament structure: %w", err)
	}
	return &TournamentService{
		log:     log,
		repo:    repo,
		regions: regions,
		catalog: catalog,
		set:     set,
	}, nil
}

// Structure returns the generated game graph
func (s *TournamentService) Structure() *bracket.GameSet {
	return s.set
}

// Catalog returns the team field
func (s *TournamentService) Catalog() bracket.Catalog {
	return s.catalog
}

// TournamentView is the full structure the bracket UI renders
type TournamentView struct {
	Regions  []string      `json:"regions"`
	Rounds   []string      `json:"rounds"`
	Teams    []models.Team `json:"teams"`
	Games    []models.Game `json:"games"`
	LockTime int64         `json:"lock_time,omitempty"`
}

// View assembles the teams and game graph for the UI
func (s *TournamentService) View(ctx context.Context) (*TournamentView, error) {
	lockTime, err := s.LockTime(ctx)
	if err != nil {
		return nil, err
	}

	games := make([]models.Game, 0, len(s.set.Games))
	for _, g := range s.set.Games {
		games = append(games, *g)
	}

	return &TournamentView{
		Regions:  s.regions,
		Rounds:   bracket.RoundNames,
		Teams:    bracket.AllTeams(s.regions, s.catalog),
		Games:    games,
		LockTime: lockTime,
	}, nil
}

// LockTime returns the tournament start as a unix timestamp, or zero
// when no lock time has been configured.
func (s *TournamentService) LockTime(ctx context.Context) (int64, error) {
	value, err := s.repo.GetSetting(ctx, lockTimeKey)
	if err == repository.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	unix, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		s.log.Warn("Ignoring malformed lock_time setting", "value", value)
		return 0, nil
	}
	return unix, nil
}

// SetLockTime stores the tournament start as a unix timestamp
func (s *TournamentService) SetLockTime(ctx context.Context, unix int64) error {
	return s.repo.SetSetting(ctx, lockTimeKey, strconv.FormatInt(unix, 10))
}

package services

import (
	"context"
	"time"

	"github.com/akehoe/bracketlab/internal/logger"
)

// DefaultPollInterval is how often the background poller hits the feed
const DefaultPollInterval = 60 * time.Second

// Poller periodically refreshes feed results in the background while the
// tournament is underway. Run blocks until the context is cancelled.
type Poller struct {
	log        logger.Logger
	scores     ScoreServicer
	tournament TournamentServicer
	interval   time.Duration
}

// NewPoller creates a new Poller
func NewPoller(log logger.Logger, scores ScoreServicer, tournament TournamentServicer, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		log:        log,
		scores:     scores,
		tournament: tournament,
		interval:   interval,
	}
}

// Run polls the feed on a fixed interval until ctx is cancelled. Polling
// does not start until the tournament lock time has passed; before then
// there are no results to fetch.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info("Result poller started", "interval", p.interval)
	for {
		select {
		case <-ctx.Done():
			p.log.Info("Result poller stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	lockTime, err := p.tournament.LockTime(ctx)
	if err != nil {
		p.log.Warn("Poller could not read lock time", "error", err)
		return
	}
	if lockTime == 0 || time.Now().Unix() < lockTime {
		p.log.Debug("Tournament not started, skipping poll")
		return
	}

	if _, err := p.scores.Refresh(ctx); err != nil {
		p.log.Warn("Background refresh failed", "error", err)
	}
}

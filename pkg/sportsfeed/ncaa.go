package sportsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/akehoe/bracketlab/internal/logger"
	"github.com/akehoe/bracketlab/internal/models"
)

// DefaultNCAABaseURL is the public henrygd NCAA scoreboard proxy
const DefaultNCAABaseURL = "https://ncaa-api.henrygd.me"

// ncaaScoreboard is the subset of the NCAA scoreboard response we consume.
// Each entry wraps the actual game object in a "game" key.
type ncaaScoreboard struct {
	Games []struct {
		Game ncaaGame `json:"game"`
	} `json:"games"`
}

type ncaaGame struct {
	GameID    string   `json:"gameID"`
	GameState string   `json:"gameState"` // "pre", "live", "final"
	Home      ncaaTeam `json:"home"`
	Away      ncaaTeam `json:"away"`
}

type ncaaTeam struct {
	Winner bool `json:"winner"`
	Names  struct {
		Seo string `json:"seo"`
	} `json:"names"`
}

// NCAAClient fetches results from the henrygd NCAA scoreboard API
type NCAAClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        logger.Logger
}

// NewNCAAClient creates a new NCAA scoreboard client
func NewNCAAClient(baseURL string, log logger.Logger) *NCAAClient {
	if baseURL == "" {
		baseURL = DefaultNCAABaseURL
	}
	return &NCAAClient{
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
		limiter:    newLimiter(),
		log:        log,
	}
}

// Name identifies the provider
func (c *NCAAClient) Name() string {
	return "ncaa"
}

// FetchResults retrieves the scoreboard and normalizes every game
func (c *NCAAClient) FetchResults(ctx context.Context) ([]models.GameResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/scoreboard/basketball-men/d1", c.baseURL)
	c.log.Debug("NCAA request", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NCAA API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NCAA API returned status %d", resp.StatusCode)
	}

	var scoreboard ncaaScoreboard
	if err := json.Unmarshal(body, &scoreboard); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	results := make([]models.GameResult, 0, len(scoreboard.Games))
	for _, wrapper := range scoreboard.Games {
		game := wrapper.Game
		if game.GameID == "" {
			continue
		}
		res := models.GameResult{
			GameID: game.GameID,
			Status: ncaaStatus(game.GameState),
		}
		if res.Status == models.GameFinal {
			switch {
			case game.Home.Winner:
				res.WinnerID = game.Home.Names.Seo
			case game.Away.Winner:
				res.WinnerID = game.Away.Names.Seo
			}
		}
		results = append(results, res)
	}

	c.log.Debug("NCAA response", "games", len(scoreboard.Games), "results", len(results))
	return results, nil
}

// ncaaStatus maps NCAA game states to the three game statuses
func ncaaStatus(state string) models.GameStatus {
	switch strings.ToLower(state) {
	case "live":
		return models.GameLive
	case "final":
		return models.GameFinal
	default:
		return models.GameScheduled
	}
}

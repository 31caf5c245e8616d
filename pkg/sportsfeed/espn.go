package sportsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/akehoe/bracketlab/internal/logger"
	"github.com/akehoe/bracketlab/internal/models"
)

// DefaultESPNBaseURL is the public ESPN men's college basketball API
const DefaultESPNBaseURL = "https://site.api.espn.com/apis/site/v2/sports/basketball/mens-college-basketball"

// espnScoreboard is the subset of the ESPN scoreboard response we consume
type espnScoreboard struct {
	Events []espnEvent `json:"events"`
}

type espnEvent struct {
	ID     string `json:"id"`
	Status struct {
		Type struct {
			State string `json:"state"` // "pre", "in", "post"
		} `json:"type"`
	} `json:"status"`
	Competitions []struct {
		Competitors []struct {
			ID     string `json:"id"`
			Winner bool   `json:"winner"`
		} `json:"competitors"`
	} `json:"competitions"`
}

// ESPNClient fetches results from the ESPN scoreboard API
type ESPNClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        logger.Logger
}

// NewESPNClient creates a new ESPN scoreboard client
func NewESPNClient(baseURL string, log logger.Logger) *ESPNClient {
	if baseURL == "" {
		baseURL = DefaultESPNBaseURL
	}
	return &ESPNClient{
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
		limiter:    newLimiter(),
		log:        log,
	}
}

// Name identifies the provider
func (c *ESPNClient) Name() string {
	return "espn"
}

// FetchResults retrieves the scoreboard and normalizes every event
func (c *ESPNClient) FetchResults(ctx context.Context) ([]models.GameResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/scoreboard", c.baseURL)
	c.log.Debug("ESPN request", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ESPN: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ESPN returned status %d", resp.StatusCode)
	}

	var scoreboard espnScoreboard
	if err := json.Unmarshal(body, &scoreboard); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	results := make([]models.GameResult, 0, len(scoreboard.Events))
	for _, ev := range scoreboard.Events {
		if ev.ID == "" {
			continue
		}
		res := models.GameResult{
			GameID: ev.ID,
			Status: espnStatus(ev.Status.Type.State),
		}
		// A winner is only trustworthy once the game has gone final
		if res.Status == models.GameFinal && len(ev.Competitions) > 0 {
			for _, comp := range ev.Competitions[0].Competitors {
				if comp.Winner {
					res.WinnerID = comp.ID
					break
				}
			}
		}
		results = append(results, res)
	}

	c.log.Debug("ESPN response", "events", len(scoreboard.Events), "results", len(results))
	return results, nil
}

// espnStatus maps ESPN's event state vocabulary to the three game statuses
func espnStatus(state string) models.GameStatus {
	switch state {
	case "in":
		return models.GameLive
	case "post":
		return models.GameFinal
	default:
		return models.GameScheduled
	}
}

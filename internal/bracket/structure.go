package bracket

import (
	"fmt"

	"github.com/akehoe/bracketlab/internal/models"
)

// Round numbers and the pseudo-regions used once regional play is over.
const (
	FirstRound   = 1
	EliteEight   = 4
	FinalFour    = 5
	Championship = 6

	RegionFinalFour    = "Final Four"
	RegionChampionship = "Championship"
)

// RoundNames indexes display names by round number - 1.
var RoundNames = []string{
	"First Round", "Second Round", "Sweet 16", "Elite Eight", "Final Four", "Championship",
}

// regionCount is fixed: two Final Four games each fed by a pair of
// regional champions.
const regionCount = 4

// GameSet is the full game graph for one tournament year. It is built
// once at season setup and treated as immutable afterwards.
type GameSet struct {
	Regions []string
	Games   []*models.Game

	byID    map[string]*models.Game
	feeders map[string]feederPair
}

// feederPair records which games feed a round>=2 game's two slots.
type feederPair struct {
	top    string
	bottom string
}

// Generate builds the complete 63-game single-elimination graph for the
// given regions. Round-1 games pair seed i against seed 17-i; every later
// game starts empty and is linked to the two games that feed it. The same
// catalog and region order always produce an identical set, ids included,
// so structures regenerate reproducibly across restarts.
func Generate(regions []string, catalog Catalog) (*GameSet, error) {
	if len(regions) != regionCount {
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedRegionCount, len(regions))
	}
	if err := catalog.Validate(regions); err != nil {
		return nil, err
	}

	set := &GameSet{
		Regions: append([]string(nil), regions...),
		byID:    make(map[string]*models.Game),
		feeders: make(map[string]feederPair),
	}

	for regionIdx, region := range regions {
		ordered := catalog.bySeed(region)

		// Round 1: game j pairs seed j+1 vs seed 16-j (1v16 ... 8v9).
		for j := 0; j < TeamsPerRegion/2; j++ {
			set.add(&models.Game{
				ID:           regionGameID(region, FirstRound, j),
				Round:        FirstRound,
				Region:       region,
				TopTeamID:    ordered[j].ID,
				BottomTeamID: ordered[TeamsPerRegion-1-j].ID,
			})
		}

		// Rounds 2-4: game j is fed by games 2j and 2j+1 of the prior round.
		for round := FirstRound + 1; round <= EliteEight; round++ {
			count := TeamsPerRegion >> round
			for j := 0; j < count; j++ {
				g := &models.Game{
					ID:     regionGameID(region, round, j),
					Round:  round,
					Region: region,
				}
				set.add(g)
				set.link(regionGameID(region, round-1, 2*j), g.ID, models.SlotTop)
				set.link(regionGameID(region, round-1, 2*j+1), g.ID, models.SlotBottom)
			}
		}

		// The regional champion advances to the Final Four game shared with
		// the paired region: regions 0x1 feed FF-1, regions 2x3 feed FF-2.
		ffID := finalFourGameID(regionIdx / 2)
		slot := models.SlotTop
		if regionIdx%2 == 1 {
			slot = models.SlotBottom
		}
		set.link(regionGameID(region, EliteEight, 0), ffID, slot)
	}

	for i := 0; i < 2; i++ {
		set.add(&models.Game{
			ID:     finalFourGameID(i),
			Round:  FinalFour,
			Region: RegionFinalFour,
		})
	}
	set.add(&models.Game{
		ID:     championshipGameID(),
		Round:  Championship,
		Region: RegionChampionship,
	})
	set.link(finalFourGameID(0), championshipGameID(), models.SlotTop)
	set.link(finalFourGameID(1), championshipGameID(), models.SlotBottom)

	return set, nil
}

func regionGameID(region string, round, idx int) string {
	return fmt.Sprintf("%s-R%d-%d", region, round, idx+1)
}

func finalFourGameID(idx int) string {
	return fmt.Sprintf("FF-%d", idx+1)
}

func championshipGameID() string {
	return "CH-1"
}

// ChampionshipGameID returns the id of the tournament's terminal game
func ChampionshipGameID() string {
	return championshipGameID()
}

func (s *GameSet) add(g *models.Game) {
	s.Games = append(s.Games, g)
	s.byID[g.ID] = g
}

// link records that feederID's winner fills the given slot of nextID. The
// feeder position is fixed here at generation time and never recomputed.
func (s *GameSet) link(feederID, nextID string, slot models.Slot) {
	feeder := s.byID[feederID]
	feeder.NextGameID = nextID
	feeder.FeederSlot = slot

	pair := s.feeders[nextID]
	if slot == models.SlotTop {
		pair.top = feederID
	} else {
		pair.bottom = feederID
	}
	s.feeders[nextID] = pair
}

// Game returns the game with the given id, or nil.
func (s *GameSet) Game(id string) *models.Game {
	return s.byID[id]
}

// SlotTeams resolves the two teams currently occupying a game's slots for
// a specific bracket. Round-1 slots come from the generated structure;
// later rounds are derived from the bracket's predictions for the two
// feeder games. An undecided slot resolves to "".
func (s *GameSet) SlotTeams(b models.Bracket, g *models.Game) (top, bottom string) {
	if g.Round == FirstRound {
		return g.TopTeamID, g.BottomTeamID
	}
	pair := s.feeders[g.ID]
	return b.Predictions[pair.top], b.Predictions[pair.bottom]
}

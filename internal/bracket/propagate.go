package bracket

import (
	"fmt"

	"github.com/akehoe/bracketlab/internal/models"
)

// ApplyPick records a winner prediction for one game and returns the
// updated bracket. The input bracket is never mutated; on error the
// caller's value is exactly what it was.
//
// Changing an earlier pick invalidates downstream picks that depended on
// the displaced team: those predictions are cleared all the way to the
// championship game. The walk is iterative over the id index so a partial
// cascade can never be observed.
func ApplyPick(set *GameSet, b models.Bracket, gameID, teamID string) (models.Bracket, error) {
	g := set.Game(gameID)
	if g == nil {
		return b, fmt.Errorf("%w: %s", ErrUnknownGame, gameID)
	}

	top, bottom := set.SlotTeams(b, g)
	if teamID == "" || (teamID != top && teamID != bottom) {
		return b, fmt.Errorf("%w: %s in game %s", ErrInvalidSelection, teamID, gameID)
	}

	updated := b.Clone()
	displaced := updated.Predictions[gameID]
	updated.Predictions[gameID] = teamID

	// The displaced team could only have advanced along this game's chain
	// of successors, and only as far as it kept being picked. Clear picks
	// until the chain ends or a pick no longer references it.
	if displaced != "" && displaced != teamID {
		for cur := g; cur.NextGameID != ""; {
			next := set.Game(cur.NextGameID)
			if updated.Predictions[next.ID] != displaced {
				break
			}
			delete(updated.Predictions, next.ID)
			cur = next
		}
	}

	return updated, nil
}

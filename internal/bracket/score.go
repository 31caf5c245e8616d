package bracket

import "github.com/akehoe/bracketlab/internal/models"

// roundPoints is the fixed per-round schedule: points double each round.
var roundPoints = [...]int{10, 20, 40, 80, 160, 320}

// RoundPoints returns the point value of a correct pick in the given
// round (1-6), or 0 for an out-of-range round.
func RoundPoints(round int) int {
	if round < 1 || round > len(roundPoints) {
		return 0
	}
	return roundPoints[round-1]
}

// Score reduces a bracket's predictions against the authoritative results.
// Current counts every final game whose winner matches the prediction.
// MaxPossible adds the value of every undecided game that has a pick
// recorded: an unmade pick can never score, and a wrong pick simply
// contributes nothing. Both inputs are read-only.
func Score(set *GameSet, b models.Bracket, results map[string]models.GameResult) models.Score {
	var s models.Score
	for _, g := range set.Games {
		pick := b.Predictions[g.ID]
		r, ok := results[g.ID]
		if ok && r.Status == models.GameFinal && r.WinnerID != "" {
			if pick == r.WinnerID {
				s.Current += RoundPoints(g.Round)
			}
			continue
		}
		if pick != "" {
			s.MaxPossible += RoundPoints(g.Round)
		}
	}
	s.MaxPossible += s.Current
	return s
}

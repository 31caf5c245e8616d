package bracket

import (
	"fmt"

	"github.com/akehoe/bracketlab/internal/models"
)

// TeamsPerRegion is fixed by the tournament format: 16 seeds, single
// elimination, four rounds to a regional champion.
const TeamsPerRegion = 16

// Catalog maps a region name to its seeded field for one tournament year.
// The slice order does not matter; teams are ordered by seed when games
// are generated.
type Catalog map[string][]models.Team

// Validate checks that every listed region has exactly 16 teams carrying
// seeds 1..16 with no duplicates.
func (c Catalog) Validate(regions []string) error {
	for _, region := range regions {
		teams, ok := c[region]
		if !ok {
			return fmt.Errorf("%w: region %q missing from catalog", ErrInvalidCatalog, region)
		}
		if len(teams) != TeamsPerRegion {
			return fmt.Errorf("%w: region %q has %d teams", ErrInvalidCatalog, region, len(teams))
		}
		var seen [TeamsPerRegion + 1]bool
		for _, t := range teams {
			if t.Seed < 1 || t.Seed > TeamsPerRegion {
				return fmt.Errorf("%w: region %q team %q has seed %d", ErrInvalidCatalog, region, t.ID, t.Seed)
			}
			if seen[t.Seed] {
				return fmt.Errorf("%w: region %q has duplicate seed %d", ErrInvalidCatalog, region, t.Seed)
			}
			seen[t.Seed] = true
		}
	}
	return nil
}

// bySeed returns the region's teams ordered seed 1..16. Validate must have
// passed for the result to be complete.
func (c Catalog) bySeed(region string) []models.Team {
	ordered := make([]models.Team, TeamsPerRegion)
	for _, t := range c[region] {
		if t.Seed >= 1 && t.Seed <= TeamsPerRegion {
			ordered[t.Seed-1] = t
		}
	}
	return ordered
}

// Team looks up a team by id across all regions.
func (c Catalog) Team(id string) (models.Team, bool) {
	for _, teams := range c {
		for _, t := range teams {
			if t.ID == id {
				return t, true
			}
		}
	}
	return models.Team{}, false
}

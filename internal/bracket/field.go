package bracket

import "github.com/akehoe/bracketlab/internal/models"

// DefaultRegions is the region order used for Final Four pairing:
// East x West and South x Midwest.
var DefaultRegions = []string{"East", "West", "South", "Midwest"}

// DefaultCatalog returns the built-in seeded field. Deployments with a
// different field load their own catalog at season setup; the ids here
// are stable slugs so feed results and structure regenerate consistently.
func DefaultCatalog() Catalog {
	c := Catalog{
		"East": {
			{ID: "purdue", Name: "Purdue", Seed: 1},
			{ID: "marquette", Name: "Marquette", Seed: 2},
			{ID: "kansas", Name: "Kansas", Seed: 3},
			{ID: "tennessee", Name: "Tennessee", Seed: 4},
			{ID: "duke", Name: "Duke", Seed: 5},
			{ID: "kentucky", Name: "Kentucky", Seed: 6},
			{ID: "michiganst", Name: "Michigan State", Seed: 7},
			{ID: "iowa", Name: "Iowa", Seed: 8},
			{ID: "memphis", Name: "Memphis", Seed: 9},
			{ID: "providence", Name: "Providence", Seed: 10},
			{ID: "ncstate", Name: "NC State", Seed: 11},
			{ID: "drake", Name: "Drake", Seed: 12},
			{ID: "yale", Name: "Yale", Seed: 13},
			{ID: "oakland", Name: "Oakland", Seed: 14},
			{ID: "vermont", Name: "Vermont", Seed: 15},
			{ID: "grambling", Name: "Grambling", Seed: 16},
		},
		"West": {
			{ID: "gonzaga", Name: "Gonzaga", Seed: 1},
			{ID: "baylor", Name: "Baylor", Seed: 2},
			{ID: "arkansas", Name: "Arkansas", Seed: 3},
			{ID: "alabama", Name: "Alabama", Seed: 4},
			{ID: "connecticut", Name: "Connecticut", Seed: 5},
			{ID: "byu", Name: "BYU", Seed: 6},
			{ID: "usc", Name: "USC", Seed: 7},
			{ID: "lsu", Name: "LSU", Seed: 8},
			{ID: "stmarys", Name: "St. Mary's", Seed: 9},
			{ID: "virginia", Name: "Virginia", Seed: 10},
			{ID: "utahst", Name: "Utah State", Seed: 11},
			{ID: "uab", Name: "UAB", Seed: 12},
			{ID: "montanast", Name: "Montana State", Seed: 13},
			{ID: "colgate", Name: "Colgate", Seed: 14},
			{ID: "princeton", Name: "Princeton", Seed: 15},
			{ID: "norfolkst", Name: "Norfolk State", Seed: 16},
		},
		"South": {
			{ID: "houston", Name: "Houston", Seed: 1},
			{ID: "texas", Name: "Texas", Seed: 2},
			{ID: "creighton", Name: "Creighton", Seed: 3},
			{ID: "xavier", Name: "Xavier", Seed: 4},
			{ID: "miamifl", Name: "Miami (FL)", Seed: 5},
			{ID: "tcu", Name: "TCU", Seed: 6},
			{ID: "missouri", Name: "Missouri", Seed: 7},
			{ID: "maryland", Name: "Maryland", Seed: 8},
			{ID: "auburn", Name: "Auburn", Seed: 9},
			{ID: "utah", Name: "Utah", Seed: 10},
			{ID: "pittsburgh", Name: "Pittsburgh", Seed: 11},
			{ID: "oralroberts", Name: "Oral Roberts", Seed: 12},
			{ID: "kentst", Name: "Kent State", Seed: 13},
			{ID: "ucsb", Name: "UC Santa Barbara", Seed: 14},
			{ID: "akron", Name: "Akron", Seed: 15},
			{ID: "nkentucky", Name: "Northern Kentucky", Seed: 16},
		},
		"Midwest": {
			{ID: "arizona", Name: "Arizona", Seed: 1},
			{ID: "ucla", Name: "UCLA", Seed: 2},
			{ID: "illinois", Name: "Illinois", Seed: 3},
			{ID: "indiana", Name: "Indiana", Seed: 4},
			{ID: "sdsu", Name: "San Diego State", Seed: 5},
			{ID: "iowast", Name: "Iowa State", Seed: 6},
			{ID: "texasam", Name: "Texas A&M", Seed: 7},
			{ID: "wvirginia", Name: "West Virginia", Seed: 8},
			{ID: "fau", Name: "Florida Atlantic", Seed: 9},
			{ID: "pennst", Name: "Penn State", Seed: 10},
			{ID: "nevada", Name: "Nevada", Seed: 11},
			{ID: "vcu", Name: "VCU", Seed: 12},
			{ID: "furman", Name: "Furman", Seed: 13},
			{ID: "kennesawst", Name: "Kennesaw State", Seed: 14},
			{ID: "montana", Name: "Montana", Seed: 15},
			{ID: "howard", Name: "Howard", Seed: 16},
		},
	}
	for region, teams := range c {
		for i := range teams {
			teams[i].Region = region
		}
	}
	return c
}

// AllTeams flattens the catalog in region order for presentation.
func AllTeams(regions []string, c Catalog) []models.Team {
	var out []models.Team
	for _, r := range regions {
		out = append(out, c[r]...)
	}
	return out
}

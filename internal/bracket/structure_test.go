package bracket_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/akehoe/bracketlab/internal/bracket"
	"github.com/akehoe/bracketlab/internal/models"
)

// testCatalog builds a minimal valid 4-region catalog with predictable ids
// like "East-3" for the East 3-seed.
func testCatalog(t *testing.T) ([]string, bracket.Catalog) {
	t.Helper()
	regions := []string{"East", "West", "South", "Midwest"}
	c := bracket.Catalog{}
	for _, region := range regions {
		teams := make([]models.Team, 0, bracket.TeamsPerRegion)
		for seed := 1; seed <= bracket.TeamsPerRegion; seed++ {
			teams = append(teams, models.Team{
				ID:     fmt.Sprintf("%s-%d", region, seed),
				Name:   fmt.Sprintf("%s %d", region, seed),
				Seed:   seed,
				Region: region,
			})
		}
		c[region] = teams
	}
	return regions, c
}

func TestGenerate_ProducesSixtyThreeGames(t *testing.T) {
	regions, catalog := testCatalog(t)

	set, err := bracket.Generate(regions, catalog)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(set.Games) != 63 {
		t.Errorf("expected 63 games, got %d", len(set.Games))
	}

	terminals := 0
	for _, g := range set.Games {
		if g.NextGameID == "" {
			terminals++
			if g.Round != bracket.Championship {
				t.Errorf("terminal game %s has round %d", g.ID, g.Round)
			}
			continue
		}
		next := set.Game(g.NextGameID)
		if next == nil {
			t.Errorf("game %s links to missing game %s", g.ID, g.NextGameID)
			continue
		}
		if next.Round != g.Round+1 {
			t.Errorf("game %s (round %d) links to %s (round %d)", g.ID, g.Round, next.ID, next.Round)
		}
		if g.FeederSlot != models.SlotTop && g.FeederSlot != models.SlotBottom {
			t.Errorf("game %s has no feeder slot", g.ID)
		}
	}
	if terminals != 1 {
		t.Errorf("expected exactly 1 terminal game, got %d", terminals)
	}
}

func TestGenerate_RoundCounts(t *testing.T) {
	regions, catalog := testCatalog(t)
	set, err := bracket.Generate(regions, catalog)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	counts := make(map[int]int)
	for _, g := range set.Games {
		counts[g.Round]++
	}

	want := map[int]int{1: 32, 2: 16, 3: 8, 4: 4, 5: 2, 6: 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("round counts = %v, want %v", counts, want)
	}
}

func TestGenerate_FirstRoundPairing(t *testing.T) {
	regions, catalog := testCatalog(t)
	set, err := bracket.Generate(regions, catalog)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Game j of round 1 must pair seed j+1 against seed 16-j: 1v16, 2v15,
	// down to 8v9.
	for j := 1; j <= 8; j++ {
		g := set.Game(fmt.Sprintf("East-R1-%d", j))
		if g == nil {
			t.Fatalf("missing game East-R1-%d", j)
		}
		wantTop := fmt.Sprintf("East-%d", j)
		wantBottom := fmt.Sprintf("East-%d", 17-j)
		if g.TopTeamID != wantTop || g.BottomTeamID != wantBottom {
			t.Errorf("East-R1-%d pairs %s vs %s, want %s vs %s",
				j, g.TopTeamID, g.BottomTeamID, wantTop, wantBottom)
		}
	}
}

func TestGenerate_LaterRoundsStartEmpty(t *testing.T) {
	regions, catalog := testCatalog(t)
	set, err := bracket.Generate(regions, catalog)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for _, g := range set.Games {
		if g.Round == bracket.FirstRound {
			if g.TopTeamID == "" || g.BottomTeamID == "" {
				t.Errorf("round-1 game %s has an empty slot", g.ID)
			}
			continue
		}
		if g.TopTeamID != "" || g.BottomTeamID != "" {
			t.Errorf("round-%d game %s has populated slots at generation", g.Round, g.ID)
		}
	}
}

func TestGenerate_FinalFourPairing(t *testing.T) {
	regions, catalog := testCatalog(t)
	set, err := bracket.Generate(regions, catalog)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Region order fixes the Final Four pairing: East/West feed FF-1 and
	// South/Midwest feed FF-2, Elite Eight winners in input order.
	cases := []struct {
		region string
		next   string
		slot   models.Slot
	}{
		{"East", "FF-1", models.SlotTop},
		{"West", "FF-1", models.SlotBottom},
		{"South", "FF-2", models.SlotTop},
		{"Midwest", "FF-2", models.SlotBottom},
	}
	for _, tc := range cases {
		g := set.Game(tc.region + "-R4-1")
		if g == nil {
			t.Fatalf("missing Elite Eight game for %s", tc.region)
		}
		if g.NextGameID != tc.next || g.FeederSlot != tc.slot {
			t.Errorf("%s Elite Eight feeds %s/%s, want %s/%s",
				tc.region, g.NextGameID, g.FeederSlot, tc.next, tc.slot)
		}
	}

	ch := set.Game("CH-1")
	if ch == nil {
		t.Fatal("missing championship game")
	}
	if ch.NextGameID != "" {
		t.Errorf("championship game links to %s", ch.NextGameID)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	regions, catalog := testCatalog(t)

	first, err := bracket.Generate(regions, catalog)
	if err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}
	second, err := bracket.Generate(regions, catalog)
	if err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}

	if len(first.Games) != len(second.Games) {
		t.Fatalf("game counts differ: %d vs %d", len(first.Games), len(second.Games))
	}
	for i := range first.Games {
		if !reflect.DeepEqual(*first.Games[i], *second.Games[i]) {
			t.Errorf("game %d differs: %+v vs %+v", i, *first.Games[i], *second.Games[i])
		}
	}
}

func TestGenerate_RejectsWrongRegionCount(t *testing.T) {
	regions, catalog := testCatalog(t)

	for _, bad := range [][]string{regions[:2], regions[:3], append(append([]string{}, regions...), "Extra")} {
		_, err := bracket.Generate(bad, catalog)
		if err == nil {
			t.Errorf("expected error for %d regions", len(bad))
		}
	}
}

func TestGenerate_RejectsInvalidCatalog(t *testing.T) {
	regions, catalog := testCatalog(t)

	// Missing team.
	short := bracket.Catalog{}
	for r, teams := range catalog {
		short[r] = teams
	}
	short["East"] = short["East"][:15]
	if _, err := bracket.Generate(regions, short); err == nil {
		t.Error("expected error for 15-team region")
	}

	// Duplicate seed.
	dup := bracket.Catalog{}
	for r, teams := range catalog {
		cp := append([]models.Team(nil), teams...)
		dup[r] = cp
	}
	dup["West"][1].Seed = 1
	if _, err := bracket.Generate(regions, dup); err == nil {
		t.Error("expected error for duplicate seed")
	}
}

func TestDefaultCatalog_IsValid(t *testing.T) {
	set, err := bracket.Generate(bracket.DefaultRegions, bracket.DefaultCatalog())
	if err != nil {
		t.Fatalf("Generate with default catalog failed: %v", err)
	}
	if len(set.Games) != 63 {
		t.Errorf("expected 63 games, got %d", len(set.Games))
	}
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/akehoe/bracketlab/internal/bracket"
	"github.com/akehoe/bracketlab/internal/logger"
	"github.com/akehoe/bracketlab/internal/services"
	"github.com/akehoe/bracketlab/internal/testutil"
)

func setupTournamentService(t *testing.T) *services.TournamentService {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	svc, err := services.NewTournamentService(logger.NewDiscard(), repo, bracket.DefaultRegions, bracket.DefaultCatalog())
	if err != nil {
		t.Fatalf("NewTournamentService failed: %v", err)
	}
	return svc
}

func TestTournamentView(t *testing.T) {
	svc := setupTournamentService(t)

	view, err := svc.View(context.Background())
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if len(view.Games) != 63 {
		t.Errorf("games = %d, want 63", len(view.Games))
	}
	if len(view.Teams) != 64 {
		t.Errorf("teams = %d, want 64", len(view.Teams))
	}
	if len(view.Regions) != 4 {
		t.Errorf("regions = %d, want 4", len(view.Regions))
	}
	if len(view.Rounds) != 6 {
		t.Errorf("rounds = %d, want 6", len(view.Rounds))
	}
	if view.LockTime != 0 {
		t.Errorf("lock time = %d, want unset", view.LockTime)
	}
}

func TestTournamentService_InvalidCatalog(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	_, err := services.NewTournamentService(logger.NewDiscard(), repo, bracket.DefaultRegions, bracket.Catalog{})
	if err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

func TestLockTime_RoundTrip(t *testing.T) {
	svc := setupTournamentService(t)
	ctx := context.Background()

	want := time.Now().Add(24 * time.Hour).Unix()
	if err := svc.SetLockTime(ctx, want); err != nil {
		t.Fatalf("SetLockTime failed: %v", err)
	}

	got, err := svc.LockTime(ctx)
	if err != nil {
		t.Fatalf("LockTime failed: %v", err)
	}
	if got != want {
		t.Errorf("lock time = %d, want %d", got, want)
	}
}

func TestLockTime_MalformedSettingIgnored(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc, err := services.NewTournamentService(logger.NewDiscard(), repo, bracket.DefaultRegions, bracket.DefaultCatalog())
	if err != nil {
		t.Fatalf("NewTournamentService failed: %v", err)
	}
	ctx := context.Background()

	if err := repo.SetSetting(ctx, "lock_time", "next thursday"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}

	got, err := svc.LockTime(ctx)
	if err != nil {
		t.Fatalf("LockTime failed: %v", err)
	}
	if got != 0 {
		t.Errorf("lock time = %d, want 0 for malformed value", got)
	}
}

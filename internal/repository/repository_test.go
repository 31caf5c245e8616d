package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akehoe/bracketlab/internal/models"
	"github.com/akehoe/bracketlab/internal/repository"
	"github.com/akehoe/bracketlab/internal/testutil"
)

func newUser(t *testing.T, repo *repository.Repository, id, name string) models.User {
	t.Helper()
	u := models.User{ID: id, Name: name, CreatedAt: time.Now().UTC()}
	if err := repo.CreateUser(context.Background(), u, "hash"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return u
}

func newBracket(id, userID string) models.Bracket {
	now := time.Now().UTC().Truncate(time.Second)
	return models.Bracket{
		ID:          id,
		UserID:      userID,
		Name:        "My Bracket",
		CreatedAt:   now,
		UpdatedAt:   now,
		Predictions: map[string]string{"East-R1-1": "purdue"},
		Status:      models.StatusDraft,
	}
}

func TestCreateUser_DuplicateName(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	ctx := context.Background()

	newUser(t, repo, "u1", "casey")

	err := repo.CreateUser(ctx, models.User{ID: "u2", Name: "casey", CreatedAt: time.Now()}, "hash")
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestGetUserByName_ReturnsHash(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	ctx := context.Background()

	newUser(t, repo, "u1", "casey")

	u, hash, err := repo.GetUserByName(ctx, "casey")
	if err != nil {
		t.Fatalf("GetUserByName failed: %v", err)
	}
	if u.ID != "u1" || hash != "hash" {
		t.Errorf("got id=%q hash=%q", u.ID, hash)
	}

	if _, _, err := repo.GetUserByName(ctx, "nobody"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing user, got %v", err)
	}
}

func TestPutBracket_RoundTrip(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	ctx := context.Background()
	newUser(t, repo, "u1", "casey")

	b := newBracket("b1", "u1")
	if err := repo.PutBracket(ctx, b); err != nil {
		t.Fatalf("PutBracket failed: %v", err)
	}

	got, err := repo.GetBracket(ctx, "b1")
	if err != nil {
		t.Fatalf("GetBracket failed: %v", err)
	}
	if got.Name != "My Bracket" || got.Status != models.StatusDraft {
		t.Errorf("got name=%q status=%q", got.Name, got.Status)
	}
	if got.Predictions["East-R1-1"] != "purdue" {
		t.Errorf("predictions lost: %v", got.Predictions)
	}
}

func TestPutBracket_ReplacesExisting(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	ctx := context.Background()
	newUser(t, repo, "u1", "casey")

	b := newBracket("b1", "u1")
	if err := repo.PutBracket(ctx, b); err != nil {
		t.Fatalf("first PutBracket failed: %v", err)
	}

	b.Predictions["East-R1-2"] = "marquette"
	b.Status = models.StatusSubmitted
	if err := repo.PutBracket(ctx, b); err != nil {
		t.Fatalf("second PutBracket failed: %v", err)
	}

	got, err := repo.GetBracket(ctx, "b1")
	if err != nil {
		t.Fatalf("GetBracket failed: %v", err)
	}
	if got.Status != models.StatusSubmitted {
		t.Errorf("status = %q, want SUBMITTED", got.Status)
	}
	if len(got.Predictions) != 2 {
		t.Errorf("predictions = %v, want 2 entries", got.Predictions)
	}
}

func TestGetBracket_NotFound(t *testing.T) {
	repo := testutil.NewTestRepository(t)

	_, err := repo.GetBracket(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListBracketsByUser_FiltersOwner(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	ctx := context.Background()
	newUser(t, repo, "u1", "casey")
	newUser(t, repo, "u2", "jordan")

	for _, b := range []models.Bracket{newBracket("b1", "u1"), newBracket("b2", "u1"), newBracket("b3", "u2")} {
		if err := repo.PutBracket(ctx, b); err != nil {
			t.Fatalf("PutBracket failed: %v", err)
		}
	}

	mine, err := repo.ListBracketsByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListBracketsByUser failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 brackets for u1, got %d", len(mine))
	}
	for _, b := range mine {
		if b.UserID != "u1" {
			t.Errorf("bracket %s owned by %s leaked into u1's list", b.ID, b.UserID)
		}
	}
}

func TestListSubmittedBrackets_SkipsDrafts(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	ctx := context.Background()
	newUser(t, repo, "u1", "casey")

	draft := newBracket("b1", "u1")
	submitted := newBracket("b2", "u1")
	submitted.Status = models.StatusSubmitted
	locked := newBracket("b3", "u1")
	locked.Status = models.StatusLocked

	for _, b := range []models.Bracket{draft, submitted, locked} {
		if err := repo.PutBracket(ctx, b); err != nil {
			t.Fatalf("PutBracket failed: %v", err)
		}
	}

	got, err := repo.ListSubmittedBrackets(ctx)
	if err != nil {
		t.Fatalf("ListSubmittedBrackets failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 non-draft brackets, got %d", len(got))
	}
}

func TestDeleteBracket(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	ctx := context.Background()
	newUser(t, repo, "u1", "casey")

	if err := repo.PutBracket(ctx, newBracket("b1", "u1")); err != nil {
		t.Fatalf("PutBracket failed: %v", err)
	}
	if err := repo.DeleteBracket(ctx, "b1"); err != nil {
		t.Fatalf("DeleteBracket failed: %v", err)
	}
	if _, err := repo.GetBracket(ctx, "b1"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("bracket still present after delete: %v", err)
	}
	if err := repo.DeleteBracket(ctx, "b1"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestUpsertResults_RoundTrip(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	ctx := context.Background()

	fetched := time.Now().UTC().Truncate(time.Second)
	results := []models.GameResult{
		{GameID: "East-R1-1", Status: models.GameFinal, WinnerID: "purdue"},
		{GameID: "East-R1-2", Status: models.GameLive},
	}
	if err := repo.UpsertResults(ctx, results, fetched); err != nil {
		t.Fatalf("UpsertResults failed: %v", err)
	}

	got, err := repo.ListResults(ctx)
	if err != nil {
		t.Fatalf("ListResults failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got["East-R1-1"].WinnerID != "purdue" {
		t.Errorf("winner = %q, want purdue", got["East-R1-1"].WinnerID)
	}

	// A later poll flips the live game to final.
	update := []models.GameResult{{GameID: "East-R1-2", Status: models.GameFinal, WinnerID: "vermont"}}
	if err := repo.UpsertResults(ctx, update, fetched.Add(time.Minute)); err != nil {
		t.Fatalf("second UpsertResults failed: %v", err)
	}

	got, err = repo.ListResults(ctx)
	if err != nil {
		t.Fatalf("ListResults failed: %v", err)
	}
	if got["East-R1-2"].Status != models.GameFinal || got["East-R1-2"].WinnerID != "vermont" {
		t.Errorf("updated result = %+v", got["East-R1-2"])
	}

	at, err := repo.ResultsFetchedAt(ctx)
	if err != nil {
		t.Fatalf("ResultsFetchedAt failed: %v", err)
	}
	if !at.Equal(fetched.Add(time.Minute)) {
		t.Errorf("fetched at = %v, want %v", at, fetched.Add(time.Minute))
	}
}

func TestResultsFetchedAt_EmptyCache(t *testing.T) {
	repo := testutil.NewTestRepository(t)

	at, err := repo.ResultsFetchedAt(context.Background())
	if err != nil {
		t.Fatalf("ResultsFetchedAt failed: %v", err)
	}
	if !at.IsZero() {
		t.Errorf("expected zero time for empty cache, got %v", at)
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	ctx := context.Background()

	if _, err := repo.GetSetting(ctx, "lock_time"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unset key, got %v", err)
	}

	if err := repo.SetSetting(ctx, "lock_time", "2026-03-19T16:00:00Z"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	if err := repo.SetSetting(ctx, "lock_time", "2026-03-20T16:00:00Z"); err != nil {
		t.Fatalf("SetSetting overwrite failed: %v", err)
	}

	got, err := repo.GetSetting(ctx, "lock_time")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if got != "2026-03-20T16:00:00Z" {
		t.Errorf("value = %q", got)
	}
}

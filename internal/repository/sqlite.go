package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/akehoe/bracketlab/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db *sql.DB
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// NewWithDB wraps an existing database handle. Used by tests that inject
// a mocked *sql.DB; no migrations are run.
func NewWithDB(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			passcode_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS brackets (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'DRAFT',
			predictions TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			game_id TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			winner_id TEXT,
			fetched_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_brackets_user ON brackets(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_brackets_status ON brackets(status)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// ==================== User Methods ====================

// CreateUser inserts a new account. Names are unique.
func (r *Repository) CreateUser(ctx context.Context, user models.User, passcodeHash string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, passcode_hash, created_at) VALUES (?, ?, ?, ?)
	`, user.ID, user.Name, passcodeHash, user.CreatedAt)
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return ErrDuplicate
	}
	return err
}

// GetUser retrieves an account by id
func (r *Repository) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at FROM users WHERE id = ?
	`, id).Scan(&u.ID, &u.Name, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByName retrieves an account and its passcode hash by name
func (r *Repository) GetUserByName(ctx context.Context, name string) (*models.User, string, error) {
	var u models.User
	var hash string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, passcode_hash, created_at FROM users WHERE name = ?
	`, name).Scan(&u.ID, &u.Name, &hash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return &u, hash, nil
}

// ==================== Bracket Methods ====================

// GetBracket retrieves a bracket by id
func (r *Repository) GetBracket(ctx context.Context, id string) (*models.Bracket, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, status, predictions, created_at, updated_at
		FROM brackets WHERE id = ?
	`, id)
	return scanBracket(row)
}

// PutBracket inserts or fully replaces one bracket row. The whole
// predictions map is written in one statement so concurrent readers only
// ever see a consistent snapshot.
func (r *Repository) PutBracket(ctx context.Context, b models.Bracket) error {
	preds, err := json.Marshal(b.Predictions)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO brackets (id, user_id, name, status, predictions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			status = excluded.status,
			predictions = excluded.predictions,
			updated_at = excluded.updated_at
	`, b.ID, b.UserID, b.Name, string(b.Status), string(preds), b.CreatedAt, b.UpdatedAt)
	return err
}

// ListBracketsByUser returns all brackets owned by a user, newest first
func (r *Repository) ListBracketsByUser(ctx context.Context, userID string) ([]models.Bracket, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, status, predictions, created_at, updated_at
		FROM brackets WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBrackets(rows)
}

// ListSubmittedBrackets returns every bracket that has left Draft,
// for leaderboard scoring.
func (r *Repository) ListSubmittedBrackets(ctx context.Context) ([]models.Bracket, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, status, predictions, created_at, updated_at
		FROM brackets WHERE status != 'DRAFT' ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBrackets(rows)
}

// DeleteBracket removes a bracket
func (r *Repository) DeleteBracket(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM brackets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBracket(row rowScanner) (*models.Bracket, error) {
	var b models.Bracket
	var status, preds string
	err := row.Scan(&b.ID, &b.UserID, &b.Name, &status, &preds, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	b.Status = models.BracketStatus(status)
	if err := json.Unmarshal([]byte(preds), &b.Predictions); err != nil {
		return nil, err
	}
	if b.Predictions == nil {
		b.Predictions = map[string]string{}
	}
	return &b, nil
}

func collectBrackets(rows *sql.Rows) ([]models.Bracket, error) {
	var out []models.Bracket
	for rows.Next() {
		b, err := scanBracket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// ==================== Result Methods ====================

// UpsertResults replaces the cached state of every listed game in one
// transaction so scoring never sees a half-applied poll.
func (r *Repository) UpsertResults(ctx context.Context, results []models.GameResult, fetchedAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, res := range results {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO results (game_id, status, winner_id, fetched_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(game_id) DO UPDATE SET
				status = excluded.status,
				winner_id = excluded.winner_id,
				fetched_at = excluded.fetched_at
		`, res.GameID, string(res.Status), res.WinnerID, fetchedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListResults returns all cached results keyed by game id
func (r *Repository) ListResults(ctx context.Context) (map[string]models.GameResult, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT game_id, status, winner_id FROM results`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]models.GameResult)
	for rows.Next() {
		var res models.GameResult
		var status string
		var winner sql.NullString
		if err := rows.Scan(&res.GameID, &status, &winner); err != nil {
			return nil, err
		}
		res.Status = models.GameStatus(status)
		if winner.Valid {
			res.WinnerID = winner.String
		}
		out[res.GameID] = res
	}
	return out, rows.Err()
}

// ResultsFetchedAt returns the most recent poll time, or the zero time
// when nothing has been cached yet.
func (r *Repository) ResultsFetchedAt(ctx context.Context) (time.Time, error) {
	var fetched sql.NullTime
	err := r.db.QueryRowContext(ctx, `SELECT MAX(fetched_at) FROM results`).Scan(&fetched)
	if err != nil {
		return time.Time{}, err
	}
	if !fetched.Valid {
		return time.Time{}, nil
	}
	return fetched.Time, nil
}

// ==================== Settings Methods ====================

// GetSetting retrieves a setting value by key
func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

// SetSetting stores a setting value
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

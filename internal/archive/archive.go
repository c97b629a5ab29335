// Package archive persists canonical schedules between sessions.
//
// It is the durable counterpart to the in-memory handle store: plans are
// keyed by the owning user's email, so a student can come back days later
// and pick up the schedule the agent built for them. SQLite via the
// pure-Go modernc driver, WAL mode, idempotent migrations.
package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nmoreno/semplan/internal/plan"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Config holds archive configuration.
type Config struct {
	// DataDir is where the database file lives.
	DataDir string
}

// DefaultConfig stores the database under ~/.semplan.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".semplan")}
}

// Store is the SQLite-backed plan archive.
type Store struct {
	db *sql.DB
}

// SavedPlan is one archived schedule with its bookkeeping fields.
type SavedPlan struct {
	Email     string             `json:"email"`
	Plan      *plan.SchedulePlan `json:"plan"`
	UpdatedAt string             `json:"updated_at"`
}

// New opens (or creates) the archive database and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("archive: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "plans.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("archive: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("archive: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("archive: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS plans (
			email      TEXT PRIMARY KEY,
			plan       TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save upserts the plan for an email. The email is lowercased so lookups
// are case-insensitive.
func (s *Store) Save(email string, p *plan.SchedulePlan) error {
	email = normalizeEmail(email)
	if email == "" {
		return plan.Errf(plan.KindValidation, "email", "email is required to save a plan")
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("archive: marshal plan: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(`
		INSERT INTO plans (email, plan, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET plan = excluded.plan, updated_at = excluded.updated_at
	`, email, string(data), now)
	if err != nil {
		return fmt.Errorf("archive: save plan: %w", err)
	}
	return nil
}

// Load returns the saved plan for an email, or a not-found error.
func (s *Store) Load(email string) (*SavedPlan, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, plan.Errf(plan.KindValidation, "email", "email is required to load a plan")
	}

	var data, updatedAt string
	err := s.db.QueryRow(`SELECT plan, updated_at FROM plans WHERE email = ?`, email).Scan(&data, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, plan.Errf(plan.KindNotFound, "email", "no saved plan for %s", email)
	}
	if err != nil {
		return nil, fmt.Errorf("archive: load plan: %w", err)
	}

	var p plan.SchedulePlan
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("archive: decode plan for %s: %w", email, err)
	}
	if p.Warnings == nil {
		p.Warnings = []string{}
	}
	return &SavedPlan{Email: email, Plan: &p, UpdatedAt: updatedAt}, nil
}

// Delete removes an email's saved plan. Deleting an absent row is fine.
func (s *Store) Delete(email string) error {
	_, err := s.db.Exec(`DELETE FROM plans WHERE email = ?`, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("archive: delete plan: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

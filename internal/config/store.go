package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/spigotdb/spigot/internal/model"
)

// ErrNotFound is returned when a named profile does not exist.
var ErrNotFound = errors.New("not found")

// Store persists named connection profiles in a local SQLite database so
// generation runs can refer to a database by name instead of a raw DSN.
type Store struct {
	db *sqlx.DB
}

// NewStore creates a profile store under dataDir. Pass empty string for
// an in-memory store.
func NewStore(dataDir string) (*Store, error) {
	var dsn string
	if dataDir == "" {
		dsn = ":memory:?_journal_mode=WAL"
	} else {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		dsn = filepath.Join(dataDir, "spigot.db") + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open profile database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate profile database: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	const ddl = `CREATE TABLE IF NOT EXISTS profiles (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL UNIQUE,
		driver      TEXT NOT NULL,
		dsn         TEXT NOT NULL,
		schema_name TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMP NOT NULL,
		updated_at  TIMESTAMP NOT NULL
	)`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("create profiles table: %w", err)
	}
	return nil
}

// CreateProfile inserts a new connection profile. The ID, CreatedAt, and
// UpdatedAt fields on p are populated after a successful insert.
func (s *Store) CreateProfile(ctx context.Context, p *model.Profile) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	const q = `INSERT INTO profiles (name, driver, dsn, schema_name, created_at, updated_at)
		VALUES (:name, :driver, :dsn, :schema_name, :created_at, :updated_at)`

	result, err := s.db.NamedExecContext(ctx, q, p)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get profile id: %w", err)
	}
	p.ID = id
	return nil
}

// GetProfileByName returns a profile by its unique name.
func (s *Store) GetProfileByName(ctx context.Context, name string) (*model.Profile, error) {
	var p model.Profile
	if err := s.db.GetContext(ctx, &p, "SELECT * FROM profiles WHERE name = ?", name); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile by name: %w", err)
	}
	return &p, nil
}

// ListProfiles returns all saved profiles ordered by name.
func (s *Store) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	if err := s.db.SelectContext(ctx, &profiles, "SELECT * FROM profiles ORDER BY name"); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// DeleteProfile removes a profile by name.
func (s *Store) DeleteProfile(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

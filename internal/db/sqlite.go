package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/udisondev/zonecore/internal/model"
)

// SQLiteStore stores characters in a single SQLite file. Used for single-node
// and development setups where no PostgreSQL is available.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("opening sqlite: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating sqlite dir: %w", err)
	}

	sqlDB, err := sql.Open(DriverSQLite, path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := initPragmas(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if err := migrate(ctx, sqlDB, DriverSQLite); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &SQLiteStore{db: sqlDB}, nil
}

func initPragmas(ctx context.Context, sqlDB *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := sqlDB.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("sqlite %s: %w", p, err)
		}
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load loads a character by id.
func (s *SQLiteStore) Load(ctx context.Context, characterID int64) (*model.CharacterRecord, error) {
	query := `SELECT ` + selectCharacterColumns + ` FROM characters WHERE character_id = ?`

	rec, err := scanCharacter(s.db.QueryRowContext(ctx, query, characterID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("character %d: %w", characterID, ErrCharacterNotFound)
		}
		return nil, fmt.Errorf("loading character %d: %w", characterID, err)
	}
	return rec, nil
}

// Save inserts or updates a character.
func (s *SQLiteStore) Save(ctx context.Context, rec model.CharacterRecord) error {
	query := `
		INSERT INTO characters (character_id, name, level, class_job, race, tribe, gender, customize,
		                        mind, hp, max_hp, mp, max_mp, zone_id, pos_x, pos_y, pos_z, rot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)` +
		upsertCharacterSet

	if _, err := s.db.ExecContext(ctx, query, characterArgs(rec)...); err != nil {
		return fmt.Errorf("saving character %d: %w", rec.CharacterID, err)
	}
	return nil
}

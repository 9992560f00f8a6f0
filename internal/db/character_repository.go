package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/zonecore/internal/model"
)

// CharacterRepository stores characters in PostgreSQL.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a new CharacterRepository.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Load loads a character by id.
func (r *CharacterRepository) Load(ctx context.Context, characterID int64) (*model.CharacterRecord, error) {
	query := `SELECT ` + selectCharacterColumns + ` FROM characters WHERE character_id = $1`

	rec, err := scanCharacter(r.db.QueryRow(ctx, query, characterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("character %d: %w", characterID, ErrCharacterNotFound)
		}
		return nil, fmt.Errorf("loading character %d: %w", characterID, err)
	}
	return rec, nil
}

// Save inserts or updates a character.
func (r *CharacterRepository) Save(ctx context.Context, rec model.CharacterRecord) error {
	query := `
		INSERT INTO characters (character_id, name, level, class_job, race, tribe, gender, customize,
		                        mind, hp, max_hp, mp, max_mp, zone_id, pos_x, pos_y, pos_z, rot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)` +
		upsertCharacterSet

	if _, err := r.db.Exec(ctx, query, characterArgs(rec)...); err != nil {
		return fmt.Errorf("saving character %d: %w", rec.CharacterID, err)
	}
	return nil
}

package db

import (
	"context"

	"github.com/udisondev/zonecore/internal/model"
)

// CharacterStore loads and saves player characters.
type CharacterStore interface {
	// Load returns ErrCharacterNotFound when no row exists.
	Load(ctx context.Context, characterID int64) (*model.CharacterRecord, error)
	// Save inserts or updates the record.
	Save(ctx context.Context, rec model.CharacterRecord) error
}

const (
	selectCharacterColumns = `character_id, name, level, class_job, race, tribe, gender, customize,
		       mind, hp, max_hp, mp, max_mp, zone_id, pos_x, pos_y, pos_z, rot`

	upsertCharacterSet = `
		ON CONFLICT (character_id) DO UPDATE SET
			name = excluded.name,
			level = excluded.level,
			class_job = excluded.class_job,
			race = excluded.race,
			tribe = excluded.tribe,
			gender = excluded.gender,
			customize = excluded.customize,
			mind = excluded.mind,
			hp = excluded.hp,
			max_hp = excluded.max_hp,
			mp = excluded.mp,
			max_mp = excluded.max_mp,
			zone_id = excluded.zone_id,
			pos_x = excluded.pos_x,
			pos_y = excluded.pos_y,
			pos_z = excluded.pos_z,
			rot = excluded.rot,
			updated_at = CURRENT_TIMESTAMP`
)

// scanner is satisfied by pgx.Row and *sql.Row.
type scanner interface {
	Scan(dest ...any) error
}

func scanCharacter(row scanner) (*model.CharacterRecord, error) {
	var (
		rec                              model.CharacterRecord
		level, classJob, race, tribe, gd int16
		hp, maxHP, mp, maxMP, zoneID     int64
	)
	if err := row.Scan(
		&rec.CharacterID, &rec.Name, &level, &classJob, &race, &tribe, &gd, &rec.Customize,
		&rec.Mind, &hp, &maxHP, &mp, &maxMP, &zoneID, &rec.Pos.X, &rec.Pos.Y, &rec.Pos.Z, &rec.Rot,
	); err != nil {
		return nil, err
	}
	rec.Level = uint8(level)
	rec.ClassJob = uint8(classJob)
	rec.Race = uint8(race)
	rec.Tribe = uint8(tribe)
	rec.Gender = uint8(gd)
	rec.HP = uint32(hp)
	rec.MaxHP = uint32(maxHP)
	rec.MP = uint32(mp)
	rec.MaxMP = uint32(maxMP)
	rec.ZoneID = uint32(zoneID)
	return &rec, nil
}

// characterArgs returns the insert arguments in column order.
func characterArgs(rec model.CharacterRecord) []any {
	customize := rec.Customize
	if customize == nil {
		customize = []byte{}
	}
	return []any{
		rec.CharacterID, rec.Name, int16(rec.Level), int16(rec.ClassJob), int16(rec.Race),
		int16(rec.Tribe), int16(rec.Gender), customize, rec.Mind,
		int64(rec.HP), int64(rec.MaxHP), int64(rec.MP), int64(rec.MaxMP), int64(rec.ZoneID),
		rec.Pos.X, rec.Pos.Y, rec.Pos.Z, rec.Rot,
	}
}

package model

import "fmt"

// CharacterRecord is the persisted state of a player character.
// Loaded before spawn and written back after despawn; the actor graph never touches storage.
type CharacterRecord struct {
	CharacterID int64
	Name        string
	Level       uint8
	ClassJob    uint8
	Race        uint8
	Tribe       uint8
	Gender      uint8
	Customize   []byte
	Mind        int32
	HP, MaxHP   uint32
	MP, MaxMP   uint32
	ZoneID      uint32 // last zone, 0 = default zone
	Pos         Position
	Rot         float32
}

// Validate checks the record can back a live player.
func (r CharacterRecord) Validate() error {
	switch {
	case r.CharacterID <= 0:
		return fmt.Errorf("character id %d: %w", r.CharacterID, ErrInvalidRecord)
	case r.Name == "":
		return fmt.Errorf("character %d has no name: %w", r.CharacterID, ErrInvalidRecord)
	case r.MaxHP == 0:
		return fmt.Errorf("character %d has zero max hp: %w", r.CharacterID, ErrInvalidRecord)
	case r.HP > r.MaxHP || r.MP > r.MaxMP:
		return fmt.Errorf("character %d vitals above max: %w", r.CharacterID, ErrInvalidRecord)
	case !r.Pos.IsFinite() || !isFinite(r.Rot):
		return fmt.Errorf("character %d transform: %w", r.CharacterID, ErrNonFinite)
	}
	return nil
}

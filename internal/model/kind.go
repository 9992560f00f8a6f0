package model

import "fmt"

// Kind classifies an actor. Values are fixed and match the client's object kind byte.
type Kind uint8

const (
	KindNone           Kind = 0x00
	KindPlayer         Kind = 0x01
	KindBattleNpc      Kind = 0x02
	KindEventNpc       Kind = 0x03
	KindTreasure       Kind = 0x04
	KindAetheryte      Kind = 0x05
	KindGatheringPoint Kind = 0x06
	KindEventObj       Kind = 0x07
	KindMount          Kind = 0x08
	KindCompanion      Kind = 0x09 // minion
	KindRetainer       Kind = 0x0A
	KindArea           Kind = 0x0B
	KindHousing        Kind = 0x0C
	KindCutscene       Kind = 0x0D
	KindCardStand      Kind = 0x0E
)

var kindNames = [...]string{
	KindNone:           "none",
	KindPlayer:         "player",
	KindBattleNpc:      "battle_npc",
	KindEventNpc:       "event_npc",
	KindTreasure:       "treasure",
	KindAetheryte:      "aetheryte",
	KindGatheringPoint: "gathering_point",
	KindEventObj:       "event_obj",
	KindMount:          "mount",
	KindCompanion:      "companion",
	KindRetainer:       "retainer",
	KindArea:           "area",
	KindHousing:        "housing",
	KindCutscene:       "cutscene",
	KindCardStand:      "card_stand",
}

// String returns a lower-case name, used in logs and debug snapshots.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(0x%02X)", uint8(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k <= KindCardStand
}

// IsChara reports whether k is a living entity (takes part in combat and AI).
func (k Kind) IsChara() bool {
	switch k {
	case KindPlayer, KindBattleNpc, KindEventNpc, KindRetainer, KindCompanion:
		return true
	default:
		return false
	}
}

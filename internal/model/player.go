package model

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/udisondev/zonecore/internal/network/packet"
	"github.com/udisondev/zonecore/internal/network/serverpackets"
)

// Session is the network side of a player: it queues pre-built frames for delivery.
// Implementations own retry, backpressure and disconnect handling.
type Session interface {
	Send(pkt *packet.Packet) error
}

// Player is a player character driven by a client session.
type Player struct {
	*Chara

	characterID int64
	classJob    uint8
	race        uint8
	tribe       uint8
	gender      uint8
	customize   []byte
	mind        int32

	sessMu  sync.RWMutex
	session Session
}

// NewPlayer builds a player from a persisted record. The session may be nil
// (offline players, tests) and attached later with SetSession.
func NewPlayer(rec CharacterRecord, session Session) (*Player, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	c := newChara(KindPlayer, CharaParams{
		Name:  rec.Name,
		Level: rec.Level,
		MaxHP: rec.MaxHP,
		MaxMP: rec.MaxMP,
	})
	c.hp = rec.HP
	c.mp = rec.MP
	c.pos = rec.Pos
	c.rot = rec.Rot

	p := &Player{
		Chara:       c,
		characterID: rec.CharacterID,
		classJob:    rec.ClassJob,
		race:        rec.Race,
		tribe:       rec.Tribe,
		gender:      rec.Gender,
		customize:   append([]byte(nil), rec.Customize...),
		mind:        rec.Mind,
		session:     session,
	}
	c.entity = p
	return p, nil
}

// CharacterID returns the persistent character id (not the runtime actor id).
func (p *Player) CharacterID() int64 {
	return p.characterID
}

// ClassJob returns the current class/job id.
func (p *Player) ClassJob() uint8 {
	return p.classJob
}

// Mind returns the healing attribute.
func (p *Player) Mind() int32 {
	return p.mind
}

// Session returns the attached session, or nil.
func (p *Player) Session() Session {
	p.sessMu.RLock()
	defer p.sessMu.RUnlock()
	return p.session
}

// SetSession attaches (or with nil detaches) the network session.
func (p *Player) SetSession(s Session) {
	p.sessMu.Lock()
	defer p.sessMu.Unlock()
	p.session = s
}

// QueuePacket hands pkt to the session. Fire-and-forget: a missing session or a refused
// frame is logged and dropped.
func (p *Player) QueuePacket(pkt *packet.Packet) {
	s := p.Session()
	if s == nil {
		return
	}
	if err := s.Send(pkt); err != nil {
		slog.Debug("packet dropped", "player", p.Name(), "opcode", fmt.Sprintf("0x%04X", pkt.Opcode()), "error", err)
	}
}

// Spawn sends this player's full appearance to target.
func (p *Player) Spawn(target *Player) {
	hp, maxHP := p.HP()
	mp, maxMP := p.MP()
	target.QueuePacket(serverpackets.PlayerSpawn{
		ActorID:   p.ID(),
		Name:      p.Name(),
		Level:     p.Level(),
		ClassJob:  p.classJob,
		Race:      p.race,
		Tribe:     p.tribe,
		Gender:    p.gender,
		Customize: p.customize,
		HP:        hp,
		MaxHP:     maxHP,
		MP:        mp,
		MaxMP:     maxMP,
		Transform: transformOf(p.Actor),
	}.Packet())
}

// Record snapshots the persistent state of the player.
func (p *Player) Record() CharacterRecord {
	hp, maxHP := p.HP()
	mp, maxMP := p.MP()
	return CharacterRecord{
		CharacterID: p.characterID,
		Name:        p.Name(),
		Level:       p.Level(),
		ClassJob:    p.classJob,
		Race:        p.race,
		Tribe:       p.tribe,
		Gender:      p.gender,
		Customize:   append([]byte(nil), p.customize...),
		Mind:        p.mind,
		HP:          hp,
		MaxHP:       maxHP,
		MP:          mp,
		MaxMP:       maxMP,
		ZoneID:      p.ZoneID(),
		Pos:         p.Position(),
		Rot:         p.Rotation(),
	}
}

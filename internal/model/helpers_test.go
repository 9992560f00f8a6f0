package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/zonecore/internal/network/packet"
)

// recordingSession collects every frame queued for a player.
type recordingSession struct {
	mu   sync.Mutex
	sent []*packet.Packet
	err  error
}

func (s *recordingSession) Send(pkt *packet.Packet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, pkt)
	return nil
}

func (s *recordingSession) count(pkt *packet.Packet) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.sent {
		if p == pkt {
			n++
		}
	}
	return n
}

func (s *recordingSession) opcodes() []uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ops := make([]uint16, 0, len(s.sent))
	for _, p := range s.sent {
		ops = append(ops, p.Opcode())
	}
	return ops
}

type testZone struct {
	id   uint32
	name string
}

func (z testZone) ID() uint32   { return z.id }
func (z testZone) Name() string { return z.name }

type testInstance struct {
	testZone
	contentID uint32
}

func (i testInstance) InstanceContentID() uint32 { return i.contentID }

func testRecord(characterID int64, name string) CharacterRecord {
	return CharacterRecord{
		CharacterID: characterID,
		Name:        name,
		Level:       50,
		ClassJob:    6,
		Race:        1,
		Tribe:       2,
		Gender:      1,
		Customize:   []byte{1, 2, 3, 4},
		Mind:        300,
		HP:          1000,
		MaxHP:       1000,
		MP:          500,
		MaxMP:       500,
	}
}

// newTestPlayer creates a player with the given actor id at pos, with a recording session.
func newTestPlayer(t *testing.T, id uint32, pos Position) (*Player, *recordingSession) {
	t.Helper()
	sess := &recordingSession{}
	p, err := NewPlayer(testRecord(int64(id), "Player"), sess)
	require.NoError(t, err)
	p.SetID(id)
	require.NoError(t, p.SetPosition(pos))
	return p, sess
}

func newTestNpc(t *testing.T, id uint32, pos Position) *BattleNpc {
	t.Helper()
	n := NewBattleNpc(CharaParams{Name: "Wolf", Level: 5, BaseID: 46, MaxHP: 200}, 10)
	n.SetID(id)
	require.NoError(t, n.SetPosition(pos))
	return n
}

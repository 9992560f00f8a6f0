package zone

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/zonecore/internal/model"
	"github.com/udisondev/zonecore/internal/network/packet"
)

type recordingSession struct {
	mu   sync.Mutex
	sent []*packet.Packet
}

func (s *recordingSession) Send(pkt *packet.Packet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, pkt)
	return nil
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

func (s *recordingSession) countOp(op uint16) int {
	n := 0
	for _, o := range s.opcodes() {
		if o == op {
			n++
		}
	}
	return n
}

func (s *recordingSession) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = nil
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Record(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) types() []EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EventType, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Type)
	}
	return out
}

func newPlayer(t *testing.T, characterID int64) (*model.Player, *recordingSession) {
	t.Helper()
	sess := &recordingSession{}
	p, err := model.NewPlayer(model.CharacterRecord{
		CharacterID: characterID,
		Name:        "Tester",
		Level:       1,
		HP:          100,
		MaxHP:       100,
	}, sess)
	require.NoError(t, err)
	return p, sess
}

func newNpc() *model.BattleNpc {
	return model.NewBattleNpc(model.CharaParams{Name: "Marmot", Level: 2, BaseID: 12, MaxHP: 50}, 8)
}

func testOptions() Options {
	return Options{CellSize: 64, ViewDistance: 50}
}

func inRange(a, b *model.Actor) bool {
	return a.IsInRangeSet(b) && b.IsInRangeSet(a)
}

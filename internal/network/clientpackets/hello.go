package clientpackets

import (
	"fmt"

	"github.com/udisondev/zonecore/internal/network/packet"
)

const (
	// OpcodeHello is the first frame a client sends after the websocket upgrade.
	OpcodeHello = 0x0001
)

// Hello identifies the character the session plays and proves it with a signed ticket.
type Hello struct {
	CharacterID int64
	Ticket      []byte
}

// ParseHello parses Hello from the frame body.
// Body: [characterID:8] [ticketLen:2] [ticket:ticketLen]
func ParseHello(data []byte) (*Hello, error) {
	r := packet.NewReader(data)

	characterID, err := r.ReadInt64()
	if err != nil {
		return nil, fmt.Errorf("reading characterID: %w", err)
	}

	n, err := r.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("reading ticket length: %w", err)
	}

	ticket, err := r.ReadBytes(int(n))
	if err != nil {
		return nil, fmt.Errorf("reading ticket: %w", err)
	}

	return &Hello{
		CharacterID: characterID,
		Ticket:      append([]byte(nil), ticket...),
	}, nil
}

// Packet serialises Hello. Used by clients and tests.
func (h Hello) Packet() *packet.Packet {
	w := packet.Get()
	defer w.Put()

	w.WriteInt64(h.CharacterID)
	w.WriteUint16(uint16(len(h.Ticket)))
	w.WriteBytes(h.Ticket)

	return w.Packet(OpcodeHello)
}

package clientpackets

import (
	"fmt"

	"github.com/udisondev/zonecore/internal/network/packet"
)

const (
	// OpcodeMove reports the client's new position and heading.
	OpcodeMove = 0x0002
)

// Move is sent whenever the client-side character moves or turns.
type Move struct {
	X, Y, Z float32
	Rot     float32
}

// ParseMove parses Move from the frame body.
// Body: [x:4] [y:4] [z:4] [rot:4]
func ParseMove(data []byte) (*Move, error) {
	r := packet.NewReader(data)

	x, err := r.ReadFloat()
	if err != nil {
		return nil, fmt.Errorf("reading x: %w", err)
	}

	y, err := r.ReadFloat()
	if err != nil {
		return nil, fmt.Errorf("reading y: %w", err)
	}

	z, err := r.ReadFloat()
	if err != nil {
		return nil, fmt.Errorf("reading z: %w", err)
	}

	rot, err := r.ReadFloat()
	if err != nil {
		return nil, fmt.Errorf("reading rot: %w", err)
	}

	return &Move{X: x, Y: y, Z: z, Rot: rot}, nil
}

// Packet serialises Move.
func (m Move) Packet() *packet.Packet {
	w := packet.Get()
	defer w.Put()

	w.WriteFloat(m.X)
	w.WriteFloat(m.Y)
	w.WriteFloat(m.Z)
	w.WriteFloat(m.Rot)

	return w.Packet(OpcodeMove)
}

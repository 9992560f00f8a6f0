// Package packet implements the zone server's binary framing.
//
// Frame layout (little-endian):
//
//	uint16 size    // whole frame, header included
//	uint16 opcode
//	[]byte body
//
// A Packet is built once and shared by every recipient of a broadcast, so it is immutable.
package packet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// HeaderSize is the size of the frame header.
const HeaderSize = 4

// MaxBodySize is the largest body a frame can carry.
const MaxBodySize = math.MaxUint16 - HeaderSize

// ErrMalformed is returned for frames whose header does not match their length
// and for bodies that end before a field does.
var ErrMalformed = errors.New("malformed frame")

// Packet is a pre-serialised, immutable frame.
type Packet struct {
	opcode uint16
	frame  []byte
}

// New builds a frame from opcode and body. The body is copied.
// A body larger than MaxBodySize is a programming error and panics.
func New(opcode uint16, body []byte) *Packet {
	if len(body) > MaxBodySize {
		panic(fmt.Sprintf("packet: body of opcode 0x%04X is %d bytes, max %d", opcode, len(body), MaxBodySize))
	}
	frame := make([]byte, HeaderSize+len(body))
	binary.LittleEndian.PutUint16(frame[0:], uint16(len(frame)))
	binary.LittleEndian.PutUint16(frame[2:], opcode)
	copy(frame[HeaderSize:], body)
	return &Packet{opcode: opcode, frame: frame}
}

// Opcode returns the frame opcode.
func (p *Packet) Opcode() uint16 {
	return p.opcode
}

// Bytes returns the whole frame. Callers must not modify it.
func (p *Packet) Bytes() []byte {
	return p.frame
}

// Body returns the frame body. Callers must not modify it.
func (p *Packet) Body() []byte {
	return p.frame[HeaderSize:]
}

// Len returns the frame length.
func (p *Packet) Len() int {
	return len(p.frame)
}

// Split validates a received frame and returns its opcode and body (zero-copy).
func Split(frame []byte) (uint16, []byte, error) {
	if len(frame) < HeaderSize {
		return 0, nil, fmt.Errorf("frame of %d bytes: %w", len(frame), ErrMalformed)
	}
	size := int(binary.LittleEndian.Uint16(frame[0:]))
	if size != len(frame) {
		return 0, nil, fmt.Errorf("frame header says %d bytes, got %d: %w", size, len(frame), ErrMalformed)
	}
	return binary.LittleEndian.Uint16(frame[2:]), frame[HeaderSize:], nil
}

// Cut splits the first frame off buf, which may hold several frames back to back.
// The returned slices share memory with buf.
func Cut(buf []byte) (frame, rest []byte, err error) {
	if len(buf) < HeaderSize {
		return nil, nil, fmt.Errorf("buffer of %d bytes: %w", len(buf), ErrMalformed)
	}
	size := int(binary.LittleEndian.Uint16(buf[0:]))
	if size < HeaderSize || size > len(buf) {
		return nil, nil, fmt.Errorf("frame header says %d bytes, %d buffered: %w", size, len(buf), ErrMalformed)
	}
	return buf[:size], buf[size:], nil
}

package network

import (
	"crypto/subtle"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// TicketSize is the length of a session ticket.
const TicketSize = blake2b.Size256

// TicketSigner issues and checks session tickets: a keyed BLAKE2b-256 MAC over
// the character id. The login side signs, the zone server verifies Hello.
type TicketSigner struct {
	key []byte
}

// NewTicketSigner creates a signer keyed by secret (1 to 64 bytes).
func NewTicketSigner(secret []byte) (*TicketSigner, error) {
	if len(secret) == 0 || len(secret) > blake2b.Size {
		return nil, fmt.Errorf("ticket secret of %d bytes, want 1..%d", len(secret), blake2b.Size)
	}
	return &TicketSigner{key: append([]byte(nil), secret...)}, nil
}

// Sign returns the ticket for characterID.
func (s *TicketSigner) Sign(characterID int64) []byte {
	h, err := blake2b.New256(s.key)
	if err != nil {
		// key length is checked in NewTicketSigner
		panic(err)
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(characterID))
	h.Write(buf[:])
	return h.Sum(nil)
}

// Verify reports whether ticket was issued for characterID.
func (s *TicketSigner) Verify(characterID int64, ticket []byte) bool {
	if len(ticket) != TicketSize {
		return false
	}
	return subtle.ConstantTimeCompare(s.Sign(characterID), ticket) == 1
}

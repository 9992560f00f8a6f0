package packet

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reader decodes a packet body. All multi-byte values are little-endian.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) need(op string, n int) error {
	if r.pos+n > len(r.data) {
		return fmt.Errorf("%s: not enough data (pos=%d, need=%d, len=%d): %w", op, r.pos, n, len(r.data), ErrMalformed)
	}
	return nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.need("ReadByte", 1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadUint16 reads a uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.need("ReadUint16", 2); err != nil {
		return 0, err
	}
	val := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return val, nil
}

// ReadUint32 reads a uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.need("ReadUint32", 4); err != nil {
		return 0, err
	}
	val := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return val, nil
}

// ReadInt64 reads an int64.
func (r *Reader) ReadInt64() (int64, error) {
	if err := r.need("ReadInt64", 8); err != nil {
		return 0, err
	}
	val := int64(binary.LittleEndian.Uint64(r.data[r.pos:]))
	r.pos += 8
	return val, nil
}

// ReadFloat reads a float32.
func (r *Reader) ReadFloat() (float32, error) {
	bits, err := r.ReadUint32()
	if err != nil {
		return 0, fmt.Errorf("ReadFloat: %w", err)
	}
	return math.Float32frombits(bits), nil
}

// ReadString reads a uint16 length-prefixed UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return "", fmt.Errorf("ReadString: %w", err)
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", fmt.Errorf("ReadString: %w", err)
	}
	return string(b), nil
}

// ReadBytes reads n bytes. ZERO-COPY: the result shares memory with the Reader's data,
// callers must not modify it.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("ReadBytes: negative count %d", n)
	}
	if err := r.need("ReadBytes", n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Position returns the current read offset.
func (r *Reader) Position() int {
	return r.pos
}

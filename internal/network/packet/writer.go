package packet

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
)

// Writer builds a packet body. All multi-byte values are little-endian.
type Writer struct {
	buf *bytes.Buffer
}

// writerPool reuses Writers between packet builds.
var writerPool = sync.Pool{
	New: func() any {
		return &Writer{
			buf: bytes.NewBuffer(make([]byte, 0, 256)),
		}
	},
}

// Get returns a reset Writer from the pool.
func Get() *Writer {
	w := writerPool.Get().(*Writer)
	w.Reset()
	return w
}

// Put returns the Writer to the pool. Do not use it afterwards.
func (w *Writer) Put() {
	writerPool.Put(w)
}

// NewWriter creates a Writer with the given initial capacity.
func NewWriter(capacity int) *Writer {
	return &Writer{
		buf: bytes.NewBuffer(make([]byte, 0, capacity)),
	}
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) error {
	return w.buf.WriteByte(b)
}

// WriteUint16 writes a uint16.
func (w *Writer) WriteUint16(val uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], val)
	w.buf.Write(tmp[:])
}

// WriteUint32 writes a uint32.
func (w *Writer) WriteUint32(val uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], val)
	w.buf.Write(tmp[:])
}

// WriteInt64 writes an int64.
func (w *Writer) WriteInt64(val int64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(val))
	w.buf.Write(tmp[:])
}

// WriteFloat writes a float32 (IEEE 754).
func (w *Writer) WriteFloat(val float32) {
	w.WriteUint32(math.Float32bits(val))
}

// WriteString writes a length-prefixed (uint16) UTF-8 string.
func (w *Writer) WriteString(s string) {
	if len(s) > math.MaxUint16 {
		s = s[:math.MaxUint16]
	}
	w.WriteUint16(uint16(len(s)))
	w.buf.WriteString(s)
}

// WriteBytes writes raw bytes.
func (w *Writer) WriteBytes(data []byte) {
	_, _ = w.buf.Write(data)
}

// Bytes returns the accumulated body. Valid until the next write or Reset.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the body length.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Reset clears the buffer for reuse.
func (w *Writer) Reset() {
	w.buf.Reset()
}

// Packet freezes the accumulated body into an immutable frame with the given opcode.
// The Writer can be reused or returned to the pool afterwards.
func (w *Writer) Packet(opcode uint16) *Packet {
	return New(opcode, w.buf.Bytes())
}

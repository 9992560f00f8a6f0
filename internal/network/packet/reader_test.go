package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_RoundTripPrimitives(t *testing.T) {
	w := NewWriter(64)
	require.NoError(t, w.WriteByte(0x07))
	w.WriteUint16(0xBEEF)
	w.WriteUint32(0xDEADBEEF)
	w.WriteInt64(-42)
	w.WriteFloat(3.25)
	w.WriteString("Gridania")

	r := NewReader(w.Bytes())

	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x07), b)

	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), u16)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)

	i64, err := r.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(-42), i64)

	f, err := r.ReadFloat()
	require.NoError(t, err)
	assert.Equal(t, float32(3.25), f)

	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "Gridania", s)

	assert.Zero(t, r.Remaining())
}

func TestReader_NotEnoughData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(r *Reader) error
	}{
		{"byte", nil, func(r *Reader) error { _, err := r.ReadByte(); return err }},
		{"uint32", []byte{1, 2, 3}, func(r *Reader) error { _, err := r.ReadUint32(); return err }},
		{"int64", []byte{1, 2, 3, 4}, func(r *Reader) error { _, err := r.ReadInt64(); return err }},
		{"float", []byte{1}, func(r *Reader) error { _, err := r.ReadFloat(); return err }},
		{"string body", []byte{5, 0, 'a'}, func(r *Reader) error { _, err := r.ReadString(); return err }},
		{"negative bytes", []byte{1}, func(r *Reader) error { _, err := r.ReadBytes(-1); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.read(NewReader(tt.data)))
		})
	}
}

func TestReader_Position(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5, 6})

	_, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, 2, r.Position())
	assert.Equal(t, 4, r.Remaining())
}

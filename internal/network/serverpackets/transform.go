package serverpackets

import "github.com/udisondev/zonecore/internal/network/packet"

func writeTransform(w *packet.Writer, t Transform) {
	w.WriteFloat(t.X)
	w.WriteFloat(t.Y)
	w.WriteFloat(t.Z)
	w.WriteFloat(t.Rot)
}

// ReadTransform decodes a Transform written by the server packets.
func ReadTransform(r *packet.Reader) (Transform, error) {
	var t Transform
	var err error
	for _, dst := range []*float32{&t.X, &t.Y, &t.Z, &t.Rot} {
		if *dst, err = r.ReadFloat(); err != nil {
			return Transform{}, err
		}
	}
	return t, nil
}

package protocol

import "math"

// Encoder appends wire primitives to an internal buffer.
// The zero value is usable; NewEncoder preallocates.
type Encoder struct {
	buf []byte
}

// NewEncoder creates an encoder sized for a typical particle packet.
func NewEncoder() *Encoder {
	return &Encoder{
		buf: make([]byte, 0, 96),
	}
}

// Bytes returns the encoded bytes. The returned slice is valid until
// the next Write call.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// WriteByte appends a single byte.
// Unlike io.ByteWriter it cannot fail.
func (e *Encoder) WriteByte(b byte) {
	e.buf = append(e.buf, b)
}

// WriteUvarint appends an unsigned varint.
func (e *Encoder) WriteUvarint(v uint64) {
	for v >= 0x80 {
		e.buf = append(e.buf, byte(v)|0x80)
		v >>= 7
	}
	e.buf = append(e.buf, byte(v))
}

// WriteSvarint appends a signed varint using ZigZag encoding.
func (e *Encoder) WriteSvarint(v int64) {
	e.WriteUvarint(uint64((v << 1) ^ (v >> 63)))
}

// WriteString appends a varint length followed by the string bytes.
func (e *Encoder) WriteString(s string) {
	e.WriteUvarint(uint64(len(s)))
	e.buf = append(e.buf, s...)
}

// WriteBool appends 0x01 or 0x00.
func (e *Encoder) WriteBool(b bool) {
	if b {
		e.buf = append(e.buf, 0x01)
	} else {
		e.buf = append(e.buf, 0x00)
	}
}

// WriteUint32 appends a uint32 in big-endian byte order.
func (e *Encoder) WriteUint32(v uint32) {
	e.buf = append(e.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// WriteUint64 appends a uint64 in big-endian byte order.
func (e *Encoder) WriteUint64(v uint64) {
	e.buf = append(e.buf,
		byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// WriteInt32 appends an int32 in big-endian byte order.
func (e *Encoder) WriteInt32(v int32) {
	e.WriteUint32(uint32(v))
}

// WriteFloat32 appends a float32 in IEEE 754 format (big-endian).
func (e *Encoder) WriteFloat32(v float32) {
	e.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 appends a float64 in IEEE 754 format (big-endian).
func (e *Encoder) WriteFloat64(v float64) {
	e.WriteUint64(math.Float64bits(v))
}

// WriteCoord appends a world coordinate at the width the tier uses:
// float32 for TierLegacy and TierFloat, float64 from TierDouble on.
func (e *Encoder) WriteCoord(t Tier, v float64) {
	if t.WideCoords() {
		e.WriteFloat64(v)
		return
	}
	e.WriteFloat32(float32(v))
}

// WriteInt32s appends a varint count followed by ZigZag varints.
// Used for the legacy int-array extra.
func (e *Encoder) WriteInt32s(vs []int32) {
	e.WriteUvarint(uint64(len(vs)))
	for _, v := range vs {
		e.WriteSvarint(int64(v))
	}
}

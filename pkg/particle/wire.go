package particle

import (
	"fmt"

	"github.com/vango-dev/particlewire/pkg/protocol"
)

// EncodeTo writes the packet:
//
//	[tier u8][slot param][long-distance bool][x y z coord]
//	[offset x y z f32][speed f32][amount i32][legacy int32s, TierLegacy only]
func (p *Packet) EncodeTo(e *protocol.Encoder) {
	e.WriteByte(byte(p.Tier))
	p.Slot().encodeParam(e)
	e.WriteBool(p.LongDistance)
	e.WriteCoord(p.Tier, p.X)
	e.WriteCoord(p.Tier, p.Y)
	e.WriteCoord(p.Tier, p.Z)
	e.WriteFloat32(p.OffsetX)
	e.WriteFloat32(p.OffsetY)
	e.WriteFloat32(p.OffsetZ)
	e.WriteFloat32(p.Speed)
	e.WriteInt32(p.Amount)
	if p.Tier == protocol.TierLegacy {
		e.WriteInt32s(p.Extra.Legacy)
	}
}

// Bytes returns the packet's wire encoding.
func (p *Packet) Bytes() []byte {
	e := protocol.NewEncoder()
	p.EncodeTo(e)
	return e.Bytes()
}

// DecodePacket parses a packet written by EncodeTo. The slot content comes
// back in Handle; the decoder cannot tell a structured extra from a texture
// standing in for the handle.
func DecodePacket(data []byte) (*Packet, error) {
	d := protocol.NewDecoder(data)
	p, err := DecodePacketFrom(d)
	if err != nil {
		return nil, err
	}
	if !d.EOF() {
		return nil, protocol.ErrTrailingBytes
	}
	return p, nil
}

// DecodePacketFrom reads one packet from d.
func DecodePacketFrom(d *protocol.Decoder) (*Packet, error) {
	tierByte, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	tier := protocol.Tier(tierByte)
	if tier > protocol.TierDouble {
		return nil, fmt.Errorf("particle: unknown tier %d", tierByte)
	}

	p := &Packet{Tier: tier}
	if p.Handle, err = DecodeParam(d); err != nil {
		return nil, err
	}
	if p.LongDistance, err = d.ReadBool(); err != nil {
		return nil, err
	}
	for _, c := range []*float64{&p.X, &p.Y, &p.Z} {
		if *c, err = d.ReadCoord(tier); err != nil {
			return nil, err
		}
	}
	for _, f := range []*float32{&p.OffsetX, &p.OffsetY, &p.OffsetZ, &p.Speed} {
		if *f, err = d.ReadFloat32(); err != nil {
			return nil, err
		}
	}
	if p.Amount, err = d.ReadInt32(); err != nil {
		return nil, err
	}
	if tier == protocol.TierLegacy {
		if p.Extra.Legacy, err = d.ReadInt32s(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

package particle

import (
	"fmt"

	"github.com/vango-dev/particlewire/pkg/protocol"
)

// minNormalFloat32 is the smallest positive normal float32. The client reads
// a zero red channel on dust as "use the default red", so zero is replaced.
const minNormalFloat32 = 0x1p-126

// Request describes one effect emission before encoding.
type Request struct {
	Effect  Effect
	X, Y, Z float64

	OffsetX, OffsetY, OffsetZ float32
	Speed                     float32
	Amount                    int32

	// Payload must be bound to Effect, or nil.
	Payload *Payload
}

// Extra is the trailing payload of a packet. Legacy is non-nil exactly for
// TierLegacy packets. Value is set for structured payloads that do not take
// the handle slot.
type Extra struct {
	Legacy []int32
	Value  Value
}

// Packet is the encoded form of a Request, ready for the wire. Its shape
// depends on Tier.
type Packet struct {
	Tier protocol.Tier
	// Handle is the effect's Handle, or for textured payloads at structured
	// tiers the texture value standing in for it.
	Handle       Param
	LongDistance bool

	X, Y, Z                   float64
	OffsetX, OffsetY, OffsetZ float32
	Speed                     float32
	Amount                    int32

	Extra Extra
}

// Slot returns what is written in the handle position on the wire: the
// structured extra when there is one, the handle otherwise.
func (p *Packet) Slot() Param {
	if p.Extra.Value != nil {
		return p.Extra.Value
	}
	return p.Handle
}

// Encoder turns requests into packets for its catalog's version. It is
// stateless beyond the catalog and safe for concurrent use.
type Encoder struct {
	catalog *Catalog
}

// NewEncoder creates an encoder for cat.
func NewEncoder(cat *Catalog) *Encoder {
	return &Encoder{catalog: cat}
}

// Catalog returns the encoder's catalog.
func (enc *Encoder) Catalog() *Catalog {
	return enc.catalog
}

// Encode builds the packet for req. It returns false when the effect does
// not exist at this version, the payload does not fit, or any value cannot
// be built.
func (enc *Encoder) Encode(req Request) (Packet, bool) {
	p, err := enc.Build(req)
	return p, err == nil
}

// Build is Encode with the failure reason kept. Errors are *EncodeError.
func (enc *Encoder) Build(req Request) (Packet, error) {
	p, err := enc.build(req)
	if err != nil {
		return Packet{}, &EncodeError{Effect: req.Effect, Version: enc.catalog.Version(), Err: err}
	}
	return p, nil
}

func (enc *Encoder) build(req Request) (Packet, error) {
	cat := enc.catalog
	handle, ok := cat.ResolveHandle(req.Effect)
	if !ok {
		return Packet{}, fmt.Errorf("%w: no handle for %s", ErrSymbolUnresolved, req.Effect)
	}

	pl := req.Payload
	if pl.Kind() == KindNone {
		pl = nil
	}
	if pl != nil && pl.Effect() != req.Effect {
		return Packet{}, fmt.Errorf("%w: payload is bound to %s", ErrPayloadIncompatible, pl.Effect())
	}
	if !cat.Compatible(req.Effect, pl) {
		return Packet{}, fmt.Errorf("%w: %s payload", ErrPayloadIncompatible, pl.Kind())
	}
	if pl == nil {
		return enc.assemble(handle, req, Extra{}), nil
	}

	out, err := pl.Data().encode(cat, req.Effect)
	if err != nil {
		return Packet{}, err
	}

	switch data := pl.Data().(type) {
	case Directional:
		req.OffsetX, req.OffsetY, req.OffsetZ = data.X, data.Y, data.Z
		req.Amount = 0
		return enc.assemble(handle, req, Extra{}), nil

	case NoteColor:
		return enc.assemble(handle, offsetsOnly(req, data.Value(), 0, 0), Extra{}), nil

	case RegularColor:
		if out.value != nil {
			return enc.assemble(handle, req, Extra{Value: out.value}), nil
		}
		return enc.colored(handle, req, data.Color()), nil

	case Dust:
		if out.value != nil {
			return enc.assemble(handle, req, Extra{Value: out.value}), nil
		}
		return enc.colored(handle, req, data.Color()), nil

	case BlockTexture, ItemTexture:
		if out.value != nil {
			return enc.assemble(out.value, req, Extra{}), nil
		}
		return enc.assemble(handle, req, Extra{Legacy: out.legacy}), nil

	default:
		return enc.assemble(handle, req, Extra{Value: out.value}), nil
	}
}

// colored carries a color in the offsets: speed 1 makes the client read them
// as RGB, amount 0 shows a single particle.
func (enc *Encoder) colored(handle Handle, req Request, c RGB) Packet {
	r := c.R
	if req.Effect == Redstone && r == 0 {
		r = minNormalFloat32
	}
	return enc.assemble(handle, offsetsOnly(req, r, c.G, c.B), Extra{})
}

func offsetsOnly(req Request, x, y, z float32) Request {
	req.OffsetX, req.OffsetY, req.OffsetZ = x, y, z
	req.Speed = 1
	req.Amount = 0
	return req
}

func (enc *Encoder) assemble(slot Param, req Request, extra Extra) Packet {
	tier := enc.catalog.Tier()
	x, y, z := req.X, req.Y, req.Z
	if !tier.WideCoords() {
		x, y, z = float64(float32(x)), float64(float32(y)), float64(float32(z))
	}
	if tier == protocol.TierLegacy {
		if extra.Legacy == nil {
			extra.Legacy = []int32{}
		}
	} else {
		extra.Legacy = nil
	}
	return Packet{
		Tier:         tier,
		Handle:       slot,
		LongDistance: true,
		X:            x,
		Y:            y,
		Z:            z,
		OffsetX:      req.OffsetX,
		OffsetY:      req.OffsetY,
		OffsetZ:      req.OffsetZ,
		Speed:        req.Speed,
		Amount:       req.Amount,
		Extra:        extra,
	}
}

package particle

import (
	"errors"
	"fmt"

	"github.com/vango-dev/particlewire/pkg/protocol"
)

// ParamKind tags what occupies a packet's handle slot on the wire.
type ParamKind uint8

const (
	ParamHandle ParamKind = iota
	ParamDust
	ParamDustTransition
	ParamBlock
	ParamItem
	ParamVibration
	ParamSculkCharge
	ParamShriek
)

// ErrUnknownParam is returned when decoding an unrecognized slot tag.
var ErrUnknownParam = errors.New("particle: unknown param kind")

// Param is the content of a packet's handle slot: either a Handle or a
// structured Value.
type Param interface {
	ParamKind() ParamKind
	encodeParam(e *protocol.Encoder)
}

// Value is a structured payload value. Each value carries the resolved type
// symbol it was built from.
type Value interface {
	Param
	TypeName() string
}

// PositionSource locates the end of a vibration.
type PositionSource interface {
	TypeName() string
	encodeSource(e *protocol.Encoder)
}

const (
	sourceBlock  byte = 0
	sourceEntity byte = 1
)

// DustOptions is the structured form of colored dust.
type DustOptions struct {
	Type  string  `json:"type"`
	Color RGB     `json:"color"`
	Size  float32 `json:"size"`
}

// DustTransitionOptions is the structured form of two-color dust.
type DustTransitionOptions struct {
	Type string  `json:"type"`
	From RGB     `json:"from"`
	To   RGB     `json:"to"`
	Size float32 `json:"size"`
}

// BlockState names a block state by registry key.
type BlockState struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

// BlockOptions pairs a block-based effect with the block state it shows.
type BlockOptions struct {
	Type     string     `json:"type"`
	Particle Handle     `json:"particle"`
	State    BlockState `json:"state"`
}

// ItemValue is the structured form of an item stack.
type ItemValue struct {
	Type  string `json:"type"`
	Key   string `json:"key"`
	Count int32  `json:"count"`
}

// ItemOptions pairs an item-based effect with the item it shows.
type ItemOptions struct {
	Type     string    `json:"type"`
	Particle Handle    `json:"particle"`
	Item     ItemValue `json:"item"`
}

// Position is a typed block position.
type Position struct {
	Type string `json:"type"`
	X    int32  `json:"x"`
	Y    int32  `json:"y"`
	Z    int32  `json:"z"`
}

// BlockSource is a vibration target at a block.
type BlockSource struct {
	Type string   `json:"type"`
	Pos  Position `json:"pos"`
}

// EntitySource is a vibration target at an entity.
type EntitySource struct {
	Type     string  `json:"type"`
	EntityID int32   `json:"entityId"`
	YOffset  float32 `json:"yOffset"`
}

// VibrationOptions is the structured vibration. Path and Origin are only set
// for versions without position sources. In JSON the source is keyed by its kind.
type VibrationOptions struct {
	Type   string
	Path   string
	Origin *Position
	Source PositionSource
	Ticks  int32
}

// SculkChargeOptions carries a sculk charge roll.
type SculkChargeOptions struct {
	Type string  `json:"type"`
	Roll float32 `json:"roll"`
}

// ShriekOptions carries a shriek delay.
type ShriekOptions struct {
	Type  string `json:"type"`
	Delay int32  `json:"delay"`
}

func (Handle) ParamKind() ParamKind                { return ParamHandle }
func (DustOptions) ParamKind() ParamKind           { return ParamDust }
func (DustTransitionOptions) ParamKind() ParamKind { return ParamDustTransition }
func (BlockOptions) ParamKind() ParamKind          { return ParamBlock }
func (ItemOptions) ParamKind() ParamKind           { return ParamItem }
func (VibrationOptions) ParamKind() ParamKind      { return ParamVibration }
func (SculkChargeOptions) ParamKind() ParamKind    { return ParamSculkCharge }
func (ShriekOptions) ParamKind() ParamKind         { return ParamShriek }

func (v DustOptions) TypeName() string           { return v.Type }
func (v DustTransitionOptions) TypeName() string { return v.Type }
func (v BlockOptions) TypeName() string          { return v.Type }
func (v ItemOptions) TypeName() string           { return v.Type }
func (v VibrationOptions) TypeName() string      { return v.Type }
func (v SculkChargeOptions) TypeName() string    { return v.Type }
func (v ShriekOptions) TypeName() string         { return v.Type }
func (s BlockSource) TypeName() string           { return s.Type }
func (s EntitySource) TypeName() string          { return s.Type }

// Every param starts with its kind byte; values follow it with their type
// symbol.

func (h Handle) encodeParam(e *protocol.Encoder) {
	e.WriteByte(byte(ParamHandle))
	e.WriteString(h.Registry)
	e.WriteString(h.Key)
}

func writeRGB(e *protocol.Encoder, c RGB) {
	e.WriteFloat32(c.R)
	e.WriteFloat32(c.G)
	e.WriteFloat32(c.B)
}

func (v DustOptions) encodeParam(e *protocol.Encoder) {
	e.WriteByte(byte(ParamDust))
	e.WriteString(v.Type)
	writeRGB(e, v.Color)
	e.WriteFloat32(v.Size)
}

func (v DustTransitionOptions) encodeParam(e *protocol.Encoder) {
	e.WriteByte(byte(ParamDustTransition))
	e.WriteString(v.Type)
	writeRGB(e, v.From)
	writeRGB(e, v.To)
	e.WriteFloat32(v.Size)
}

func (v BlockOptions) encodeParam(e *protocol.Encoder) {
	e.WriteByte(byte(ParamBlock))
	e.WriteString(v.Type)
	e.WriteString(v.Particle.Registry)
	e.WriteString(v.Particle.Key)
	e.WriteString(v.State.Type)
	e.WriteString(v.State.Key)
}

func (v ItemOptions) encodeParam(e *protocol.Encoder) {
	e.WriteByte(byte(ParamItem))
	e.WriteString(v.Type)
	e.WriteString(v.Particle.Registry)
	e.WriteString(v.Particle.Key)
	e.WriteString(v.Item.Type)
	e.WriteString(v.Item.Key)
	e.WriteSvarint(int64(v.Item.Count))
}

func writePosition(e *protocol.Encoder, p Position) {
	e.WriteString(p.Type)
	e.WriteSvarint(int64(p.X))
	e.WriteSvarint(int64(p.Y))
	e.WriteSvarint(int64(p.Z))
}

func (s BlockSource) encodeSource(e *protocol.Encoder) {
	e.WriteByte(sourceBlock)
	e.WriteString(s.Type)
	writePosition(e, s.Pos)
}

func (s EntitySource) encodeSource(e *protocol.Encoder) {
	e.WriteByte(sourceEntity)
	e.WriteString(s.Type)
	e.WriteSvarint(int64(s.EntityID))
	e.WriteFloat32(s.YOffset)
}

func (v VibrationOptions) encodeParam(e *protocol.Encoder) {
	e.WriteByte(byte(ParamVibration))
	e.WriteString(v.Type)
	e.WriteBool(v.Origin != nil)
	if v.Origin != nil {
		e.WriteString(v.Path)
		writePosition(e, *v.Origin)
	}
	v.Source.encodeSource(e)
	e.WriteSvarint(int64(v.Ticks))
}

func (v SculkChargeOptions) encodeParam(e *protocol.Encoder) {
	e.WriteByte(byte(ParamSculkCharge))
	e.WriteString(v.Type)
	e.WriteFloat32(v.Roll)
}

func (v ShriekOptions) encodeParam(e *protocol.Encoder) {
	e.WriteByte(byte(ParamShriek))
	e.WriteString(v.Type)
	e.WriteSvarint(int64(v.Delay))
}

// reader wraps a Decoder and keeps the first error, so field runs can be
// read without checking after every call.
type reader struct {
	d   *protocol.Decoder
	err error
}

func (r *reader) str() string {
	if r.err != nil {
		return ""
	}
	var s string
	s, r.err = r.d.ReadString()
	return s
}

func (r *reader) f32() float32 {
	if r.err != nil {
		return 0
	}
	var f float32
	f, r.err = r.d.ReadFloat32()
	return f
}

func (r *reader) i32() int32 {
	if r.err != nil {
		return 0
	}
	v, err := r.d.ReadSvarint()
	if err != nil {
		r.err = err
		return 0
	}
	if v != int64(int32(v)) {
		r.err = protocol.ErrVarintOverflow
		return 0
	}
	return int32(v)
}

func (r *reader) u8() byte {
	if r.err != nil {
		return 0
	}
	var b byte
	b, r.err = r.d.ReadByte()
	return b
}

func (r *reader) flag() bool {
	if r.err != nil {
		return false
	}
	var b bool
	b, r.err = r.d.ReadBool()
	return b
}

func (r *reader) rgb() RGB {
	return RGB{R: r.f32(), G: r.f32(), B: r.f32()}
}

func (r *reader) position() Position {
	return Position{Type: r.str(), X: r.i32(), Y: r.i32(), Z: r.i32()}
}

// DecodeParam reads a param written by a packet's slot encoding.
func DecodeParam(d *protocol.Decoder) (Param, error) {
	r := &reader{d: d}
	kind := ParamKind(r.u8())
	if r.err != nil {
		return nil, r.err
	}

	var p Param
	switch kind {
	case ParamHandle:
		p = Handle{Registry: r.str(), Key: r.str()}
	case ParamDust:
		p = DustOptions{Type: r.str(), Color: r.rgb(), Size: r.f32()}
	case ParamDustTransition:
		p = DustTransitionOptions{Type: r.str(), From: r.rgb(), To: r.rgb(), Size: r.f32()}
	case ParamBlock:
		p = BlockOptions{
			Type:     r.str(),
			Particle: Handle{Registry: r.str(), Key: r.str()},
			State:    BlockState{Type: r.str(), Key: r.str()},
		}
	case ParamItem:
		p = ItemOptions{
			Type:     r.str(),
			Particle: Handle{Registry: r.str(), Key: r.str()},
			Item:     ItemValue{Type: r.str(), Key: r.str(), Count: r.i32()},
		}
	case ParamVibration:
		p = decodeVibration(r)
	case ParamSculkCharge:
		p = SculkChargeOptions{Type: r.str(), Roll: r.f32()}
	case ParamShriek:
		p = ShriekOptions{Type: r.str(), Delay: r.i32()}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownParam, kind)
	}
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}

func decodeVibration(r *reader) VibrationOptions {
	v := VibrationOptions{Type: r.str()}
	if r.flag() {
		v.Path = r.str()
		origin := r.position()
		v.Origin = &origin
	}
	switch kind := r.u8(); kind {
	case sourceBlock:
		v.Source = BlockSource{Type: r.str(), Pos: r.position()}
	case sourceEntity:
		v.Source = EntitySource{Type: r.str(), EntityID: r.i32(), YOffset: r.f32()}
	default:
		if r.err == nil {
			r.err = fmt.Errorf("%w: position source %d", ErrUnknownParam, kind)
		}
	}
	v.Ticks = r.i32()
	return v
}

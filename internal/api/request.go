package api

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/vango-dev/particlewire/internal/errors"
	"github.com/vango-dev/particlewire/pkg/particle"
)

// EncodeRequest is the JSON form of a particle.Request, shared by the
// HTTP API and the CLI.
type EncodeRequest struct {
	Effect   string     `json:"effect"`
	Position [3]float64 `json:"position"`
	Offset   [3]float32 `json:"offset,omitempty"`
	// Speed defaults to 1 when absent.
	Speed  *float32  `json:"speed,omitempty"`
	Amount int32     `json:"amount,omitempty"`
	Data   *DataSpec `json:"data,omitempty"`
}

// DataSpec describes a payload. Kind selects the variant and decides which
// of the other fields are read.
type DataSpec struct {
	Kind string `json:"kind"`

	// color, dust, dust_transition
	Color  *[3]int  `json:"color,omitempty"`
	To     *[3]int  `json:"to,omitempty"`
	Size   *float32 `json:"size,omitempty"`
	Random bool     `json:"random,omitempty"`

	// note
	Note *int `json:"note,omitempty"`

	// directional
	Direction *[3]float32 `json:"direction,omitempty"`

	// block, item
	Material string `json:"material,omitempty"`
	Ordinal  int32  `json:"ordinal,omitempty"`
	Meta     byte   `json:"meta,omitempty"`
	Count    int32  `json:"count,omitempty"`
	Damage   int16  `json:"damage,omitempty"`

	// vibration
	Origin    *[3]int32 `json:"origin,omitempty"`
	Target    *[3]int32 `json:"target,omitempty"`
	Entity    *int32    `json:"entity,omitempty"`
	EyeHeight float32   `json:"eyeHeight,omitempty"`
	Ticks     int32     `json:"ticks,omitempty"`

	// roll, delay
	Roll  float32 `json:"roll,omitempty"`
	Delay int32   `json:"delay,omitempty"`
}

// Request converts r. Unknown effects fail with E120 and malformed
// payloads with E121; whether the result encodes is up to the encoder.
func (r EncodeRequest) Request() (particle.Request, error) {
	effect, ok := particle.EffectByName(strings.ToUpper(strings.TrimSpace(r.Effect)))
	if !ok {
		return particle.Request{}, errors.New(errors.CodeUnknownEffect).
			WithDetail("No effect is named " + quote(r.Effect) + ".").
			WithSuggestion("Run 'particlewire effects' to list them")
	}

	b := particle.NewBuilder(effect).
		At(r.Position[0], r.Position[1], r.Position[2]).
		Offset(r.Offset[0], r.Offset[1], r.Offset[2]).
		Amount(r.Amount)
	if r.Speed != nil {
		b.Speed(*r.Speed)
	}

	if r.Data != nil {
		data, err := r.Data.Data()
		if err != nil {
			return particle.Request{}, err
		}
		b.Data(data)
	}
	return b.Request(), nil
}

// Data builds the payload variant s describes.
func (s *DataSpec) Data() (particle.Data, error) {
	size := float32(1)
	if s.Size != nil {
		size = *s.Size
	}

	switch strings.ToLower(s.Kind) {
	case "", "none":
		return nil, nil
	case "directional":
		if s.Direction == nil {
			return nil, missing("directional", "direction")
		}
		d := *s.Direction
		return particle.Directional{X: d[0], Y: d[1], Z: d[2]}, nil
	case "color":
		if s.Random {
			return particle.RandomColor(), nil
		}
		if s.Color == nil {
			return nil, missing("color", "color")
		}
		c := *s.Color
		return particle.NewRegularColor(c[0], c[1], c[2]), nil
	case "dust":
		if s.Color == nil {
			return nil, missing("dust", "color")
		}
		c := *s.Color
		return particle.NewDust(c[0], c[1], c[2], size), nil
	case "dust_transition":
		if s.Color == nil || s.To == nil {
			return nil, missing("dust_transition", "color and to")
		}
		from, to := *s.Color, *s.To
		return particle.NewDustTransition(
			particle.RGBFrom(from[0], from[1], from[2]),
			particle.RGBFrom(to[0], to[1], to[2]),
			size,
		), nil
	case "note":
		if s.Random {
			return particle.RandomNoteColor(), nil
		}
		if s.Note == nil {
			return nil, missing("note", "note")
		}
		return particle.NewNoteColor(*s.Note), nil
	case "block":
		if s.Material == "" {
			return nil, missing("block", "material")
		}
		return particle.NewBlockTexture(particle.BlockMaterial(s.Material, s.Ordinal), s.Meta), nil
	case "item":
		if s.Material == "" {
			return nil, missing("item", "material")
		}
		return particle.NewItemTexture(particle.ItemStack{
			Material: particle.ItemMaterial(s.Material, s.Ordinal),
			Count:    s.Count,
			Damage:   s.Damage,
		}), nil
	case "vibration":
		var dest particle.Destination
		switch {
		case s.Target != nil && s.Entity != nil:
			return nil, errors.New(errors.CodePayloadInvalid).
				WithDetail("A vibration goes to a target block or an entity, not both.")
		case s.Target != nil:
			t := *s.Target
			dest = particle.BlockDestination{Pos: particle.BlockPos{X: t[0], Y: t[1], Z: t[2]}}
		case s.Entity != nil:
			dest = particle.EntityDestination{EntityID: *s.Entity, EyeHeight: s.EyeHeight}
		default:
			return nil, missing("vibration", "target or entity")
		}
		if s.Origin == nil {
			return particle.NewVibrationTo(dest, s.Ticks), nil
		}
		o := *s.Origin
		return particle.NewVibrationPath(particle.BlockPos{X: o[0], Y: o[1], Z: o[2]}, dest, s.Ticks), nil
	case "roll":
		return particle.Roll{Value: s.Roll}, nil
	case "delay":
		return particle.Delay{Ticks: s.Delay}, nil
	}
	return nil, errors.New(errors.CodePayloadInvalid).
		WithDetail("Unknown payload kind " + quote(s.Kind) + ".")
}

func missing(kind, field string) error {
	return errors.New(errors.CodePayloadInvalid).
		WithDetail("A " + kind + " payload needs " + field + ".")
}

func quote(s string) string {
	return `"` + s + `"`
}

// PacketResponse is the JSON form of an encoded packet.
type PacketResponse struct {
	Version      string     `json:"version"`
	Tier         string     `json:"tier"`
	Effect       string     `json:"effect"`
	Handle       string     `json:"handle"`
	Slot         Slot       `json:"slot"`
	LongDistance bool       `json:"longDistance"`
	Position     [3]float64 `json:"position"`
	Offset       [3]float32 `json:"offset"`
	Speed        float32    `json:"speed"`
	Amount       int32      `json:"amount"`
	Legacy       []int32    `json:"legacy,omitempty"`
	Size         int        `json:"size"`
	Bytes        string     `json:"bytes"`
}

// NewPacketResponse describes pkt, encoded for req at version.
func NewPacketResponse(cat *particle.Catalog, req particle.Request, pkt particle.Packet) PacketResponse {
	wire := pkt.Bytes()
	handle, _ := cat.ResolveHandle(req.Effect)
	return PacketResponse{
		Version:      cat.Version().String(),
		Tier:         pkt.Tier.String(),
		Effect:       req.Effect.String(),
		Handle:       handle.String(),
		Slot:         Slot{pkt.Slot()},
		LongDistance: pkt.LongDistance,
		Position:     [3]float64{pkt.X, pkt.Y, pkt.Z},
		Offset:       [3]float32{pkt.OffsetX, pkt.OffsetY, pkt.OffsetZ},
		Speed:        pkt.Speed,
		Amount:       pkt.Amount,
		Legacy:       pkt.Extra.Legacy,
		Size:         len(wire),
		Bytes:        base64.StdEncoding.EncodeToString(wire),
	}
}

// Slot is a packet's handle slot in its tagged JSON form,
// {"kind": "dust", "value": {...}}.
type Slot struct {
	particle.Param
}

func (s Slot) MarshalJSON() ([]byte, error) {
	return particle.MarshalParam(s.Param)
}

func (s *Slot) UnmarshalJSON(data []byte) error {
	p, err := particle.UnmarshalParam(data)
	if err != nil {
		return err
	}
	s.Param = p
	return nil
}

// Hex returns the packet bytes as a hex dump, 16 bytes per line.
func (p PacketResponse) Hex() string {
	wire, err := base64.StdEncoding.DecodeString(p.Bytes)
	if err != nil {
		return ""
	}
	return hex.Dump(wire)
}

package particle

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vango-dev/particlewire/pkg/mapping"
	"github.com/vango-dev/particlewire/pkg/protocol"
)

// RGB is a color with channels normalized to [0, 1].
type RGB struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
}

// RGBFrom builds an RGB from 0-255 channel values. Out-of-range channels are
// clamped.
func RGBFrom(r, g, b int) RGB {
	return RGB{R: channel(r), G: channel(g), B: channel(b)}
}

func channel(v int) float32 {
	return float32(min(max(v, 0), 255)) / 255
}

// Bytes returns the channels scaled back to 0-255.
func (c RGB) Bytes() (r, g, b uint8) {
	scale := func(f float32) uint8 {
		return uint8(math.Round(float64(min(max(f, 0), 1)) * 255))
	}
	return scale(c.R), scale(c.G), scale(c.B)
}

// Hex renders the color as #rrggbb.
func (c RGB) Hex() string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// RegularColor tints colorable effects. On dust effects at structured tiers
// it becomes a dust value of size 1; elsewhere the color rides in the offsets.
type RegularColor struct {
	rgb RGB
}

// NewRegularColor builds a color payload from 0-255 channels.
func NewRegularColor(r, g, b int) RegularColor {
	return RegularColor{rgb: RGBFrom(r, g, b)}
}

// RandomColor returns a color with uniformly random channels.
func RandomColor() RegularColor {
	return NewRegularColor(rand.Intn(256), rand.Intn(256), rand.Intn(256))
}

// Color returns the normalized color.
func (c RegularColor) Color() RGB { return c.rgb }

func (RegularColor) Kind() Kind { return KindRegularColor }

func (c RegularColor) encode(cat *Catalog, e Effect) (encoded, error) {
	if !cat.Tier().Structured() {
		return legacyOnly()
	}
	switch e {
	case Redstone:
		return dustValue(cat, c.rgb, 1)
	case DustColorTransition:
		return transitionValue(cat, c.rgb, c.rgb, 1)
	default:
		return encoded{}, nil
	}
}

// Dust is a colored dust payload with an explicit size.
type Dust struct {
	rgb  RGB
	size float32
}

// NewDust builds a dust payload from 0-255 channels and a size.
func NewDust(r, g, b int, size float32) Dust {
	return Dust{rgb: RGBFrom(r, g, b), size: size}
}

func (d Dust) Color() RGB    { return d.rgb }
func (d Dust) Size() float32 { return d.size }

func (Dust) Kind() Kind { return KindDust }

// Below TierFloat dust has no structured form; the encoder falls back to
// carrying the color in the offsets.
func (d Dust) encode(cat *Catalog, e Effect) (encoded, error) {
	if !cat.Tier().Structured() {
		return legacyOnly()
	}
	if e == Redstone {
		return dustValue(cat, d.rgb, d.size)
	}
	return transitionValue(cat, d.rgb, d.rgb, d.size)
}

// DustTransition fades dust from one color to another.
type DustTransition struct {
	from, to RGB
	size     float32
}

// NewDustTransition builds a transition payload.
func NewDustTransition(from, to RGB, size float32) DustTransition {
	return DustTransition{from: from, to: to, size: size}
}

func (d DustTransition) From() RGB     { return d.from }
func (d DustTransition) To() RGB       { return d.to }
func (d DustTransition) Size() float32 { return d.size }

func (DustTransition) Kind() Kind { return KindDustTransition }

func (d DustTransition) encode(cat *Catalog, _ Effect) (encoded, error) {
	return transitionValue(cat, d.from, d.to, d.size)
}

func dustValue(cat *Catalog, rgb RGB, size float32) (encoded, error) {
	typ, err := cat.symbol(mapping.SymbolDustOptions)
	if err != nil {
		return encoded{}, err
	}
	return structured(DustOptions{Type: typ, Color: rgb, Size: size})
}

func transitionValue(cat *Catalog, from, to RGB, size float32) (encoded, error) {
	if !cat.Version().Supports(protocol.FeatureColorTransition) {
		return encoded{}, belowTier(cat, protocol.FeatureColorTransition)
	}
	typ, err := cat.symbol(mapping.SymbolDustTransition)
	if err != nil {
		return encoded{}, err
	}
	return structured(DustTransitionOptions{Type: typ, From: from, To: to, Size: size})
}

// NoteIndexMax is the highest note index.
const NoteIndexMax = 24

// NoteColor picks one of the 25 note colors.
type NoteColor struct {
	index int
}

// NewNoteColor builds a note payload. The index is clamped to [0, 24].
func NewNoteColor(index int) NoteColor {
	return NoteColor{index: min(max(index, 0), NoteIndexMax)}
}

// RandomNoteColor returns a uniformly random note.
func RandomNoteColor() NoteColor {
	return NewNoteColor(rand.Intn(NoteIndexMax + 1))
}

// Index returns the clamped note index.
func (n NoteColor) Index() int { return n.index }

// Value returns the index normalized to [0, 1].
func (n NoteColor) Value() float32 { return float32(n.index) / NoteIndexMax }

func (NoteColor) Kind() Kind { return KindNoteColor }

func (NoteColor) encode(*Catalog, Effect) (encoded, error) {
	return encoded{}, nil
}

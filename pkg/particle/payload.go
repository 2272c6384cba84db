package particle

// Kind names a payload variant.
type Kind uint8

const (
	KindNone Kind = iota
	KindDirectional
	KindRegularColor
	KindDust
	KindDustTransition
	KindNoteColor
	KindBlockTexture
	KindItemTexture
	KindVibrationPath
	KindRoll
	KindDelay
)

var kindNames = [...]string{
	KindNone:           "none",
	KindDirectional:    "directional",
	KindRegularColor:   "color",
	KindDust:           "dust",
	KindDustTransition: "dust_transition",
	KindNoteColor:      "note",
	KindBlockTexture:   "block",
	KindItemTexture:    "item",
	KindVibrationPath:  "vibration",
	KindRoll:           "roll",
	KindDelay:          "delay",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Data is a payload variant. The set of variants is closed: only types in
// this package implement it.
type Data interface {
	Kind() Kind
	encode(c *Catalog, e Effect) (encoded, error)
}

// encoded is the structured form of a payload at a catalog's version. At most
// one of legacy and value is set; both nil means the payload rides in the
// offsets only.
type encoded struct {
	legacy []int32
	value  Value
}

func legacyOnly(values ...int32) (encoded, error) {
	if values == nil {
		values = []int32{}
	}
	return encoded{legacy: values}, nil
}

func structured(v Value) (encoded, error) {
	return encoded{value: v}, nil
}

// Payload is Data bound to the effect it was created for. A nil *Payload
// means "no payload".
type Payload struct {
	effect Effect
	data   Data
}

// Bind stamps data with effect. It returns nil for nil data.
func Bind(effect Effect, data Data) *Payload {
	if data == nil {
		return nil
	}
	return &Payload{effect: effect, data: data}
}

// Effect returns the effect the payload was bound to.
func (p *Payload) Effect() Effect {
	return p.effect
}

// Data returns the bound variant.
func (p *Payload) Data() Data {
	if p == nil {
		return nil
	}
	return p.data
}

// Kind returns the variant kind, KindNone for a nil payload.
func (p *Payload) Kind() Kind {
	if p == nil || p.data == nil {
		return KindNone
	}
	return p.data.Kind()
}

// Directional is a velocity for directional effects. It replaces the offsets
// and forces an amount of zero.
type Directional struct {
	X, Y, Z float32
}

func (Directional) Kind() Kind { return KindDirectional }

func (Directional) encode(*Catalog, Effect) (encoded, error) {
	return encoded{}, nil
}

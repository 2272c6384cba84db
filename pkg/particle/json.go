package particle

import (
	"encoding/json"
	"errors"
	"fmt"
)

var paramKindNames = [...]string{
	ParamHandle:         "handle",
	ParamDust:           "dust",
	ParamDustTransition: "dust_transition",
	ParamBlock:          "block",
	ParamItem:           "item",
	ParamVibration:      "vibration",
	ParamSculkCharge:    "sculk_charge",
	ParamShriek:         "shriek",
}

func (k ParamKind) String() string {
	if int(k) < len(paramKindNames) {
		return paramKindNames[k]
	}
	return fmt.Sprintf("ParamKind(%d)", uint8(k))
}

// ParseParamKind is the inverse of ParamKind.String.
func ParseParamKind(s string) (ParamKind, bool) {
	for k, name := range paramKindNames {
		if name == s {
			return ParamKind(k), true
		}
	}
	return 0, false
}

// paramJSON is the tagged JSON form of a Param.
type paramJSON struct {
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// MarshalParam encodes p as {"kind": ..., "value": ...}.
func MarshalParam(p Param) ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	value, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return json.Marshal(paramJSON{Kind: p.ParamKind().String(), Value: value})
}

// UnmarshalParam decodes the form written by MarshalParam. JSON null gives a
// nil Param.
func UnmarshalParam(data []byte) (Param, error) {
	if string(data) == "null" {
		return nil, nil
	}
	var env paramJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	kind, ok := ParseParamKind(env.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParam, env.Kind)
	}

	var p Param
	var err error
	switch kind {
	case ParamHandle:
		p, err = unmarshalAs[Handle](env.Value)
	case ParamDust:
		p, err = unmarshalAs[DustOptions](env.Value)
	case ParamDustTransition:
		p, err = unmarshalAs[DustTransitionOptions](env.Value)
	case ParamBlock:
		p, err = unmarshalAs[BlockOptions](env.Value)
	case ParamItem:
		p, err = unmarshalAs[ItemOptions](env.Value)
	case ParamVibration:
		p, err = unmarshalAs[VibrationOptions](env.Value)
	case ParamSculkCharge:
		p, err = unmarshalAs[SculkChargeOptions](env.Value)
	case ParamShriek:
		p, err = unmarshalAs[ShriekOptions](env.Value)
	}
	if err != nil {
		return nil, fmt.Errorf("%s param: %w", kind, err)
	}
	return p, nil
}

func unmarshalAs[T Param](data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}

// sourceJSON holds exactly one of the position sources.
type sourceJSON struct {
	Block  *BlockSource  `json:"block,omitempty"`
	Entity *EntitySource `json:"entity,omitempty"`
}

type vibrationJSON struct {
	Type   string     `json:"type"`
	Path   string     `json:"path,omitempty"`
	Origin *Position  `json:"origin,omitempty"`
	Source sourceJSON `json:"source"`
	Ticks  int32      `json:"ticks"`
}

var errSourceShape = errors.New("vibration source needs exactly one of block or entity")

func (v VibrationOptions) MarshalJSON() ([]byte, error) {
	out := vibrationJSON{Type: v.Type, Path: v.Path, Origin: v.Origin, Ticks: v.Ticks}
	switch s := v.Source.(type) {
	case BlockSource:
		out.Source.Block = &s
	case EntitySource:
		out.Source.Entity = &s
	}
	return json.Marshal(out)
}

func (v *VibrationOptions) UnmarshalJSON(data []byte) error {
	var in vibrationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*v = VibrationOptions{Type: in.Type, Path: in.Path, Origin: in.Origin, Ticks: in.Ticks}
	switch {
	case in.Source.Block != nil && in.Source.Entity == nil:
		v.Source = *in.Source.Block
	case in.Source.Entity != nil && in.Source.Block == nil:
		v.Source = *in.Source.Entity
	default:
		return errSourceShape
	}
	return nil
}

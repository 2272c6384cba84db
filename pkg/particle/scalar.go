package particle

import (
	"fmt"

	"github.com/vango-dev/particlewire/pkg/mapping"
	"github.com/vango-dev/particlewire/pkg/protocol"
)

// Roll is the rotation of a sculk charge, in radians.
type Roll struct {
	Value float32
}

func (Roll) Kind() Kind { return KindRoll }

func (r Roll) encode(cat *Catalog, _ Effect) (encoded, error) {
	if !cat.Version().Supports(protocol.FeatureSculk) {
		return encoded{}, belowTier(cat, protocol.FeatureSculk)
	}
	typ, err := cat.symbol(mapping.SymbolSculkChargeOptions)
	if err != nil {
		return encoded{}, err
	}
	return structured(SculkChargeOptions{Type: typ, Roll: r.Value})
}

// Delay is the number of ticks before a shriek starts.
type Delay struct {
	Ticks int32
}

func (Delay) Kind() Kind { return KindDelay }

func (d Delay) encode(cat *Catalog, _ Effect) (encoded, error) {
	if !cat.Version().Supports(protocol.FeatureSculk) {
		return encoded{}, belowTier(cat, protocol.FeatureSculk)
	}
	if d.Ticks < 0 {
		return encoded{}, fmt.Errorf("%w: negative delay %d", ErrConstruction, d.Ticks)
	}
	typ, err := cat.symbol(mapping.SymbolShriekOptions)
	if err != nil {
		return encoded{}, err
	}
	return structured(ShriekOptions{Type: typ, Delay: d.Ticks})
}

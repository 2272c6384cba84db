package particle

import (
	"fmt"

	"github.com/vango-dev/particlewire/pkg/mapping"
	"github.com/vango-dev/particlewire/pkg/protocol"
)

// BlockPos is an integer block coordinate.
type BlockPos struct {
	X, Y, Z int32
}

// Destination is where a vibration travels to: a BlockDestination or an
// EntityDestination.
type Destination interface {
	destination()
}

// BlockDestination ends a vibration at a block.
type BlockDestination struct {
	Pos BlockPos
}

// EntityDestination ends a vibration at an entity.
type EntityDestination struct {
	EntityID  int32
	EyeHeight float32
}

func (BlockDestination) destination()  {}
func (EntityDestination) destination() {}

// VibrationPath sends a vibration to a destination over a number of ticks.
// Versions 17 and 18 also need the origin block.
type VibrationPath struct {
	origin *BlockPos
	dest   Destination
	ticks  int32
}

// NewVibrationPath builds a vibration payload with an explicit origin.
func NewVibrationPath(origin BlockPos, dest Destination, ticks int32) VibrationPath {
	return VibrationPath{origin: &origin, dest: dest, ticks: ticks}
}

// NewVibrationTo builds a vibration payload without an origin. It only
// encodes at versions with position sources.
func NewVibrationTo(dest Destination, ticks int32) VibrationPath {
	return VibrationPath{dest: dest, ticks: ticks}
}

// Origin returns the origin block, if any.
func (v VibrationPath) Origin() (BlockPos, bool) {
	if v.origin == nil {
		return BlockPos{}, false
	}
	return *v.origin, true
}

func (v VibrationPath) Destination() Destination { return v.dest }
func (v VibrationPath) Ticks() int32             { return v.ticks }

func (VibrationPath) Kind() Kind { return KindVibrationPath }

func (v VibrationPath) encode(cat *Catalog, _ Effect) (encoded, error) {
	ver := cat.Version()
	if !ver.Supports(protocol.FeatureVibration) {
		return encoded{}, belowTier(cat, protocol.FeatureVibration)
	}
	if v.dest == nil || v.ticks < 0 {
		return encoded{}, fmt.Errorf("%w: vibration needs a destination and non-negative ticks", ErrConstruction)
	}
	optType, err := cat.symbol(mapping.SymbolVibrationOptions)
	if err != nil {
		return encoded{}, err
	}
	source, err := positionSource(cat, v.dest)
	if err != nil {
		return encoded{}, err
	}
	opts := VibrationOptions{Type: optType, Source: source, Ticks: v.ticks}
	if ver.Supports(protocol.FeaturePositionSource) {
		return structured(opts)
	}

	if v.origin == nil {
		return encoded{}, fmt.Errorf("%w: vibration at %s needs an origin", ErrConstruction, ver)
	}
	if opts.Path, err = cat.symbol(mapping.SymbolVibrationPath); err != nil {
		return encoded{}, err
	}
	origin, err := position(cat, *v.origin)
	if err != nil {
		return encoded{}, err
	}
	opts.Origin = &origin
	return structured(opts)
}

func positionSource(cat *Catalog, dest Destination) (PositionSource, error) {
	switch d := dest.(type) {
	case BlockDestination:
		typ, err := cat.symbol(mapping.SymbolBlockPositionSource)
		if err != nil {
			return nil, err
		}
		pos, err := position(cat, d.Pos)
		if err != nil {
			return nil, err
		}
		return BlockSource{Type: typ, Pos: pos}, nil
	case EntityDestination:
		typ, err := cat.symbol(mapping.SymbolEntityPositionSource)
		if err != nil {
			return nil, err
		}
		return EntitySource{Type: typ, EntityID: d.EntityID, YOffset: d.EyeHeight}, nil
	default:
		return nil, fmt.Errorf("%w: unknown destination %T", ErrConstruction, dest)
	}
}

func position(cat *Catalog, p BlockPos) (Position, error) {
	typ, err := cat.symbol(mapping.SymbolBlockPosition)
	if err != nil {
		return Position{}, err
	}
	return Position{Type: typ, X: p.X, Y: p.Y, Z: p.Z}, nil
}

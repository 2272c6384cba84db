package particle

import (
	"errors"
	"fmt"

	"github.com/vango-dev/particlewire/pkg/protocol"
)

// Failure kinds. Build wraps one of these in an *EncodeError; Encode
// collapses all of them to "no packet".
var (
	ErrSymbolUnresolved    = errors.New("particle: symbol unresolved")
	ErrPayloadIncompatible = errors.New("particle: payload incompatible with effect")
	ErrFeatureBelowTier    = errors.New("particle: feature not available at version")
	ErrConstruction        = errors.New("particle: value construction failed")
)

// EncodeError reports why a request produced no packet.
type EncodeError struct {
	Effect  Effect
	Version protocol.Version
	Err     error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s at %s: %v", e.Effect, e.Version, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// ReasonOf maps an error from Build to a short label for metrics and logs.
func ReasonOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrSymbolUnresolved):
		return "symbol_unresolved"
	case errors.Is(err, ErrPayloadIncompatible):
		return "payload_incompatible"
	case errors.Is(err, ErrFeatureBelowTier):
		return "feature_below_tier"
	case errors.Is(err, ErrConstruction):
		return "construction_failure"
	default:
		return "internal"
	}
}

func belowTier(cat *Catalog, f protocol.Feature) error {
	return fmt.Errorf("%w: %s needs %s, have %s", ErrFeatureBelowTier, f, f.Since(), cat.Version())
}

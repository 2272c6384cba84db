package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Version is a game protocol generation, identified by its minor release
// number: 8 is 1.8, 19 is 1.19. A process runs against exactly one version.
type Version int

// Version bounds.
const (
	// MinVersion is the oldest generation with a known wire layout.
	MinVersion Version = 8

	// LatestVersion is the newest generation the built-in tables describe.
	LatestVersion Version = 19
)

// ErrInvalidVersion is returned by ParseVersion.
var ErrInvalidVersion = errors.New("protocol: invalid version")

// ParseVersion parses "19", "1.19" or "1.19.2". The patch component must be
// a number but does not change the result.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ".")
	var minor string
	switch {
	case len(parts) == 1:
		minor = parts[0]
	case len(parts) <= 3 && parts[0] == "1":
		minor = parts[1]
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	n, err := strconv.Atoi(minor)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	if len(parts) == 3 {
		if patch, err := strconv.Atoi(parts[2]); err != nil || patch < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
	}
	v := Version(n)
	if v < MinVersion {
		return 0, fmt.Errorf("%w: %q is older than 1.%d", ErrInvalidVersion, s, MinVersion)
	}
	return v, nil
}

// String renders the version as "1.<minor>".
func (v Version) String() string {
	return "1." + strconv.Itoa(int(v))
}

// Tier is a wire-shape era. Every packet is laid out according to exactly one tier.
type Tier uint8

const (
	// TierLegacy: effect enum handle, float coordinates, trailing int array.
	TierLegacy Tier = iota
	// TierFloat: registry handle or structured value in the handle slot, float coordinates.
	TierFloat
	// TierDouble: as TierFloat with double-precision coordinates.
	TierDouble
)

// String returns the string representation of the tier.
func (t Tier) String() string {
	switch t {
	case TierLegacy:
		return "legacy"
	case TierFloat:
		return "float"
	case TierDouble:
		return "double"
	default:
		return "unknown"
	}
}

// Structured reports whether the handle slot may carry a structured value.
func (t Tier) Structured() bool {
	return t >= TierFloat
}

// WideCoords reports whether coordinates are written as float64.
func (t Tier) WideCoords() bool {
	return t >= TierDouble
}

// tiers is ordered newest first; the first entry whose floor is reached wins.
var tiers = [...]struct {
	since Version
	tier  Tier
}{
	{15, TierDouble},
	{13, TierFloat},
	{0, TierLegacy},
}

// Tier classifies the version into its wire-shape era.
func (v Version) Tier() Tier {
	for _, t := range tiers {
		if v >= t.since {
			return t.tier
		}
	}
	return TierLegacy
}

// Feature names a version-gated capability of the wire format.
type Feature uint8

const (
	FeatureStructured      Feature = iota // structured payload values
	FeatureDoubleCoords                   // float64 coordinates
	FeatureColorTransition                // two-color dust
	FeatureVibration                      // vibration payload, origin + path shape
	FeaturePositionSource                 // vibration without origin, source + ticks
	FeatureSculk                          // roll and delay payloads
)

var featureSince = [...]Version{
	FeatureStructured:      13,
	FeatureDoubleCoords:    15,
	FeatureColorTransition: 17,
	FeatureVibration:       17,
	FeaturePositionSource:  19,
	FeatureSculk:           19,
}

// String returns the feature name.
func (f Feature) String() string {
	switch f {
	case FeatureStructured:
		return "structured"
	case FeatureDoubleCoords:
		return "double-coords"
	case FeatureColorTransition:
		return "color-transition"
	case FeatureVibration:
		return "vibration"
	case FeaturePositionSource:
		return "position-source"
	case FeatureSculk:
		return "sculk"
	default:
		return "unknown"
	}
}

// Since returns the first version supporting the feature.
func (f Feature) Since() Version {
	if int(f) >= len(featureSince) {
		return 0
	}
	return featureSince[f]
}

// Supports reports whether the version has the feature.
func (v Version) Supports(f Feature) bool {
	if int(f) >= len(featureSince) {
		return false
	}
	return v >= featureSince[f]
}

package particle

import (
	"strings"

	"github.com/vango-dev/particlewire/pkg/protocol"
)

// Effect identifies a logical display effect. The set is closed; every
// constant has a Descriptor in the built-in table.
type Effect uint16

// Capability is a bit set of payload-related properties of an effect.
type Capability uint8

const (
	// CapDirectional effects treat the offsets as a velocity when amount is 0.
	CapDirectional Capability = 1 << iota
	// CapColorable effects accept color payloads.
	CapColorable
	// CapDust effects accept sized dust payloads.
	CapDust
	// CapRequiresBlock effects cannot be shown without a block texture.
	CapRequiresBlock
	// CapRequiresItem effects cannot be shown without an item texture.
	CapRequiresItem
	// CapRequiresWater effects are only visible under water.
	CapRequiresWater
	// CapResizeable effects scale with the first offset.
	CapResizeable
)

var capabilityNames = [...]struct {
	c    Capability
	name string
}{
	{CapDirectional, "directional"},
	{CapColorable, "colorable"},
	{CapDust, "dust"},
	{CapRequiresBlock, "requires_block"},
	{CapRequiresItem, "requires_item"},
	{CapRequiresWater, "requires_water"},
	{CapResizeable, "resizeable"},
}

// Has reports whether every bit of flag is set.
func (c Capability) Has(flag Capability) bool {
	return c&flag == flag
}

// Names returns the names of the set bits in declaration order.
func (c Capability) Names() []string {
	var names []string
	for _, cn := range capabilityNames {
		if c.Has(cn.c) {
			names = append(names, cn.name)
		}
	}
	return names
}

// String joins Names with "|".
func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	return strings.Join(c.Names(), "|")
}

// Descriptor is the static description of an effect: when it exists, what
// it is called on the wire, and which payloads it can carry.
type Descriptor struct {
	Effect Effect
	// Since is the first version the effect exists in.
	Since protocol.Version
	// Until is the last version the effect exists in; 0 means still present.
	Until protocol.Version
	// Modern is the registry key path used from TierFloat on. Empty for
	// effects that never made it past the legacy enum.
	Modern string
	Caps   Capability
}

// Legacy returns the enum constant name used below TierFloat.
func (d Descriptor) Legacy() string {
	return d.Effect.String()
}

// WireName is the effect's naming function. It returns false (the NONE
// sentinel) when the effect does not exist at v.
func (d Descriptor) WireName(v protocol.Version) (string, bool) {
	if v < d.Since || (d.Until != 0 && v > d.Until) {
		return "", false
	}
	if !v.Tier().Structured() {
		return d.Legacy(), true
	}
	if d.Modern == "" {
		return "", false
	}
	return d.Modern, true
}

// Has reports whether the effect has the capability.
func (d Descriptor) Has(c Capability) bool {
	return d.Caps.Has(c)
}

// Describe returns the descriptor for e. Unknown effects yield a zero
// descriptor that never exists.
func (e Effect) Describe() Descriptor {
	if int(e) >= len(descriptors) {
		return Descriptor{Effect: e, Since: 1 << 30}
	}
	return descriptors[e]
}

// String returns the effect's constant name, e.g. "REDSTONE".
func (e Effect) String() string {
	if int(e) >= len(effectNames) {
		return "UNKNOWN"
	}
	return effectNames[e]
}

// EffectByName looks an effect up by constant name, case-insensitively.
// Hyphens and spaces are treated as underscores.
func EffectByName(name string) (Effect, bool) {
	key := strings.ToUpper(strings.NewReplacer("-", "_", " ", "_").Replace(strings.TrimSpace(name)))
	e, ok := effectsByName[key]
	return e, ok
}

// Effects returns every known effect in id order.
func Effects() []Effect {
	out := make([]Effect, len(descriptors))
	for i := range descriptors {
		out[i] = Effect(i)
	}
	return out
}

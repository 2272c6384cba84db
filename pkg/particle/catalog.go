package particle

import (
	"fmt"
	"sync/atomic"

	"github.com/vango-dev/particlewire/pkg/mapping"
	"github.com/vango-dev/particlewire/pkg/protocol"
)

// Handle is the wire token of an effect at the running version: the resolved
// registry (or legacy enum) symbol and the key inside it.
type Handle struct {
	Registry string `json:"registry"`
	Key      string `json:"key"`
}

// String renders the handle as "registry:key" style text for logs.
func (h Handle) String() string {
	if h.Registry == "" {
		return h.Key
	}
	return h.Registry + "/" + h.Key
}

// IsZero reports whether the handle is unset.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

type resolution struct {
	handle Handle
	ok     bool
}

// Catalog answers per-effect questions for the registry's version. Handles
// are resolved lazily and cached for the catalog's lifetime. It is safe for
// concurrent use.
type Catalog struct {
	reg     *mapping.Registry
	version protocol.Version
	handles []atomic.Pointer[resolution]
}

// NewCatalog creates a catalog bound to reg and its version.
func NewCatalog(reg *mapping.Registry) *Catalog {
	return &Catalog{
		reg:     reg,
		version: reg.Version(),
		handles: make([]atomic.Pointer[resolution], len(descriptors)),
	}
}

// Registry returns the mapping registry the catalog resolves against.
func (c *Catalog) Registry() *mapping.Registry {
	return c.reg
}

// Version returns the catalog's protocol version.
func (c *Catalog) Version() protocol.Version {
	return c.version
}

// Tier returns the wire-shape tier of the catalog's version.
func (c *Catalog) Tier() protocol.Tier {
	return c.version.Tier()
}

// WireName applies the effect's naming function at the catalog's version.
func (c *Catalog) WireName(e Effect) (string, bool) {
	return e.Describe().WireName(c.version)
}

// Has reports whether the effect has the capability.
func (c *Catalog) Has(e Effect, flag Capability) bool {
	return e.Describe().Has(flag)
}

// ResolveHandle returns the effect's handle, or false when the effect does
// not exist at this version or its registry symbol is unresolved.
//
// Resolution is pure, so concurrent first calls may each compute it; they
// all publish the same value.
func (c *Catalog) ResolveHandle(e Effect) (Handle, bool) {
	if int(e) >= len(c.handles) {
		return Handle{}, false
	}
	if r := c.handles[e].Load(); r != nil {
		return r.handle, r.ok
	}
	r := c.resolve(e)
	c.handles[e].CompareAndSwap(nil, r)
	return r.handle, r.ok
}

func (c *Catalog) resolve(e Effect) *resolution {
	name, ok := c.WireName(e)
	if !ok {
		return &resolution{}
	}
	symbol, key := mapping.SymbolParticleRegistry, "minecraft:"+name
	if !c.Tier().Structured() {
		symbol, key = mapping.SymbolParticleEnum, name
	}
	registry, ok := c.reg.Resolve(symbol)
	if !ok {
		return &resolution{}
	}
	return &resolution{handle: Handle{Registry: registry, Key: key}, ok: true}
}

// Compatible reports whether p may be shown with effect e. A nil payload is
// compatible with every effect that does not need a texture, and so is a
// velocity.
func (c *Catalog) Compatible(e Effect, p *Payload) bool {
	d := e.Describe()
	switch p.Kind() {
	case KindNone:
		return !d.Has(CapRequiresBlock) && !d.Has(CapRequiresItem)
	case KindDirectional:
		return d.Has(CapDirectional) && !d.Has(CapRequiresBlock) && !d.Has(CapRequiresItem)
	case KindRegularColor:
		return d.Has(CapColorable)
	case KindDust:
		return d.Has(CapColorable | CapDust)
	case KindDustTransition:
		return d.Has(CapColorable|CapDust) && e == DustColorTransition
	case KindNoteColor:
		return e == Note
	case KindBlockTexture:
		return d.Has(CapRequiresBlock)
	case KindItemTexture:
		return d.Has(CapRequiresItem)
	case KindVibrationPath:
		return e == Vibration
	case KindRoll:
		return e == SculkCharge
	case KindDelay:
		return e == Shriek
	default:
		return false
	}
}

// Available returns the effects that resolve to a handle at this version.
func (c *Catalog) Available() []Effect {
	var out []Effect
	for _, e := range Effects() {
		if _, ok := c.ResolveHandle(e); ok {
			out = append(out, e)
		}
	}
	return out
}

// symbol resolves a structured-value symbol or reports it as unresolved.
func (c *Catalog) symbol(name string) (string, error) {
	v, ok := c.reg.Resolve(name)
	if !ok {
		return "", fmt.Errorf("%w: %s at %s", ErrSymbolUnresolved, name, c.version)
	}
	return v, nil
}

package particle

import (
	"fmt"
	"strings"

	"github.com/vango-dev/particlewire/pkg/mapping"
)

// Material identifies a block or item type. Ordinal is the legacy numeric id
// used below TierFloat; Key is the registry key used from TierFloat on.
type Material struct {
	Key     string
	Ordinal int32
	Block   bool
}

// BlockMaterial returns a block Material.
func BlockMaterial(key string, ordinal int32) Material {
	return Material{Key: key, Ordinal: ordinal, Block: true}
}

// ItemMaterial returns a non-block Material.
func ItemMaterial(key string, ordinal int32) Material {
	return Material{Key: key, Ordinal: ordinal}
}

// NamespacedKey returns the key with the minecraft namespace applied when it
// has none.
func (m Material) NamespacedKey() string {
	if strings.Contains(m.Key, ":") {
		return m.Key
	}
	return "minecraft:" + m.Key
}

// BlockTexture shows a block's texture on block-based effects.
type BlockTexture struct {
	material Material
	data     byte
}

// NewBlockTexture builds a block texture payload. data is only used by legacy
// versions.
func NewBlockTexture(material Material, data byte) BlockTexture {
	return BlockTexture{material: material, data: data}
}

func (b BlockTexture) Material() Material { return b.material }
func (b BlockTexture) Data() byte         { return b.data }

func (BlockTexture) Kind() Kind { return KindBlockTexture }

func (b BlockTexture) encode(cat *Catalog, e Effect) (encoded, error) {
	if !b.material.Block || b.material.Key == "" {
		return encoded{}, fmt.Errorf("%w: %q is not a block", ErrConstruction, b.material.Key)
	}
	if !cat.Tier().Structured() {
		return legacyOnly(b.material.Ordinal, int32(b.data))
	}
	handle, err := handleFor(cat, e)
	if err != nil {
		return encoded{}, err
	}
	optType, err := cat.symbol(mapping.SymbolBlockOptions)
	if err != nil {
		return encoded{}, err
	}
	stateType, err := cat.symbol(mapping.SymbolBlockState)
	if err != nil {
		return encoded{}, err
	}
	return structured(BlockOptions{
		Type:     optType,
		Particle: handle,
		State:    BlockState{Type: stateType, Key: b.material.NamespacedKey()},
	})
}

// ItemStack is an item for item-based effects.
type ItemStack struct {
	Material Material
	Count    int32
	// Damage is the legacy data value.
	Damage int16
}

// ItemTexture shows an item's texture on item-based effects.
type ItemTexture struct {
	stack ItemStack
}

// NewItemTexture builds an item texture payload.
func NewItemTexture(stack ItemStack) ItemTexture {
	return ItemTexture{stack: stack}
}

func (i ItemTexture) Stack() ItemStack { return i.stack }

func (ItemTexture) Kind() Kind { return KindItemTexture }

func (i ItemTexture) encode(cat *Catalog, e Effect) (encoded, error) {
	s := i.stack
	if s.Material.Key == "" || s.Damage < 0 {
		return encoded{}, fmt.Errorf("%w: invalid item stack", ErrConstruction)
	}
	if !cat.Tier().Structured() {
		return legacyOnly(s.Material.Ordinal, int32(s.Damage))
	}
	handle, err := handleFor(cat, e)
	if err != nil {
		return encoded{}, err
	}
	optType, err := cat.symbol(mapping.SymbolItemOptions)
	if err != nil {
		return encoded{}, err
	}
	stackType, err := cat.symbol(mapping.SymbolItemStack)
	if err != nil {
		return encoded{}, err
	}
	count := s.Count
	if count <= 0 {
		count = 1
	}
	return structured(ItemOptions{
		Type:     optType,
		Particle: handle,
		Item:     ItemValue{Type: stackType, Key: s.Material.NamespacedKey(), Count: count},
	})
}

func handleFor(cat *Catalog, e Effect) (Handle, error) {
	h, ok := cat.ResolveHandle(e)
	if !ok {
		return Handle{}, fmt.Errorf("%w: no handle for %s at %s", ErrSymbolUnresolved, e, cat.Version())
	}
	return h, nil
}

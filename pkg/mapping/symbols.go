package mapping

// Symbols the particle catalog resolves. Each one must be declared in the
// active table for the features that depend on it to work; a missing symbol
// makes those features unsupported at the running version.
const (
	SymbolParticleEnum         = "ParticleEnum"
	SymbolParticleRegistry     = "ParticleRegistry"
	SymbolDustOptions          = "DustOptions"
	SymbolDustTransition       = "DustColorTransitionOptions"
	SymbolBlockOptions         = "BlockOptions"
	SymbolItemOptions          = "ItemOptions"
	SymbolBlockState           = "BlockState"
	SymbolItemStack            = "ItemStack"
	SymbolBlockPosition        = "BlockPosition"
	SymbolVibrationOptions     = "VibrationOptions"
	SymbolVibrationPath        = "VibrationPath"
	SymbolBlockPositionSource  = "BlockPositionSource"
	SymbolEntityPositionSource = "EntityPositionSource"
	SymbolSculkChargeOptions   = "SculkChargeOptions"
	SymbolShriekOptions        = "ShriekOptions"
)

package particle

// Built-in effects, in alphabetical order of their legacy enum names.
const (
	Ash Effect = iota
	Barrier
	BlockCrack
	BlockDust
	BlockMarker
	BubbleColumnUp
	BubblePop
	CampfireCosySmoke
	CampfireSignalSmoke
	Cloud
	Composter
	CrimsonSpore
	Crit
	CritMagic
	CurrentDown
	DamageIndicator
	Dolphin
	DragonBreath
	DripLava
	DripWater
	DrippingDripstoneLava
	DrippingDripstoneWater
	DrippingHoney
	DrippingObsidianTear
	DustColorTransition
	ElectricSpark
	EnchantmentTable
	EndRod
	ExplosionHuge
	ExplosionLarge
	ExplosionNormal
	FallingDripstoneLava
	FallingDripstoneWater
	FallingDust
	FallingHoney
	FallingNectar
	FallingObsidianTear
	FallingSporeBlossom
	FireworksSpark
	Flame
	Flash
	Footstep
	Glow
	GlowSquidInk
	Heart
	ItemCrack
	LandingHoney
	LandingObsidianTear
	Lava
	MobAppearance
	Nautilus
	Note
	Portal
	Redstone
	ReversePortal
	Scrape
	SculkCharge
	SculkChargePop
	SculkSoul
	Shriek
	Slime
	SmallFlame
	SmokeLarge
	SmokeNormal
	Sneeze
	Snowball
	Snowflake
	SnowShovel
	SonicBoom
	Soul
	SoulFireFlame
	Spell
	SpellInstant
	SpellMob
	SpellMobAmbient
	SpellWitch
	Spit
	SporeBlossomAir
	SquidInk
	Suspended
	SuspendedDepth
	SweepAttack
	Totem
	TownAura
	Vibration
	VillagerAngry
	VillagerHappy
	WarpedSpore
	WaterBubble
	WaterDrop
	WaterSplash
	WaterWake
	WaxOff
	WaxOn
	WhiteAsh
)

var descriptors = [...]Descriptor{
	Ash:                    {Since: 16, Modern: "ash"},
	Barrier:                {Since: 8, Modern: "barrier"},
	BlockCrack:             {Since: 8, Modern: "block", Caps: CapRequiresBlock},
	BlockDust:              {Since: 8, Modern: "falling_dust", Caps: CapDirectional | CapRequiresBlock},
	BlockMarker:            {Since: 18, Modern: "block_marker", Caps: CapRequiresBlock},
	BubbleColumnUp:         {Since: 13, Modern: "bubble_column_up", Caps: CapDirectional},
	BubblePop:              {Since: 13, Modern: "bubble_pop", Caps: CapDirectional},
	CampfireCosySmoke:      {Since: 14, Modern: "campfire_cosy_smoke", Caps: CapDirectional},
	CampfireSignalSmoke:    {Since: 14, Modern: "campfire_signal_smoke", Caps: CapDirectional},
	Cloud:                  {Since: 8, Modern: "cloud", Caps: CapDirectional},
	Composter:              {Since: 14, Modern: "composter"},
	CrimsonSpore:           {Since: 16, Modern: "crimson_spore"},
	Crit:                   {Since: 8, Modern: "crit", Caps: CapDirectional},
	CritMagic:              {Since: 8, Modern: "enchanted_hit", Caps: CapDirectional},
	CurrentDown:            {Since: 13, Modern: "current_down"},
	DamageIndicator:        {Since: 9, Modern: "damage_indicator", Caps: CapDirectional},
	Dolphin:                {Since: 13, Modern: "dolphin"},
	DragonBreath:           {Since: 9, Modern: "dragon_breath", Caps: CapDirectional},
	DripLava:               {Since: 8, Modern: "dripping_lava"},
	DripWater:              {Since: 8, Modern: "dripping_water"},
	DrippingDripstoneLava:  {Since: 17, Modern: "dripping_dripstone_lava"},
	DrippingDripstoneWater: {Since: 17, Modern: "dripping_dripstone_water"},
	DrippingHoney:          {Since: 15, Modern: "dripping_honey"},
	DrippingObsidianTear:   {Since: 16, Modern: "dripping_obsidian_tear"},
	DustColorTransition:    {Since: 17, Modern: "dust_color_transition", Caps: CapColorable | CapDust},
	ElectricSpark:          {Since: 17, Modern: "electric_spark", Caps: CapDirectional},
	EnchantmentTable:       {Since: 8, Modern: "enchant", Caps: CapDirectional},
	EndRod:                 {Since: 9, Modern: "end_rod", Caps: CapDirectional},
	ExplosionHuge:          {Since: 8, Modern: "explosion_emitter"},
	ExplosionLarge:         {Since: 8, Modern: "explosion"},
	ExplosionNormal:        {Since: 8, Modern: "poof", Caps: CapDirectional},
	FallingDripstoneLava:   {Since: 16, Modern: "falling_dripstone_lava"},
	FallingDripstoneWater:  {Since: 16, Modern: "falling_dripstone_water"},
	FallingDust:            {Since: 10, Modern: "falling_dust", Caps: CapRequiresBlock},
	FallingHoney:           {Since: 15, Modern: "falling_honey"},
	FallingNectar:          {Since: 15, Modern: "falling_nectar"},
	FallingObsidianTear:    {Since: 16, Modern: "falling_obsidian_tear"},
	FallingSporeBlossom:    {Since: 17, Modern: "falling_spore_blossom"},
	FireworksSpark:         {Since: 8, Modern: "firework", Caps: CapDirectional},
	Flame:                  {Since: 8, Modern: "flame", Caps: CapDirectional},
	Flash:                  {Since: 14, Modern: "flash"},
	Footstep:               {Since: 9, Until: 12},
	Glow:                   {Since: 17, Modern: "glow"},
	GlowSquidInk:           {Since: 17, Modern: "glow_squid_ink"},
	Heart:                  {Since: 8, Modern: "heart"},
	ItemCrack:              {Since: 8, Modern: "item", Caps: CapDirectional | CapRequiresItem},
	LandingHoney:           {Since: 15, Modern: "landing_honey"},
	LandingObsidianTear:    {Since: 16, Modern: "landing_obsidian_tear"},
	Lava:                   {Since: 8, Modern: "lava"},
	MobAppearance:          {Since: 8, Modern: "elder_guardian"},
	Nautilus:               {Since: 13, Modern: "nautilus", Caps: CapDirectional},
	Note:                   {Since: 8, Modern: "note", Caps: CapColorable},
	Portal:                 {Since: 8, Modern: "portal", Caps: CapDirectional},
	Redstone:               {Since: 8, Modern: "dust", Caps: CapColorable | CapDust},
	ReversePortal:          {Since: 16, Modern: "reverse_portal", Caps: CapDirectional},
	Scrape:                 {Since: 17, Modern: "scrape", Caps: CapDirectional},
	SculkCharge:            {Since: 19, Modern: "sculk_charge", Caps: CapDirectional},
	SculkChargePop:         {Since: 19, Modern: "sculk_charge_pop", Caps: CapDirectional},
	SculkSoul:              {Since: 19, Modern: "sculk_soul", Caps: CapDirectional},
	Shriek:                 {Since: 19, Modern: "shriek"},
	Slime:                  {Since: 8, Modern: "item_slime"},
	SmallFlame:             {Since: 17, Modern: "small_flame", Caps: CapDirectional},
	SmokeLarge:             {Since: 8, Modern: "large_smoke", Caps: CapDirectional},
	SmokeNormal:            {Since: 8, Modern: "smoke", Caps: CapDirectional},
	Sneeze:                 {Since: 14, Modern: "sneeze", Caps: CapDirectional},
	Snowball:               {Since: 8, Modern: "item_snowball"},
	Snowflake:              {Since: 17, Modern: "snowflake"},
	SnowShovel:             {Since: 8, Modern: "poof", Caps: CapDirectional},
	SonicBoom:              {Since: 19, Modern: "sonic_boom"},
	Soul:                   {Since: 16, Modern: "soul", Caps: CapDirectional},
	SoulFireFlame:          {Since: 16, Modern: "soul_fire_flame", Caps: CapDirectional},
	Spell:                  {Since: 8, Modern: "effect"},
	SpellInstant:           {Since: 8, Modern: "instant_effect"},
	SpellMob:               {Since: 8, Modern: "entity_effect", Caps: CapColorable},
	SpellMobAmbient:        {Since: 8, Modern: "ambient_entity_effect", Caps: CapColorable},
	SpellWitch:             {Since: 8, Modern: "witch"},
	Spit:                   {Since: 11, Modern: "spit"},
	SporeBlossomAir:        {Since: 17, Modern: "spore_blossom_air"},
	SquidInk:               {Since: 13, Modern: "squid_ink", Caps: CapDirectional},
	Suspended:              {Since: 8, Modern: "underwater", Caps: CapRequiresWater},
	SuspendedDepth:         {Since: 9, Until: 12, Caps: CapDirectional},
	SweepAttack:            {Since: 9, Modern: "sweep_attack", Caps: CapResizeable},
	Totem:                  {Since: 11, Modern: "totem_of_undying", Caps: CapDirectional},
	TownAura:               {Since: 8, Modern: "mycelium", Caps: CapDirectional},
	Vibration:              {Since: 17, Modern: "vibration"},
	VillagerAngry:          {Since: 8, Modern: "angry_villager"},
	VillagerHappy:          {Since: 8, Modern: "happy_villager", Caps: CapDirectional},
	WarpedSpore:            {Since: 16, Modern: "warped_spore"},
	WaterBubble:            {Since: 8, Modern: "bubble", Caps: CapDirectional | CapRequiresWater},
	WaterDrop:              {Since: 9, Until: 12},
	WaterSplash:            {Since: 8, Modern: "splash", Caps: CapDirectional},
	WaterWake:              {Since: 8, Modern: "fishing", Caps: CapDirectional},
	WaxOff:                 {Since: 17, Modern: "wax_off", Caps: CapDirectional},
	WaxOn:                  {Since: 17, Modern: "wax_on", Caps: CapDirectional},
	WhiteAsh:               {Since: 16, Modern: "white_ash"},
}

var effectNames = [...]string{
	Ash:                    "ASH",
	Barrier:                "BARRIER",
	BlockCrack:             "BLOCK_CRACK",
	BlockDust:              "BLOCK_DUST",
	BlockMarker:            "BLOCK_MARKER",
	BubbleColumnUp:         "BUBBLE_COLUMN_UP",
	BubblePop:              "BUBBLE_POP",
	CampfireCosySmoke:      "CAMPFIRE_COSY_SMOKE",
	CampfireSignalSmoke:    "CAMPFIRE_SIGNAL_SMOKE",
	Cloud:                  "CLOUD",
	Composter:              "COMPOSTER",
	CrimsonSpore:           "CRIMSON_SPORE",
	Crit:                   "CRIT",
	CritMagic:              "CRIT_MAGIC",
	CurrentDown:            "CURRENT_DOWN",
	DamageIndicator:        "DAMAGE_INDICATOR",
	Dolphin:                "DOLPHIN",
	DragonBreath:           "DRAGON_BREATH",
	DripLava:               "DRIP_LAVA",
	DripWater:              "DRIP_WATER",
	DrippingDripstoneLava:  "DRIPPING_DRIPSTONE_LAVA",
	DrippingDripstoneWater: "DRIPPING_DRIPSTONE_WATER",
	DrippingHoney:          "DRIPPING_HONEY",
	DrippingObsidianTear:   "DRIPPING_OBSIDIAN_TEAR",
	DustColorTransition:    "DUST_COLOR_TRANSITION",
	ElectricSpark:          "ELECTRIC_SPARK",
	EnchantmentTable:       "ENCHANTMENT_TABLE",
	EndRod:                 "END_ROD",
	ExplosionHuge:          "EXPLOSION_HUGE",
	ExplosionLarge:         "EXPLOSION_LARGE",
	ExplosionNormal:        "EXPLOSION_NORMAL",
	FallingDripstoneLava:   "FALLING_DRIPSTONE_LAVA",
	FallingDripstoneWater:  "FALLING_DRIPSTONE_WATER",
	FallingDust:            "FALLING_DUST",
	FallingHoney:           "FALLING_HONEY",
	FallingNectar:          "FALLING_NECTAR",
	FallingObsidianTear:    "FALLING_OBSIDIAN_TEAR",
	FallingSporeBlossom:    "FALLING_SPORE_BLOSSOM",
	FireworksSpark:         "FIREWORKS_SPARK",
	Flame:                  "FLAME",
	Flash:                  "FLASH",
	Footstep:               "FOOTSTEP",
	Glow:                   "GLOW",
	GlowSquidInk:           "GLOW_SQUID_INK",
	Heart:                  "HEART",
	ItemCrack:              "ITEM_CRACK",
	LandingHoney:           "LANDING_HONEY",
	LandingObsidianTear:    "LANDING_OBSIDIAN_TEAR",
	Lava:                   "LAVA",
	MobAppearance:          "MOB_APPEARANCE",
	Nautilus:               "NAUTILUS",
	Note:                   "NOTE",
	Portal:                 "PORTAL",
	Redstone:               "REDSTONE",
	ReversePortal:          "REVERSE_PORTAL",
	Scrape:                 "SCRAPE",
	SculkCharge:            "SCULK_CHARGE",
	SculkChargePop:         "SCULK_CHARGE_POP",
	SculkSoul:              "SCULK_SOUL",
	Shriek:                 "SHRIEK",
	Slime:                  "SLIME",
	SmallFlame:             "SMALL_FLAME",
	SmokeLarge:             "SMOKE_LARGE",
	SmokeNormal:            "SMOKE_NORMAL",
	Sneeze:                 "SNEEZE",
	Snowball:               "SNOWBALL",
	Snowflake:              "SNOWFLAKE",
	SnowShovel:             "SNOW_SHOVEL",
	SonicBoom:              "SONIC_BOOM",
	Soul:                   "SOUL",
	SoulFireFlame:          "SOUL_FIRE_FLAME",
	Spell:                  "SPELL",
	SpellInstant:           "SPELL_INSTANT",
	SpellMob:               "SPELL_MOB",
	SpellMobAmbient:        "SPELL_MOB_AMBIENT",
	SpellWitch:             "SPELL_WITCH",
	Spit:                   "SPIT",
	SporeBlossomAir:        "SPORE_BLOSSOM_AIR",
	SquidInk:               "SQUID_INK",
	Suspended:              "SUSPENDED",
	SuspendedDepth:         "SUSPENDED_DEPTH",
	SweepAttack:            "SWEEP_ATTACK",
	Totem:                  "TOTEM",
	TownAura:               "TOWN_AURA",
	Vibration:              "VIBRATION",
	VillagerAngry:          "VILLAGER_ANGRY",
	VillagerHappy:          "VILLAGER_HAPPY",
	WarpedSpore:            "WARPED_SPORE",
	WaterBubble:            "WATER_BUBBLE",
	WaterDrop:              "WATER_DROP",
	WaterSplash:            "WATER_SPLASH",
	WaterWake:              "WATER_WAKE",
	WaxOff:                 "WAX_OFF",
	WaxOn:                  "WAX_ON",
	WhiteAsh:               "WHITE_ASH",
}

var effectsByName = make(map[string]Effect, len(effectNames))

func init() {
	for i := range descriptors {
		descriptors[i].Effect = Effect(i)
		effectsByName[effectNames[i]] = Effect(i)
	}
}

package hole

const (
	DefaultWidth         = 1280.0
	DefaultHeight        = 720.0
	DefaultHoleRadius    = 20.0
	DefaultMaxHoleSize   = 300.0
	DefaultConsumables   = 50
	DefaultMinRadius     = 10.0
	DefaultMaxRadius     = 30.0
	DefaultKeySpeed      = 5.0
	DefaultChaseSpeed    = 1.5 // per step, advanced variant
	DefaultJitter        = 1.0 // per axis per step, basic variant
	DefaultInflation     = 0.1 // share of the hole's growth handed to every survivor
	DefaultSpawnAttempts = 500

	ConsumeOverlap       = 0.5  // fraction of the consumable radius allowed outside the hole
	BasicGrowthFactor    = 0.1  // growth per unit of consumable radius
	AdvancedGrowthFactor = 0.05 // growth per unit of consumable radius before damping
	AdvancedMinGrowth    = 3.0

	perlinStep   = 0.02
	perlinOffset = 137.0
	maxWallPush  = 4
)

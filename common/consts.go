package common

// Gameplay tuning defaults. Prefabs may override the player values.
const (
	Gravity             = -3000.0
	MaxFallingSpeed     = -4000.0
	JumpSpeed           = 1600.0
	WalkSpeed           = 1100.0
	WalkAcceleration    = 700.0
	JumpFramesThreshold = 4
	PlatformThreshold   = 2.0

	// SlowDownThreshold is the |vel.x| above which a fast stop brakes
	// instead of halting.
	SlowDownThreshold    = 350.0
	SlowDownAcceleration = 3500.0

	SeparationImpulse = 100.0

	QuadTreeMaxObjects = 10
	QuadTreeMaxLevels  = 5

	FixedUpdateRate = 30
)

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

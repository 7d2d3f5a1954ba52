package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilecore/common"
)

// MovingObject is a kinematic point integrated once per tick. The Old fields
// hold the values from before the most recent integration.
type MovingObject struct {
	OldPosition common.Vector
	Position    common.Vector

	OldAccel common.Vector
	Accel    common.Vector

	OldVelocity common.Vector
	Velocity    common.Vector
}

func NewMovingObject(position common.Vector) MovingObject {
	return MovingObject{OldPosition: position, Position: position}
}

// AABB is a box described by half extents, plus an offset from the owner's
// position. Half extents and offset are whole numbers.
type AABB struct {
	HalfSize common.Vector
	Scale    common.Vector
	Offset   common.Vector
}

// NewAABBFull builds a box from an unscaled full size. Scaling shrinks the box
// toward the feet, so the offset drops the center by the vertical slack.
func NewAABBFull(fullSize, scale common.Vector) AABB {
	half := fullSize.Mult(0.5)
	return AABB{
		HalfSize: common.Vector{X: math.Round(half.X * scale.X), Y: math.Round(half.Y * scale.Y)},
		Scale:    scale,
		Offset:   common.Vector{X: 0, Y: math.Round(-half.Y * (1 - scale.Y))},
	}
}

type Sensor uint8

const (
	SensorBottomLeft Sensor = iota
	SensorBottomRight
	SensorTopRight
)

// Sensor returns the rounded corner point of the box placed at at.
func (a AABB) Sensor(at common.Vector, which Sensor) common.Vector {
	var v common.Vector
	switch which {
	case SensorBottomLeft:
		v = at.Sub(a.HalfSize).Add(a.Offset)
	case SensorBottomRight:
		v = at.Add(common.Vector{X: a.HalfSize.X, Y: -a.HalfSize.Y}).Add(a.Offset)
	case SensorTopRight:
		v = at.Add(a.HalfSize).Add(a.Offset)
	}
	return common.RoundVector(v)
}

// Rect returns the world rectangle of the box placed at at.
func (a AABB) Rect(at common.Vector) cp.BB {
	c := at.Add(a.Offset)
	return cp.NewBBForExtents(c, a.HalfSize.X, a.HalfSize.Y)
}

// Collider attaches a box to a moving object and tracks its contact flags.
// The was/pushed fields snapshot the previous tick's flags.
type Collider struct {
	AABB AABB

	PushedRightWall bool
	PushesRightWall bool

	PushedLeftWall bool
	PushesLeftWall bool

	WasOnGround bool
	OnGround    bool

	WasOnPlatform bool
	OnPlatform    bool

	WasAtCeiling bool
	AtCeiling    bool

	CannotGoLeftFrames  int
	CannotGoRightFrames int

	FramesFromJumpStart int
}

func NewCollider(aabb AABB) Collider {
	return Collider{AABB: aabb}
}

package physics

import (
	"math"

	"github.com/milk9111/tilecore/common"
	"github.com/milk9111/tilecore/levels"
)

// Integrate snapshots the old state and applies semi-implicit Euler.
func Integrate(mv *MovingObject, dt float64) {
	mv.OldPosition = mv.Position
	mv.OldVelocity = mv.Velocity
	mv.OldAccel = mv.Accel
	mv.Velocity = mv.Velocity.Add(mv.Accel.Mult(dt))
	mv.Position = mv.Position.Add(mv.Velocity.Mult(dt))
}

// Step integrates one tick and resolves the result against the terrain.
func Step(mv *MovingObject, c *Collider, t *levels.Terrain, dt float64) {
	Integrate(mv, dt)
	ResolveTerrain(mv, c, t)
}

// ResolveTerrain runs the swept checks in order ground, left wall, right wall,
// ceiling. Each check only runs when the velocity allows contact on that side.
func ResolveTerrain(mv *MovingObject, c *Collider, t *levels.Terrain) {
	c.WasOnPlatform = c.OnPlatform
	c.WasOnGround = c.OnGround
	c.WasAtCeiling = c.AtCeiling
	c.PushedLeftWall = c.PushesLeftWall
	c.PushedRightWall = c.PushesRightWall

	c.OnPlatform = false

	half := c.AABB.HalfSize
	offset := c.AABB.Offset

	var groundY float64
	grounded := false
	if mv.Velocity.Y <= 0 {
		groundY, grounded = hasGround(mv, c, t)
	}
	if grounded {
		mv.Position.Y = groundY + half.Y - offset.Y
		mv.Velocity.Y = 0
		c.OnGround = true
	} else {
		c.OnGround = false
	}

	var wallX float64
	hit := false
	if mv.Velocity.X <= 0 {
		wallX, hit = leftWall(mv, c, t)
	}
	if hit {
		if mv.OldPosition.X-half.X+offset.X >= wallX {
			mv.Position.X = wallX + half.X - offset.X
			c.PushesLeftWall = true
		}
		mv.Velocity.X = math.Max(mv.Velocity.X, 0)
		mv.Accel.X = math.Max(mv.Accel.X, 0)
	} else {
		c.PushesLeftWall = false
	}

	hit = false
	if mv.Velocity.X >= 0 {
		wallX, hit = rightWall(mv, c, t)
	}
	if hit {
		if mv.OldPosition.X+half.X+offset.X <= wallX {
			mv.Position.X = wallX - half.X - offset.X
			c.PushesRightWall = true
		}
		mv.Velocity.X = math.Min(mv.Velocity.X, 0)
		mv.Accel.X = math.Min(mv.Accel.X, 0)
	} else {
		c.PushesRightWall = false
	}

	var ceilingY float64
	hit = false
	if mv.Velocity.Y >= 0 {
		ceilingY, hit = hasCeiling(mv, c, t)
	}
	if hit {
		mv.Position.Y = ceilingY - half.Y - offset.Y - 1
		mv.Velocity.Y = 0
		c.AtCeiling = true
	} else {
		c.AtCeiling = false
	}
}

func sweepFraction(end, idx, dist int) float64 {
	return math.Abs(float64(end-idx)) / float64(dist)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// hasGround sweeps the bottom edge from the old to the new position, top row
// first. A one-way platform only counts when the feet were within the drop
// threshold of its surface, so falling through from above lands but walking
// up from below does not.
func hasGround(mv *MovingObject, c *Collider, t *levels.Terrain) (float64, bool) {
	aabb := c.AABB
	oldBL := common.Right(common.Down(aabb.Sensor(mv.OldPosition, SensorBottomLeft)))
	newBL := common.Right(common.Down(aabb.Sensor(mv.Position, SensorBottomLeft)))

	endY := t.TileYAtPoint(newBL.Y)
	begY := max(t.TileYAtPoint(oldBL.Y)-1, endY)
	dist := max(absInt(endY-begY), 1)

	for ty := begY; ty >= endY; ty-- {
		bl := common.LerpVector(newBL, oldBL, sweepFraction(endY, ty, dist))
		br := common.Left(common.Left(common.Vector{X: bl.X + aabb.HalfSize.X*2, Y: bl.Y}))
		groundY := float64(ty)*t.TileSize + t.TileSize/2 + t.Position.Y

		checked := bl
		for {
			checked.X = math.Min(checked.X, br.X)
			tx := t.TileXAtPoint(checked.X)
			if t.IsObstacle(tx, ty) {
				c.OnPlatform = false
				return groundY, true
			}
			if t.IsOneWayPlatform(tx, ty) &&
				math.Abs(checked.Y-groundY) <= common.PlatformThreshold+mv.OldPosition.Y-mv.Position.Y {
				c.OnPlatform = true
			}
			if checked.X >= br.X {
				if c.OnPlatform {
					return groundY, true
				}
				break
			}
			checked.X += t.TileSize
		}
	}
	return 0, false
}

func hasCeiling(mv *MovingObject, c *Collider, t *levels.Terrain) (float64, bool) {
	aabb := c.AABB
	oldTR := common.Up(common.Left(aabb.Sensor(mv.OldPosition, SensorTopRight)))
	newTR := common.Up(common.Left(aabb.Sensor(mv.Position, SensorTopRight)))

	endY := t.TileYAtPoint(newTR.Y)
	begY := min(t.TileYAtPoint(oldTR.Y)+1, endY)
	dist := max(absInt(endY-begY), 1)

	for ty := begY; ty <= endY; ty++ {
		tr := common.LerpVector(newTR, oldTR, sweepFraction(endY, ty, dist))
		tl := common.Right(common.Right(common.Vector{X: tr.X - aabb.HalfSize.X*2, Y: tr.Y}))

		checked := tl
		for {
			checked.X = math.Min(checked.X, tr.X)
			tx := t.TileXAtPoint(checked.X)
			if t.IsObstacle(tx, ty) {
				return float64(ty)*t.TileSize - t.TileSize/2 + t.Position.Y, true
			}
			if checked.X >= tr.X {
				break
			}
			checked.X += t.TileSize
		}
	}
	return 0, false
}

func leftWall(mv *MovingObject, c *Collider, t *levels.Terrain) (float64, bool) {
	aabb := c.AABB
	oldBL := common.Left(aabb.Sensor(mv.OldPosition, SensorBottomLeft))
	newBL := common.Left(aabb.Sensor(mv.Position, SensorBottomLeft))

	endX := t.TileXAtPoint(newBL.X)
	begX := max(t.TileXAtPoint(oldBL.X)-1, endX)
	dist := max(absInt(endX-begX), 1)

	for tx := begX; tx >= endX; tx-- {
		bl := common.LerpVector(newBL, oldBL, sweepFraction(endX, tx, dist))
		top := bl.Y + aabb.HalfSize.Y*2

		checked := bl
		for {
			checked.Y = math.Min(checked.Y, top)
			ty := t.TileYAtPoint(checked.Y)
			if t.IsObstacle(tx, ty) {
				return float64(tx)*t.TileSize + t.TileSize/2 + t.Position.X, true
			}
			if checked.Y >= top {
				break
			}
			checked.Y += t.TileSize
		}
	}
	return 0, false
}

func rightWall(mv *MovingObject, c *Collider, t *levels.Terrain) (float64, bool) {
	aabb := c.AABB
	oldBR := common.Right(common.Right(aabb.Sensor(mv.OldPosition, SensorBottomRight)))
	newBR := common.Right(common.Right(aabb.Sensor(mv.Position, SensorBottomRight)))

	endX := t.TileXAtPoint(newBR.X)
	begX := min(t.TileXAtPoint(oldBR.X)+1, endX)
	dist := max(absInt(endX-begX), 1)

	for tx := begX; tx <= endX; tx++ {
		br := common.LerpVector(newBR, oldBR, sweepFraction(endX, tx, dist))
		top := br.Y + aabb.HalfSize.Y*2

		checked := br
		for {
			checked.Y = math.Min(checked.Y, top)
			ty := t.TileYAtPoint(checked.Y)
			if t.IsObstacle(tx, ty) {
				return float64(tx)*t.TileSize - t.TileSize/2 + t.Position.X, true
			}
			if checked.Y >= top {
				break
			}
			checked.Y += t.TileSize
		}
	}
	return 0, false
}

package physics

import (
	"testing"

	"github.com/milk9111/tilecore/common"
	"github.com/milk9111/tilecore/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

// stage builds a terrain from rows written top row first, like a level file.
func stage(t *testing.T, rows ...string) *levels.Terrain {
	t.Helper()
	grid := make([][]levels.TileType, len(rows))
	for i, row := range rows {
		tiles := make([]levels.TileType, len(row))
		for x, ch := range row {
			switch ch {
			case '#':
				tiles[x] = levels.TileBlock
			case '=':
				tiles[x] = levels.TileOneWay
			default:
				tiles[x] = levels.TileEmpty
			}
		}
		grid[len(rows)-1-i] = tiles
	}
	terrain, err := levels.NewTerrain(common.Vector{X: 0, Y: 128}, 128, grid)
	require.NoError(t, err)
	return terrain
}

func playerBox() AABB {
	return NewAABBFull(common.Vector{X: 290 * 0.4, Y: 500 * 0.4}, common.Vector{X: 0.7, Y: 0.8})
}

func TestNewAABBFull(t *testing.T) {
	box := playerBox()
	assert.Equal(t, common.Vector{X: 41, Y: 80}, box.HalfSize)
	assert.Equal(t, common.Vector{X: 0, Y: -20}, box.Offset)
}

func TestSensors(t *testing.T) {
	box := playerBox()
	at := common.Vector{X: 500.4, Y: 500}
	assert.Equal(t, common.Vector{X: 459, Y: 400}, box.Sensor(at, SensorBottomLeft))
	assert.Equal(t, common.Vector{X: 541, Y: 400}, box.Sensor(at, SensorBottomRight))
	assert.Equal(t, common.Vector{X: 541, Y: 560}, box.Sensor(at, SensorTopRight))
}

func TestIntegrateSemiImplicit(t *testing.T) {
	mv := NewMovingObject(common.Vector{X: 10, Y: 20})
	mv.Velocity = common.Vector{X: 1, Y: 2}
	mv.Accel = common.Vector{X: 10, Y: -10}

	Integrate(&mv, 0.5)
	assert.Equal(t, common.Vector{X: 10, Y: 20}, mv.OldPosition)
	assert.Equal(t, common.Vector{X: 1, Y: 2}, mv.OldVelocity)
	assert.Equal(t, common.Vector{X: 6, Y: -3}, mv.Velocity)
	assert.Equal(t, common.Vector{X: 13, Y: 18.5}, mv.Position)
}

func TestFallLandsOnFloor(t *testing.T) {
	terrain := stage(t,
		"#.........#",
		"#.........#",
		"#.........#",
		"#.........#",
		"###########",
	)
	mv := NewMovingObject(common.Vector{X: 500, Y: 500})
	c := NewCollider(playerBox())

	for i := 0; i < 120; i++ {
		mv.Velocity.Y = max(common.Gravity*dt+mv.Velocity.Y, common.MaxFallingSpeed)
		Step(&mv, &c, terrain, dt)
		if c.OnGround {
			break
		}
	}

	require.True(t, c.OnGround)
	assert.Equal(t, 0.0, mv.Velocity.Y)
	// floor row 0 top is 0*128 + 64 + 128
	floorTop := 192.0
	assert.InDelta(t, floorTop+80+20, mv.Position.Y, 1e-9)
	bottom := mv.Position.Y - c.AABB.HalfSize.Y + c.AABB.Offset.Y
	assert.InDelta(t, floorTop, bottom, 1e-9)
}

func TestRestingStaysGrounded(t *testing.T) {
	terrain := stage(t,
		"....",
		"....",
		"....",
		"####",
	)
	box := playerBox()
	mv := NewMovingObject(common.Vector{X: 200, Y: 192 + box.HalfSize.Y - box.Offset.Y})
	c := NewCollider(box)
	for i := 0; i < 10; i++ {
		Step(&mv, &c, terrain, dt)
		require.True(t, c.OnGround, "tick %d", i)
	}
	assert.True(t, c.WasOnGround)
}

func TestLeftWallClamp(t *testing.T) {
	terrain := stage(t,
		"#.....",
		"#.....",
		"######",
	)
	box := playerBox()
	// wall tile column 0 has its right face at x = 64
	start := common.Vector{X: 64 + box.HalfSize.X + 5, Y: 192 + box.HalfSize.Y - box.Offset.Y}
	mv := NewMovingObject(start)
	mv.Velocity.X = -1100
	mv.Accel.X = -700
	c := NewCollider(box)

	Step(&mv, &c, terrain, dt)

	assert.True(t, c.PushesLeftWall)
	assert.Equal(t, 0.0, mv.Velocity.X)
	assert.Equal(t, 0.0, mv.Accel.X)
	assert.InDelta(t, 64+box.HalfSize.X, mv.Position.X, 1e-9)
	assert.GreaterOrEqual(t, mv.Position.X-box.HalfSize.X+box.Offset.X, 64.0)
}

func TestRightWallClamp(t *testing.T) {
	terrain := stage(t,
		".....#",
		".....#",
		"######",
	)
	box := playerBox()
	// column 5 left face at x = 5*128 - 64
	face := 576.0
	start := common.Vector{X: face - box.HalfSize.X - 5, Y: 192 + box.HalfSize.Y - box.Offset.Y}
	mv := NewMovingObject(start)
	mv.Velocity.X = 1100
	mv.Accel.X = 700
	c := NewCollider(box)

	Step(&mv, &c, terrain, dt)

	assert.True(t, c.PushesRightWall)
	assert.Equal(t, 0.0, mv.Velocity.X)
	assert.Equal(t, 0.0, mv.Accel.X)
	assert.InDelta(t, face-box.HalfSize.X, mv.Position.X, 1e-9)
}

func TestCeilingStopsJump(t *testing.T) {
	terrain := stage(t,
		"######",
		"......",
		"......",
		"######",
	)
	box := playerBox()
	// ceiling row 3 bottom face at 3*128 - 64 + 128
	ceiling := 448.0
	mv := NewMovingObject(common.Vector{X: 300, Y: ceiling - box.HalfSize.Y - box.Offset.Y - 10})
	mv.Velocity.Y = common.JumpSpeed
	c := NewCollider(box)

	Step(&mv, &c, terrain, dt)

	assert.True(t, c.AtCeiling)
	assert.Equal(t, 0.0, mv.Velocity.Y)
	assert.InDelta(t, ceiling-box.HalfSize.Y-box.Offset.Y-1, mv.Position.Y, 1e-9)
}

func TestOneWayPlatform(t *testing.T) {
	terrain := stage(t,
		"......",
		"......",
		"..==..",
		"......",
		"######",
	)
	box := playerBox()
	// platform row 2 top at 2*128 + 64 + 128
	top := 448.0

	t.Run("lands_from_above", func(t *testing.T) {
		mv := NewMovingObject(common.Vector{X: 320, Y: top + box.HalfSize.Y - box.Offset.Y + 10})
		mv.Velocity.Y = -600
		c := NewCollider(box)
		Step(&mv, &c, terrain, dt)
		assert.True(t, c.OnGround)
		assert.True(t, c.OnPlatform)
		assert.InDelta(t, top+box.HalfSize.Y-box.Offset.Y, mv.Position.Y, 1e-9)
	})

	t.Run("passes_from_below", func(t *testing.T) {
		mv := NewMovingObject(common.Vector{X: 320, Y: top + box.HalfSize.Y - box.Offset.Y - 60})
		mv.Velocity.Y = common.JumpSpeed
		c := NewCollider(box)
		Step(&mv, &c, terrain, dt)
		assert.False(t, c.OnGround)
		assert.False(t, c.AtCeiling)
		assert.Greater(t, mv.Position.Y, mv.OldPosition.Y)
	})

	t.Run("drops_when_nudged_below_threshold", func(t *testing.T) {
		rest := top + box.HalfSize.Y - box.Offset.Y
		mv := NewMovingObject(common.Vector{X: 320, Y: rest})
		c := NewCollider(box)
		Step(&mv, &c, terrain, dt)
		require.True(t, c.OnPlatform)

		mv.Position.Y -= common.PlatformThreshold * 2
		mv.Velocity.Y = common.Gravity * dt
		Step(&mv, &c, terrain, dt)
		assert.False(t, c.OnGround)
		assert.False(t, c.OnPlatform)
		assert.True(t, c.WasOnPlatform)
	})
}

func TestFlagSnapshots(t *testing.T) {
	terrain := stage(t,
		"......",
		"......",
		"......",
		"......",
		"......",
		"......",
		"......",
		"######",
	)
	box := playerBox()
	mv := NewMovingObject(common.Vector{X: 320, Y: 600})
	c := NewCollider(box)
	c.OnGround = true
	c.AtCeiling = true
	c.PushesLeftWall = true
	c.PushesRightWall = true

	mv.Velocity.Y = -10
	Step(&mv, &c, terrain, dt)

	assert.True(t, c.WasOnGround)
	assert.True(t, c.WasAtCeiling)
	assert.True(t, c.PushedLeftWall)
	assert.True(t, c.PushedRightWall)
	assert.False(t, c.OnGround)
	assert.False(t, c.AtCeiling)
	assert.False(t, c.PushesLeftWall)
	assert.False(t, c.PushesRightWall)
}

func TestOutOfBoundsIsSolid(t *testing.T) {
	terrain := stage(t, "....")
	box := playerBox()
	// below the grid the floor is implicit
	mv := NewMovingObject(common.Vector{X: 200, Y: 130})
	mv.Velocity.Y = -2000
	c := NewCollider(box)
	Step(&mv, &c, terrain, dt)
	assert.True(t, c.OnGround)
}

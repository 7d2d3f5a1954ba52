package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/tilecore/common"
	"github.com/milk9111/tilecore/ecs"
	"github.com/milk9111/tilecore/ecs/component"
	"github.com/milk9111/tilecore/levels"
	"github.com/milk9111/tilecore/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeldKeysExpire(t *testing.T) {
	h := newHeldKeys()
	now := time.Unix(100, 0)
	h.handle(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), now)
	h.handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), now)

	var in component.PlayerInput
	h.apply(&in, now.Add(10*time.Millisecond))
	assert.True(t, in.Left)
	assert.True(t, in.Jump)

	in.ResetActions()
	h.apply(&in, now.Add(20*time.Millisecond))
	assert.True(t, in.Left)
	assert.False(t, in.Jump, "actions are handed over once")

	h.apply(&in, now.Add(holdFor+time.Millisecond))
	assert.False(t, in.Left)
}

func TestHeldKeysOppositeReleases(t *testing.T) {
	h := newHeldKeys()
	now := time.Unix(100, 0)
	h.handle(tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), now)
	h.handle(tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), now)

	var in component.PlayerInput
	h.apply(&in, now)
	assert.False(t, in.Left)
	assert.True(t, in.Right)
}

func TestIsQuit(t *testing.T) {
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
}

func TestRasterize(t *testing.T) {
	terrain, err := levels.NewTerrain(common.Vector{}, 10, [][]levels.TileType{
		{levels.TileBlock, levels.TileBlock, levels.TileBlock},
		{levels.TileEmpty, levels.TileEmpty, levels.TileOneWay},
	})
	require.NoError(t, err)

	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mv := physics.NewMovingObject(common.Vector{X: 0, Y: 10})
	c := physics.NewCollider(physics.AABB{HalfSize: common.Vector{X: 4, Y: 4}})
	_ = ecs.Add(w, e, component.MovingObjectComponent.Kind(), &mv)
	_ = ecs.Add(w, e, component.ColliderComponent.Kind(), &c)

	// one column per world unit, one row per two units, camera on tile (1, 1)
	f := rasterize(w, terrain, &component.Camera{Location: common.Vector{X: 10, Y: 10}}, 40, 20, 1)

	kinds := map[cellKind]int{}
	for y := 0; y < f.rows; y++ {
		for x := 0; x < f.cols; x++ {
			kinds[f.at(x, y).kind]++
		}
	}
	assert.Positive(t, kinds[cellBlock])
	assert.Positive(t, kinds[cellPlatform])
	assert.Positive(t, kinds[cellBody])

	// the floor is drawn below the body
	assert.Equal(t, cellBlock, f.at(20, 15).kind)
	assert.Equal(t, cellBody, f.at(10, 10).kind)
}

func TestFrameFillClips(t *testing.T) {
	f := newFrame(3, 2)
	f.fill(-5, -5, 10, 10, cell{r: 'x', kind: cellBody})
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, 'x', f.at(x, y).r)
		}
	}
}

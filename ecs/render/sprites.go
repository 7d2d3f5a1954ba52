// Package render turns the world into ordered draw lists. It knows nothing
// about the graphics backend.
package render

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilecore/common"
	"github.com/milk9111/tilecore/ecs"
	"github.com/milk9111/tilecore/ecs/component"
	"github.com/milk9111/tilecore/levels"
	"github.com/milk9111/tilecore/physics"
)

// Sprite is one renderable placed in the world.
type Sprite struct {
	Entity ecs.Entity
	Layer  int
	Kind   component.RenderKind
	ID     string
	Frame  int
	At     common.Vector
	Scale  common.Vector
	Mirror bool
}

// Sprites lists drawable renderables by ascending layer. Within a layer,
// higher sprites come first so lower ones overlap them.
func Sprites(w *ecs.World) []Sprite {
	var out []Sprite
	ecs.ForEach2(w, component.RenderableComponent.Kind(), component.PositionComponent.Kind(),
		func(e ecs.Entity, r *component.Renderable, p *component.Position) {
			if !r.Drawable() {
				return
			}
			s := Sprite{
				Entity: e,
				Layer:  r.Layer,
				Kind:   r.Kind,
				ID:     r.ID,
				Frame:  r.Frame,
				At:     common.Vector{X: p.X, Y: p.Y},
				Scale:  common.Vector{X: 1, Y: 1},
			}
			if sc, ok := ecs.Get(w, e, component.ScalableComponent.Kind()); ok {
				s.Scale = common.Vector{X: sc.X, Y: sc.Y}
			}
			if dir, ok := ecs.Get(w, e, component.DirectionalComponent.Kind()); ok {
				s.Mirror = *dir == component.FacingLeft
			}
			out = append(out, s)
		})

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Layer != b.Layer {
			return a.Layer < b.Layer
		}
		if a.At.Y != b.At.Y {
			return a.At.Y > b.At.Y
		}
		return a.Entity < b.Entity
	})
	return out
}

// Box is a collider outline for debug drawing.
type Box struct {
	Entity   ecs.Entity
	BB       cp.BB
	OnGround bool
}

func Boxes(w *ecs.World) []Box {
	var out []Box
	ecs.ForEach2(w, component.MovingObjectComponent.Kind(), component.ColliderComponent.Kind(),
		func(e ecs.Entity, mv *physics.MovingObject, c *physics.Collider) {
			out = append(out, Box{Entity: e, BB: c.AABB.Rect(mv.Position), OnGround: c.OnGround})
		})
	sort.Slice(out, func(i, j int) bool { return out[i].Entity < out[j].Entity })
	return out
}

// Tile is one non-empty terrain cell.
type Tile struct {
	X, Y int
	Type levels.TileType
	BB   cp.BB
}

func Tiles(t *levels.Terrain) []Tile {
	if t == nil {
		return nil
	}
	half := t.TileSize / 2
	var out []Tile
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			tt := t.GetTile(x, y)
			if tt == levels.TileEmpty {
				continue
			}
			out = append(out, Tile{X: x, Y: y, Type: tt, BB: cp.NewBBForExtents(t.MapTilePosition(x, y), half, half)})
		}
	}
	return out
}

package main

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilecore/ecs"
	"github.com/milk9111/tilecore/ecs/component"
	"github.com/milk9111/tilecore/ecs/render"
	"github.com/milk9111/tilecore/levels"
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellBlock
	cellPlatform
	cellBody
	cellGrounded
)

type cell struct {
	r    rune
	kind cellKind
}

// frame is a cols x rows character grid. Row 0 is the top of the screen.
type frame struct {
	cols, rows int
	cells      []cell
}

func newFrame(cols, rows int) *frame {
	f := &frame{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	for i := range f.cells {
		f.cells[i] = cell{r: ' '}
	}
	return f
}

func (f *frame) at(x, y int) cell {
	return f.cells[y*f.cols+x]
}

func (f *frame) fill(x0, y0, x1, y1 int, c cell) {
	for y := max(y0, 0); y <= min(y1, f.rows-1); y++ {
		for x := max(x0, 0); x <= min(x1, f.cols-1); x++ {
			f.cells[y*f.cols+x] = c
		}
	}
}

// rasterize draws the terrain and every collider around the camera. A
// terminal cell is about twice as tall as wide, so a row covers two columns
// of world height.
func rasterize(w *ecs.World, t *levels.Terrain, cam *component.Camera, cols, rows int, cellSize float64) *frame {
	f := newFrame(cols, rows)
	v := render.View{FOV: float64(cols) * cellSize, ScreenW: cols, ScreenH: rows * 2}
	if cam != nil {
		v.Center = cam.Location
	}

	for _, tile := range render.Tiles(t) {
		c := cell{r: '█', kind: cellBlock}
		if tile.Type == levels.TileOneWay {
			c = cell{r: '▔', kind: cellPlatform}
		}
		stamp(f, v, tile.BB, c)
	}
	for _, b := range render.Boxes(w) {
		c := cell{r: '#', kind: cellBody}
		if b.OnGround {
			c.kind = cellGrounded
		}
		stamp(f, v, b.BB, c)
	}
	return f
}

func stamp(f *frame, v render.View, bb cp.BB, c cell) {
	if !v.Visible(bb) {
		return
	}
	x, y, w, h := v.ScreenRect(bb)
	x0, y0 := int(x), int(y)/2
	x1, y1 := int(x+w-0.5), int(y+h-0.5)/2
	f.fill(x0, y0, max(x0, x1), max(y0, y1), c)
}

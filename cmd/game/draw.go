package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tilecore/ecs/component"
	"github.com/milk9111/tilecore/ecs/render"
	"github.com/milk9111/tilecore/levels"
	"golang.org/x/image/colornames"
)

func (g *Game) drawSprite(screen *ebiten.Image, v render.View, s render.Sprite) {
	a, ok := g.assets.Animation(s.ID)
	if !ok {
		return
	}
	frame := s.Frame
	if s.Kind != component.RenderAnimation {
		frame = 0
	}
	rect, ok := a.Frame(frame)
	if !ok {
		return
	}

	x, y := v.ToScreen(s.At)
	z := v.Zoom()
	fw, fh := float64(rect.Dx()), float64(rect.Dy())

	sheet := g.images.get(a.Sheet)
	if sheet == nil {
		w, h := fw*s.Scale.X*z, fh*s.Scale.Y*z
		drawPlaceholder(screen, x-w/2, y-h/2, w, h, s)
		return
	}

	mirror := 1.0
	if s.Mirror {
		mirror = -1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-fw/2, -fh/2)
	op.GeoM.Scale(s.Scale.X*z*mirror, s.Scale.Y*z)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sheet.SubImage(rect).(*ebiten.Image), op)
}

func drawPlaceholder(screen *ebiten.Image, x, y, w, h float64, s render.Sprite) {
	var c color.Color = colornames.Slateblue
	switch s.Kind {
	case component.RenderImage:
		c = colornames.Midnightblue
	case component.RenderBatch:
		c = colornames.Darkolivegreen
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), c, false)
	if s.Kind != component.RenderAnimation {
		return
	}
	// a stripe on the facing side
	stripe := w / 8
	sx := x + w - stripe
	if s.Mirror {
		sx = x
	}
	vector.DrawFilledRect(screen, float32(sx), float32(y), float32(stripe), float32(h), colornames.Gold, false)
}

func drawTerrain(screen *ebiten.Image, v render.View, t *levels.Terrain) {
	for _, tile := range render.Tiles(t) {
		if !v.Visible(tile.BB) {
			continue
		}
		x, y, w, h := v.ScreenRect(tile.BB)
		switch tile.Type {
		case levels.TileBlock:
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), colornames.Dimgray, false)
			vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, colornames.Black, false)
		case levels.TileOneWay:
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h/6), colornames.Sienna, false)
		}
	}
}

func drawBoxes(screen *ebiten.Image, v render.View, boxes []render.Box) {
	for _, b := range boxes {
		c := colornames.Red
		if b.OnGround {
			c = colornames.Lime
		}
		x, y, w, h := v.ScreenRect(b.BB)
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, c, false)
	}
}

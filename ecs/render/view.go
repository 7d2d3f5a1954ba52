package render

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilecore/common"
	"github.com/milk9111/tilecore/ecs/component"
)

// View maps the y-up world onto a y-down screen centered on the camera. The
// camera's FOV is the world width visible across the screen.
type View struct {
	Center  common.Vector
	FOV     float64
	ScreenW int
	ScreenH int
}

func NewView(cam *component.Camera, screenW, screenH int) View {
	v := View{ScreenW: screenW, ScreenH: screenH}
	if cam != nil {
		v.Center = cam.Location
		v.FOV = cam.FOV
	}
	return v
}

// Zoom is screen pixels per world unit.
func (v View) Zoom() float64 {
	if v.FOV <= 0 || v.ScreenW <= 0 {
		return 1
	}
	return float64(v.ScreenW) / v.FOV
}

func (v View) ToScreen(p common.Vector) (float64, float64) {
	z := v.Zoom()
	x := (p.X-v.Center.X)*z + float64(v.ScreenW)/2
	y := float64(v.ScreenH)/2 - (p.Y-v.Center.Y)*z
	return x, y
}

func (v View) ToWorld(x, y float64) common.Vector {
	z := v.Zoom()
	return common.Vector{
		X: (x-float64(v.ScreenW)/2)/z + v.Center.X,
		Y: (float64(v.ScreenH)/2-y)/z + v.Center.Y,
	}
}

// ScreenRect returns the top-left corner and size of bb on screen.
func (v View) ScreenRect(bb cp.BB) (x, y, w, h float64) {
	x, y = v.ToScreen(common.Vector{X: bb.L, Y: bb.T})
	z := v.Zoom()
	return x, y, (bb.R - bb.L) * z, (bb.T - bb.B) * z
}

// Visible reports whether bb overlaps the screen.
func (v View) Visible(bb cp.BB) bool {
	x, y, w, h := v.ScreenRect(bb)
	return x+w >= 0 && y+h >= 0 && x <= float64(v.ScreenW) && y <= float64(v.ScreenH)
}

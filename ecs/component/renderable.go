package component

type RenderKind uint8

const (
	RenderAnimation RenderKind = iota
	RenderImage
	RenderBatch
)

func (k RenderKind) String() string {
	switch k {
	case RenderImage:
		return "image"
	case RenderBatch:
		return "batch"
	default:
		return "animation"
	}
}

// Renderable is what the draw side reads. For RenderAnimation, ID names an
// animation in the asset table, Frame indexes into it and Length is the frame
// count. Image and Batch only use ID.
type Renderable struct {
	Layer  int
	Kind   RenderKind
	ID     string
	Frame  int
	Length int
}

func NewAnimationRenderable(layer int, id string, length int) *Renderable {
	return &Renderable{Layer: layer, Kind: RenderAnimation, ID: id, Length: length}
}

func NewImageRenderable(layer int, id string) *Renderable {
	return &Renderable{Layer: layer, Kind: RenderImage, ID: id}
}

// SetAnimation points an animation renderable at another asset. The frame
// restarts when the id changes. Image and batch renderables are left alone.
func (r *Renderable) SetAnimation(id string, length int) {
	if r.Kind != RenderAnimation {
		return
	}
	if r.ID != id {
		r.Frame = 0
	}
	r.ID = id
	r.Length = length
}

// Drawable reports whether Frame is inside the animation.
func (r *Renderable) Drawable() bool {
	if r.Kind != RenderAnimation {
		return r.ID != ""
	}
	return r.Frame >= 0 && r.Frame < r.Length
}

var RenderableComponent = NewComponent[Renderable]()

package component

// Position is the render-facing location, copied from physics every tick.
type Position struct {
	X float64
	Y float64
}

var PositionComponent = NewComponent[Position]()

// Scalable scales the drawn sprite. It never affects collision.
type Scalable struct {
	X float64
	Y float64
}

var ScalableComponent = NewComponent[Scalable]()

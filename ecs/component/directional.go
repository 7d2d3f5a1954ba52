package component

type Directional uint8

const (
	FacingRight Directional = iota
	FacingLeft
)

func (d Directional) String() string {
	if d == FacingLeft {
		return "left"
	}
	return "right"
}

// Sign is -1 facing left and 1 facing right.
func (d Directional) Sign() float64 {
	if d == FacingLeft {
		return -1
	}
	return 1
}

var DirectionalComponent = NewComponent[Directional]()

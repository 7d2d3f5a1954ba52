package component

// PlayerInput is the sampled controller state. Up, Down, Left and Right are
// held flags. Jump, Attack and Slide are one-shot and cleared every tick by
// ResetActions.
type PlayerInput struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool

	Jump   bool
	Attack bool
	Slide  bool
}

func (in *PlayerInput) ResetActions() {
	in.Jump = false
	in.Attack = false
	in.Slide = false
}

// PlayerInputResource is the input shared by every controlled entity.
var PlayerInputResource = NewComponent[PlayerInput]()

// ScriptedInput makes an entity read its input from a script instead of the
// shared resource.
type ScriptedInput struct {
	Script string
	Input  PlayerInput
	Ticks  int
}

var ScriptedInputComponent = NewComponent[ScriptedInput]()

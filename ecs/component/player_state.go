package component

import (
	"github.com/milk9111/tilecore/fsm"
	"github.com/milk9111/tilecore/physics"
)

// PlayerStateContext bundles everything a player state touches during one
// dispatch. Pointers refer to the entity's live components.
type PlayerStateContext struct {
	Entity   uint64
	Moving   *physics.MovingObject
	Collider *physics.Collider
	Anim     *AnimationSequence
	Render   *Renderable
	Dir      Directional
	Input    PlayerInput
	Delta    float64
	Player   *Player
}

type PlayerState = fsm.State[*PlayerStateContext]

type PlayerTrans = fsm.Trans[*PlayerStateContext]

type PlayerStateMachine struct {
	Machine *fsm.Machine[*PlayerStateContext]
}

func NewPlayerStateMachine(initial PlayerState) *PlayerStateMachine {
	return &PlayerStateMachine{Machine: fsm.New(initial)}
}

var PlayerStateMachineComponent = NewComponent[PlayerStateMachine]()

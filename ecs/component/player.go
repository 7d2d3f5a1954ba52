package component

import (
	"github.com/milk9111/tilecore/anim"
	"github.com/milk9111/tilecore/common"
)

// Animation names looked up by the player states.
const (
	PlayerAnimIdle   = "idle"
	PlayerAnimRun    = "run"
	PlayerAnimJump   = "jump"
	PlayerAnimDrop   = "drop"
	PlayerAnimSlide  = "slide"
	PlayerAnimAttack = "attack"
)

// PlayerAnimation pairs a frame tree with the asset it indexes into.
type PlayerAnimation struct {
	RenderID  string
	Length    int
	Animation anim.Animation
}

// Player holds movement tuning and the animations for each state.
type Player struct {
	Gravity              float64
	MaxFallingSpeed      float64
	JumpSpeed            float64
	WalkSpeed            float64
	WalkAcceleration     float64
	SlowDownThreshold    float64
	SlowDownAcceleration float64
	JumpFramesThreshold  int

	Animations map[string]PlayerAnimation
}

func DefaultPlayer() Player {
	return Player{
		Gravity:              common.Gravity,
		MaxFallingSpeed:      common.MaxFallingSpeed,
		JumpSpeed:            common.JumpSpeed,
		WalkSpeed:            common.WalkSpeed,
		WalkAcceleration:     common.WalkAcceleration,
		SlowDownThreshold:    common.SlowDownThreshold,
		SlowDownAcceleration: common.SlowDownAcceleration,
		JumpFramesThreshold:  common.JumpFramesThreshold,
		Animations:           DefaultPlayerAnimations(),
	}
}

func DefaultPlayerAnimations() map[string]PlayerAnimation {
	return map[string]PlayerAnimation{
		PlayerAnimIdle:   {RenderID: "player-idle", Length: 10, Animation: anim.Forever(anim.Play(0, 9))},
		PlayerAnimRun:    {RenderID: "player-run", Length: 10, Animation: anim.Forever(anim.Play(0, 9))},
		PlayerAnimJump:   {RenderID: "player-jump", Length: 10, Animation: anim.Seq(anim.Play(0, 4), anim.Forever(anim.Play(5, 8)))},
		PlayerAnimDrop:   {RenderID: "player-jump", Length: 10, Animation: anim.Forever(anim.Play(5, 8))},
		PlayerAnimSlide:  {RenderID: "player-slide", Length: 10, Animation: anim.Play(0, 9)},
		PlayerAnimAttack: {RenderID: "player-attack", Length: 10, Animation: anim.Play(0, 9)},
	}
}

// Animation returns the named animation, falling back to the built-in one.
func (p *Player) Animation(name string) PlayerAnimation {
	if a, ok := p.Animations[name]; ok {
		return a
	}
	return DefaultPlayerAnimations()[name]
}

var PlayerComponent = NewComponent[Player]()

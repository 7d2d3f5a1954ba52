package system

import (
	"github.com/milk9111/tilecore/common"
	"github.com/milk9111/tilecore/ecs/component"
	"github.com/milk9111/tilecore/fsm"
)

// Player state singletons. States keep no per-entity data, so one value
// serves every machine.
var (
	playerStateIdle   component.PlayerState = &playerIdleState{}
	playerStateRun    component.PlayerState = &playerRunState{}
	playerStateJump   component.PlayerState = &playerJumpState{}
	playerStateSlide  component.PlayerState = &playerSlideState{}
	playerStateAttack component.PlayerState = &playerAttackState{}
)

// PlayerStateIdle is the state every player machine starts in.
func PlayerStateIdle() component.PlayerState { return playerStateIdle }

type playerCtx = *component.PlayerStateContext

type playerIdleState struct{ fsm.Base[playerCtx] }

type playerRunState struct{ fsm.Base[playerCtx] }

type playerJumpState struct{ fsm.Base[playerCtx] }

type playerSlideState struct{ fsm.Base[playerCtx] }

type playerAttackState struct{ fsm.Base[playerCtx] }

// leaveGround covers the ways a grounded state hands over to Jumping: walking
// off a ledge, jumping, or dropping through a one-way platform by dropBy.
func leaveGround(ctx playerCtx, dropBy float64) (component.PlayerTrans, bool) {
	mv, c, in := ctx.Moving, ctx.Collider, ctx.Input
	switch {
	case !c.OnGround:
		setSequence(ctx, component.PlayerAnimDrop)
		return fsm.Push(playerStateJump), true
	case in.Jump:
		mv.Velocity.Y = ctx.Player.JumpSpeed
		setSequence(ctx, component.PlayerAnimJump)
		return fsm.Push(playerStateJump), true
	case in.Down && c.OnPlatform:
		mv.Position.Y -= dropBy
		setSequence(ctx, component.PlayerAnimDrop)
		return fsm.Push(playerStateJump), true
	}
	return fsm.None[playerCtx](), false
}

// groundAction handles the grounded one-shot actions.
func groundAction(ctx playerCtx) component.PlayerTrans {
	switch {
	case ctx.Input.Slide:
		return fsm.Push(playerStateSlide)
	case ctx.Input.Attack:
		return fsm.Push(playerStateAttack)
	}
	return fsm.None[playerCtx]()
}

func (playerIdleState) Name() string { return "idle" }
func (playerIdleState) OnStart(ctx playerCtx) {
	playAnimation(ctx, component.PlayerAnimIdle)
}
func (s playerIdleState) OnResume(ctx playerCtx) { s.OnStart(ctx) }
func (playerIdleState) HandleEvents(ctx playerCtx) component.PlayerTrans {
	if t, ok := leaveGround(ctx, common.PlatformThreshold); ok {
		return t
	}
	if common.Xor(ctx.Input.Left, ctx.Input.Right) {
		return fsm.Push(playerStateRun)
	}
	return groundAction(ctx)
}
func (playerIdleState) Update(ctx playerCtx) component.PlayerTrans {
	slowDown(ctx.Moving, ctx.Player, true)
	return fsm.None[playerCtx]()
}

func (playerRunState) Name() string { return "run" }
func (playerRunState) OnStart(ctx playerCtx) {
	playAnimation(ctx, component.PlayerAnimRun)
}
func (s playerRunState) OnResume(ctx playerCtx) { s.OnStart(ctx) }
func (playerRunState) HandleEvents(ctx playerCtx) component.PlayerTrans {
	if !common.Xor(ctx.Input.Left, ctx.Input.Right) {
		return fsm.Switch(playerStateIdle)
	}
	if t, ok := leaveGround(ctx, common.PlatformThreshold*2); ok {
		return t
	}
	return groundAction(ctx)
}
func (playerRunState) Update(ctx playerCtx) component.PlayerTrans {
	walk(ctx.Moving, ctx.Collider, ctx.Dir, ctx.Player)
	return fsm.None[playerCtx]()
}

// Jumping covers every airborne moment. The pushing state picks the jump or
// drop sequence; OnStart only swaps the sprite sheet.
func (playerJumpState) Name() string { return "jump" }
func (playerJumpState) OnStart(ctx playerCtx) {
	showAnimation(ctx, component.PlayerAnimJump)
	c := ctx.Collider
	if !c.OnGround && c.WasOnGround {
		c.FramesFromJumpStart = 0
	}
}
func (s playerJumpState) OnResume(ctx playerCtx) { s.OnStart(ctx) }
func (playerJumpState) HandleEvents(ctx playerCtx) component.PlayerTrans {
	mv, c, in := ctx.Moving, ctx.Collider, ctx.Input

	noLeft := false
	if c.CannotGoLeftFrames > 0 {
		c.CannotGoLeftFrames--
		noLeft = true
	}
	noRight := false
	if c.CannotGoRightFrames > 0 {
		c.CannotGoRightFrames--
		noRight = true
	}
	if common.Xor(in.Left && !noLeft, in.Right && !noRight) {
		walk(mv, c, ctx.Dir, ctx.Player)
	}

	if in.Attack {
		return fsm.Switch(playerStateAttack)
	}
	// Late jump: just after walking off a ledge the jump still counts.
	if in.Jump && c.FramesFromJumpStart <= ctx.Player.JumpFramesThreshold && mv.Velocity.Y <= 0 && !c.AtCeiling {
		mv.Velocity.Y = ctx.Player.JumpSpeed
	}
	return fsm.None[playerCtx]()
}
func (playerJumpState) Update(ctx playerCtx) component.PlayerTrans {
	mv := ctx.Moving
	mv.Velocity.Y = max(ctx.Player.Gravity*ctx.Delta+mv.Velocity.Y, ctx.Player.MaxFallingSpeed)
	if ctx.Collider.OnGround {
		return fsm.Pop[playerCtx]()
	}
	if !common.Xor(ctx.Input.Left, ctx.Input.Right) {
		slowDown(mv, ctx.Player, false)
	}
	return fsm.None[playerCtx]()
}
func (playerJumpState) FixedUpdate(ctx playerCtx) component.PlayerTrans {
	c := ctx.Collider
	if c.FramesFromJumpStart <= ctx.Player.JumpFramesThreshold && (c.AtCeiling || ctx.Moving.Velocity.Y > 0) {
		c.FramesFromJumpStart = ctx.Player.JumpFramesThreshold + 1
	}
	c.FramesFromJumpStart++
	return fsm.None[playerCtx]()
}

func (playerSlideState) Name() string { return "slide" }
func (playerSlideState) OnStart(ctx playerCtx) {
	playAnimation(ctx, component.PlayerAnimSlide)
}
func (playerSlideState) HandleEvents(ctx playerCtx) component.PlayerTrans {
	if ctx.Input.Jump {
		setSequence(ctx, component.PlayerAnimJump)
		return fsm.Switch(playerStateJump)
	}
	return fsm.None[playerCtx]()
}
func (playerSlideState) FixedUpdate(ctx playerCtx) component.PlayerTrans {
	if ctx.Anim.IsOver() {
		return fsm.Pop[playerCtx]()
	}
	return fsm.None[playerCtx]()
}

func (playerAttackState) Name() string { return "attack" }
func (playerAttackState) OnStart(ctx playerCtx) {
	playAnimation(ctx, component.PlayerAnimAttack)
}
func (playerAttackState) FixedUpdate(ctx playerCtx) component.PlayerTrans {
	if ctx.Anim.IsOver() {
		return fsm.Pop[playerCtx]()
	}
	return fsm.None[playerCtx]()
}

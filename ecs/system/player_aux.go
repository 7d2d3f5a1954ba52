package system

import (
	"github.com/milk9111/tilecore/ecs/component"
	"github.com/milk9111/tilecore/physics"
)

// walk accelerates toward the facing direction. Velocity is clamped to
// [WalkSpeed/2, WalkSpeed] in that direction, so residual speed the other way
// is discarded. A wall in the way stops the body instead.
func walk(mv *physics.MovingObject, c *physics.Collider, dir component.Directional, p *component.Player) {
	if dir == component.FacingLeft {
		if c.PushesLeftWall {
			stop(mv)
			return
		}
		mv.Accel.X = -p.WalkAcceleration
		mv.Velocity.X = max(min(-p.WalkSpeed/2, mv.Velocity.X), -p.WalkSpeed)
		return
	}
	if c.PushesRightWall {
		stop(mv)
		return
	}
	mv.Accel.X = p.WalkAcceleration
	mv.Velocity.X = min(max(p.WalkSpeed/2, mv.Velocity.X), p.WalkSpeed)
}

func stop(mv *physics.MovingObject) {
	mv.Accel.X = 0
	mv.Velocity.X = 0
}

// slowDown brakes horizontal motion. The fast variant applies a strong
// constant brake until the speed drops under the threshold and then stops
// dead. The slow variant brakes proportionally to the current speed.
func slowDown(mv *physics.MovingObject, p *component.Player, fast bool) {
	if !fast {
		mv.Accel.X = -mv.Velocity.X / 2
		return
	}
	switch {
	case mv.Velocity.X > p.SlowDownThreshold:
		mv.Accel.X = -p.SlowDownAcceleration
	case mv.Velocity.X < -p.SlowDownThreshold:
		mv.Accel.X = p.SlowDownAcceleration
	default:
		stop(mv)
	}
}

// playAnimation restarts the named sequence and points the renderable at it.
func playAnimation(ctx *component.PlayerStateContext, name string) {
	setSequence(ctx, name)
	showAnimation(ctx, name)
}

func setSequence(ctx *component.PlayerStateContext, name string) {
	if ctx.Anim == nil {
		return
	}
	ctx.Anim.Set(ctx.Player.Animation(name).Animation)
}

func showAnimation(ctx *component.PlayerStateContext, name string) {
	if ctx.Render == nil {
		return
	}
	a := ctx.Player.Animation(name)
	ctx.Render.SetAnimation(a.RenderID, a.Length)
}

package system

import (
	"testing"

	"github.com/milk9111/tilecore/common"
	"github.com/milk9111/tilecore/ecs/component"
	"github.com/milk9111/tilecore/fsm"
	"github.com/milk9111/tilecore/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groundedCtx() *component.PlayerStateContext {
	mv := physics.NewMovingObject(common.Vector{X: 100, Y: 100})
	c := physics.Collider{OnGround: true, WasOnGround: true}
	p := component.DefaultPlayer()
	return &component.PlayerStateContext{
		Moving:   &mv,
		Collider: &c,
		Anim:     &component.AnimationSequence{},
		Render:   component.NewAnimationRenderable(5, "player-idle", 10),
		Dir:      component.FacingRight,
		Delta:    1.0 / 60,
		Player:   &p,
	}
}

func startedMachine(t *testing.T, ctx *component.PlayerStateContext) *playerMachine {
	t.Helper()
	m := fsm.New(playerStateIdle)
	m.Start(ctx)
	require.Equal(t, "idle", m.Current().Name())
	return m
}

func nextFrame(t *testing.T, ctx *component.PlayerStateContext) int {
	t.Helper()
	f, ok := ctx.Anim.Sequence.Next()
	require.True(t, ok)
	return f
}

func TestIdleHandleEventsPriority(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(ctx *component.PlayerStateContext)
		wantState string
		wantDepth int
		check     func(t *testing.T, ctx *component.PlayerStateContext)
	}{
		{
			name:      "airborne_wins_over_jump",
			setup:     func(ctx *component.PlayerStateContext) { ctx.Collider.OnGround = false; ctx.Input.Jump = true },
			wantState: "jump",
			wantDepth: 2,
			check: func(t *testing.T, ctx *component.PlayerStateContext) {
				assert.Equal(t, 0.0, ctx.Moving.Velocity.Y)
				assert.Equal(t, 5, nextFrame(t, ctx), "drop sequence")
			},
		},
		{
			name:      "jump",
			setup:     func(ctx *component.PlayerStateContext) { ctx.Input.Jump = true; ctx.Input.Left = true },
			wantState: "jump",
			wantDepth: 2,
			check: func(t *testing.T, ctx *component.PlayerStateContext) {
				assert.Equal(t, common.JumpSpeed, ctx.Moving.Velocity.Y)
				assert.Equal(t, 0, nextFrame(t, ctx), "jump sequence")
				assert.Equal(t, "player-jump", ctx.Render.ID)
			},
		},
		{
			name: "drop_through_platform",
			setup: func(ctx *component.PlayerStateContext) {
				ctx.Collider.OnPlatform = true
				ctx.Input.Down = true
			},
			wantState: "jump",
			wantDepth: 2,
			check: func(t *testing.T, ctx *component.PlayerStateContext) {
				assert.Equal(t, 100-common.PlatformThreshold, ctx.Moving.Position.Y)
				assert.Equal(t, 5, nextFrame(t, ctx))
			},
		},
		{
			name:      "down_on_solid_ground_does_nothing",
			setup:     func(ctx *component.PlayerStateContext) { ctx.Input.Down = true },
			wantState: "idle",
			wantDepth: 1,
		},
		{
			name:      "run",
			setup:     func(ctx *component.PlayerStateContext) { ctx.Input.Right = true; ctx.Input.Attack = true },
			wantState: "run",
			wantDepth: 2,
			check: func(t *testing.T, ctx *component.PlayerStateContext) {
				assert.Equal(t, "player-run", ctx.Render.ID)
			},
		},
		{
			name:      "both_directions_do_not_run",
			setup:     func(ctx *component.PlayerStateContext) { ctx.Input.Right = true; ctx.Input.Left = true },
			wantState: "idle",
			wantDepth: 1,
		},
		{
			name:      "slide_before_attack",
			setup:     func(ctx *component.PlayerStateContext) { ctx.Input.Slide = true; ctx.Input.Attack = true },
			wantState: "slide",
			wantDepth: 2,
		},
		{
			name:      "attack",
			setup:     func(ctx *component.PlayerStateContext) { ctx.Input.Attack = true },
			wantState: "attack",
			wantDepth: 2,
			check: func(t *testing.T, ctx *component.PlayerStateContext) {
				assert.Equal(t, "player-attack", ctx.Render.ID)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := groundedCtx()
			m := startedMachine(t, ctx)
			tc.setup(ctx)
			m.HandleEvents(ctx)
			assert.Equal(t, tc.wantState, m.Current().Name())
			assert.Equal(t, tc.wantDepth, m.Depth())
			if tc.check != nil {
				tc.check(t, ctx)
			}
		})
	}
}

func TestRunningDropsTwiceAsFar(t *testing.T) {
	ctx := groundedCtx()
	m := startedMachine(t, ctx)
	ctx.Input.Right = true
	m.HandleEvents(ctx)
	require.Equal(t, "run", m.Current().Name())

	ctx.Collider.OnPlatform = true
	ctx.Input.Down = true
	m.HandleEvents(ctx)
	assert.Equal(t, "jump", m.Current().Name())
	assert.Equal(t, 100-2*common.PlatformThreshold, ctx.Moving.Position.Y)
}

func TestRunningReleaseSwitchesToIdle(t *testing.T) {
	ctx := groundedCtx()
	m := startedMachine(t, ctx)
	ctx.Input.Right = true
	m.HandleEvents(ctx)
	m.Update(ctx)
	assert.Equal(t, common.WalkAcceleration, ctx.Moving.Accel.X)
	assert.Equal(t, common.WalkSpeed/2, ctx.Moving.Velocity.X)

	ctx.Input.Right = false
	m.HandleEvents(ctx)
	assert.Equal(t, []string{"idle", "idle"}, m.Names())
}

func TestJumpLandsAndResumes(t *testing.T) {
	ctx := groundedCtx()
	m := startedMachine(t, ctx)
	ctx.Input.Right = true
	m.HandleEvents(ctx)
	ctx.Input.Jump = true
	m.HandleEvents(ctx)
	require.Equal(t, []string{"idle", "run", "jump"}, m.Names())
	ctx.Input.Jump = false

	ctx.Collider.OnGround = false
	m.Update(ctx)
	assert.InDelta(t, common.JumpSpeed+common.Gravity/60, ctx.Moving.Velocity.Y, 1e-9)
	assert.Equal(t, "jump", m.Current().Name())

	ctx.Collider.OnGround = true
	m.Update(ctx)
	assert.Equal(t, "run", m.Current().Name())
	assert.Equal(t, "player-run", ctx.Render.ID)
}

func TestJumpGravityIsCapped(t *testing.T) {
	ctx := groundedCtx()
	ctx.Collider.OnGround = false
	ctx.Moving.Velocity.Y = common.MaxFallingSpeed + 1
	playerStateJump.Update(ctx)
	assert.Equal(t, common.MaxFallingSpeed, ctx.Moving.Velocity.Y)
}

func TestJumpFramesFromStart(t *testing.T) {
	t.Run("reset_when_just_left_ground", func(t *testing.T) {
		ctx := groundedCtx()
		ctx.Collider.OnGround = false
		ctx.Collider.FramesFromJumpStart = 40
		playerStateJump.OnStart(ctx)
		assert.Equal(t, 0, ctx.Collider.FramesFromJumpStart)
	})
	t.Run("kept_while_grounded", func(t *testing.T) {
		ctx := groundedCtx()
		ctx.Collider.FramesFromJumpStart = 40
		playerStateJump.OnStart(ctx)
		assert.Equal(t, 40, ctx.Collider.FramesFromJumpStart)
	})
	t.Run("rising_skips_the_window", func(t *testing.T) {
		ctx := groundedCtx()
		ctx.Moving.Velocity.Y = 10
		playerStateJump.FixedUpdate(ctx)
		assert.Equal(t, common.JumpFramesThreshold+2, ctx.Collider.FramesFromJumpStart)
	})
	t.Run("falling_counts_up", func(t *testing.T) {
		ctx := groundedCtx()
		ctx.Moving.Velocity.Y = -10
		playerStateJump.FixedUpdate(ctx)
		playerStateJump.FixedUpdate(ctx)
		assert.Equal(t, 2, ctx.Collider.FramesFromJumpStart)
	})
}

func TestLateJump(t *testing.T) {
	tests := []struct {
		name    string
		frames  int
		velY    float64
		ceiling bool
		want    float64
	}{
		{"inside_window", common.JumpFramesThreshold, -100, false, common.JumpSpeed},
		{"window_passed", common.JumpFramesThreshold + 1, -100, false, -100},
		{"still_rising", 0, 100, false, 100},
		{"under_ceiling", 0, 0, true, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := groundedCtx()
			ctx.Collider.OnGround = false
			ctx.Collider.FramesFromJumpStart = tc.frames
			ctx.Collider.AtCeiling = tc.ceiling
			ctx.Moving.Velocity.Y = tc.velY
			ctx.Input.Jump = true
			tr := playerStateJump.HandleEvents(ctx)
			assert.Equal(t, fsm.TransNone, tr.Kind)
			assert.Equal(t, tc.want, ctx.Moving.Velocity.Y)
		})
	}
}

func TestJumpWallLockout(t *testing.T) {
	ctx := groundedCtx()
	ctx.Collider.OnGround = false
	ctx.Collider.CannotGoRightFrames = 2
	ctx.Input.Right = true

	playerStateJump.HandleEvents(ctx)
	assert.Equal(t, 1, ctx.Collider.CannotGoRightFrames)
	assert.Equal(t, 0.0, ctx.Moving.Velocity.X, "blocked direction is ignored")

	playerStateJump.HandleEvents(ctx)
	playerStateJump.HandleEvents(ctx)
	assert.Equal(t, 0, ctx.Collider.CannotGoRightFrames)
	assert.Equal(t, common.WalkSpeed/2, ctx.Moving.Velocity.X)
}

func TestJumpAttackSwitches(t *testing.T) {
	ctx := groundedCtx()
	m := startedMachine(t, ctx)
	ctx.Collider.OnGround = false
	m.HandleEvents(ctx)
	ctx.Input.Attack = true
	m.HandleEvents(ctx)
	assert.Equal(t, []string{"idle", "attack"}, m.Names())
}

func TestOneShotStatesPopWhenAnimationEnds(t *testing.T) {
	for _, action := range []string{"slide", "attack"} {
		t.Run(action, func(t *testing.T) {
			ctx := groundedCtx()
			m := startedMachine(t, ctx)
			ctx.Input.Slide = action == "slide"
			ctx.Input.Attack = action == "attack"
			m.HandleEvents(ctx)
			require.Equal(t, action, m.Current().Name())

			for i := 0; i < 10; i++ {
				m.FixedUpdate(ctx)
				require.Equal(t, action, m.Current().Name(), "frame %d", i)
				assert.Equal(t, i, nextFrame(t, ctx))
			}
			m.FixedUpdate(ctx)
			assert.Equal(t, "idle", m.Current().Name())
			assert.Equal(t, "player-idle", ctx.Render.ID)
		})
	}
}

func TestSlideJumpSwitches(t *testing.T) {
	ctx := groundedCtx()
	m := startedMachine(t, ctx)
	ctx.Input.Slide = true
	m.HandleEvents(ctx)
	ctx.Input.Slide = false
	ctx.Input.Jump = true
	m.HandleEvents(ctx)
	assert.Equal(t, []string{"idle", "jump"}, m.Names())
	assert.Equal(t, 0, nextFrame(t, ctx))
}

func TestWalk(t *testing.T) {
	tests := []struct {
		name      string
		dir       component.Directional
		velX      float64
		leftWall  bool
		rightWall bool
		wantVel   float64
		wantAcc   float64
	}{
		{"right_from_rest", component.FacingRight, 0, false, false, 550, 700},
		{"right_keeps_speed", component.FacingRight, 800, false, false, 800, 700},
		{"right_capped", component.FacingRight, 5000, false, false, 1100, 700},
		{"right_drops_reverse_speed", component.FacingRight, -900, false, false, 550, 700},
		{"left_from_rest", component.FacingLeft, 0, false, false, -550, -700},
		{"left_capped", component.FacingLeft, -5000, false, false, -1100, -700},
		{"right_into_wall", component.FacingRight, 600, false, true, 0, 0},
		{"left_into_wall", component.FacingLeft, -600, true, false, 0, 0},
		{"left_ignores_right_wall", component.FacingLeft, 0, false, true, -550, -700},
	}
	p := component.DefaultPlayer()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mv := physics.MovingObject{}
			mv.Velocity.X = tc.velX
			c := physics.Collider{PushesLeftWall: tc.leftWall, PushesRightWall: tc.rightWall}
			walk(&mv, &c, tc.dir, &p)
			assert.Equal(t, tc.wantVel, mv.Velocity.X)
			assert.Equal(t, tc.wantAcc, mv.Accel.X)
		})
	}
}

func TestSlowDown(t *testing.T) {
	tests := []struct {
		name    string
		fast    bool
		velX    float64
		wantVel float64
		wantAcc float64
	}{
		{"fast_brakes_right", true, 800, 800, -3500},
		{"fast_brakes_left", true, -800, -800, 3500},
		{"fast_stops_when_slow", true, 350, 0, 0},
		{"slow_proportional", false, 800, 800, -400},
		{"slow_proportional_left", false, -300, -300, 150},
	}
	p := component.DefaultPlayer()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mv := physics.MovingObject{}
			mv.Velocity.X = tc.velX
			mv.Accel.X = 123
			slowDown(&mv, &p, tc.fast)
			assert.Equal(t, tc.wantVel, mv.Velocity.X)
			assert.Equal(t, tc.wantAcc, mv.Accel.X)
		})
	}
}

package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/tilecore/ecs"
	"github.com/milk9111/tilecore/ecs/component"
	"github.com/milk9111/tilecore/physics"
	"github.com/milk9111/tilecore/prefabs"
)

// ScriptedInputSystem fills ScriptedInput.Input by running each entity's
// tengo script once per tick. A script defines
//
//	update := func(engine, state) { ... }
//
// where state is a map that persists between ticks for that entity. Held
// directions must be held again every tick; one-shot actions are cleared by
// ResetInputSystem as usual.
type ScriptedInputSystem struct {
	// Load reads a script by name. Defaults to prefabs.LoadScript.
	Load func(name string) ([]byte, error)

	compiled map[string]*tengo.Compiled
	runtimes map[ecs.Entity]*scriptRuntime
}

type scriptRuntime struct {
	script   string
	compiled *tengo.Compiled
	state    *tengo.Map
	failed   bool
}

const scriptDispatch = `
update(__engine, __state)
`

func NewScriptedInputSystem() *ScriptedInputSystem {
	return &ScriptedInputSystem{
		Load:     prefabs.LoadScript,
		compiled: map[string]*tengo.Compiled{},
		runtimes: map[ecs.Entity]*scriptRuntime{},
	}
}

// Invalidate drops the compiled copy of a script so the next tick reloads it.
// Entities running it start over with fresh state.
func (s *ScriptedInputSystem) Invalidate(name string) {
	name = scriptKey(name)
	delete(s.compiled, name)
	for e, rt := range s.runtimes {
		if rt.script == name {
			delete(s.runtimes, e)
		}
	}
}

func (s *ScriptedInputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for e := range s.runtimes {
		if !ecs.IsAlive(w, e) {
			delete(s.runtimes, e)
		}
	}

	ecs.ForEach(w, component.ScriptedInputComponent.Kind(), func(e ecs.Entity, si *component.ScriptedInput) {
		rt, err := s.runtime(e, si.Script)
		if err != nil {
			log.Printf("scripted input: entity=%d load %q: %v", e, si.Script, err)
			return
		}
		if rt.failed {
			return
		}

		si.Input.Up, si.Input.Down, si.Input.Left, si.Input.Right = false, false, false, false
		engine := buildScriptEngine(w, e, si)
		if err := rt.run(engine); err != nil {
			log.Printf("scripted input: entity=%d script %q error: %v", e, si.Script, err)
			rt.failed = true
		}
		si.Ticks++
	})
}

func (s *ScriptedInputSystem) runtime(e ecs.Entity, script string) (*scriptRuntime, error) {
	key := scriptKey(script)
	if rt, ok := s.runtimes[e]; ok && rt.script == key {
		return rt, nil
	}

	base, ok := s.compiled[key]
	if !ok {
		var err error
		base, err = s.compile(key)
		if err != nil {
			// Remember the failure so the log is not flooded every tick.
			s.runtimes[e] = &scriptRuntime{script: key, failed: true}
			return nil, err
		}
		s.compiled[key] = base
	}

	rt := &scriptRuntime{
		script:   key,
		compiled: base.Clone(),
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.runtimes[e] = rt
	return rt, nil
}

func (s *ScriptedInputSystem) compile(name string) (*tengo.Compiled, error) {
	load := s.Load
	if load == nil {
		load = prefabs.LoadScript
	}
	src, err := load(name)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
}

// run executes one update. Faults raised inside the VM, such as integer
// division by zero, come back as errors.
func (rt *scriptRuntime) run(engine *tengo.ImmutableMap) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script panic: %v", r)
		}
	}()
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func scriptKey(name string) string {
	return strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(name), "scripts/"), ".tengo")
}

func buildScriptEngine(w *ecs.World, e ecs.Entity, si *component.ScriptedInput) *tengo.ImmutableMap {
	in := &si.Input
	c, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
	mv, _ := ecs.Get(w, e, component.MovingObjectComponent.Kind())
	dir, _ := ecs.Get(w, e, component.DirectionalComponent.Kind())

	values := map[string]tengo.Object{}

	values["press"] = &tengo.UserFunction{Name: "press", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		return boolObject(setInput(in, objectAsString(args[0]))), nil
	}}
	values["hold"] = values["press"]

	values["on_ground"] = &tengo.UserFunction{Name: "on_ground", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(c != nil && c.OnGround), nil
	}}

	values["on_platform"] = &tengo.UserFunction{Name: "on_platform", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(c != nil && c.OnPlatform), nil
	}}

	values["pushes_wall"] = &tengo.UserFunction{Name: "pushes_wall", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if c == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		switch objectAsString(args[0]) {
		case "left":
			return boolObject(c.PushesLeftWall), nil
		case "right":
			return boolObject(c.PushesRightWall), nil
		}
		return tengo.FalseValue, nil
	}}

	values["facing"] = &tengo.UserFunction{Name: "facing", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if dir == nil {
			return &tengo.String{Value: component.FacingRight.String()}, nil
		}
		return &tengo.String{Value: dir.String()}, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(mv, func(m *physics.MovingObject) (float64, float64) { return m.Position.X, m.Position.Y }), nil
	}}

	values["velocity"] = &tengo.UserFunction{Name: "velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(mv, func(m *physics.MovingObject) (float64, float64) { return m.Velocity.X, m.Velocity.Y }), nil
	}}

	values["tick"] = &tengo.UserFunction{Name: "tick", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(si.Ticks)}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// setInput turns on the named input. Unknown names are ignored.
func setInput(in *component.PlayerInput, name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up":
		in.Up = true
	case "down":
		in.Down = true
	case "left":
		in.Left = true
	case "right":
		in.Right = true
	case "jump":
		in.Jump = true
	case "attack":
		in.Attack = true
	case "slide":
		in.Slide = true
	default:
		return false
	}
	return true
}

func vectorObject(mv *physics.MovingObject, get func(*physics.MovingObject) (float64, float64)) tengo.Object {
	if mv == nil {
		return tengo.UndefinedValue
	}
	x, y := get(mv)
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"x": &tengo.Float{Value: x},
		"y": &tengo.Float{Value: y},
	}}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

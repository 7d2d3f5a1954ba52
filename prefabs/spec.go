package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/tilecore/anim"
	"gopkg.in/yaml.v3"
)

var ErrInvalidAnimation = errors.New("prefabs: invalid animation")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// EntityBuildSpec lists the components of one prefab by registry name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes one generic components entry into T.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ColliderSpec is the unscaled full size of the body and the factor the
// collision box is shrunk by.
type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
}

type RenderableSpec struct {
	Layer  int    `yaml:"layer"`
	Kind   string `yaml:"kind"`
	ID     string `yaml:"id"`
	Length int    `yaml:"length"`
}

type CollisionDetectionSpec struct {
	Group int `yaml:"group"`
}

type ScriptedInputSpec struct {
	Script string `yaml:"script"`
}

// AnimationNodeSpec is one node of an animation tree. Exactly one field is
// set.
//
//	forever: {play: [0, 9]}
//	seq: [{play: [0, 4]}, {forever: {play: [5, 8]}}]
type AnimationNodeSpec struct {
	Play    []int               `yaml:"play,flow"`
	Repeat  *RepeatSpec         `yaml:"repeat"`
	Forever *AnimationNodeSpec  `yaml:"forever"`
	Seq     []AnimationNodeSpec `yaml:"seq"`
}

type RepeatSpec struct {
	Times int               `yaml:"times"`
	Of    AnimationNodeSpec `yaml:"of"`
}

func (s AnimationNodeSpec) Build() (anim.Animation, error) {
	set := 0
	if s.Play != nil {
		set++
	}
	if s.Repeat != nil {
		set++
	}
	if s.Forever != nil {
		set++
	}
	if s.Seq != nil {
		set++
	}
	if set != 1 {
		return anim.Animation{}, fmt.Errorf("%w: node sets %d of play/repeat/forever/seq", ErrInvalidAnimation, set)
	}

	switch {
	case s.Play != nil:
		if len(s.Play) != 2 {
			return anim.Animation{}, fmt.Errorf("%w: play wants [start, end], got %v", ErrInvalidAnimation, s.Play)
		}
		return anim.Play(s.Play[0], s.Play[1]), nil
	case s.Repeat != nil:
		child, err := s.Repeat.Of.Build()
		if err != nil {
			return anim.Animation{}, err
		}
		return anim.Repeat(s.Repeat.Times, child), nil
	case s.Forever != nil:
		child, err := s.Forever.Build()
		if err != nil {
			return anim.Animation{}, err
		}
		return anim.Forever(child), nil
	default:
		pieces := make([]anim.Animation, 0, len(s.Seq))
		for i, p := range s.Seq {
			a, err := p.Build()
			if err != nil {
				return anim.Animation{}, fmt.Errorf("seq[%d]: %w", i, err)
			}
			pieces = append(pieces, a)
		}
		return anim.Seq(pieces...), nil
	}
}

type PlayerAnimationSpec struct {
	RenderID  string            `yaml:"render_id"`
	Length    int               `yaml:"length"`
	Animation AnimationNodeSpec `yaml:"animation"`
}

// PlayerComponentSpec is the player tuning block. Zero fields keep the
// built-in values.
type PlayerComponentSpec struct {
	Gravity              float64                        `yaml:"gravity"`
	MaxFallingSpeed      float64                        `yaml:"max_falling_speed"`
	JumpSpeed            float64                        `yaml:"jump_speed"`
	WalkSpeed            float64                        `yaml:"walk_speed"`
	WalkAcceleration     float64                        `yaml:"walk_acceleration"`
	SlowDownThreshold    float64                        `yaml:"slow_down_threshold"`
	SlowDownAcceleration float64                        `yaml:"slow_down_acceleration"`
	JumpFramesThreshold  int                            `yaml:"jump_frames_threshold"`
	Animations           map[string]PlayerAnimationSpec `yaml:"animations"`
}

type QuadTreeSpec struct {
	MaxObjects int `yaml:"max_objects"`
	MaxLevels  int `yaml:"max_levels"`
}

// SimulationSpec configures a Simulation. See simulation.yaml.
type SimulationSpec struct {
	Level             string       `yaml:"level"`
	FixedRate         int          `yaml:"fixed_rate"`
	QuadTree          QuadTreeSpec `yaml:"quad_tree"`
	SeparationImpulse float64      `yaml:"separation_impulse"`
	Workers           int          `yaml:"workers"`
	Seed              uint64       `yaml:"seed"`
	CameraFOV         float64      `yaml:"camera_fov"`
	Spawn             []SpawnSpec  `yaml:"spawn"`
}

// SpawnSpec places one prefab. A nil At keeps the prefab's own position.
type SpawnSpec struct {
	Prefab string      `yaml:"prefab"`
	At     *VectorSpec `yaml:"at"`
}

func LoadSimulationSpec(filename string) (SimulationSpec, error) {
	return LoadSpec[SimulationSpec](filename)
}

package assets

import (
	"errors"
	"fmt"
	"image"
	"log"
	"sort"

	"gopkg.in/yaml.v3"
)

var ErrInvalidAsset = errors.New("assets: invalid asset")

// Animation is one sprite sheet cut into Length frames.
type Animation struct {
	ID     string
	Sheet  string
	Length int
	Frames []image.Rectangle
}

// Frame returns the sheet rectangle of frame i.
func (a Animation) Frame(i int) (image.Rectangle, bool) {
	if i < 0 || i >= len(a.Frames) {
		return image.Rectangle{}, false
	}
	return a.Frames[i], true
}

// Size is the size of one frame.
func (a Animation) Size() image.Point {
	if len(a.Frames) == 0 {
		return image.Point{}
	}
	return a.Frames[0].Size()
}

type frameSpec struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type animationSpec struct {
	Sheet   string    `yaml:"sheet"`
	Frame   frameSpec `yaml:"frame"`
	Length  int       `yaml:"length"`
	Columns int       `yaml:"columns"`
}

type tableSpec struct {
	Animations map[string]animationSpec `yaml:"animations"`
}

// Storage maps render ids to animations. Lookups of unknown ids soft-fail.
type Storage struct {
	animations map[string]Animation
	// Debug logs each unknown id once.
	Debug  bool
	missed map[string]bool
}

func NewStorage() *Storage {
	return &Storage{animations: map[string]Animation{}, missed: map[string]bool{}}
}

// Default loads the embedded animations.yaml.
func Default() (*Storage, error) {
	data, err := LoadFile("animations.yaml")
	if err != nil {
		return nil, fmt.Errorf("assets: load table: %w", err)
	}
	s := NewStorage()
	if err := s.Load(data); err != nil {
		return nil, err
	}
	return s, nil
}

// Load adds the animations of a YAML table, replacing ids already present.
func (s *Storage) Load(data []byte) error {
	var spec tableSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return fmt.Errorf("assets: unmarshal table: %w", err)
	}
	for id, as := range spec.Animations {
		a, err := buildAnimation(id, as)
		if err != nil {
			return err
		}
		s.animations[id] = a
	}
	return nil
}

func buildAnimation(id string, as animationSpec) (Animation, error) {
	if as.Frame.W <= 0 || as.Frame.H <= 0 {
		return Animation{}, fmt.Errorf("%w: %q frame size %dx%d", ErrInvalidAsset, id, as.Frame.W, as.Frame.H)
	}
	if as.Length <= 0 {
		return Animation{}, fmt.Errorf("%w: %q length %d", ErrInvalidAsset, id, as.Length)
	}
	cols := as.Columns
	if cols <= 0 {
		cols = as.Length
	}
	frames := make([]image.Rectangle, as.Length)
	for i := range frames {
		x, y := (i%cols)*as.Frame.W, (i/cols)*as.Frame.H
		frames[i] = image.Rect(x, y, x+as.Frame.W, y+as.Frame.H)
	}
	return Animation{ID: id, Sheet: as.Sheet, Length: as.Length, Frames: frames}, nil
}

// Put registers a in place of any animation with the same id.
func (s *Storage) Put(a Animation) {
	s.animations[a.ID] = a
}

// Animation looks up id. Unknown ids return false and, in debug mode, are
// logged the first time.
func (s *Storage) Animation(id string) (Animation, bool) {
	if s == nil {
		return Animation{}, false
	}
	a, ok := s.animations[id]
	if !ok && s.Debug && !s.missed[id] {
		s.missed[id] = true
		log.Printf("assets: no animation %q", id)
	}
	return a, ok
}

// IDs lists the known ids in order.
func (s *Storage) IDs() []string {
	ids := make([]string, 0, len(s.animations))
	for id := range s.animations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

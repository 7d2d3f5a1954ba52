package component

import "github.com/milk9111/tilecore/anim"

// AnimationSequence holds the frame generator driving an entity's Renderable.
// States replace Sequence wholesale when they change animation.
type AnimationSequence struct {
	Sequence *anim.Sequence
}

func NewAnimationSequence(a anim.Animation) *AnimationSequence {
	return &AnimationSequence{Sequence: anim.NewSequence(a)}
}

// Set swaps in a fresh sequence for a.
func (s *AnimationSequence) Set(a anim.Animation) {
	s.Sequence = anim.NewSequence(a)
}

// IsOver reports whether the current sequence has no frames left. A missing
// sequence counts as over.
func (s *AnimationSequence) IsOver() bool {
	return s == nil || s.Sequence == nil || s.Sequence.IsOver()
}

var AnimationSequenceComponent = NewComponent[AnimationSequence]()

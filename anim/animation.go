package anim

import "fmt"

type Kind uint8

const (
	KindPlay Kind = iota
	KindReversePlay
	KindRepeat
	KindForever
	KindPieces
)

func (k Kind) String() string {
	switch k {
	case KindPlay:
		return "play"
	case KindReversePlay:
		return "reverse_play"
	case KindRepeat:
		return "repeat"
	case KindForever:
		return "forever"
	case KindPieces:
		return "pieces"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Animation describes a frame index pattern. Trees are values; a Sequence
// consumes a private copy.
type Animation struct {
	Kind  Kind
	Start int
	End   int
	Times int
	Child *Animation
	// Pieces run one after another.
	Pieces []Animation
}

// Play yields start..end inclusive, counting down when start > end.
func Play(start, end int) Animation {
	if start <= end {
		return Animation{Kind: KindPlay, Start: start, End: end}
	}
	return Animation{Kind: KindReversePlay, Start: start, End: end}
}

func Repeat(times int, a Animation) Animation {
	return Animation{Kind: KindRepeat, Times: times, Child: &a}
}

func Forever(a Animation) Animation {
	return Animation{Kind: KindForever, Child: &a}
}

func Seq(pieces ...Animation) Animation {
	return Animation{Kind: KindPieces, Pieces: append([]Animation(nil), pieces...)}
}

// Clone deep copies the tree.
func (a Animation) Clone() Animation {
	out := a
	if a.Child != nil {
		child := a.Child.Clone()
		out.Child = &child
	}
	if a.Pieces != nil {
		out.Pieces = make([]Animation, len(a.Pieces))
		for i, p := range a.Pieces {
			out.Pieces[i] = p.Clone()
		}
	}
	return out
}

func (a Animation) String() string {
	switch a.Kind {
	case KindPlay, KindReversePlay:
		return fmt.Sprintf("%s(%d..%d)", a.Kind, a.Start, a.End)
	case KindRepeat:
		return fmt.Sprintf("repeat(%d, %v)", a.Times, a.Child)
	case KindForever:
		return fmt.Sprintf("forever(%v)", a.Child)
	default:
		return fmt.Sprintf("pieces%v", a.Pieces)
	}
}

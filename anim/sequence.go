package anim

// Sequence lazily walks an Animation tree and yields frame indices.
type Sequence struct {
	animation Animation
	current   Animation
	leaf      *Sequence

	peeked    bool
	peekFrame int
	peekOK    bool
}

func NewSequence(a Animation) *Sequence {
	return &Sequence{animation: a.Clone(), current: a.Clone()}
}

// Animation returns the tree the sequence was built from.
func (s *Sequence) Animation() Animation {
	return s.animation.Clone()
}

// Next returns the next frame, or false once the sequence is exhausted.
func (s *Sequence) Next() (int, bool) {
	if s.peeked {
		s.peeked = false
		return s.peekFrame, s.peekOK
	}
	return s.advance()
}

// IsOver reports whether Next would return false. It does not consume a frame.
func (s *Sequence) IsOver() bool {
	if !s.peeked {
		s.peekFrame, s.peekOK = s.advance()
		s.peeked = true
	}
	return !s.peekOK
}

// Reset rewinds to the start of the original tree.
func (s *Sequence) Reset() {
	s.current = s.animation.Clone()
	s.leaf = nil
	s.peeked = false
}

func (s *Sequence) advance() (int, bool) {
	if frame, ok := s.nextLeaf(); ok {
		return frame, true
	}

	cur := &s.current
	switch cur.Kind {
	case KindPlay:
		if cur.Start <= cur.End {
			cur.Start++
			return cur.Start - 1, true
		}
	case KindReversePlay:
		if cur.Start >= cur.End {
			cur.Start--
			return cur.Start + 1, true
		}
	case KindRepeat:
		for cur.Times > 0 && cur.Child != nil {
			cur.Times--
			s.leaf = NewSequence(*cur.Child)
			if frame, ok := s.nextLeaf(); ok {
				return frame, true
			}
		}
	case KindForever:
		// a child that yields nothing ends the loop instead of spinning
		if cur.Child != nil {
			s.leaf = NewSequence(*cur.Child)
			return s.nextLeaf()
		}
	case KindPieces:
		for len(cur.Pieces) > 0 {
			next := cur.Pieces[0]
			cur.Pieces = cur.Pieces[1:]
			s.leaf = NewSequence(next)
			if frame, ok := s.nextLeaf(); ok {
				return frame, true
			}
		}
	}
	return 0, false
}

func (s *Sequence) nextLeaf() (int, bool) {
	if s.leaf == nil {
		return 0, false
	}
	return s.leaf.Next()
}

package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func take(s *Sequence, n int) []int {
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		frame, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, frame)
	}
	return out
}

func TestSequenceFrames(t *testing.T) {
	cases := []struct {
		name string
		anim Animation
		take int
		want []int
	}{
		{"play", Play(0, 3), 10, []int{0, 1, 2, 3}},
		{"single", Play(4, 4), 10, []int{4}},
		{"reverse", Play(3, 0), 10, []int{3, 2, 1, 0}},
		{"repeat", Repeat(2, Play(0, 1)), 10, []int{0, 1, 0, 1}},
		{"repeat_zero", Repeat(0, Play(0, 1)), 10, []int{}},
		{"forever", Forever(Play(0, 2)), 8, []int{0, 1, 2, 0, 1, 2, 0, 1}},
		{"pieces", Seq(Play(0, 1), Play(5, 4)), 10, []int{0, 1, 5, 4}},
		{"nested", Seq(Play(0, 4), Forever(Play(5, 8))), 12, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 5, 6, 7}},
		{"empty_pieces_skipped", Seq(Seq(), Play(1, 2)), 10, []int{1, 2}},
		{"forever_of_nothing", Forever(Seq()), 10, []int{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := take(NewSequence(c.anim), c.take)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestIsOverDoesNotConsume(t *testing.T) {
	s := NewSequence(Play(0, 2))
	require.False(t, s.IsOver())
	require.False(t, s.IsOver())
	assert.Equal(t, []int{0, 1, 2}, take(s, 5))
	assert.True(t, s.IsOver())
	_, ok := s.Next()
	assert.False(t, ok)
}

func TestIsOverAfterLastFrame(t *testing.T) {
	s := NewSequence(Play(0, 9))
	for i := 0; i < 9; i++ {
		_, _ = s.Next()
		require.False(t, s.IsOver(), "frame %d", i)
	}
	frame, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, 9, frame)
	assert.True(t, s.IsOver())
}

func TestForeverNeverEnds(t *testing.T) {
	s := NewSequence(Forever(Play(0, 9)))
	for i := 0; i < 1000; i++ {
		frame, ok := s.Next()
		require.True(t, ok)
		require.Equal(t, i%10, frame)
	}
	assert.False(t, s.IsOver())
}

func TestSequenceOwnsItsTree(t *testing.T) {
	tree := Seq(Play(0, 1), Play(2, 3))
	a := NewSequence(tree)
	b := NewSequence(tree)
	assert.Equal(t, []int{0, 1, 2, 3}, take(a, 10))
	assert.Equal(t, []int{0, 1, 2, 3}, take(b, 10))
	assert.Len(t, tree.Pieces, 2)
}

func TestReset(t *testing.T) {
	s := NewSequence(Play(0, 2))
	take(s, 3)
	require.True(t, s.IsOver())
	s.Reset()
	assert.Equal(t, []int{0, 1, 2}, take(s, 5))
}

package assets

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	for _, id := range []string{"player-idle", "player-run", "player-jump", "player-slide", "player-attack", "background"} {
		a, ok := s.Animation(id)
		require.True(t, ok, id)
		assert.Equal(t, id, a.ID)
		assert.Len(t, a.Frames, a.Length)
	}

	idle, _ := s.Animation("player-idle")
	assert.Equal(t, image.Pt(290, 500), idle.Size())
	f, ok := idle.Frame(3)
	require.True(t, ok)
	assert.Equal(t, image.Rect(870, 0, 1160, 500), f)
}

func TestGridSheet(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	slide, ok := s.Animation("player-slide")
	require.True(t, ok)
	f, ok := slide.Frame(7)
	require.True(t, ok)
	assert.Equal(t, image.Rect(580, 500, 870, 1000), f)
}

func TestMissingLookupsSoftFail(t *testing.T) {
	s := NewStorage()
	s.Debug = true

	a, ok := s.Animation("nope")
	assert.False(t, ok)
	assert.Equal(t, Animation{}, a)
	_, ok = s.Animation("nope")
	assert.False(t, ok)

	_, ok = a.Frame(0)
	assert.False(t, ok)
	assert.Equal(t, image.Point{}, a.Size())

	var nilStorage *Storage
	_, ok = nilStorage.Animation("player-idle")
	assert.False(t, ok)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no_size", "animations:\n  a: {length: 2}\n"},
		{"no_length", "animations:\n  a: {frame: {w: 1, h: 1}}\n"},
		{"bad_yaml", "animations: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, NewStorage().Load([]byte(tc.src)))
		})
	}
}

func TestLoadReplacesAndPut(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Load([]byte("animations:\n  a: {frame: {w: 2, h: 2}, length: 1}\n")))
	require.NoError(t, s.Load([]byte("animations:\n  a: {frame: {w: 4, h: 4}, length: 2}\n  b: {frame: {w: 1, h: 1}, length: 1}\n")))

	a, _ := s.Animation("a")
	assert.Equal(t, 2, a.Length)
	assert.Equal(t, []string{"a", "b"}, s.IDs())

	s.Put(Animation{ID: "c", Length: 1, Frames: []image.Rectangle{image.Rect(0, 0, 3, 3)}})
	c, ok := s.Animation("c")
	require.True(t, ok)
	assert.Equal(t, image.Pt(3, 3), c.Size())
}

func TestCleanAssetPath(t *testing.T) {
	assert.Equal(t, "animations.yaml", cleanAssetPath("assets/animations.yaml"))
	assert.Equal(t, "animations.yaml", cleanAssetPath("/home/me/game/assets/animations.yaml"))
	assert.Equal(t, "x.png", cleanAssetPath("/tmp/x.png"))
	assert.Equal(t, "", cleanAssetPath(""))
}

package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

type scripted struct {
	Base[*recorder]
	name   string
	events Trans[*recorder]
	fixed  Trans[*recorder]
	update Trans[*recorder]
}

func (s *scripted) Name() string { return s.name }

func (s *scripted) OnStart(r *recorder)  { r.calls = append(r.calls, s.name+".start") }
func (s *scripted) OnStop(r *recorder)   { r.calls = append(r.calls, s.name+".stop") }
func (s *scripted) OnPause(r *recorder)  { r.calls = append(r.calls, s.name+".pause") }
func (s *scripted) OnResume(r *recorder) { r.calls = append(r.calls, s.name+".resume") }

func (s *scripted) HandleEvents(r *recorder) Trans[*recorder] {
	r.calls = append(r.calls, s.name+".events")
	return s.events
}

func (s *scripted) FixedUpdate(r *recorder) Trans[*recorder] {
	r.calls = append(r.calls, s.name+".fixed")
	return s.fixed
}

func (s *scripted) Update(r *recorder) Trans[*recorder] {
	r.calls = append(r.calls, s.name+".update")
	return s.update
}

func TestStartIsIdempotent(t *testing.T) {
	r := &recorder{}
	m := New[*recorder](&scripted{name: "a"})
	require.False(t, m.Running())

	m.Start(r)
	m.Start(r)
	assert.True(t, m.Running())
	assert.Equal(t, []string{"a.start"}, r.calls)
}

func TestNotRunningIgnoresDispatch(t *testing.T) {
	r := &recorder{}
	m := New[*recorder](&scripted{name: "a"})
	m.HandleEvents(r)
	m.FixedUpdate(r)
	m.Update(r)
	assert.Empty(t, r.calls)
}

func TestTransitions(t *testing.T) {
	cases := []struct {
		name      string
		trans     func(b *scripted) Trans[*recorder]
		wantCalls []string
		wantStack []string
		running   bool
	}{
		{
			name:      "none",
			trans:     func(*scripted) Trans[*recorder] { return None[*recorder]() },
			wantCalls: []string{"a.events"},
			wantStack: []string{"a"},
			running:   true,
		},
		{
			name:      "push",
			trans:     func(b *scripted) Trans[*recorder] { return Push[*recorder](b) },
			wantCalls: []string{"a.events", "a.pause", "b.start"},
			wantStack: []string{"a", "b"},
			running:   true,
		},
		{
			name:      "switch",
			trans:     func(b *scripted) Trans[*recorder] { return Switch[*recorder](b) },
			wantCalls: []string{"a.events", "a.stop", "b.start"},
			wantStack: []string{"b"},
			running:   true,
		},
		{
			name:      "pop_last",
			trans:     func(*scripted) Trans[*recorder] { return Pop[*recorder]() },
			wantCalls: []string{"a.events", "a.stop"},
			wantStack: []string{},
			running:   false,
		},
		{
			name:      "quit",
			trans:     func(*scripted) Trans[*recorder] { return Quit[*recorder]() },
			wantCalls: []string{"a.events", "a.stop"},
			wantStack: []string{},
			running:   false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := &recorder{}
			b := &scripted{name: "b"}
			a := &scripted{name: "a"}
			a.events = c.trans(b)
			m := New[*recorder](a)
			m.Start(r)
			r.calls = nil

			m.HandleEvents(r)
			assert.Equal(t, c.wantCalls, r.calls)
			assert.Equal(t, c.wantStack, m.Names())
			assert.Equal(t, c.running, m.Running())
		})
	}
}

func TestPopResumesPrevious(t *testing.T) {
	r := &recorder{}
	b := &scripted{name: "b"}
	b.fixed = Pop[*recorder]()
	a := &scripted{name: "a", events: Push[*recorder](b)}
	m := New[*recorder](a)
	m.Start(r)
	m.HandleEvents(r)
	r.calls = nil

	m.FixedUpdate(r)
	assert.Equal(t, []string{"b.fixed", "b.stop", "a.resume"}, r.calls)
	assert.Equal(t, []string{"a"}, m.Names())
	assert.Same(t, a, m.Current())
}

func TestQuitStopsEveryState(t *testing.T) {
	r := &recorder{}
	c := &scripted{name: "c", update: Quit[*recorder]()}
	b := &scripted{name: "b", events: Push[*recorder](c)}
	a := &scripted{name: "a", events: Push[*recorder](b)}
	m := New[*recorder](a)
	m.Start(r)
	m.HandleEvents(r)
	m.HandleEvents(r)
	require.Equal(t, 3, m.Depth())
	r.calls = nil

	m.Update(r)
	assert.Equal(t, []string{"c.update", "c.stop", "b.stop", "a.stop"}, r.calls)
	assert.False(t, m.Running())
	assert.Nil(t, m.Current())

	r.calls = nil
	m.Update(r)
	assert.Empty(t, r.calls)
}

func TestTransitionVisibleWithinSameTick(t *testing.T) {
	r := &recorder{}
	b := &scripted{name: "b"}
	a := &scripted{name: "a", events: Push[*recorder](b)}
	m := New[*recorder](a)
	m.Start(r)
	r.calls = nil

	m.HandleEvents(r)
	m.Update(r)
	assert.Equal(t, []string{"a.events", "a.pause", "b.start", "b.update"}, r.calls)
}

func TestStartAfterQuitStaysStopped(t *testing.T) {
	r := &recorder{}
	m := New[*recorder](&scripted{name: "a", update: Quit[*recorder]()})
	m.Start(r)
	m.Update(r)
	require.False(t, m.Running())
	r.calls = nil

	assert.NotPanics(t, func() { m.Start(r) })
	assert.False(t, m.Running())
	assert.Empty(t, r.calls)
}

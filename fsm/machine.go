// Package fsm is a pushdown state machine. States receive a caller-owned
// context on every hook and answer with a Trans describing how the stack
// should change. Transitions apply synchronously.
package fsm

type State[C any] interface {
	Name() string
	OnStart(ctx C)
	OnStop(ctx C)
	OnPause(ctx C)
	OnResume(ctx C)
	HandleEvents(ctx C) Trans[C]
	FixedUpdate(ctx C) Trans[C]
	Update(ctx C) Trans[C]
}

type TransKind uint8

const (
	TransNone TransKind = iota
	TransPop
	TransPush
	TransSwitch
	TransQuit
)

func (k TransKind) String() string {
	switch k {
	case TransPop:
		return "pop"
	case TransPush:
		return "push"
	case TransSwitch:
		return "switch"
	case TransQuit:
		return "quit"
	default:
		return "none"
	}
}

type Trans[C any] struct {
	Kind  TransKind
	State State[C]
}

func None[C any]() Trans[C] { return Trans[C]{} }
func Pop[C any]() Trans[C]  { return Trans[C]{Kind: TransPop} }
func Quit[C any]() Trans[C] { return Trans[C]{Kind: TransQuit} }

func Push[C any](s State[C]) Trans[C] {
	return Trans[C]{Kind: TransPush, State: s}
}

func Switch[C any](s State[C]) Trans[C] {
	return Trans[C]{Kind: TransSwitch, State: s}
}

// Machine holds a stack of states. Only the top receives hooks.
type Machine[C any] struct {
	stack   []State[C]
	running bool
}

// New returns a machine with initial on the stack. It is not running until
// Start is called.
func New[C any](initial State[C]) *Machine[C] {
	if initial == nil {
		panic("fsm: nil initial state")
	}
	return &Machine[C]{stack: []State[C]{initial}}
}

func (m *Machine[C]) Running() bool {
	return m != nil && m.running
}

func (m *Machine[C]) Depth() int {
	if m == nil {
		return 0
	}
	return len(m.stack)
}

// Current returns the top state, or nil when the stack is empty.
func (m *Machine[C]) Current() State[C] {
	if m == nil || len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Names lists the stack from bottom to top.
func (m *Machine[C]) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.stack))
	for _, s := range m.stack {
		names = append(names, s.Name())
	}
	return names
}

// Start runs OnStart on the top state. A machine whose stack was emptied by
// Pop or Quit stays stopped.
func (m *Machine[C]) Start(ctx C) {
	if m.running || len(m.stack) == 0 {
		return
	}
	m.top().OnStart(ctx)
	m.running = true
}

func (m *Machine[C]) HandleEvents(ctx C) {
	if !m.running {
		return
	}
	m.apply(m.top().HandleEvents(ctx), ctx)
}

func (m *Machine[C]) FixedUpdate(ctx C) {
	if !m.running {
		return
	}
	m.apply(m.top().FixedUpdate(ctx), ctx)
}

func (m *Machine[C]) Update(ctx C) {
	if !m.running {
		return
	}
	m.apply(m.top().Update(ctx), ctx)
}

func (m *Machine[C]) top() State[C] {
	if len(m.stack) == 0 {
		panic("fsm: empty state stack")
	}
	return m.stack[len(m.stack)-1]
}

func (m *Machine[C]) apply(t Trans[C], ctx C) {
	switch t.Kind {
	case TransPop:
		m.pop(ctx)
	case TransPush:
		m.push(t.State, ctx)
	case TransSwitch:
		m.switchTo(t.State, ctx)
	case TransQuit:
		m.quit(ctx)
	}
}

func (m *Machine[C]) pop(ctx C) {
	if !m.running {
		return
	}
	if len(m.stack) > 0 {
		last := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
		last.OnStop(ctx)
	}
	if len(m.stack) == 0 {
		m.running = false
		return
	}
	m.top().OnResume(ctx)
}

func (m *Machine[C]) push(s State[C], ctx C) {
	if !m.running || s == nil {
		return
	}
	m.top().OnPause(ctx)
	m.stack = append(m.stack, s)
	s.OnStart(ctx)
}

func (m *Machine[C]) switchTo(s State[C], ctx C) {
	if !m.running || s == nil {
		return
	}
	if len(m.stack) > 0 {
		last := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
		last.OnStop(ctx)
	}
	m.stack = append(m.stack, s)
	s.OnStart(ctx)
}

func (m *Machine[C]) quit(ctx C) {
	if !m.running {
		return
	}
	for len(m.stack) > 0 {
		last := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
		last.OnStop(ctx)
	}
	m.running = false
}

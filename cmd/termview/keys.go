package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/tilecore/ecs/component"
)

// Terminals report key repeats but no releases, so a direction stays held for
// holdFor after its last press or repeat.
const holdFor = 150 * time.Millisecond

type direction uint8

const (
	dirLeft direction = iota
	dirRight
	dirUp
	dirDown
	dirCount
)

type heldKeys struct {
	until               [dirCount]time.Time
	jump, attack, slide bool
}

func newHeldKeys() *heldKeys {
	return &heldKeys{}
}

func (h *heldKeys) handle(ev *tcell.EventKey, now time.Time) {
	switch ev.Key() {
	case tcell.KeyLeft:
		h.hold(dirLeft, now)
	case tcell.KeyRight:
		h.hold(dirRight, now)
	case tcell.KeyUp:
		h.hold(dirUp, now)
	case tcell.KeyDown:
		h.hold(dirDown, now)
	case tcell.KeyRune:
		h.rune(ev.Rune(), now)
	}
}

func (h *heldKeys) rune(r rune, now time.Time) {
	switch r {
	case 'h', 'a':
		h.hold(dirLeft, now)
	case 'l', 'd':
		h.hold(dirRight, now)
	case 'k', 'w':
		h.hold(dirUp, now)
	case 'j', 's':
		h.hold(dirDown, now)
	case ' ':
		h.jump = true
	case 'x':
		h.attack = true
	case 'c':
		h.slide = true
	}
}

func (h *heldKeys) hold(d direction, now time.Time) {
	// pressing one way releases the other
	switch d {
	case dirLeft:
		h.until[dirRight] = time.Time{}
	case dirRight:
		h.until[dirLeft] = time.Time{}
	}
	h.until[d] = now.Add(holdFor)
}

// apply writes the held directions and any pending actions into in. Actions
// are handed over once.
func (h *heldKeys) apply(in *component.PlayerInput, now time.Time) {
	if in == nil {
		return
	}
	in.Left = now.Before(h.until[dirLeft])
	in.Right = now.Before(h.until[dirRight])
	in.Up = now.Before(h.until[dirUp])
	in.Down = now.Before(h.until[dirDown])
	in.Jump = in.Jump || h.jump
	in.Attack = in.Attack || h.attack
	in.Slide = in.Slide || h.slide
	h.jump, h.attack, h.slide = false, false, false
}

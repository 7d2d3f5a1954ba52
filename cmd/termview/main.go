// Command termview runs the simulation in a terminal. Terrain and colliders
// are drawn as characters; the arrow keys, space, x and c drive the players.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/tilecore/ecs"
	"github.com/milk9111/tilecore/ecs/component"
	"github.com/milk9111/tilecore/sim"
)

func main() {
	configName := flag.String("config", "simulation", "simulation spec in prefabs/ (basename, .yaml optional)")
	levelName := flag.String("level", "", "level name in levels/, overrides the config")
	tps := flag.Int("tps", 60, "simulation ticks per second")
	cell := flag.Float64("cell", 48, "world units per terminal column")
	logFile := flag.String("log", "termview.log", "log file; the screen is not usable for logs")
	flag.Parse()

	if f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	cfg, err := sim.LoadConfig(*configName)
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		cfg.Level = *levelName
	}
	s, err := sim.Load(cfg)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	if err := run(screen, s, *tps, *cell); err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(screen tcell.Screen, s *sim.Simulation, tps int, cellSize float64) error {
	if tps <= 0 {
		return fmt.Errorf("tps must be positive, got %d", tps)
	}
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	step := time.Second / time.Duration(tps)
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	keys := newHeldKeys()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					return nil
				}
				keys.handle(ev, time.Now())
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			keys.apply(s.Input(), now)
			s.Tick(step)
			draw(screen, s, cellSize)
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

var styles = map[cellKind]tcell.Style{
	cellEmpty:    tcell.StyleDefault,
	cellBlock:    tcell.StyleDefault.Foreground(tcell.ColorGray),
	cellPlatform: tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown),
	cellBody:     tcell.StyleDefault.Foreground(tcell.ColorRed),
	cellGrounded: tcell.StyleDefault.Foreground(tcell.ColorGreen),
}

func draw(screen tcell.Screen, s *sim.Simulation, cellSize float64) {
	cols, rows := screen.Size()
	if rows < 2 {
		return
	}
	f := rasterize(s.World, s.Terrain(), s.Camera(), cols, rows-1, cellSize)

	screen.Clear()
	for y := 0; y < f.rows; y++ {
		for x := 0; x < f.cols; x++ {
			c := f.at(x, y)
			screen.SetContent(x, y+1, c.r, nil, styles[c.kind])
		}
	}

	state := "-"
	if _, sm, ok := ecs.First(s.World, component.PlayerStateMachineComponent.Kind()); ok && sm.Machine.Running() {
		state = fmt.Sprint(sm.Machine.Names())
	}
	status := fmt.Sprintf("ticks %d  fixed %d  states %s  [arrows move, space jump, x attack, c slide, q quit]",
		s.Ticks(), s.FixedTicks(), state)
	for i, r := range []rune(status) {
		if i >= cols {
			break
		}
		screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Reverse(true))
	}
	screen.Show()
}

package main

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tilecore/assets"
	"github.com/milk9111/tilecore/common"
	"github.com/milk9111/tilecore/ecs"
	"github.com/milk9111/tilecore/ecs/component"
	"github.com/milk9111/tilecore/ecs/render"
	"github.com/milk9111/tilecore/prefabs"
	"github.com/milk9111/tilecore/sim"
)

type Game struct {
	sim    *sim.Simulation
	assets *assets.Storage
	images *imageCache

	debug   bool
	paused  bool
	quit    bool
	pause   *ebitenui.UI
	watcher *prefabs.Watcher
}

func NewGame(cfg sim.Config, debug bool) (*Game, error) {
	s, err := sim.Load(cfg)
	if err != nil {
		return nil, err
	}
	table, err := assets.Default()
	if err != nil {
		return nil, err
	}
	table.Debug = debug

	g := &Game{
		sim:    s,
		assets: table,
		images: newImageCache("assets"),
		debug:  debug,
	}
	g.pause = NewPauseUI(g)

	if debug {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	g.drainReloads()

	if g.paused {
		g.pause.Update()
		return nil
	}

	collectInput(g.sim.Input())
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		at := g.view().ToWorld(float64(mx), float64(my))
		if _, err := g.sim.SpawnPlayerAt(at.X, at.Y); err != nil {
			log.Printf("spawn player: %v", err)
		}
	}

	g.sim.Tick(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.sim.Reload(name); err != nil {
				log.Printf("reload %s: %v", name, err)
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) view() render.View {
	return render.NewView(g.sim.Camera(), common.BaseWidth, common.BaseHeight)
}

func (g *Game) Draw(screen *ebiten.Image) {
	v := g.view()
	drawTerrain(screen, v, g.sim.Terrain())
	for _, s := range render.Sprites(g.sim.World) {
		g.drawSprite(screen, v, s)
	}

	if g.debug {
		drawBoxes(screen, v, render.Boxes(g.sim.World))
		ebitenutil.DebugPrint(screen, g.status())
	}
	if g.paused {
		g.pause.Draw(screen)
	}
}

func (g *Game) status() string {
	state := "-"
	if _, sm, ok := ecs.First(g.sim.World, component.PlayerStateMachineComponent.Kind()); ok && sm.Machine.Running() {
		state = fmt.Sprint(sm.Machine.Names())
	}
	return fmt.Sprintf("FPS: %.2f  ticks: %d  fixed: %d  entities: %d\nstates: %s",
		ebiten.ActualFPS(), g.sim.Ticks(), g.sim.FixedTicks(), len(ecs.Entities(g.sim.World)), state)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

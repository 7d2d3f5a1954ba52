package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilecore/sim"
)

func main() {
	debug := flag.Bool("debug", false, "draw colliders and hot reload prefabs")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	configName := flag.String("config", "simulation", "simulation spec in prefabs/ (basename, .yaml optional)")
	levelName := flag.String("level", "", "level name in levels/, overrides the config")
	flag.Parse()

	cfg, err := sim.LoadConfig(*configName)
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		cfg.Level = *levelName
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("tilecore")

	game, err := NewGame(cfg, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

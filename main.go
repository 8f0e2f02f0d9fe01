package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "log every traversal transition")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "tower", "level name in levels/ (basename, .json optional)")
	script := flag.String("script", "", "drive every avatar with this script from prefabs/scripts instead of the keyboard")
	watch := flag.Bool("watch", false, "reload prefabs, scripts and levels when they change on disk")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("jumper")

	game, err := NewGame(gameConfig{
		Level:  *levelName,
		Script: *script,
		Debug:  *debug,
		Watch:  *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

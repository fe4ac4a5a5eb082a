package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/robotgrabber/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode and live prefab reload")
	touch := flag.Bool("touch", false, "treat the mouse as a touch pointer")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	robots := flag.Int("robots", 0, "number of robots to spawn (0 uses the world prefab)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("robotgrabber")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(gameOptions{debug: *debug, forceTouch: *touch, robots: *robots})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Print(err)
	}
}

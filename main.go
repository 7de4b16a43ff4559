package main

import (
	"flag"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/bramble/levels"
)

func main() {
	levelName := flag.String("level", "grove", "level name in levels/ (basename, .json optional)")
	debug := flag.Bool("debug", false, "draw placement probes and physics shapes")
	watch := flag.Bool("watch", false, "hot reload prefabs and AI scripts from prefabs/")
	editor := flag.Bool("editor", false, "run root traps with editor timing")
	flag.Parse()

	game, err := NewGame(*levelName, *debug, *editor)
	if err != nil {
		log.Fatalf("%v (embedded levels: %s)", err, strings.Join(levels.Names(), ", "))
	}
	defer game.Close()

	if *watch {
		if err := game.Watch("prefabs", "prefabs/scripts"); err != nil {
			log.Fatal(err)
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("bramble")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

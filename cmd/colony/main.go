//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"colony/internal/app"
	"colony/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	list := flag.Bool("list", false, "list MIDI output ports and exit")
	flag.Parse()

	if *list {
		app.ListPorts()
		return
	}

	ecfg, err := cfg.EngineConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	outs := app.OpenOutputs(cfg, float64(ecfg.BPM))
	defer func() {
		if err := outs.Close(); err != nil {
			log.Printf("close outputs: %v", err)
		}
	}()

	eng := engine.New(ecfg, outs.Out)
	game := app.New(eng, cfg.Scale)
	w, h := game.WindowSize()

	ebiten.SetWindowTitle("colony " + eng.Config().Rules().String())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		eng.Shutdown()
		log.Print(err)
		return
	}
	eng.Shutdown()
}

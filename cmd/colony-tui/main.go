package main

import (
	"flag"
	"log"

	"colony/internal/app"
	"colony/internal/engine"
	"colony/internal/midiout"
	"colony/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
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
	recent := midiout.NewCapture(256)
	outs := app.OpenOutputs(cfg, float64(ecfg.BPM), recent)

	eng := engine.New(ecfg, outs.Out)
	_, runErr := tea.NewProgram(tui.New(eng, recent), tea.WithAltScreen()).Run()
	eng.Shutdown()
	if err := outs.Close(); err != nil {
		log.Printf("close outputs: %v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}

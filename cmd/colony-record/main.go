package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"colony/internal/app"
	"colony/internal/engine"
	"colony/pkg/colony"
)

func main() {
	cfg := app.NewConfig()
	cfg.Record = "colony.mid"
	cfg.Bind(flag.CommandLine)
	duration := flag.Duration("duration", 30*time.Second, "how long to play before stopping (0 runs until interrupted)")
	generations := flag.Uint64("generations", 0, "stop after this many generations (0 for no limit)")
	flag.Parse()

	ecfg, err := cfg.EngineConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	outs := app.OpenOutputs(cfg, float64(ecfg.BPM))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eng := engine.New(ecfg, outs.Out)
	runner := engine.NewRunner(eng)
	runner.OnTick = func(gen uint64, events []colony.Event) {
		if cfg.Verbose {
			log.Printf("gen %d: %d events", gen, len(events))
		}
		if *generations > 0 && gen >= *generations {
			cancel()
		}
	}

	log.Printf("playing %s at %d BPM; ctrl-c to stop", ecfg.Rules(), ecfg.BPM)
	if err := runner.Run(ctx); err != nil {
		log.Printf("run: %v", err)
	}
	log.Print(eng.StatusLine())

	n := outs.Recorded()
	if err := outs.Close(); err != nil {
		log.Fatalf("close outputs: %v", err)
	}
	if cfg.Record != "" {
		log.Printf("wrote %d messages to %s", n, cfg.Record)
	}
}

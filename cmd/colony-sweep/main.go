package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"strconv"
	"strings"
	"time"

	"colony/internal/app"
	"colony/internal/sweep"
	"colony/pkg/colony"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	generations := flag.Int("generations", 200, "generations to play per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	presets := flag.String("presets", strings.Join(colony.PresetNames(), ","), "comma-separated rules presets")
	densities := flag.String("densities", "15,30,45,60", "comma-separated seed densities")
	probabilities := flag.String("probabilities", "20,35,60,100", "comma-separated note probabilities")
	top := flag.Int("top", 10, "results to print")
	flag.Parse()

	base, err := cfg.EngineConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	dens, err := parseInts(*densities)
	if err != nil {
		log.Fatalf("densities: %v", err)
	}
	probs, err := parseInts(*probabilities)
	if err != nil {
		log.Fatalf("probabilities: %v", err)
	}

	scenarios := sweep.Grid(base, strings.Split(*presets, ","), dens, probs)
	fmt.Printf("Sweeping %d scenarios (%d workers, %d generations)\n", len(scenarios), *workers, *generations)

	start := time.Now()
	results := sweep.Run(scenarios, *generations, *workers)
	fmt.Printf("\nTop %d results (elapsed %s):\n", *top, time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(results) && i < *top; i++ {
		r := results[i]
		extinct := "-"
		if r.ExtinctAt >= 0 {
			extinct = strconv.Itoa(r.ExtinctAt)
		}
		fmt.Printf("%2d) notes/gen=%.2f notes=%d dropped=%d stolen=%d peakVoices=%d pop=%d extinct=%s %s\n",
			i+1, r.NotesPerGen(), r.NotesOn, r.Dropped, r.Stolen, r.PeakVoices, r.FinalPop, extinct, r.Scenario)
	}
}

func parseInts(list string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", field, err)
		}
		out = append(out, v)
	}
	return out, nil
}

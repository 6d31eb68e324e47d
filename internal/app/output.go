package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"colony/internal/midiout"
)

// Outputs bundles the MIDI destinations chosen on the command line.
type Outputs struct {
	Out midiout.Output

	port       *midiout.Port
	recorder   *midiout.Recorder
	recordPath string
}

// OpenOutputs opens the configured port and recorder. A port that cannot be
// found is logged and skipped so the colony still runs silently.
func OpenOutputs(c *Config, bpm float64, extra ...midiout.Output) *Outputs {
	o := &Outputs{}
	var fan midiout.Fanout
	if c.Port != "" {
		port, err := openPort(c.Port)
		if err != nil {
			log.Printf("midi: %v; continuing without a port", err)
		} else {
			o.port = port
			fan = append(fan, port)
		}
	}
	if c.Record != "" {
		o.recorder = midiout.NewRecorder(bpm, time.Now)
		o.recordPath = c.Record
		fan = append(fan, o.recorder)
	}
	if c.Verbose {
		fan = append(fan, midiout.Log{L: log.New(os.Stderr, "note ", log.Lmicroseconds)})
	}
	fan = append(fan, extra...)
	switch len(fan) {
	case 0:
		o.Out = midiout.Null{}
	case 1:
		o.Out = fan[0]
	default:
		o.Out = fan
	}
	return o
}

func openPort(name string) (*midiout.Port, error) {
	if i, ok := portIndex(name); ok {
		return midiout.OpenPortIndex(i)
	}
	return midiout.OpenPort(name)
}

// Recorded returns the number of messages captured for the .mid file.
func (o *Outputs) Recorded() int {
	if o.recorder == nil {
		return 0
	}
	return o.recorder.Len()
}

// Close writes the recording, if any, and closes the port.
func (o *Outputs) Close() error {
	var errs []error
	if o.recorder != nil {
		if err := o.recorder.WriteFile(o.recordPath); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", o.recordPath, err))
		}
	}
	if o.port != nil {
		if err := o.port.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close port: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ListPorts prints the available MIDI output ports to stdout.
func ListPorts() {
	names, err := midiout.PortNames()
	if err != nil {
		log.Printf("midi: %v", err)
		return
	}
	if len(names) == 0 {
		fmt.Println("no MIDI output ports (build with -tags rtmidi to enable the rtmidi driver)")
		return
	}
	for i, name := range names {
		fmt.Printf("%d: %s\n", i, name)
	}
}

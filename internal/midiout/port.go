package midiout

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Port sends note commands to a MIDI output port. A nil or closed Port
// silently drops commands.
type Port struct {
	out drivers.Out
}

// PortNames lists the output ports of the registered driver.
func PortNames() ([]string, error) {
	outs, err := drivers.Outs()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(outs))
	for i, out := range outs {
		names[i] = out.String()
	}
	return names, nil
}

// OpenPort opens the first output port whose name contains name.
func OpenPort(name string) (*Port, error) {
	out, err := midi.FindOutPort(name)
	if err != nil {
		return nil, fmt.Errorf("find midi out %q: %w", name, err)
	}
	return NewPort(out)
}

// OpenPortIndex opens the output port at index i.
func OpenPortIndex(i int) (*Port, error) {
	outs, err := drivers.Outs()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(outs) {
		return nil, fmt.Errorf("output port index %d out of range", i)
	}
	return NewPort(outs[i])
}

// NewPort opens out and wraps it.
func NewPort(out drivers.Out) (*Port, error) {
	if !out.IsOpen() {
		if err := out.Open(); err != nil {
			return nil, fmt.Errorf("open midi out %s: %w", out.String(), err)
		}
	}
	return &Port{out: out}, nil
}

func (p *Port) NoteOn(ch, key, vel uint8) error {
	return p.send(midi.NoteOn(ch, key, vel))
}

func (p *Port) NoteOff(ch, key uint8) error {
	return p.send(midi.NoteOff(ch, key))
}

func (p *Port) send(msg midi.Message) error {
	if p == nil || p.out == nil || !p.out.IsOpen() {
		return nil
	}
	return p.out.Send(msg.Bytes())
}

// String returns the port name.
func (p *Port) String() string {
	if p == nil || p.out == nil {
		return "<none>"
	}
	return p.out.String()
}

// Close closes the port. The driver itself stays registered; call
// drivers.Close at process exit.
func (p *Port) Close() error {
	if p == nil || p.out == nil {
		return nil
	}
	return p.out.Close()
}

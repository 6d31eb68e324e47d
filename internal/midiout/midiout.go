// Package midiout holds the collaborators that receive note commands: real
// MIDI ports, an SMF recorder and a few in-process sinks.
package midiout

import (
	"errors"
	"log"
	"sync"

	"colony/pkg/pitch"
)

// Output receives note commands. Implementations must tolerate being called
// after their device went away; returning an error is enough.
type Output interface {
	NoteOn(ch, key, vel uint8) error
	NoteOff(ch, key uint8) error
}

// AllNotesOff sends a note-off for every key on ch.
func AllNotesOff(out Output, ch uint8) error {
	if out == nil {
		return nil
	}
	var errs []error
	for key := 0; key < 128; key++ {
		if err := out.NoteOff(ch, uint8(key)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Null discards everything.
type Null struct{}

func (Null) NoteOn(uint8, uint8, uint8) error { return nil }
func (Null) NoteOff(uint8, uint8) error       { return nil }

// Fanout forwards every command to each output in order.
type Fanout []Output

func (f Fanout) NoteOn(ch, key, vel uint8) error {
	var errs []error
	for _, o := range f {
		if err := o.NoteOn(ch, key, vel); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) NoteOff(ch, key uint8) error {
	var errs []error
	for _, o := range f {
		if err := o.NoteOff(ch, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Log prints each command with the provided logger (log.Default when nil).
type Log struct {
	L *log.Logger
}

func (l Log) logger() *log.Logger {
	if l.L == nil {
		return log.Default()
	}
	return l.L
}

func (l Log) NoteOn(ch, key, vel uint8) error {
	l.logger().Printf("note on  ch=%d %-4s vel=%d", ch, pitch.NoteName(int(key)), vel)
	return nil
}

func (l Log) NoteOff(ch, key uint8) error {
	l.logger().Printf("note off ch=%d %-4s", ch, pitch.NoteName(int(key)))
	return nil
}

// Kind tells note-ons from note-offs in a captured Message.
type Kind uint8

const (
	KindNoteOn Kind = iota + 1
	KindNoteOff
)

// Message is a captured note command.
type Message struct {
	Kind     Kind
	Channel  uint8
	Key      uint8
	Velocity uint8
}

// Capture keeps the most recent commands in memory. A zero limit keeps all.
type Capture struct {
	mu    sync.Mutex
	limit int
	msgs  []Message
}

// NewCapture returns a capture that retains at most limit messages.
func NewCapture(limit int) *Capture {
	return &Capture{limit: limit}
}

func (c *Capture) NoteOn(ch, key, vel uint8) error {
	c.add(Message{Kind: KindNoteOn, Channel: ch, Key: key, Velocity: vel})
	return nil
}

func (c *Capture) NoteOff(ch, key uint8) error {
	c.add(Message{Kind: KindNoteOff, Channel: ch, Key: key})
	return nil
}

func (c *Capture) add(m Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, m)
	if c.limit > 0 && len(c.msgs) > c.limit {
		c.msgs = append(c.msgs[:0], c.msgs[len(c.msgs)-c.limit:]...)
	}
}

// Messages returns a copy of the retained messages, oldest first.
func (c *Capture) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.msgs...)
}

// Reset forgets every retained message.
func (c *Capture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 VisionBox Automation

package vbox

import "time"

// LineDriver sets the level of one named digital output line.
// Implementations own the mapping from symbolic names to hardware pins.
type LineDriver interface {
	SetLine(name LineName, high bool) error
}

// Ack reports an accepted command line.
type Ack struct {
	State   State
	Label   string
	Clamped int // fields that were saturated to reach {0,1}

	// DriveErr carries the first line driver failure, if any. Driving the
	// pins is best effort; the state is committed either way.
	DriveErr error

	timestamp time.Time
}

// Timestamp returns the time the command was accepted.
func (a *Ack) Timestamp() time.Time {
	return a.timestamp
}

// Processor owns the output state and applies completed command lines to it.
//
// Each invocation is a pure function of (state, line): an accepted line
// replaces the whole state, a rejected line leaves it untouched. The
// processor is meant for a single polling context and does no locking.
type Processor struct {
	asm    *Assembler
	state  State
	driver LineDriver
}

// NewProcessor creates a processor with the all-zero startup state.
// A nil driver is allowed for observe-only use.
func NewProcessor(driver LineDriver) *Processor {
	return &Processor{
		asm:    NewAssembler(),
		driver: driver,
	}
}

// State returns the most recently accepted output state.
func (p *Processor) State() State {
	return p.state
}

// Pending returns the number of buffered bytes of the incomplete line.
func (p *Processor) Pending() int {
	return p.asm.Len()
}

// Dropped returns the total number of overflow bytes discarded so far.
func (p *Processor) Dropped() uint64 {
	return p.asm.Dropped()
}

// FeedByte pushes one received byte through the line assembler and, on a
// completed line, processes it. Returns (nil, nil) while a line is still
// incomplete.
func (p *Processor) FeedByte(b byte) (*Ack, error) {
	line, ok := p.asm.Feed(b)
	if !ok {
		return nil, nil
	}
	return p.Process(line)
}

// Process parses, clamps and applies one completed line.
//
// On success the six clamped values overwrite the output state as a whole
// and every mapped line is driven to its new level. On failure the state is
// untouched and the returned error is a *RejectError carrying the raw line.
// Process never panics, whatever the input.
func (p *Processor) Process(line []byte) (*Ack, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return nil, err
	}

	next := cmd.Clamp()
	p.state = next

	ack := &Ack{
		State:     next,
		Label:     next.Label(),
		Clamped:   cmd.Clamped(),
		timestamp: time.Now(),
	}

	if p.driver != nil {
		for _, lv := range next.Levels() {
			if err := p.driver.SetLine(lv.Name, lv.High); err != nil && ack.DriveErr == nil {
				ack.DriveErr = err
			}
		}
	}

	return ack, nil
}

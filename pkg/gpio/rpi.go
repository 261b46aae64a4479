// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 VisionBox Automation

package gpio

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"

	"github.com/visionbox/boxlink/pkg/vbox"
)

// RPi drives output lines through the Raspberry Pi GPIO controller.
type RPi struct {
	pins Pins
}

// OpenRPi memory-maps the GPIO registers and configures every mapped pin as
// a low output, matching the all-zero startup state.
func OpenRPi(pins Pins) (*RPi, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("failed to open gpio: %v", err)
	}
	for _, p := range pins {
		pin := rpio.Pin(p)
		pin.Output()
		pin.Low()
	}
	return &RPi{pins: pins}, nil
}

// SetLine sets the level of a named line.
func (r *RPi) SetLine(name vbox.LineName, high bool) error {
	p, ok := r.pins[name]
	if !ok {
		return fmt.Errorf("no pin mapped for line %q", name)
	}
	if high {
		rpio.Pin(p).High()
	} else {
		rpio.Pin(p).Low()
	}
	return nil
}

// Close unmaps the GPIO registers. Pin levels are left as they are so the
// downstream consumer keeps seeing the last mirrored state.
func (r *RPi) Close() error {
	return rpio.Close()
}

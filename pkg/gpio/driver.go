// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 VisionBox Automation

// Package gpio provides digital output line drivers for the vbox mirror.
//
// The Raspberry Pi implementation drives real pins through the Broadcom
// GPIO controller; the memory implementation records levels so the mirror
// and its tests can run without hardware.
package gpio

import "github.com/visionbox/boxlink/pkg/vbox"

// Driver is a closable line driver.
type Driver interface {
	vbox.LineDriver
	Close() error
}

// Pins maps symbolic line names to BCM pin numbers.
type Pins map[vbox.LineName]uint8

// DefaultPins mirrors the classic wiring: camera, error and detection lamps
// on 2-4, the three type bits on 5-7 (LSB first), status indicator on 13.
func DefaultPins() Pins {
	return Pins{
		vbox.LineCamera:    2,
		vbox.LineError:     3,
		vbox.LineDetection: 4,
		vbox.LineTypeBit0:  5,
		vbox.LineTypeBit1:  6,
		vbox.LineTypeBit2:  7,
		vbox.LineStatus:    13,
	}
}

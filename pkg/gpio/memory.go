// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 VisionBox Automation

package gpio

import (
	"sync"

	"github.com/visionbox/boxlink/pkg/vbox"
)

// Memory is an in-memory line driver. It records the level of every line it
// has been asked to drive, for tests and for running the mirror on a machine
// without GPIO hardware.
type Memory struct {
	mu     sync.Mutex
	levels map[vbox.LineName]bool
	writes uint64
}

// NewMemory creates an in-memory driver with all lines low.
func NewMemory() *Memory {
	return &Memory{
		levels: make(map[vbox.LineName]bool),
	}
}

// SetLine records the level of a named line. It never fails.
func (m *Memory) SetLine(name vbox.LineName, high bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels[name] = high
	m.writes++
	return nil
}

// Level returns the recorded level of a line. Lines never driven are low.
func (m *Memory) Level(name vbox.LineName) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.levels[name]
}

// Snapshot returns a copy of all recorded line levels.
func (m *Memory) Snapshot() map[vbox.LineName]bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[vbox.LineName]bool, len(m.levels))
	for k, v := range m.levels {
		out[k] = v
	}
	return out
}

// Writes returns the total number of SetLine calls.
func (m *Memory) Writes() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Close is a no-op for the in-memory driver.
func (m *Memory) Close() error {
	return nil
}
